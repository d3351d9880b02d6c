package tui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/store"
)

var testToday = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func testApp() App {
	return App{
		opts:    Options{DBPath: "unused.db", Today: testToday},
		txState: newTransactionsState(),
	}
}

func testLedger() ledgerData {
	return ledgerData{
		Transactions: []model.Transaction{
			{ID: 2, Type: model.Expense, Amount: decimal.NewFromInt(120), Category: "Food", Description: "groceries", Date: testToday.AddDate(0, 0, -2)},
			{ID: 1, Type: model.Income, Amount: decimal.NewFromInt(5000), Category: "Salary", Date: testToday.AddDate(0, 0, -14), IsRecurring: true},
		},
		Goals: []model.Goal{
			{ID: 1, Title: "Emergency fund", Type: model.GoalBalance, TargetAmount: decimal.NewFromInt(10000)},
		},
		Settings: model.DefaultSettings(),
	}
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedApp(t *testing.T) App {
	t.Helper()
	m, _ := testApp().Update(DataLoadedMsg{Data: testLedger(), LoadTime: 3 * time.Millisecond})
	return m.(App)
}

func TestDataLoadedRecomputesSnapshot(t *testing.T) {
	a := loadedApp(t)

	assert.True(t, a.loaded)
	assert.Equal(t, 2, a.snap.TransactionCount)
	assert.True(t, a.snap.Totals.Balance.Equal(decimal.NewFromInt(4880)), "balance %s", a.snap.Totals.Balance)
	assert.Len(t, a.snap.Goals, 1)
	assert.Equal(t, testToday, a.snap.Today)
	assert.Nil(t, a.setupForm)
}

func TestDataLoadedErrorSetsNotice(t *testing.T) {
	m, cmd := testApp().Update(DataLoadedMsg{Err: errors.New("disk on fire")})
	a := m.(App)

	assert.True(t, a.loaded)
	assert.True(t, a.notice.Err)
	assert.Contains(t, a.notice.Text, "disk on fire")
	assert.NotNil(t, cmd)
}

func TestSavedErrorKeepsLedger(t *testing.T) {
	a := loadedApp(t)
	before := a.ledger

	m, cmd := a.Update(SavedMsg{What: "add transaction", Err: errors.New("locked")})
	a = m.(App)

	assert.Equal(t, before, a.ledger)
	assert.False(t, a.refreshing)
	assert.True(t, a.notice.Err)
	assert.Equal(t, "Could not add transaction: locked", a.notice.Text)
	assert.NotNil(t, cmd)
}

func TestSavedSuccessTriggersReload(t *testing.T) {
	a := loadedApp(t)

	m, cmd := a.Update(SavedMsg{What: "add goal"})
	a = m.(App)

	assert.True(t, a.refreshing)
	assert.False(t, a.notice.Err)
	assert.Equal(t, "Done: add goal", a.notice.Text)
	assert.NotNil(t, cmd)
}

func TestRefreshReplacesLedger(t *testing.T) {
	a := loadedApp(t)
	a.refreshing = true

	data := testLedger()
	data.Transactions = data.Transactions[:1]
	m, _ := a.Update(RefreshDataMsg{Data: data})
	a = m.(App)

	assert.False(t, a.refreshing)
	assert.Equal(t, 1, a.snap.TransactionCount)
}

func TestRefreshErrorKeepsLedger(t *testing.T) {
	a := loadedApp(t)
	a.refreshing = true

	m, _ := a.Update(RefreshDataMsg{Err: errors.New("gone")})
	a = m.(App)

	assert.False(t, a.refreshing)
	assert.Equal(t, 2, a.snap.TransactionCount)
	assert.True(t, a.notice.Err)
}

func TestNoticeExpiresOnlyForMatchingSeq(t *testing.T) {
	a := loadedApp(t)
	a.setNotice("first", false)
	a.setNotice("second", false)

	m, _ := a.Update(noticeExpiredMsg{seq: a.noticeSeq - 1})
	a = m.(App)
	assert.Equal(t, "second", a.notice.Text)

	m, _ = a.Update(noticeExpiredMsg{seq: a.noticeSeq})
	a = m.(App)
	assert.Empty(t, a.notice.Text)
}

func TestTabKeys(t *testing.T) {
	a := loadedApp(t)

	tests := []struct {
		key  string
		want int
	}{
		{"t", tabTransactions},
		{"g", tabGoals},
		{"a", tabAnalytics},
		{"x", tabSettings},
		{"o", tabOverview},
	}
	for _, tt := range tests {
		m, _ := a.Update(keyPress(tt.key))
		a = m.(App)
		assert.Equal(t, tt.want, a.activeTab, "key %q", tt.key)
	}

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, tabSettings, m.(App).activeTab, "left wraps around")
}

func TestKeysIgnoredBeforeLoad(t *testing.T) {
	m, _ := testApp().Update(keyPress("g"))
	assert.Equal(t, tabOverview, m.(App).activeTab)
}

func TestTransactionSearchFiltersList(t *testing.T) {
	a := loadedApp(t)
	a.activeTab = tabTransactions

	m, _ := a.Update(keyPress("/"))
	a = m.(App)
	require.True(t, a.txState.searching)

	for _, r := range "sal" {
		m, _ = a.Update(keyPress(string(r)))
		a = m.(App)
	}
	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = m.(App)

	assert.False(t, a.txState.searching)
	assert.Equal(t, "sal", a.txState.query)
	require.Len(t, a.visibleTransactions(), 1)
	assert.Equal(t, "Salary", a.visibleTransactions()[0].Category)

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.(App).txState.query)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	a := loadedApp(t)
	a.activeTab = tabTransactions

	m, _ := a.Update(keyPress("D"))
	a = m.(App)
	require.True(t, a.txState.confirmDelete)

	m, cmd := a.Update(keyPress("n"))
	a = m.(App)
	assert.False(t, a.txState.confirmDelete)
	assert.Nil(t, cmd)
	assert.Nil(t, a.form, "declining must not open the new-transaction form")
}

func TestFilterTransactions(t *testing.T) {
	txs := testLedger().Transactions

	assert.Len(t, filterTransactions(txs, ""), 2)
	assert.Len(t, filterTransactions(txs, "  "), 2)
	assert.Len(t, filterTransactions(txs, "GROC"), 1)
	assert.Len(t, filterTransactions(txs, "food"), 1)
	assert.Empty(t, filterTransactions(txs, "rent"))
}

func TestTransactionValuesToNew(t *testing.T) {
	v := transactionValues{
		Type: string(model.Expense), Amount: " 12.50 ", Category: " Food ",
		Date: "2025-06-10", Recurring: true,
	}
	n, err := v.toNew()
	require.NoError(t, err)
	assert.Equal(t, model.Expense, n.Type)
	assert.True(t, n.Amount.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "Food", n.Category)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), n.Date)
	assert.True(t, n.IsRecurring)

	bad := []transactionValues{
		{Type: string(model.Expense), Amount: "abc", Category: "Food", Date: "2025-06-10"},
		{Type: string(model.Expense), Amount: "-5", Category: "Food", Date: "2025-06-10"},
		{Type: string(model.Expense), Amount: "5", Category: "", Date: "2025-06-10"},
		{Type: string(model.Expense), Amount: "5", Category: "Food", Date: "10/06/2025"},
		{Type: "transfer", Amount: "5", Category: "Food", Date: "2025-06-10"},
	}
	for _, b := range bad {
		_, err := b.toNew()
		assert.Error(t, err, "%+v", b)
	}
}

func TestGoalValuesToNew(t *testing.T) {
	n, err := goalValues{Title: "Car", Type: string(model.GoalBalance), Target: "20000", Deadline: "2026-01-01"}.toNew()
	require.NoError(t, err)
	assert.Equal(t, "Car", n.Title)
	require.NotNil(t, n.Deadline)
	assert.Equal(t, 2026, n.Deadline.Year())

	n, err = goalValues{Title: "Car", Type: string(model.GoalBalance), Target: "20000"}.toNew()
	require.NoError(t, err)
	assert.Nil(t, n.Deadline)

	_, err = goalValues{Title: "Car", Type: string(model.GoalBalance), Target: "0"}.toNew()
	assert.Error(t, err)
	_, err = goalValues{Title: "", Type: string(model.GoalBalance), Target: "10"}.toNew()
	assert.Error(t, err)
	_, err = goalValues{Title: "Car", Type: "lottery", Target: "10"}.toNew()
	assert.Error(t, err)
	_, err = goalValues{Title: "Car", Type: string(model.GoalBalance), Target: "10", Deadline: "soon"}.toNew()
	assert.Error(t, err)
}

func TestParseRefreshInterval(t *testing.T) {
	sec, err := parseRefreshInterval("45")
	require.NoError(t, err)
	assert.Equal(t, 45, sec)

	_, err = parseRefreshInterval("9")
	assert.Error(t, err)
	_, err = parseRefreshInterval("ten")
	assert.Error(t, err)
}

func TestReadLedgerFromStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fintrack.db")

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	_, err = s.CreateTransaction(store.NewTransaction{
		Type: model.Income, Amount: decimal.NewFromInt(900), Category: "Salary", Date: testToday,
	})
	require.NoError(t, err)
	archived, err := s.CreateGoal(store.NewGoal{Title: "Old", Type: model.GoalBalance, TargetAmount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	require.NoError(t, s.ArchiveGoal(archived))
	_, err = s.CreateGoal(store.NewGoal{Title: "New", Type: model.GoalBalance, TargetAmount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	msg := loadDataCmd(dbPath)()
	loaded, ok := msg.(DataLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Len(t, loaded.Data.Transactions, 1)
	require.Len(t, loaded.Data.Goals, 1, "archived goals are not loaded")
	assert.Equal(t, "New", loaded.Data.Goals[0].Title)
	assert.Equal(t, model.DefaultCurrency, loaded.Data.Settings.Currency)
}

func TestSaveCmdReportsStoreErrors(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fintrack.db")

	msg := saveCmd(dbPath, "delete transaction", func(s *store.Store) error {
		return s.DeleteTransaction(42)
	})()
	saved, ok := msg.(SavedMsg)
	require.True(t, ok)
	assert.Equal(t, "delete transaction", saved.What)
	assert.Error(t, saved.Err)
}

func TestViewRendersEveryTab(t *testing.T) {
	a := loadedApp(t)
	a.width, a.height = 140, 40

	for _, tab := range []int{tabOverview, tabTransactions, tabGoals, tabAnalytics, tabSettings} {
		a.activeTab = tab
		out := a.View()
		assert.NotEmpty(t, out, "tab %d", tab)
	}

	a.width = 60
	assert.Contains(t, a.View(), "Terminal too narrow")
}
