package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fintrack/internal/model"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "fintrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	// Deterministic, strictly increasing timestamps.
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	s.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return s
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestTransactions_CreateListDelete(t *testing.T) {
	s := openTest(t)

	id1, err := s.CreateTransaction(NewTransaction{
		Type: model.Income, Amount: decimal.RequireFromString("5000.50"),
		Category: "Salary", Date: date(t, "2025-06-01"), IsRecurring: true,
	})
	require.NoError(t, err)
	id2, err := s.CreateTransaction(NewTransaction{
		Type: model.Expense, Amount: decimal.NewFromInt(120),
		Category: " Food ", Description: "groceries", Date: date(t, "2025-06-03"),
	})
	require.NoError(t, err)
	id3, err := s.CreateTransaction(NewTransaction{
		Type: model.Expense, Amount: decimal.NewFromInt(80),
		Category: "Transport", Date: date(t, "2025-06-03"),
	})
	require.NoError(t, err)

	txs, err := s.ListTransactions()
	require.NoError(t, err)
	require.Len(t, txs, 3)

	// date DESC, id DESC
	assert.Equal(t, []int64{id3, id2, id1}, []int64{txs[0].ID, txs[1].ID, txs[2].ID})
	assert.Equal(t, "Food", txs[1].Category)
	assert.Equal(t, "groceries", txs[1].Description)
	assert.True(t, decimal.RequireFromString("5000.50").Equal(txs[2].Amount))
	assert.True(t, txs[2].IsRecurring)
	assert.Equal(t, model.Income, txs[2].Type)
	assert.Equal(t, date(t, "2025-06-01"), txs[2].Date)
	assert.False(t, txs[2].CreatedAt.IsZero())

	require.NoError(t, s.DeleteTransaction(id2))
	txs, err = s.ListTransactions()
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	assert.ErrorIs(t, s.DeleteTransaction(id2), ErrNotFound)
}

func TestTransactions_Validation(t *testing.T) {
	s := openTest(t)
	valid := NewTransaction{Type: model.Expense, Amount: decimal.NewFromInt(1), Category: "Food", Date: date(t, "2025-06-01")}

	tests := []struct {
		name   string
		mutate func(*NewTransaction)
	}{
		{"bad type", func(n *NewTransaction) { n.Type = "transfer" }},
		{"negative amount", func(n *NewTransaction) { n.Amount = decimal.NewFromInt(-5) }},
		{"blank category", func(n *NewTransaction) { n.Category = "  " }},
		{"missing date", func(n *NewTransaction) { n.Date = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := valid
			tt.mutate(&n)
			_, err := s.CreateTransaction(n)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	txs, err := s.ListTransactions()
	require.NoError(t, err)
	assert.Empty(t, txs, "rejected input must not be written")
}

func TestSettings_DefaultsAndUpdate(t *testing.T) {
	s := openTest(t)

	st, err := s.GetSettings()
	require.NoError(t, err)
	assert.True(t, model.DefaultSavingsGoal.Equal(st.SavingsGoal))
	assert.Equal(t, model.DefaultCurrency, st.Currency)
	assert.Nil(t, st.GoalDate)

	goalDate := date(t, "2030-01-01")
	require.NoError(t, s.UpdateSettings(decimal.NewFromInt(250000), &goalDate))
	require.NoError(t, s.UpdateCurrency("USD"))

	st, err = s.GetSettings()
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(250000).Equal(st.SavingsGoal))
	require.NotNil(t, st.GoalDate)
	assert.Equal(t, goalDate, *st.GoalDate)
	assert.Equal(t, "USD", st.Currency)

	assert.ErrorIs(t, s.UpdateSettings(decimal.NewFromInt(-1), nil), ErrInvalid)
	assert.ErrorIs(t, s.UpdateCurrency(" "), ErrInvalid)
}

func TestGoals_Lifecycle(t *testing.T) {
	s := openTest(t)

	deadline := date(t, "2025-12-31")
	id1, err := s.CreateGoal(NewGoal{Title: "Emergency fund", Type: model.GoalBalance, TargetAmount: decimal.NewFromInt(10000), Deadline: &deadline})
	require.NoError(t, err)
	id2, err := s.CreateGoal(NewGoal{Title: "June savings", Type: model.GoalMonthlySavings, TargetAmount: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	goals, err := s.ListGoals(false)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, id2, goals[0].ID, "newest first")
	assert.Nil(t, goals[0].Deadline)
	require.NotNil(t, goals[1].Deadline)
	assert.Equal(t, deadline, *goals[1].Deadline)
	assert.True(t, goals[1].CurrentAmount.IsZero())

	require.NoError(t, s.UpdateGoal(id2, GoalUpdate{Title: "Summer savings", Type: model.GoalYearlySavings, TargetAmount: decimal.NewFromInt(6000)}))
	g, err := s.GetGoal(id2)
	require.NoError(t, err)
	assert.Equal(t, "Summer savings", g.Title)
	assert.Equal(t, model.GoalYearlySavings, g.Type)

	require.NoError(t, s.SetGoalCompleted(id1, true))
	g, err = s.GetGoal(id1)
	require.NoError(t, err)
	assert.True(t, g.Completed)
	require.NoError(t, s.SetGoalCompleted(id1, false))

	require.NoError(t, s.ArchiveGoal(id1))
	goals, err = s.ListGoals(false)
	require.NoError(t, err)
	assert.Len(t, goals, 1)
	goals, err = s.ListGoals(true)
	require.NoError(t, err)
	assert.Len(t, goals, 2)

	require.NoError(t, s.DeleteGoal(id1))
	_, err = s.GetGoal(id1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.ArchiveGoal(id1), ErrNotFound)
	assert.ErrorIs(t, s.SetGoalCompleted(id1, true), ErrNotFound)
	assert.ErrorIs(t, s.UpdateGoal(id1, GoalUpdate{Title: "x", Type: model.GoalBalance, TargetAmount: decimal.NewFromInt(1)}), ErrNotFound)
}

func TestGoals_Validation(t *testing.T) {
	s := openTest(t)

	_, err := s.CreateGoal(NewGoal{Title: "", Type: model.GoalBalance, TargetAmount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = s.CreateGoal(NewGoal{Title: "x", Type: "lottery", TargetAmount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = s.CreateGoal(NewGoal{Title: "x", Type: model.GoalBalance, TargetAmount: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestClear(t *testing.T) {
	s := openTest(t)

	_, err := s.CreateTransaction(NewTransaction{Type: model.Income, Amount: decimal.NewFromInt(1), Category: "x", Date: date(t, "2025-06-01")})
	require.NoError(t, err)
	_, err = s.CreateGoal(NewGoal{Title: "x", Type: model.GoalBalance, TargetAmount: decimal.NewFromInt(1)})
	require.NoError(t, err)
	require.NoError(t, s.UpdateCurrency("USD"))

	require.NoError(t, s.Clear())

	txs, err := s.ListTransactions()
	require.NoError(t, err)
	assert.Empty(t, txs)
	goals, err := s.ListGoals(true)
	require.NoError(t, err)
	assert.Empty(t, goals)

	st, err := s.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCurrency, st.Currency)

	id, err := s.CreateTransaction(NewTransaction{Type: model.Income, Amount: decimal.NewFromInt(1), Category: "x", Date: date(t, "2025-06-01")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id, "ids restart after clear")
}

func TestOpen_ReopenKeepsSingleSettingsRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fintrack.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.UpdateCurrency("EUR"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&n))
	assert.Equal(t, 1, n)

	st, err := s.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "EUR", st.Currency)
}
