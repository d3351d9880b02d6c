package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fintrack/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func sample(t *testing.T) []model.Transaction {
	return []model.Transaction{
		{ID: 2, Type: model.Expense, Amount: decimal.RequireFromString("120.5"), Category: "Food", Description: "groceries, weekly", Date: mustDate(t, "2025-06-03")},
		{ID: 1, Type: model.Income, Amount: decimal.NewFromInt(5000), Category: "Salary", Date: mustDate(t, "2025-06-01"), IsRecurring: true},
	}
}

func TestWriteTransactionsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsCSV(&buf, sample(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header, lines[0])
	assert.Equal(t, `2,2025-06-03,expense,120.5,Food,"groceries, weekly",false`, lines[1])
	assert.Equal(t, "1,2025-06-01,income,5000,Salary,,true", lines[2])
}

func TestReadTransactionsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsCSV(&buf, sample(t)))

	got, err := ReadTransactionsCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "groceries, weekly", got[0].Description)
	assert.True(t, decimal.RequireFromString("120.5").Equal(got[0].Amount))
	assert.True(t, got[1].IsRecurring)
	assert.Equal(t, int64(1), got[1].ID)
}

func TestReadTransactionsCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"bad date", ",06/03/2025,expense,1,Food,,false"},
		{"bad type", ",2025-06-03,transfer,1,Food,,false"},
		{"bad amount", ",2025-06-03,expense,abc,Food,,false"},
		{"bad bool", ",2025-06-03,expense,1,Food,,maybe"},
		{"short row", ",2025-06-03,expense"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTransactionsCSV(strings.NewReader(Header + "\n" + tt.row + "\n"))
			assert.Error(t, err)
		})
	}
}

func TestReadTransactionsCSV_KeepsAmountPrecision(t *testing.T) {
	txs := []model.Transaction{
		{Type: model.Expense, Amount: decimal.RequireFromString("10.005"), Category: "Fuel", Date: mustDate(t, "2025-06-03")},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsCSV(&buf, txs))

	got, err := ReadTransactionsCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "10.005", got[0].Amount.String())
}

func TestReadTransactionsCSV_RequiresHeader(t *testing.T) {
	rows := ",2025-06-03,expense,12,Food,,false\n" +
		",2025-06-04,income,900,Salary,,true\n"

	got, err := ReadTransactionsCSV(strings.NewReader(rows))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing header")
	assert.Empty(t, got)

	got, err = ReadTransactionsCSV(strings.NewReader(Header + "\n" + rows))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestReadTransactionsCSV_Empty(t *testing.T) {
	got, err := ReadTransactionsCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestYAMLDocument(t *testing.T) {
	deadline := mustDate(t, "2026-01-01")
	gs := []model.Goal{
		{Title: "Fund", Type: model.GoalBalance, TargetAmount: decimal.NewFromInt(50000), Deadline: &deadline},
		{Title: "Old", Type: model.GoalMonthlySavings, TargetAmount: decimal.NewFromInt(100), Archived: true},
	}
	st := model.Settings{SavingsGoal: decimal.NewFromInt(250000), Currency: "R"}
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, NewDocument(sample(t), gs, st, now)))
	assert.Contains(t, buf.String(), "version: 1")
	assert.Contains(t, buf.String(), "savings_goal: \"250000\"")

	doc, err := ReadYAML(&buf)
	require.NoError(t, err)

	txs, err := doc.TransactionsList()
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Zero(t, txs[0].ID)
	assert.Equal(t, "Food", txs[0].Category)
	assert.True(t, txs[1].IsRecurring)

	goals, err := doc.GoalsList()
	require.NoError(t, err)
	require.Len(t, goals, 2)
	require.NotNil(t, goals[0].Deadline)
	assert.True(t, deadline.Equal(*goals[0].Deadline))
	assert.True(t, goals[1].Archived)

	got, err := doc.SettingsValue()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "R", got.Currency)
	assert.True(t, st.SavingsGoal.Equal(got.SavingsGoal))
	assert.Nil(t, got.GoalDate)
}

func TestReadYAML_RejectsNewerVersion(t *testing.T) {
	_, err := ReadYAML(strings.NewReader("version: 9\ntransactions: []\n"))
	assert.Error(t, err)
}

func TestReadYAML_Empty(t *testing.T) {
	doc, err := ReadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Transactions)

	st, err := doc.SettingsValue()
	require.NoError(t, err)
	assert.Nil(t, st)
}
