package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fintrack/internal/model"
)

// 2025-06-15 is a Sunday in a 30-day month.
var today = mustDate("2025-06-15")

func mustDate(s string) time.Time {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func income(amount int64, date string, recurring bool) model.Transaction {
	return model.Transaction{
		Type:        model.Income,
		Amount:      decimal.NewFromInt(amount),
		Category:    "Salary",
		Date:        mustDate(date),
		IsRecurring: recurring,
	}
}

func expense(amount int64, category, date string, recurring bool) model.Transaction {
	return model.Transaction{
		Type:        model.Expense,
		Amount:      decimal.NewFromInt(amount),
		Category:    category,
		Date:        mustDate(date),
		IsRecurring: recurring,
	}
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	w := decimal.RequireFromString(want)
	assert.Truef(t, w.Equal(got), "got %s, want %s", got, want)
}

func sampleLedger() []model.Transaction {
	return []model.Transaction{
		income(5000, "2025-06-01", true),
		expense(2000, "Rent", "2025-06-01", true),
		expense(300, "Food", "2025-06-14", false),
		expense(120, "Food", "2025-06-07", false),
		expense(80, "Transport", "2025-06-10", false),
		income(400, "2025-05-20", false),
		expense(900, "Rent", "2025-05-01", false),
	}
}

func TestTotals(t *testing.T) {
	got := Totals(sampleLedger())
	assertDec(t, "5400", got.Income)
	assertDec(t, "3400", got.Expenses)
	assertDec(t, "2000", got.Balance)
	assert.True(t, got.Balance.Equal(got.Income.Sub(got.Expenses)))
}

func TestTotals_Empty(t *testing.T) {
	got := Totals(nil)
	assert.True(t, got.Income.IsZero())
	assert.True(t, got.Expenses.IsZero())
	assert.True(t, got.Balance.IsZero())
}

func TestMonthlyNet(t *testing.T) {
	txs := sampleLedger()
	assertDec(t, "2500", MonthlyNet(txs, time.June, 2025))
	assertDec(t, "-500", MonthlyNet(txs, time.May, 2025))
	assertDec(t, "0", MonthlyNet(txs, time.June, 2024))
}

func TestCategoryTotals(t *testing.T) {
	txs := sampleLedger()
	got := CategoryTotals(txs)
	require.Len(t, got, 3)

	assert.Equal(t, "Rent", got[0].Category)
	assertDec(t, "2900", got[0].Amount)
	assert.Equal(t, "Food", got[1].Category)
	assertDec(t, "420", got[1].Amount)
	assert.Equal(t, "Transport", got[2].Category)

	sum := decimal.Zero
	for i, c := range got {
		sum = sum.Add(c.Amount)
		if i > 0 {
			assert.False(t, c.Amount.GreaterThan(got[i-1].Amount), "not sorted at %d", i)
		}
	}
	assertDec(t, Totals(txs).Expenses.String(), sum)
}

func TestCategoryTotals_TiesKeepFirstSeenOrder(t *testing.T) {
	txs := []model.Transaction{
		expense(50, "Books", "2025-06-01", false),
		expense(50, "Games", "2025-06-02", false),
		expense(50, "Art", "2025-06-03", false),
	}
	got := CategoryTotals(txs)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Books", "Games", "Art"},
		[]string{got[0].Category, got[1].Category, got[2].Category})
}

func TestMonthlyTrends(t *testing.T) {
	txs := append(sampleLedger(), expense(999, "Old", "2024-06-30", false))
	got := MonthlyTrends(txs, today)
	require.Len(t, got, 12)

	assert.Equal(t, "Jul 24", got[0].Label)
	assert.Equal(t, "Jun 25", got[11].Label)
	for i := 1; i < len(got); i++ {
		prev := time.Date(got[i-1].Year, got[i-1].Month, 1, 0, 0, 0, 0, time.UTC)
		cur := time.Date(got[i].Year, got[i].Month, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, prev.AddDate(0, 1, 0), cur)
	}

	assertDec(t, "5000", got[11].Income)
	assertDec(t, "2500", got[11].Expenses)
	assertDec(t, "2500", got[11].Net)
	assertDec(t, "400", got[10].Income)
	assertDec(t, "900", got[10].Expenses)
	// June 2024 falls outside the window.
	assertDec(t, "0", got[0].Expenses)
}

func TestMonthlyTrends_Empty(t *testing.T) {
	got := MonthlyTrends(nil, today)
	require.Len(t, got, 12)
	for _, m := range got {
		assert.True(t, m.Income.IsZero())
		assert.True(t, m.Expenses.IsZero())
		assert.True(t, m.Net.IsZero())
	}
}

func TestSpendingByDayOfWeek(t *testing.T) {
	got := SpendingByDayOfWeek(sampleLedger())
	require.Len(t, got, 7)
	assert.Equal(t, "Sunday", got[0].Name)
	assert.Equal(t, "Saturday", got[6].Name)

	// 2025-06-01 Sun rent, 2025-06-07 Sat food, 2025-06-14 Sat food,
	// 2025-06-10 Tue transport, 2025-05-01 Thu rent.
	assertDec(t, "2000", got[time.Sunday].Amount)
	assertDec(t, "420", got[time.Saturday].Amount)
	assertDec(t, "80", got[time.Tuesday].Amount)
	assertDec(t, "900", got[time.Thursday].Amount)
	assertDec(t, "0", got[time.Monday].Amount)
}

func TestSpendingHeatmap(t *testing.T) {
	txs := append(sampleLedger(), expense(20, "Food", "2025-06-14", false))
	got := SpendingHeatmap(txs)
	assertDec(t, "320", got["2025-06-14"])
	assertDec(t, "2000", got["2025-06-01"])
	_, ok := got["2025-05-20"]
	assert.False(t, ok, "income-only day should be absent")
}

func TestAggregatorsAreIdempotent(t *testing.T) {
	txs := sampleLedger()
	assert.Equal(t, CategoryTotals(txs), CategoryTotals(txs))
	assert.Equal(t, MonthlyTrends(txs, today), MonthlyTrends(txs, today))
	assert.Equal(t, SpendingByDayOfWeek(txs), SpendingByDayOfWeek(txs))
	assert.Equal(t, CashflowTimeline(txs, decimal.NewFromInt(100), today),
		CashflowTimeline(txs, decimal.NewFromInt(100), today))
}

func TestFilters(t *testing.T) {
	txs := sampleLedger()

	june := FilterByDateRange(txs, mustDate("2025-06-01"), mustDate("2025-06-10"))
	assert.Len(t, june, 4)

	assert.Len(t, FilterByDateRange(txs, time.Time{}, time.Time{}), len(txs))
	assert.Len(t, FilterByCategory(txs, "rent"), 2)
	assert.Len(t, FilterByType(txs, model.Income), 2)
}

func TestRecurringScenario(t *testing.T) {
	txs := []model.Transaction{
		income(5000, "2025-06-01", true),
		expense(2000, "Rent", "2025-06-01", true),
	}
	assertDec(t, "3000", TotalMonthlyRecurring(txs))
	assertDec(t, "2000", BurnRate(txs))
	assertDec(t, "5000", RecurringIncome(txs))
	assert.True(t, HasRecurringIncome(txs))
}

func TestUpcomingRecurringAndNetBalance(t *testing.T) {
	txs := []model.Transaction{
		expense(700, "Rent", "2025-06-20", true),
		income(1200, "2025-06-18", true),
		expense(50, "Gym", "2025-06-10", true),
		expense(40, "Phone", "2025-05-25", true),
		expense(999, "Food", "2025-06-25", false),
	}

	up := UpcomingRecurring(txs, today)
	require.Len(t, up, 2)
	assert.Equal(t, 18, up[0].Date.Day())
	assert.Equal(t, 20, up[1].Date.Day())

	assertDec(t, "1500", NetBalance(decimal.NewFromInt(1000), txs, today))
	assertDec(t, "1000", NetBalance(decimal.NewFromInt(1000), nil, today))
}

func TestRealisedRecurringNet(t *testing.T) {
	txs := []model.Transaction{
		income(1000, "2025-05-01", true),
		expense(300, "Rent", "2025-06-10", true),
		expense(200, "Gym", "2025-06-20", true),
		expense(5000, "Car", "2025-05-02", false),
	}
	assertDec(t, "700", RealisedRecurringNet(txs, today))
}

func TestAverageMonthlyIncome(t *testing.T) {
	txs := []model.Transaction{
		income(3000, "2025-04-10", false),
		expense(600, "Rent", "2025-05-05", false),
		income(2100, "2025-06-01", false),
	}

	assertDec(t, "1500", AverageMonthlyIncome(txs, 3, today))
	assertDec(t, "750", AverageMonthlyIncome(txs, 2, today))
	assertDec(t, "0", AverageMonthlyIncome(nil, 3, today))
}

func TestAverageMonthlyIncome_ShortHistoryFallsBackToRecurring(t *testing.T) {
	txs := []model.Transaction{
		income(500, "2025-06-01", true),
		expense(100, "Food", "2025-06-10", false),
	}
	assertDec(t, "500", AverageMonthlyIncome(txs, 3, today))
}

func TestSpendingVelocity(t *testing.T) {
	txs := []model.Transaction{
		expense(100, "Food", "2025-06-01", false),
		expense(200, "Food", "2025-06-10", false),
		income(9999, "2025-01-01", false),
	}
	assertDec(t, "30", SpendingVelocity(txs))

	single := []model.Transaction{expense(150, "Food", "2025-06-01", false)}
	assertDec(t, "150", SpendingVelocity(single))
	assertDec(t, "0", SpendingVelocity(nil))
}

func TestCashflowTimeline(t *testing.T) {
	// Recurring rent falls on day 20, five days after today.
	txs := []model.Transaction{expense(600, "Rent", "2025-05-20", true)}

	got := CashflowTimeline(txs, decimal.NewFromInt(1500), today)
	require.Len(t, got, CashflowHorizonDays)

	assert.Equal(t, today, got[0].Date)
	assertDec(t, "1500", got[0].Balance)
	assert.False(t, got[4].Warning)

	assert.Equal(t, mustDate("2025-06-20"), got[5].Date)
	assertDec(t, "600", got[5].Expenses)
	assertDec(t, "900", got[5].Balance)
	assert.True(t, got[5].Warning)
	assertDec(t, "900", got[29].Balance)
	assert.Equal(t, 25, WarningDays(got))
}

func TestCashflowTimeline_WarningBoundary(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		warning bool
	}{
		{"exactly threshold", 600, false},
		{"one below threshold", 601, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs := []model.Transaction{expense(tt.amount, "Rent", "2025-05-20", true)}
			got := CashflowTimeline(txs, decimal.NewFromInt(1600), today)
			assert.Equal(t, tt.warning, got[5].Warning)
		})
	}
}

func TestCashflowTimeline_DayZeroIgnoresTodaysItems(t *testing.T) {
	txs := []model.Transaction{income(800, "2025-05-15", true)}
	got := CashflowTimeline(txs, decimal.NewFromInt(2000), today)
	assertDec(t, "800", got[0].Income)
	assertDec(t, "2000", got[0].Balance)
	assertDec(t, "2000", got[1].Balance)
}

func TestProjectFutureBalance(t *testing.T) {
	txs := []model.Transaction{
		income(5000, "2025-06-01", true),
		expense(2000, "Rent", "2025-06-01", true),
	}
	got := ProjectFutureBalance(decimal.NewFromInt(3000), txs, 3)
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Month)
	assertDec(t, "6000", got[0].Balance)
	assertDec(t, "12000", got[2].Balance)

	assert.Nil(t, ProjectFutureBalance(decimal.Zero, txs, 0))
}

func TestPredictGoalDate(t *testing.T) {
	txs := []model.Transaction{
		income(5000, "2025-06-01", true),
		expense(2000, "Rent", "2025-06-01", true),
	}

	pred, ok := PredictGoalDate(decimal.NewFromInt(3000), txs, decimal.NewFromInt(10000), today)
	require.True(t, ok)
	assert.Equal(t, 3, pred.Months)
	assert.Equal(t, mustDate("2025-09-13"), pred.Date)

	pred, ok = PredictGoalDate(decimal.NewFromInt(20000), txs, decimal.NewFromInt(10000), today)
	require.True(t, ok)
	assert.Equal(t, 0, pred.Months)

	_, ok = PredictGoalDate(decimal.Zero, []model.Transaction{expense(10, "X", "2025-06-01", true)}, decimal.NewFromInt(10), today)
	assert.False(t, ok)
}
