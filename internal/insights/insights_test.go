package insights

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

var today = mustDate("2025-06-15")

func mustDate(s string) time.Time {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func tx(typ model.TxType, amount int64, category, date string, recurring bool) model.Transaction {
	return model.Transaction{
		Type:        typ,
		Amount:      decimal.NewFromInt(amount),
		Category:    category,
		Date:        mustDate(date),
		IsRecurring: recurring,
	}
}

func goal(title string, typ model.GoalType, target int64) model.Goal {
	return model.Goal{Title: title, Type: typ, TargetAmount: decimal.NewFromInt(target)}
}

func salaryAndRent() []model.Transaction {
	return []model.Transaction{
		tx(model.Income, 5000, "Salary", "2025-06-01", true),
		tx(model.Expense, 2000, "Rent", "2025-06-01", true),
	}
}

func findKind(list []model.Insight, kind string) (model.Insight, bool) {
	for _, in := range list {
		if in.Kind == kind {
			return in, true
		}
	}
	return model.Insight{}, false
}

func TestHealthScore_EmptyLedger(t *testing.T) {
	got := HealthScore(nil, pipeline.Totals(nil), nil, today)
	assert.Equal(t, 10, got.Score)
	assert.Equal(t, 100, got.MaxScore)
	assert.Equal(t, "Needs Improvement", got.Grade)
	require.Len(t, got.Factors, 5)
	assert.Equal(t, "Spending Control", got.Factors[4].Name)
	assert.Equal(t, 10.0, got.Factors[4].Score)
	assert.Equal(t, "No active goals", got.Factors[1].Message)
}

func TestHealthScore_FullMarks(t *testing.T) {
	txs := salaryAndRent()
	gs := []model.Goal{goal("Nest egg", model.GoalBalance, 10000)}

	got := HealthScore(txs, pipeline.Totals(txs), gs, today)
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, "Excellent", got.Grade)
	assert.Equal(t, 30.0, got.Factors[0].Score)
	assert.Equal(t, "60.0% savings rate", got.Factors[0].Message)
	assert.Equal(t, "1/1 goals on track", got.Factors[1].Message)
}

func TestHealthScore_NegativeSavingsRateClampsToZero(t *testing.T) {
	txs := []model.Transaction{
		tx(model.Income, 1000, "Gift", "2025-06-01", false),
		tx(model.Expense, 400, "Rent", "2025-06-02", true),
	}
	got := HealthScore(txs, pipeline.Totals(txs), nil, today)
	assert.Equal(t, 0.0, got.Factors[0].Score)
	// balance 20 + control 10
	assert.Equal(t, 30, got.Score)
	assert.Equal(t, "Needs Improvement", got.Grade)
}

func TestHealthScore_PartialSavingsRate(t *testing.T) {
	// 10% savings rate earns half the savings factor.
	txs := []model.Transaction{
		tx(model.Income, 1000, "Salary", "2025-06-01", true),
		tx(model.Expense, 900, "Rent", "2025-06-01", true),
	}
	got := HealthScore(txs, pipeline.Totals(txs), nil, today)
	assert.InDelta(t, 15.0, got.Factors[0].Score, 1e-9)
	assert.Equal(t, 60, got.Score)
	assert.Equal(t, "Good", got.Grade)
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "Excellent"},
		{80, "Excellent"},
		{79.5, "Good"},
		{79, "Good"},
		{60, "Good"},
		{59.9, "Fair"},
		{59, "Fair"},
		{40, "Fair"},
		{39, "Needs Improvement"},
		{0, "Needs Improvement"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.score), "score %v", tt.score)
	}
}

func TestInsights_Empty(t *testing.T) {
	assert.Empty(t, Insights(nil, pipeline.Totals(nil), nil, today, "N$"))
}

func TestInsights_GoalRatio(t *testing.T) {
	txs := salaryAndRent()
	gs := []model.Goal{
		goal("Nest egg", model.GoalBalance, 100000),
		goal("Big earner", model.GoalMonthlyIncome, 50000),
	}
	got, ok := findKind(Insights(txs, pipeline.Totals(txs), gs, today, "N$"), KindGoal)
	require.True(t, ok)
	assert.Equal(t, "You're on track for 1/2 goals", got.Message)
	assert.Equal(t, model.SeverityWarning, got.Severity)

	got, ok = findKind(Insights(txs, pipeline.Totals(txs), gs[:1], today, "N$"), KindGoal)
	require.True(t, ok)
	assert.Equal(t, "You're on track for 1/1 goal", got.Message)
	assert.Equal(t, model.SeveritySuccess, got.Severity)
}

func TestInsights_SpendingChange(t *testing.T) {
	txs := []model.Transaction{
		tx(model.Expense, 1000, "Food", "2025-05-10", false),
		tx(model.Expense, 1500, "Food", "2025-06-10", false),
	}
	got, ok := findKind(Insights(txs, pipeline.Totals(txs), nil, today, "N$"), KindSpending)
	require.True(t, ok)
	assert.Equal(t, "Spending up 50% vs last month", got.Message)
	assert.Equal(t, "N$500.00 more than usual", got.Detail)
	assert.Equal(t, model.SeverityWarning, got.Severity)

	txs[1].Amount = decimal.NewFromInt(500)
	got, ok = findKind(Insights(txs, pipeline.Totals(txs), nil, today, "N$"), KindSpending)
	require.True(t, ok)
	assert.Equal(t, "Spending down 50% vs last month", got.Message)
	assert.Equal(t, model.SeveritySuccess, got.Severity)

	txs[1].Amount = decimal.NewFromInt(1100)
	_, ok = findKind(Insights(txs, pipeline.Totals(txs), nil, today, "N$"), KindSpending)
	assert.False(t, ok, "a 10 percent change should not trigger")
}

func TestInsights_TopCategory(t *testing.T) {
	txs := []model.Transaction{
		tx(model.Expense, 600, "Rent", "2025-06-02", false),
		tx(model.Expense, 400, "Food", "2025-06-03", false),
	}
	got, ok := findKind(Insights(txs, pipeline.Totals(txs), nil, today, "N$"), KindCategory)
	require.True(t, ok)
	assert.Equal(t, "Rent is 60% of your spending", got.Message)
	assert.Equal(t, "N$600.00 spent on Rent", got.Detail)
}

func TestInsights_WeekendSkew(t *testing.T) {
	txs := []model.Transaction{
		tx(model.Expense, 800, "Fun", "2025-06-14", false), // Saturday
		tx(model.Expense, 500, "Food", "2025-06-09", false), // Monday
	}
	got, ok := findKind(Insights(txs, pipeline.Totals(txs), nil, today, "N$"), KindPattern)
	require.True(t, ok)
	assert.Equal(t, "You spend more on weekends", got.Message)
	assert.Equal(t, "Weekend spending is 60% higher", got.Detail)

	// Totals are compared, not per-day averages: 600 is not above 500 x 1.3.
	txs[0].Amount = decimal.NewFromInt(600)
	txs[1].Amount = decimal.NewFromInt(500)
	_, ok = findKind(Insights(txs, pipeline.Totals(txs), nil, today, "N$"), KindPattern)
	assert.False(t, ok)

	txs[0].Amount = decimal.NewFromInt(100)
	txs[1].Amount = decimal.NewFromInt(150)
	_, ok = findKind(Insights(txs, pipeline.Totals(txs), nil, today, "N$"), KindPattern)
	assert.False(t, ok)
}

func TestInsights_BalanceGoalProjection(t *testing.T) {
	txs := salaryAndRent()
	gs := []model.Goal{goal("Nest egg", model.GoalBalance, 21000)}

	got, ok := findKind(Insights(txs, pipeline.Totals(txs), gs, today, "N$"), KindProjection)
	require.True(t, ok)
	assert.Equal(t, "At current rate, reach N$21,000.00 in 0.5 years", got.Message)
	assert.Equal(t, "Saving N$3,000.00/month", got.Detail)
	assert.Equal(t, model.SeveritySuccess, got.Severity)
}

func TestInsights_MissingRecurringIncome(t *testing.T) {
	txs := []model.Transaction{tx(model.Income, 100, "Gift", "2025-06-01", false)}
	got, ok := findKind(Insights(txs, pipeline.Totals(txs), nil, today, "N$"), KindWarning)
	require.True(t, ok)
	assert.Equal(t, "No recurring income set", got.Message)

	_, ok = findKind(Insights(salaryAndRent(), pipeline.Totals(salaryAndRent()), nil, today, "N$"), KindWarning)
	assert.False(t, ok)
}

func TestFutureImpact_BalanceGoal(t *testing.T) {
	txs := salaryAndRent()
	gs := []model.Goal{goal("Nest egg", model.GoalBalance, 21000)}

	got := FutureImpact(txs, pipeline.Totals(txs), gs, decimal.NewFromInt(1500), today)
	assert.True(t, decimal.NewFromInt(4500).Equal(got.NewMonthlyIncome))
	require.Len(t, got.Impacts, 1)

	imp := got.Impacts[0]
	assert.Equal(t, 6, imp.CurrentMonths)
	assert.Equal(t, 4, imp.NewMonths)
	assert.Equal(t, 2, imp.MonthsSaved)
	assert.True(t, imp.Improvement)
}

func TestFutureImpact_NonPositiveRateUsesSentinel(t *testing.T) {
	txs := []model.Transaction{tx(model.Expense, 500, "Rent", "2025-06-01", true)}
	totals := model.Totals{Balance: decimal.NewFromInt(1000)}
	gs := []model.Goal{goal("Nest egg", model.GoalBalance, 10000)}

	got := FutureImpact(txs, totals, gs, decimal.NewFromInt(1000), today)
	require.Len(t, got.Impacts, 1)
	assert.Equal(t, UnreachableSentinel, got.Impacts[0].CurrentMonths)
	assert.Equal(t, 18, got.Impacts[0].NewMonths)

	got = FutureImpact(txs, totals, gs, decimal.Zero, today)
	assert.Equal(t, UnreachableSentinel, got.Impacts[0].NewMonths)
	assert.False(t, got.Impacts[0].Improvement)
}

func TestFutureImpact_MonthlySavings(t *testing.T) {
	txs := []model.Transaction{
		tx(model.Income, 650, "Salary", "2025-06-02", false),
		tx(model.Expense, 100, "Food", "2025-06-03", false),
	}
	done := goal("Done", model.GoalMonthlySavings, 10)
	done.Completed = true
	gs := []model.Goal{goal("June", model.GoalMonthlySavings, 1000), done}

	got := FutureImpact(txs, pipeline.Totals(txs), gs, decimal.NewFromInt(450), today)
	require.Len(t, got.Impacts, 1)
	assert.Equal(t, 55.0, got.Impacts[0].CurrentPercentage)
	assert.Equal(t, 100.0, got.Impacts[0].NewPercentage)
	assert.True(t, got.Impacts[0].Improvement)
}
