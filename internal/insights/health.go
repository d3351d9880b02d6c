// Package insights scores financial health, generates rule-based insights
// and simulates the effect of income changes on goals.
package insights

import (
	"fmt"
	"math"
	"time"

	"github.com/theirongolddev/fintrack/internal/goals"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

// Factor caps. They sum to 100.
const (
	SavingsRateMax     = 30
	GoalProgressMax    = 25
	PositiveBalanceMax = 20
	ConsistencyMax     = 15
	SpendingControlMax = 10

	// FullMarksSavingsRate is the savings rate (percent) that earns the
	// whole savings factor.
	FullMarksSavingsRate = 20.0
)

// Grade maps a 0-100 score to its label. The unrounded sum is graded,
// so 79.5 is still Good.
func Grade(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

// HealthScore sums five independently capped factors into a 0-100 score.
// Every factor is always reported, even when it scores zero.
func HealthScore(txs []model.Transaction, totals model.Totals, gs []model.Goal, today time.Time) model.HealthScore {
	factors := []model.HealthFactor{
		savingsRateFactor(txs, totals),
		goalProgressFactor(txs, totals, gs, today),
		positiveBalanceFactor(totals),
		consistencyFactor(txs),
		spendingControlFactor(txs, today),
	}

	var sum float64
	for _, f := range factors {
		sum += f.Score
	}
	score := int(math.Round(sum))

	return model.HealthScore{
		Score:    score,
		MaxScore: 100,
		Grade:    Grade(sum),
		Factors:  factors,
	}
}

func savingsRateFactor(txs []model.Transaction, totals model.Totals) model.HealthFactor {
	monthly := pipeline.TotalMonthlyRecurring(txs).InexactFloat64()
	income := totals.Income.InexactFloat64()
	if income == 0 {
		income = 1
	}

	rate := monthly / income * 100
	score := clamp(rate/FullMarksSavingsRate*SavingsRateMax, 0, SavingsRateMax)

	return model.HealthFactor{
		Name:    "Savings Rate",
		Score:   score,
		Max:     SavingsRateMax,
		Message: fmt.Sprintf("%.1f%% savings rate", rate),
	}
}

func goalProgressFactor(txs []model.Transaction, totals model.Totals, gs []model.Goal, today time.Time) model.HealthFactor {
	f := model.HealthFactor{Name: "Goal Progress", Max: GoalProgressMax}

	active := goals.Active(gs)
	if len(active) == 0 {
		f.Message = "No active goals"
		return f
	}

	onTrack := goals.OnTrackCount(active, txs, totals.Balance, today)
	f.Score = float64(onTrack) / float64(len(active)) * GoalProgressMax
	f.Message = fmt.Sprintf("%d/%d goals on track", onTrack, len(active))
	return f
}

func positiveBalanceFactor(totals model.Totals) model.HealthFactor {
	f := model.HealthFactor{Name: "Positive Balance", Max: PositiveBalanceMax, Message: "Balance is negative"}
	if totals.Balance.IsPositive() {
		f.Score = PositiveBalanceMax
		f.Message = "Balance is positive"
	}
	return f
}

func consistencyFactor(txs []model.Transaction) model.HealthFactor {
	f := model.HealthFactor{Name: "Income Consistency", Max: ConsistencyMax, Message: "No recurring income"}
	if pipeline.HasRecurringIncome(txs) {
		f.Score = ConsistencyMax
		f.Message = "Recurring income set"
	}
	return f
}

func spendingControlFactor(txs []model.Transaction, today time.Time) model.HealthFactor {
	f := model.HealthFactor{Name: "Spending Control", Max: SpendingControlMax, Message: "Spending exceeds income"}
	if !pipeline.MonthlyNet(txs, today.Month(), today.Year()).IsNegative() {
		f.Score = SpendingControlMax
		f.Message = "Net positive this month"
	}
	return f
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
