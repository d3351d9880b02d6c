package insights

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/goals"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

// FutureImpact simulates adding adjustment to the recurring monthly net.
// The first active balance goal reports months to target at both rates;
// each active monthly savings goal reports its percentage with the
// adjustment added to current progress.
func FutureImpact(txs []model.Transaction, totals model.Totals, gs []model.Goal, adjustment decimal.Decimal, today time.Time) model.FutureImpact {
	current := pipeline.TotalMonthlyRecurring(txs)
	adjusted := current.Add(adjustment)

	res := model.FutureImpact{
		Adjustment:       adjustment,
		NewMonthlyIncome: adjusted,
		Impacts:          []model.GoalImpact{},
	}

	if g, ok := firstActiveBalanceGoal(gs); ok {
		remaining := g.TargetAmount.Sub(totals.Balance)
		before := monthsToTarget(remaining, current)
		after := monthsToTarget(remaining, adjusted)
		saved := before - after

		res.Impacts = append(res.Impacts, model.GoalImpact{
			GoalTitle:     g.Title,
			Type:          model.GoalBalance,
			CurrentMonths: before,
			NewMonths:     after,
			MonthsSaved:   saved,
			Improvement:   saved > 0,
		})
	}

	for _, g := range goals.Active(gs) {
		if g.Type != model.GoalMonthlySavings {
			continue
		}
		p := goals.Progress(g, txs, totals.Balance, today)
		next := goals.Percentage(p.Current.Add(adjustment), g.TargetAmount)

		res.Impacts = append(res.Impacts, model.GoalImpact{
			GoalTitle:         g.Title,
			Type:              model.GoalMonthlySavings,
			CurrentPercentage: p.Percentage,
			NewPercentage:     next,
			Improvement:       next > p.Percentage,
		})
	}

	return res
}
