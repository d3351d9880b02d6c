package insights

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/goals"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

// Rule thresholds.
const (
	SpendingChangePct   = 10.0
	TopCategoryPct      = 40.0
	WeekendSkewRatio    = 1.3
	FastGoalMonths      = 24
	UnreachableSentinel = 99999
)

// Insight kinds.
const (
	KindGoal       = "goal"
	KindSpending   = "spending"
	KindCategory   = "category"
	KindPattern    = "pattern"
	KindProjection = "projection"
	KindWarning    = "warning"
)

// Insights evaluates every rule independently and returns all that match,
// in a fixed rule order. Money in messages is tagged with currency.
func Insights(txs []model.Transaction, totals model.Totals, gs []model.Goal, today time.Time, currency string) []model.Insight {
	var out []model.Insight

	if in, ok := goalInsight(txs, totals, gs, today); ok {
		out = append(out, in)
	}
	if in, ok := spendingChangeInsight(txs, today, currency); ok {
		out = append(out, in)
	}
	if in, ok := topCategoryInsight(txs, currency); ok {
		out = append(out, in)
	}
	if in, ok := weekendInsight(txs); ok {
		out = append(out, in)
	}
	if in, ok := projectionInsight(txs, totals, gs, currency); ok {
		out = append(out, in)
	}
	if len(txs) > 0 && !pipeline.HasRecurringIncome(txs) {
		out = append(out, model.Insight{
			Kind:     KindWarning,
			Severity: model.SeverityWarning,
			Message:  "No recurring income set",
			Detail:   "Add recurring income for accurate projections",
		})
	}
	return out
}

func goalInsight(txs []model.Transaction, totals model.Totals, gs []model.Goal, today time.Time) (model.Insight, bool) {
	active := goals.Active(gs)
	if len(active) == 0 {
		return model.Insight{}, false
	}

	onTrack := goals.OnTrackCount(active, txs, totals.Balance, today)
	in := model.Insight{
		Kind:     KindGoal,
		Severity: model.SeveritySuccess,
		Message:  fmt.Sprintf("You're on track for %d/%d goal%s", onTrack, len(active), pluralS(len(active))),
		Detail:   "Great progress!",
	}
	if onTrack < len(active) {
		in.Severity = model.SeverityWarning
		in.Detail = "Consider adjusting spending to meet all targets"
	}
	return in, true
}

func spendingChangeInsight(txs []model.Transaction, today time.Time, currency string) (model.Insight, bool) {
	last := today.AddDate(0, 0, -today.Day())
	thisMonth := pipeline.MonthlyExpenses(txs, today.Month(), today.Year())
	lastMonth := pipeline.MonthlyExpenses(txs, last.Month(), last.Year())
	if !lastMonth.IsPositive() {
		return model.Insight{}, false
	}

	diff := thisMonth.Sub(lastMonth)
	pct := diff.Div(lastMonth).InexactFloat64() * 100
	if math.Abs(pct) <= SpendingChangePct {
		return model.Insight{}, false
	}

	in := model.Insight{
		Kind:     KindSpending,
		Severity: model.SeveritySuccess,
		Message:  fmt.Sprintf("Spending down %.0f%% vs last month", math.Abs(pct)),
		Detail:   model.FormatMoney(currency, diff) + " less than usual",
	}
	if pct > 0 {
		in.Severity = model.SeverityWarning
		in.Message = fmt.Sprintf("Spending up %.0f%% vs last month", pct)
		in.Detail = model.FormatMoney(currency, diff) + " more than usual"
	}
	return in, true
}

func topCategoryInsight(txs []model.Transaction, currency string) (model.Insight, bool) {
	cats := pipeline.CategoryTotals(txs)
	if len(cats) == 0 {
		return model.Insight{}, false
	}

	total := decimal.Zero
	for _, c := range cats {
		total = total.Add(c.Amount)
	}
	if !total.IsPositive() {
		return model.Insight{}, false
	}

	top := cats[0]
	pct := top.Amount.Div(total).InexactFloat64() * 100
	if pct <= TopCategoryPct {
		return model.Insight{}, false
	}

	return model.Insight{
		Kind:     KindCategory,
		Severity: model.SeverityInfo,
		Message:  fmt.Sprintf("%s is %.0f%% of your spending", top.Category, pct),
		Detail:   fmt.Sprintf("%s spent on %s", model.FormatMoney(currency, top.Amount), top.Category),
	}, true
}

// weekendInsight compares weekend and weekday spending totals.
func weekendInsight(txs []model.Transaction) (model.Insight, bool) {
	var weekend, weekday float64
	for _, d := range pipeline.SpendingByDayOfWeek(txs) {
		amount := d.Amount.InexactFloat64()
		if d.Day == time.Saturday || d.Day == time.Sunday {
			weekend += amount
		} else {
			weekday += amount
		}
	}
	if weekend <= 0 || weekday <= 0 {
		return model.Insight{}, false
	}

	if weekend <= weekday*WeekendSkewRatio {
		return model.Insight{}, false
	}

	return model.Insight{
		Kind:     KindPattern,
		Severity: model.SeverityInfo,
		Message:  "You spend more on weekends",
		Detail:   fmt.Sprintf("Weekend spending is %.0f%% higher", (weekend/weekday-1)*100),
	}, true
}

func projectionInsight(txs []model.Transaction, totals model.Totals, gs []model.Goal, currency string) (model.Insight, bool) {
	g, ok := firstActiveBalanceGoal(gs)
	if !ok {
		return model.Insight{}, false
	}
	monthly := pipeline.TotalMonthlyRecurring(txs)
	if !monthly.IsPositive() {
		return model.Insight{}, false
	}

	target := model.FormatMoney(currency, g.TargetAmount)
	detail := fmt.Sprintf("Saving %s/month", model.FormatMoney(currency, monthly))

	remaining := g.TargetAmount.Sub(totals.Balance)
	if !remaining.IsPositive() {
		return model.Insight{
			Kind:     KindProjection,
			Severity: model.SeveritySuccess,
			Message:  fmt.Sprintf("You've reached %s", target),
			Detail:   detail,
		}, true
	}

	months := monthsToTarget(remaining, monthly)
	sev := model.SeverityInfo
	if months <= FastGoalMonths {
		sev = model.SeveritySuccess
	}
	return model.Insight{
		Kind:     KindProjection,
		Severity: sev,
		Message:  fmt.Sprintf("At current rate, reach %s in %.1f years", target, float64(months)/12),
		Detail:   detail,
	}, true
}

func firstActiveBalanceGoal(gs []model.Goal) (model.Goal, bool) {
	for _, g := range gs {
		if g.Type == model.GoalBalance && g.Active() {
			return g, true
		}
	}
	return model.Goal{}, false
}

// monthsToTarget returns ceil(remaining/rate), the sentinel for a
// non-positive rate, and zero once nothing remains.
func monthsToTarget(remaining, rate decimal.Decimal) int {
	if !rate.IsPositive() {
		return UnreachableSentinel
	}
	if !remaining.IsPositive() {
		return 0
	}
	return int(remaining.Div(rate).Ceil().IntPart())
}

func pluralS(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
