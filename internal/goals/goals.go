// Package goals derives live progress for user goals from the ledger.
package goals

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

// IncomeWindowMonths is the trailing window used by monthly_income goals.
const IncomeWindowMonths = 3

var hundred = decimal.NewFromInt(100)

// Progress computes a goal's live state. currentBalance is supplied by the
// caller and never recomputed here. Unknown goal types report zero progress.
func Progress(g model.Goal, txs []model.Transaction, currentBalance decimal.Decimal, today time.Time) model.GoalProgress {
	today = model.DateOf(today)
	target := g.TargetAmount

	p := model.GoalProgress{Target: target}

	switch g.Type {
	case model.GoalBalance:
		p.Current = currentBalance
		p.OnTrack = true

	case model.GoalMonthlySavings:
		p.Current = pipeline.MonthlyNet(txs, today.Month(), today.Year())
		days := model.DaysIn(today.Year(), today.Month())
		left := days - today.Day()
		p.DaysRemaining = &left
		expected := target.Mul(decimal.NewFromInt(int64(today.Day()))).Div(decimal.NewFromInt(int64(days)))
		p.OnTrack = p.Current.GreaterThanOrEqual(expected)

	case model.GoalYearlySavings:
		ytd := decimal.Zero
		for m := time.January; m <= today.Month(); m++ {
			ytd = ytd.Add(pipeline.MonthlyNet(txs, m, today.Year()))
		}
		p.Current = ytd
		elapsed := int(today.Month())
		left := 12 - elapsed
		p.MonthsRemaining = &left
		expected := target.Mul(decimal.NewFromInt(int64(elapsed))).Div(decimal.NewFromInt(12))
		p.OnTrack = ytd.GreaterThanOrEqual(expected)

	case model.GoalMonthlyIncome:
		p.Current = pipeline.AverageMonthlyIncome(txs, IncomeWindowMonths, today)
		p.OnTrack = p.Current.GreaterThanOrEqual(target)

	default:
		p.Current = decimal.Zero
		p.Remaining = target
		return p
	}

	p.Remaining = target.Sub(p.Current)
	p.Percentage = Percentage(p.Current, target)
	return p
}

// Percentage returns current/target*100, or 0 when target is zero.
func Percentage(current, target decimal.Decimal) float64 {
	if target.IsZero() {
		return 0
	}
	return current.Div(target).Mul(hundred).InexactFloat64()
}

// Active returns the goals that are neither completed nor archived.
func Active(goals []model.Goal) []model.Goal {
	var out []model.Goal
	for _, g := range goals {
		if g.Active() {
			out = append(out, g)
		}
	}
	return out
}

// Race ranks active goals by progress clamped to [0, 100], highest first.
// Equal progress keeps input order.
func Race(goals []model.Goal, txs []model.Transaction, currentBalance decimal.Decimal, today time.Time) []model.RaceEntry {
	active := Active(goals)
	out := make([]model.RaceEntry, 0, len(active))

	for _, g := range active {
		p := Progress(g, txs, currentBalance, today)
		out = append(out, model.RaceEntry{
			GoalID:   g.ID,
			Title:    g.Title,
			Type:     g.Type,
			Progress: clamp(p.Percentage, 0, 100),
			Current:  p.Current,
			Target:   p.Target,
			OnTrack:  p.OnTrack,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Progress > out[j].Progress
	})
	return out
}

// OnTrackCount returns how many of the given goals are on track.
func OnTrackCount(goals []model.Goal, txs []model.Transaction, currentBalance decimal.Decimal, today time.Time) int {
	n := 0
	for _, g := range goals {
		if Progress(g, txs, currentBalance, today).OnTrack {
			n++
		}
	}
	return n
}

// FormatDeadline describes how far away a deadline is.
func FormatDeadline(deadline, today time.Time) model.Deadline {
	days := model.DaysBetween(today, deadline)

	switch {
	case days < 0:
		return model.Deadline{Text: "Overdue", Overdue: true}
	case days == 0:
		return model.Deadline{Text: "Due today"}
	case days == 1:
		return model.Deadline{Text: "Due tomorrow"}
	case days <= 7:
		return model.Deadline{Text: fmt.Sprintf("%d days remaining", days)}
	case days <= 30:
		return model.Deadline{Text: plural(days/7, "week") + " remaining"}
	default:
		return model.Deadline{Text: plural(days/30, "month") + " remaining"}
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
