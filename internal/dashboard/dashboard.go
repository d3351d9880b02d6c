// Package dashboard composes every engine output for one point in time into
// a single snapshot shared by the CLI, TUI, daemon and reports.
package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/goals"
	"github.com/theirongolddev/fintrack/internal/insights"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

// Options tunes the windows used when building a snapshot.
type Options struct {
	IncomeWindowMonths int
	ProjectionMonths   int
}

// DefaultOptions matches the config defaults.
func DefaultOptions() Options {
	return Options{IncomeWindowMonths: 3, ProjectionMonths: 12}
}

// GoalView pairs a goal with its live progress.
type GoalView struct {
	Goal     model.Goal         `json:"goal"`
	Info     model.GoalTypeInfo `json:"info"`
	Progress model.GoalProgress `json:"progress"`
	Deadline *model.Deadline    `json:"deadline,omitempty"`
}

// Snapshot is every derived view of the ledger for one day.
type Snapshot struct {
	Today    time.Time      `json:"today"`
	Settings model.Settings `json:"settings"`

	TransactionCount int          `json:"transaction_count"`
	Totals           model.Totals `json:"totals"`

	ThisMonthNet         decimal.Decimal `json:"this_month_net"`
	MonthlyRecurring     decimal.Decimal `json:"monthly_recurring"`
	RealisedRecurring    decimal.Decimal `json:"realised_recurring"`
	BurnRate             decimal.Decimal `json:"burn_rate"`
	NetBalance           decimal.Decimal `json:"net_balance"`
	AverageMonthlyIncome decimal.Decimal `json:"average_monthly_income"`
	SpendingVelocity     decimal.Decimal `json:"spending_velocity"`

	Categories []model.CategoryTotal      `json:"categories"`
	Trends     []model.MonthTrend         `json:"trends"`
	Weekdays   []model.DaySpending        `json:"weekdays"`
	Heatmap    map[string]decimal.Decimal `json:"heatmap"`
	Upcoming   []model.Transaction        `json:"upcoming"`
	Cashflow   []model.CashflowDay        `json:"cashflow"`
	Projection []model.BalanceProjection  `json:"projection"`

	SavingsProgress   float64               `json:"savings_progress"`
	SavingsPrediction *model.GoalPrediction `json:"savings_prediction,omitempty"`

	Goals    []GoalView        `json:"goals"`
	Race     []model.RaceEntry `json:"race"`
	Health   model.HealthScore `json:"health"`
	Insights []model.Insight   `json:"insights"`
}

// Build derives a snapshot. The current balance used by every projection
// is the all-time ledger balance.
func Build(txs []model.Transaction, gs []model.Goal, settings model.Settings, today time.Time, opts Options) Snapshot {
	if opts.IncomeWindowMonths <= 0 {
		opts.IncomeWindowMonths = DefaultOptions().IncomeWindowMonths
	}
	if opts.ProjectionMonths <= 0 {
		opts.ProjectionMonths = DefaultOptions().ProjectionMonths
	}
	today = model.DateOf(today)

	totals := pipeline.Totals(txs)
	balance := totals.Balance

	s := Snapshot{
		Today:                today,
		Settings:             settings,
		TransactionCount:     len(txs),
		Totals:               totals,
		ThisMonthNet:         pipeline.MonthlyNet(txs, today.Month(), today.Year()),
		MonthlyRecurring:     pipeline.TotalMonthlyRecurring(txs),
		RealisedRecurring:    pipeline.RealisedRecurringNet(txs, today),
		BurnRate:             pipeline.BurnRate(txs),
		NetBalance:           pipeline.NetBalance(balance, txs, today),
		AverageMonthlyIncome: pipeline.AverageMonthlyIncome(txs, opts.IncomeWindowMonths, today),
		SpendingVelocity:     pipeline.SpendingVelocity(txs),
		Categories:           pipeline.CategoryTotals(txs),
		Trends:               pipeline.MonthlyTrends(txs, today),
		Weekdays:             pipeline.SpendingByDayOfWeek(txs),
		Heatmap:              pipeline.SpendingHeatmap(txs),
		Upcoming:             pipeline.UpcomingRecurring(txs, today),
		Cashflow:             pipeline.CashflowTimeline(txs, balance, today),
		Projection:           pipeline.ProjectFutureBalance(balance, txs, opts.ProjectionMonths),
		SavingsProgress:      goals.Percentage(balance, settings.SavingsGoal),
		Race:                 goals.Race(gs, txs, balance, today),
		Health:               insights.HealthScore(txs, totals, gs, today),
		Insights:             insights.Insights(txs, totals, gs, today, settings.Currency),
	}

	if pred, ok := pipeline.PredictGoalDate(balance, txs, settings.SavingsGoal, today); ok {
		s.SavingsPrediction = &pred
	}

	for _, g := range gs {
		v := GoalView{
			Goal:     g,
			Info:     g.Type.TypeInfo(),
			Progress: goals.Progress(g, txs, balance, today),
		}
		if g.Deadline != nil {
			d := goals.FormatDeadline(*g.Deadline, today)
			v.Deadline = &d
		}
		s.Goals = append(s.Goals, v)
	}
	return s
}

// ActiveGoals returns the goal views that are neither completed nor archived.
func (s Snapshot) ActiveGoals() []GoalView {
	var out []GoalView
	for _, v := range s.Goals {
		if v.Goal.Active() {
			out = append(out, v)
		}
	}
	return out
}

// Delta is the change between two snapshots.
type Delta struct {
	Transactions int             `json:"transactions"`
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	Balance      decimal.Decimal `json:"balance"`
	HealthScore  int             `json:"health_score"`
	Goals        int             `json:"goals"`
	OnTrackGoals int             `json:"on_track_goals"`
}

// IsZero reports whether nothing changed.
func (d Delta) IsZero() bool {
	return d.Transactions == 0 &&
		d.Income.IsZero() &&
		d.Expenses.IsZero() &&
		d.Balance.IsZero() &&
		d.HealthScore == 0 &&
		d.Goals == 0 &&
		d.OnTrackGoals == 0
}

// Diff returns curr minus prev.
func Diff(prev, curr Snapshot) Delta {
	return Delta{
		Transactions: curr.TransactionCount - prev.TransactionCount,
		Income:       curr.Totals.Income.Sub(prev.Totals.Income),
		Expenses:     curr.Totals.Expenses.Sub(prev.Totals.Expenses),
		Balance:      curr.Totals.Balance.Sub(prev.Totals.Balance),
		HealthScore:  curr.Health.Score - prev.Health.Score,
		Goals:        len(curr.Goals) - len(prev.Goals),
		OnTrackGoals: onTrack(curr) - onTrack(prev),
	}
}

func onTrack(s Snapshot) int {
	n := 0
	for _, r := range s.Race {
		if r.OnTrack {
			n++
		}
	}
	return n
}
