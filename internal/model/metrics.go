package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals holds all-time sums over the ledger.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// CategoryTotal holds the expense sum for one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthTrend holds income and expense sums for one calendar month.
type MonthTrend struct {
	Label    string          `json:"month"`
	Year     int             `json:"year"`
	Month    time.Month      `json:"month_number"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// DaySpending holds the expense sum for one weekday.
type DaySpending struct {
	Day    time.Weekday    `json:"-"`
	Name   string          `json:"day"`
	Amount decimal.Decimal `json:"amount"`
}

// CashflowDay is one entry of the projected daily balance timeline.
type CashflowDay struct {
	Date      time.Time       `json:"date"`
	Income    decimal.Decimal `json:"income"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetChange decimal.Decimal `json:"net_change"`
	Balance   decimal.Decimal `json:"balance"`
	Warning   bool            `json:"warning"`
}

// BalanceProjection is the projected balance a number of months ahead.
type BalanceProjection struct {
	Month   int             `json:"month"`
	Balance decimal.Decimal `json:"balance"`
}

// GoalPrediction estimates when a balance target is reached.
type GoalPrediction struct {
	Months int       `json:"months"`
	Date   time.Time `json:"date"`
}

// GoalProgress is the live progress derived for one goal.
type GoalProgress struct {
	Current         decimal.Decimal `json:"current"`
	Target          decimal.Decimal `json:"target"`
	Percentage      float64         `json:"percentage"`
	Remaining       decimal.Decimal `json:"remaining"`
	OnTrack         bool            `json:"on_track"`
	DaysRemaining   *int            `json:"days_remaining,omitempty"`
	MonthsRemaining *int            `json:"months_remaining,omitempty"`
}

// RaceEntry is one lane of the goal race, ranked by clamped progress.
type RaceEntry struct {
	GoalID   int64           `json:"id"`
	Title    string          `json:"title"`
	Type     GoalType        `json:"type"`
	Progress float64         `json:"progress"`
	Current  decimal.Decimal `json:"current"`
	Target   decimal.Decimal `json:"target"`
	OnTrack  bool            `json:"on_track"`
}

// Deadline is the human-readable state of a goal deadline.
type Deadline struct {
	Text    string `json:"text"`
	Overdue bool   `json:"overdue"`
}

// HealthFactor is one weighted component of the health score.
type HealthFactor struct {
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Max     float64 `json:"max"`
	Message string  `json:"message"`
}

// HealthScore is the overall 0-100 financial health rating.
type HealthScore struct {
	Score    int            `json:"score"`
	MaxScore int            `json:"max_score"`
	Grade    string         `json:"grade"`
	Factors  []HealthFactor `json:"factors"`
}

// Severity classifies an insight for display.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Insight is one rule-generated observation about the ledger.
type Insight struct {
	Kind     string   `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Detail   string   `json:"detail"`
}

// GoalImpact is the effect of a what-if adjustment on one goal.
type GoalImpact struct {
	GoalTitle         string   `json:"goal_title"`
	Type              GoalType `json:"type"`
	CurrentMonths     int      `json:"current_months"`
	NewMonths         int      `json:"new_months"`
	MonthsSaved       int      `json:"months_saved"`
	CurrentPercentage float64  `json:"current_percentage"`
	NewPercentage     float64  `json:"new_percentage"`
	Improvement       bool     `json:"improvement"`
}

// FutureImpact is the result of a what-if monthly income adjustment.
type FutureImpact struct {
	Adjustment       decimal.Decimal `json:"adjustment"`
	NewMonthlyIncome decimal.Decimal `json:"new_monthly_income"`
	Impacts          []GoalImpact    `json:"impacts"`
}
