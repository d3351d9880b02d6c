package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalType selects how a goal's progress is measured.
type GoalType string

const (
	GoalBalance        GoalType = "balance"
	GoalMonthlySavings GoalType = "monthly_savings"
	GoalYearlySavings  GoalType = "yearly_savings"
	GoalMonthlyIncome  GoalType = "monthly_income"
)

// GoalTypes lists the known goal types in display order.
var GoalTypes = []GoalType{GoalBalance, GoalMonthlySavings, GoalYearlySavings, GoalMonthlyIncome}

// Valid reports whether t is one of the known goal types.
func (t GoalType) Valid() bool {
	for _, k := range GoalTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Goal is a user-defined savings or income target.
// CurrentAmount is informational only; progress is recomputed from the ledger.
type Goal struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Type          GoalType        `json:"type"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	Completed     bool            `json:"completed"`
	Archived      bool            `json:"archived"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Active reports whether the goal shows up in active-goal views.
func (g Goal) Active() bool {
	return !g.Completed && !g.Archived
}

// GoalTypeInfo holds display metadata for a goal type.
type GoalTypeInfo struct {
	Icon        string
	Label       string
	Description string
}

var goalTypeInfo = map[GoalType]GoalTypeInfo{
	GoalBalance:        {Icon: "💰", Label: "Balance Goal", Description: "Reach a specific total balance"},
	GoalMonthlySavings: {Icon: "📅", Label: "Monthly Savings", Description: "Save a specific amount this month"},
	GoalYearlySavings:  {Icon: "🎉", Label: "Yearly Savings", Description: "Save a specific amount this year"},
	GoalMonthlyIncome:  {Icon: "📊", Label: "Monthly Income", Description: "Earn a specific amount per month"},
}

// TypeInfo returns display metadata for t, falling back to the balance entry.
func (t GoalType) TypeInfo() GoalTypeInfo {
	if info, ok := goalTypeInfo[t]; ok {
		return info
	}
	return goalTypeInfo[GoalBalance]
}
