package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSavingsGoal is the savings target seeded into a fresh database.
var DefaultSavingsGoal = decimal.NewFromInt(1_000_000)

// DefaultCurrency is the display tag seeded into a fresh database.
const DefaultCurrency = "N$"

// Settings is the singleton user preferences row.
type Settings struct {
	SavingsGoal decimal.Decimal `json:"savings_goal"`
	GoalDate    *time.Time      `json:"goal_date,omitempty"`
	Currency    string          `json:"currency"`
}

// DefaultSettings returns the settings a new database starts with.
func DefaultSettings() Settings {
	return Settings{
		SavingsGoal: DefaultSavingsGoal,
		Currency:    DefaultCurrency,
	}
}
