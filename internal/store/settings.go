package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

// GetSettings returns the settings singleton.
func (s *Store) GetSettings() (model.Settings, error) {
	var st model.Settings
	var goalDate sql.NullString

	err := s.db.QueryRow("SELECT savings_goal, goal_date, currency FROM settings WHERE id = 1").
		Scan(&st.SavingsGoal, &goalDate, &st.Currency)
	if err != nil {
		return model.Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	if st.GoalDate, err = parseNullDate(goalDate); err != nil {
		return model.Settings{}, fmt.Errorf("settings goal date: %w", err)
	}
	return st, nil
}

// UpdateSettings sets the savings goal and optional goal date.
func (s *Store) UpdateSettings(savingsGoal decimal.Decimal, goalDate *time.Time) error {
	if savingsGoal.IsNegative() {
		return invalid("savings goal %s is negative", savingsGoal)
	}
	_, err := s.db.Exec("UPDATE settings SET savings_goal = ?, goal_date = ? WHERE id = 1",
		savingsGoal, nullDate(goalDate))
	if err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}
	return nil
}

// UpdateCurrency sets the display currency tag.
func (s *Store) UpdateCurrency(currency string) error {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return invalid("currency is required")
	}
	if _, err := s.db.Exec("UPDATE settings SET currency = ? WHERE id = 1", currency); err != nil {
		return fmt.Errorf("updating currency: %w", err)
	}
	return nil
}
