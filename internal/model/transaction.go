// Package model defines domain types for fintrack ledgers, goals and metrics.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxType is the direction of a transaction. Amounts are never signed.
type TxType string

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TxType) Valid() bool {
	return t == Income || t == Expense
}

// Transaction is one ledger row. Rows are immutable once stored.
type Transaction struct {
	ID          int64           `json:"id"`
	Type        TxType          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"` // calendar date, UTC midnight
	IsRecurring bool            `json:"is_recurring"`
	CreatedAt   time.Time       `json:"created_at"`
}

// IsIncome reports whether the transaction adds to the balance.
func (t Transaction) IsIncome() bool { return t.Type == Income }

// IsExpense reports whether the transaction subtracts from the balance.
func (t Transaction) IsExpense() bool { return t.Type == Expense }

// Signed returns the amount with the sign implied by the type.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	if t.Type == Income {
		return t.Amount
	}
	return decimal.Zero
}
