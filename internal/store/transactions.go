package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

// NewTransaction holds the fields of a transaction to create.
type NewTransaction struct {
	Type        model.TxType
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
	IsRecurring bool
}

// Validate checks the fields before any write.
func (n NewTransaction) Validate() error {
	if !n.Type.Valid() {
		return invalid("transaction type %q", n.Type)
	}
	if n.Amount.IsNegative() {
		return invalid("amount %s is negative", n.Amount)
	}
	if strings.TrimSpace(n.Category) == "" {
		return invalid("category is required")
	}
	if n.Date.IsZero() {
		return invalid("date is required")
	}
	return nil
}

// ListTransactions returns every transaction, newest date first.
func (s *Store) ListTransactions() ([]model.Transaction, error) {
	rows, err := s.db.Query(`SELECT id, type, amount, category, description, date, is_recurring, created_at
		FROM transactions ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txs []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var typ, dateStr, createdStr string
		var recurring int

		if err := rows.Scan(&t.ID, &typ, &t.Amount, &t.Category, &t.Description, &dateStr, &recurring, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		t.Type = model.TxType(typ)
		t.IsRecurring = recurring != 0
		if t.Date, err = model.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("transaction %d date: %w", t.ID, err)
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// CreateTransaction validates and inserts a transaction, returning its id.
func (s *Store) CreateTransaction(n NewTransaction) (int64, error) {
	if err := n.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.Exec(`INSERT INTO transactions
		(type, amount, category, description, date, is_recurring, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(n.Type), n.Amount, strings.TrimSpace(n.Category), strings.TrimSpace(n.Description),
		model.DateOf(n.Date).Format(model.DateLayout), boolInt(n.IsRecurring), s.timestamp(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting transaction: %w", err)
	}
	return res.LastInsertId()
}

// DeleteTransaction removes a transaction permanently.
func (s *Store) DeleteTransaction(id int64) error {
	res, err := s.db.Exec("DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	return expectRow(res, "transaction", id)
}
