// Package store persists transactions, goals and the settings singleton
// in a local SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/fintrack/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

var (
	// ErrNotFound is returned when a row addressed by id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned when input fails validation before any write.
	ErrInvalid = errors.New("invalid input")
)

// Store is the SQLite-backed ledger.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the ledger database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Clear deletes every transaction and goal and resets settings to defaults.
func (s *Store) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	def := model.DefaultSettings()
	stmts := []struct {
		query string
		args  []any
	}{
		{"DELETE FROM transactions", nil},
		{"DELETE FROM goals", nil},
		{"DELETE FROM sqlite_sequence WHERE name IN ('transactions', 'goals')", nil},
		{"UPDATE settings SET savings_goal = ?, goal_date = NULL, currency = ? WHERE id = 1", []any{def.SavingsGoal, def.Currency}},
	}
	for _, st := range stmts {
		if _, err := tx.Exec(st.query, st.args...); err != nil {
			return fmt.Errorf("clearing ledger: %w", err)
		}
	}
	return tx.Commit()
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil || t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(model.DateLayout), Valid: true}
}

func parseNullDate(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	d, err := model.ParseDate(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// expectRow maps a zero-row update or delete to ErrNotFound.
func expectRow(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
