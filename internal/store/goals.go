package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

// NewGoal holds the fields of a goal to create.
type NewGoal struct {
	Title        string
	Type         model.GoalType
	TargetAmount decimal.Decimal
	Deadline     *time.Time
}

// GoalUpdate replaces the editable fields of a goal.
type GoalUpdate = NewGoal

// Validate checks the fields before any write.
func (n NewGoal) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return invalid("goal title is required")
	}
	if !n.Type.Valid() {
		return invalid("goal type %q", n.Type)
	}
	if !n.TargetAmount.IsPositive() {
		return invalid("target amount must be positive, got %s", n.TargetAmount)
	}
	return nil
}

const goalColumns = "id, title, type, target_amount, current_amount, deadline, created_at, completed, archived"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(r rowScanner) (model.Goal, error) {
	var g model.Goal
	var typ, createdStr string
	var deadline sql.NullString
	var completed, archived int

	if err := r.Scan(&g.ID, &g.Title, &typ, &g.TargetAmount, &g.CurrentAmount, &deadline, &createdStr, &completed, &archived); err != nil {
		return model.Goal{}, err
	}

	g.Type = model.GoalType(typ)
	g.Completed = completed != 0
	g.Archived = archived != 0
	g.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)

	var err error
	if g.Deadline, err = parseNullDate(deadline); err != nil {
		return model.Goal{}, fmt.Errorf("goal %d deadline: %w", g.ID, err)
	}
	return g, nil
}

// ListGoals returns goals newest first. Archived goals are included only
// when includeArchived is set.
func (s *Store) ListGoals(includeArchived bool) ([]model.Goal, error) {
	query := "SELECT " + goalColumns + " FROM goals"
	if !includeArchived {
		query += " WHERE archived = 0"
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// GetGoal returns one goal by id.
func (s *Store) GetGoal(id int64) (model.Goal, error) {
	g, err := scanGoal(s.db.QueryRow("SELECT "+goalColumns+" FROM goals WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Goal{}, fmt.Errorf("goal %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Goal{}, fmt.Errorf("reading goal %d: %w", id, err)
	}
	return g, nil
}

// CreateGoal validates and inserts a goal, returning its id.
func (s *Store) CreateGoal(n NewGoal) (int64, error) {
	if err := n.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.Exec(`INSERT INTO goals (title, type, target_amount, deadline, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		strings.TrimSpace(n.Title), string(n.Type), n.TargetAmount, nullDate(n.Deadline), s.timestamp())
	if err != nil {
		return 0, fmt.Errorf("inserting goal: %w", err)
	}
	return res.LastInsertId()
}

// UpdateGoal replaces a goal's title, type, target and deadline.
func (s *Store) UpdateGoal(id int64, u GoalUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}

	res, err := s.db.Exec(`UPDATE goals SET title = ?, type = ?, target_amount = ?, deadline = ?
		WHERE id = ?`,
		strings.TrimSpace(u.Title), string(u.Type), u.TargetAmount, nullDate(u.Deadline), id)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	return expectRow(res, "goal", id)
}

// DeleteGoal removes a goal permanently.
func (s *Store) DeleteGoal(id int64) error {
	res, err := s.db.Exec("DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return expectRow(res, "goal", id)
}

// ArchiveGoal hides a goal from active views without deleting it.
func (s *Store) ArchiveGoal(id int64) error {
	res, err := s.db.Exec("UPDATE goals SET archived = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("archiving goal: %w", err)
	}
	return expectRow(res, "goal", id)
}

// SetGoalCompleted sets or clears the manual completion flag.
func (s *Store) SetGoalCompleted(id int64, completed bool) error {
	res, err := s.db.Exec("UPDATE goals SET completed = ? WHERE id = ?", boolInt(completed), id)
	if err != nil {
		return fmt.Errorf("updating goal completion: %w", err)
	}
	return expectRow(res, "goal", id)
}
