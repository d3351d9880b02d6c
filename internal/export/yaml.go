package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/fintrack/internal/model"
)

// Version is the current YAML document version.
const Version = 1

// Document is a full ledger backup.
type Document struct {
	Version      int                 `yaml:"version"`
	ExportedAt   time.Time           `yaml:"exported_at"`
	Settings     *SettingsRecord     `yaml:"settings,omitempty"`
	Transactions []TransactionRecord `yaml:"transactions"`
	Goals        []GoalRecord        `yaml:"goals,omitempty"`
}

// SettingsRecord is the YAML form of model.Settings.
type SettingsRecord struct {
	SavingsGoal string `yaml:"savings_goal"`
	GoalDate    string `yaml:"goal_date,omitempty"`
	Currency    string `yaml:"currency"`
}

// TransactionRecord is the YAML form of model.Transaction.
type TransactionRecord struct {
	Date        string `yaml:"date"`
	Type        string `yaml:"type"`
	Amount      string `yaml:"amount"`
	Category    string `yaml:"category"`
	Description string `yaml:"description,omitempty"`
	Recurring   bool   `yaml:"recurring,omitempty"`
}

// GoalRecord is the YAML form of model.Goal.
type GoalRecord struct {
	Title     string `yaml:"title"`
	Type      string `yaml:"type"`
	Target    string `yaml:"target"`
	Deadline  string `yaml:"deadline,omitempty"`
	Completed bool   `yaml:"completed,omitempty"`
	Archived  bool   `yaml:"archived,omitempty"`
}

// NewDocument builds a document from ledger data.
func NewDocument(txs []model.Transaction, gs []model.Goal, st model.Settings, now time.Time) Document {
	doc := Document{
		Version:      Version,
		ExportedAt:   now.UTC(),
		Transactions: make([]TransactionRecord, 0, len(txs)),
		Settings: &SettingsRecord{
			SavingsGoal: st.SavingsGoal.String(),
			GoalDate:    formatOptionalDate(st.GoalDate),
			Currency:    st.Currency,
		},
	}
	for _, tx := range txs {
		doc.Transactions = append(doc.Transactions, TransactionRecord{
			Date:        tx.Date.Format(model.DateLayout),
			Type:        string(tx.Type),
			Amount:      tx.Amount.String(),
			Category:    tx.Category,
			Description: tx.Description,
			Recurring:   tx.IsRecurring,
		})
	}
	for _, g := range gs {
		doc.Goals = append(doc.Goals, GoalRecord{
			Title:     g.Title,
			Type:      string(g.Type),
			Target:    g.TargetAmount.String(),
			Deadline:  formatOptionalDate(g.Deadline),
			Completed: g.Completed,
			Archived:  g.Archived,
		})
	}
	return doc
}

// WriteYAML encodes doc to w.
func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// ReadYAML decodes a document from r.
func ReadYAML(r io.Reader) (Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{Version: Version}, nil
		}
		return Document{}, fmt.Errorf("parsing YAML: %w", err)
	}
	if doc.Version > Version {
		return Document{}, fmt.Errorf("unsupported document version %d", doc.Version)
	}
	return doc, nil
}

// TransactionsList converts the document's records back to transactions.
func (d Document) TransactionsList() ([]model.Transaction, error) {
	out := make([]model.Transaction, 0, len(d.Transactions))
	for i, r := range d.Transactions {
		tx, err := UnmarshalTransaction([]string{"", r.Date, r.Type, r.Amount, r.Category, r.Description, strconv.FormatBool(r.Recurring)})
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		out = append(out, tx)
	}
	return out, nil
}

// GoalsList converts the document's goal records back to goals.
func (d Document) GoalsList() ([]model.Goal, error) {
	out := make([]model.Goal, 0, len(d.Goals))
	for i, r := range d.Goals {
		target, err := decimal.NewFromString(r.Target)
		if err != nil {
			return nil, fmt.Errorf("goal %d: parsing target %q: %w", i+1, r.Target, err)
		}
		deadline, err := parseOptionalDate(r.Deadline)
		if err != nil {
			return nil, fmt.Errorf("goal %d: %w", i+1, err)
		}
		out = append(out, model.Goal{
			Title:        r.Title,
			Type:         model.GoalType(r.Type),
			TargetAmount: target,
			Deadline:     deadline,
			Completed:    r.Completed,
			Archived:     r.Archived,
		})
	}
	return out, nil
}

// SettingsValue converts the settings record, if any.
func (d Document) SettingsValue() (*model.Settings, error) {
	if d.Settings == nil {
		return nil, nil
	}
	goal, err := decimal.NewFromString(d.Settings.SavingsGoal)
	if err != nil {
		return nil, fmt.Errorf("parsing savings goal %q: %w", d.Settings.SavingsGoal, err)
	}
	date, err := parseOptionalDate(d.Settings.GoalDate)
	if err != nil {
		return nil, err
	}
	return &model.Settings{SavingsGoal: goal, GoalDate: date, Currency: d.Settings.Currency}, nil
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(model.DateLayout)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return &d, nil
}
