package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/store"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

type formKind int

const (
	formNone formKind = iota
	formTransaction
	formGoal
)

// transactionValues backs the add-transaction form.
type transactionValues struct {
	Type        string
	Amount      string
	Category    string
	Description string
	Date        string
	Recurring   bool
}

// goalValues backs the add-goal form.
type goalValues struct {
	Title    string
	Type     string
	Target   string
	Deadline string
}

func newTransactionValues(today time.Time) *transactionValues {
	return &transactionValues{
		Type: string(model.Expense),
		Date: today.Format(model.DateLayout),
	}
}

func newGoalValues() *goalValues {
	return &goalValues{Type: string(model.GoalBalance)}
}

// toNew converts form input into a validated store request.
func (v transactionValues) toNew() (store.NewTransaction, error) {
	amount, err := parseAmount(v.Amount)
	if err != nil {
		return store.NewTransaction{}, err
	}
	date, err := model.ParseDate(strings.TrimSpace(v.Date))
	if err != nil {
		return store.NewTransaction{}, fmt.Errorf("date: %w", err)
	}
	n := store.NewTransaction{
		Type:        model.TxType(v.Type),
		Amount:      amount,
		Category:    strings.TrimSpace(v.Category),
		Description: strings.TrimSpace(v.Description),
		Date:        date,
		IsRecurring: v.Recurring,
	}
	return n, n.Validate()
}

func (v goalValues) toNew() (store.NewGoal, error) {
	target, err := parseAmount(v.Target)
	if err != nil {
		return store.NewGoal{}, err
	}
	deadline, err := parseOptionalDate(v.Deadline)
	if err != nil {
		return store.NewGoal{}, err
	}
	n := store.NewGoal{
		Title:        strings.TrimSpace(v.Title),
		Type:         model.GoalType(v.Type),
		TargetAmount: target,
		Deadline:     deadline,
	}
	return n, n.Validate()
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, errors.New("amount is not a number")
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("amount must not be negative")
	}
	return d, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("date must be %s", model.DateLayout)
	}
	return &d, nil
}

func validateAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

func validatePositive(s string) error {
	d, err := parseAmount(s)
	if err != nil {
		return err
	}
	if !d.IsPositive() {
		return errors.New("must be greater than zero")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := model.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("date must be %s", model.DateLayout)
	}
	return nil
}

func validateOptionalDate(s string) error {
	_, err := parseOptionalDate(s)
	return err
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// formKeyMap lets Esc cancel an embedded form.
func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	return km
}

func newTransactionForm(v *transactionValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Expense", string(model.Expense)),
					huh.NewOption("Income", string(model.Income)),
				).
				Value(&v.Type),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&v.Amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("Category").
				Placeholder("Food, Rent, Salary...").
				Value(&v.Category).
				Validate(required("category")),
			huh.NewInput().
				Title("Description").
				Placeholder("optional").
				Value(&v.Description),
			huh.NewInput().
				Title("Date").
				Placeholder(model.DateLayout).
				Value(&v.Date).
				Validate(validateDate),
			huh.NewConfirm().
				Title("Recurring every month?").
				Affirmative("Yes").
				Negative("No").
				Value(&v.Recurring),
		).Title("New transaction"),
	).WithKeyMap(formKeyMap()).WithShowHelp(true)
}

func newGoalForm(v *goalValues) *huh.Form {
	opts := make([]huh.Option[string], 0, len(model.GoalTypes))
	for _, gt := range model.GoalTypes {
		info := gt.TypeInfo()
		opts = append(opts, huh.NewOption(info.Icon+" "+info.Label, string(gt)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&v.Title).
				Validate(required("title")),
			huh.NewSelect[string]().
				Title("Type").
				Options(opts...).
				Value(&v.Type),
			huh.NewInput().
				Title("Target amount").
				Placeholder("0.00").
				Value(&v.Target).
				Validate(validatePositive),
			huh.NewInput().
				Title("Deadline").
				Placeholder(model.DateLayout + " (optional)").
				Value(&v.Deadline).
				Validate(validateOptionalDate),
		).Title("New goal"),
	).WithKeyMap(formKeyMap()).WithShowHelp(true)
}

func formWidth(termWidth int) int {
	w := termWidth - 8
	if w > 72 {
		w = 72
	}
	return w
}

func (a App) openTransactionForm() (tea.Model, tea.Cmd) {
	a.txVals = newTransactionValues(a.today())
	a.formKind = formTransaction
	a.form = newTransactionForm(a.txVals).WithWidth(formWidth(a.width))
	return a, a.form.Init()
}

func (a App) openGoalForm() (tea.Model, tea.Cmd) {
	a.goalVals = newGoalValues()
	a.formKind = formGoal
	a.form = newGoalForm(a.goalVals).WithWidth(formWidth(a.width))
	return a, a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	a.txVals = nil
	a.goalVals = nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	case huh.StateCompleted:
		kind, txVals, goalVals := a.formKind, a.txVals, a.goalVals
		a.closeForm()
		cmd := a.submitForm(kind, txVals, goalVals)
		return a, cmd
	}
	return a, cmd
}

// submitForm turns a completed form into a store write. Invalid input that
// slipped past field validation surfaces as a notice.
func (a *App) submitForm(kind formKind, txVals *transactionValues, goalVals *goalValues) tea.Cmd {
	switch kind {
	case formTransaction:
		n, err := txVals.toNew()
		if err != nil {
			return a.setNotice("Invalid transaction: "+err.Error(), true)
		}
		return saveCmd(a.opts.DBPath, "add transaction", func(s *store.Store) error {
			_, err := s.CreateTransaction(n)
			return err
		})
	case formGoal:
		n, err := goalVals.toNew()
		if err != nil {
			return a.setNotice("Invalid goal: "+err.Error(), true)
		}
		return saveCmd(a.opts.DBPath, "add goal", func(s *store.Store) error {
			_, err := s.CreateGoal(n)
			return err
		})
	}
	return nil
}

func (a App) viewForm() string {
	t := theme.Active

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(a.form.View())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
