package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/store"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// setupValues backs the first-run form.
type setupValues struct {
	Currency    string
	SavingsGoal string
	Theme       string
}

func newSetupValues(st model.Settings) *setupValues {
	return &setupValues{
		Currency:    st.Currency,
		SavingsGoal: st.SavingsGoal.String(),
		Theme:       theme.Active.Name,
	}
}

func newSetupForm(dbPath string, v *setupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to fintrack!").
				Description(fmt.Sprintf("Ledger: %s\n\nA few settings before the dashboard opens.\nRun `fintrack setup` anytime to change them.", dbPath)),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency").
				Description("Shown before every amount").
				Value(&v.Currency).
				Validate(required("currency")),
			huh.NewInput().
				Title("Savings goal").
				Description("Target balance for the overview progress bar").
				Value(&v.SavingsGoal).
				Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
		),
	)
}

// applySetup saves the theme to the config file and the ledger settings to
// the store. A config failure is reported but does not block the store write.
func (a *App) applySetup(v *setupValues) tea.Cmd {
	var cmds []tea.Cmd

	cfg := loadConfigOrDefault()
	cfg.Appearance.Theme = v.Theme
	theme.SetActive(v.Theme)
	if err := config.Save(cfg); err != nil {
		cmds = append(cmds, a.setNotice("Could not save config: "+err.Error(), true))
	}

	goal, err := parseAmount(v.SavingsGoal)
	if err != nil {
		cmds = append(cmds, a.setNotice("Invalid savings goal: "+err.Error(), true))
		return tea.Batch(cmds...)
	}
	currency := strings.TrimSpace(v.Currency)
	goalDate := a.ledger.Settings.GoalDate

	cmds = append(cmds, saveCmd(a.opts.DBPath, "save settings", func(s *store.Store) error {
		if err := s.UpdateSettings(goal, goalDate); err != nil {
			return err
		}
		return s.UpdateCurrency(currency)
	}))
	return tea.Batch(cmds...)
}
