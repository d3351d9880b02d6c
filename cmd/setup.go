package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	dbIn := cfg.General.DBPath
	themeIn := cfg.Appearance.Theme
	var currencyIn, goalIn string

	s, err := openStoreAt(cfg)
	if err != nil {
		return err
	}
	st, err := s.GetSettings()
	_ = s.Close()
	if err != nil {
		return err
	}
	currencyIn = st.Currency
	goalIn = st.SavingsGoal.String()

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to fintrack!").
				Description(fmt.Sprintf("Ledger: %s\nLet's set up a few things.", dbPath(cfg))),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Ledger database path").
				Description("Leave blank for " + config.DefaultDBPath()).
				Value(&dbIn),
			huh.NewInput().
				Title("Currency").
				Description("Shown before every amount").
				Value(&currencyIn).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("currency is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Savings goal").
				Value(&goalIn).
				Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeIn),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	cfg.General.DBPath = strings.TrimSpace(dbIn)
	cfg.Appearance.Theme = themeIn
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	s, err = openStoreAt(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	goal, _ := decimal.NewFromString(goalIn)
	if err := s.UpdateSettings(goal, st.GoalDate); err != nil {
		return err
	}
	if err := s.UpdateCurrency(currencyIn); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `fintrack setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if d.IsNegative() {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
