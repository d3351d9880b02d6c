package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/store"
)

var (
	flagSetGoal      string
	flagSetDate      string
	flagSetClearDate bool
	flagSetCurrency  string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the savings goal and currency",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:     "set",
	Short:   "Change the savings goal, goal date or currency",
	Example: "  fintrack settings set --goal 250000 --date 2027-01-01\n  fintrack settings set --currency R",
	RunE:    runSettingsSet,
}

func init() {
	settingsSetCmd.Flags().StringVar(&flagSetGoal, "goal", "", "Savings goal amount")
	settingsSetCmd.Flags().StringVar(&flagSetDate, "date", "", "Savings goal date YYYY-MM-DD")
	settingsSetCmd.Flags().BoolVar(&flagSetClearDate, "clear-date", false, "Remove the savings goal date")
	settingsSetCmd.Flags().StringVar(&flagSetCurrency, "currency", "", "Display currency tag")
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(_ *cobra.Command, _ []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := s.GetSettings()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Settings",
		Headers: []string{"Setting", "Value"},
		Rows: [][]string{
			{"Savings goal", cli.FormatMoney(st.Currency, st.SavingsGoal)},
			{"Goal date", cli.FormatDate(st.GoalDate)},
			{"Currency", st.Currency},
		},
	}))
	fmt.Println()
	return nil
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if !flags.Changed("goal") && !flags.Changed("date") && !flagSetClearDate && !flags.Changed("currency") {
		return fmt.Errorf("nothing to change; pass --goal, --date, --clear-date or --currency")
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := s.GetSettings()
	if err != nil {
		return err
	}

	goal, date := st.SavingsGoal, st.GoalDate
	if flags.Changed("goal") {
		if goal, err = decimal.NewFromString(flagSetGoal); err != nil {
			return fmt.Errorf("%w: goal %q", store.ErrInvalid, flagSetGoal)
		}
	}
	if flags.Changed("date") {
		if date, err = parseOptionalDate(flagSetDate); err != nil {
			return err
		}
	}
	if flagSetClearDate {
		date = nil
	}

	if err := s.UpdateSettings(goal, date); err != nil {
		return err
	}
	if flags.Changed("currency") {
		if err := s.UpdateCurrency(flagSetCurrency); err != nil {
			return err
		}
	}
	fmt.Println("  Settings updated")
	return nil
}
