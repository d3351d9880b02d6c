package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

var flagProjectMonths int

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project the balance forward using recurring items",
	RunE:  runProject,
}

func init() {
	projectCmd.Flags().IntVarP(&flagProjectMonths, "months", "n", 0, "Months to project (default from config)")
	rootCmd.AddCommand(projectCmd)
}

func runProject(_ *cobra.Command, _ []string) error {
	l, err := loadLedger()
	if err != nil {
		return err
	}

	months := flagProjectMonths
	if months <= 0 {
		months = l.Config.General.ProjectionMonths
	}

	balance := pipeline.Totals(l.Transactions).Balance
	proj := pipeline.ProjectFutureBalance(balance, l.Transactions, months)

	rows := make([][]string, 0, len(proj))
	values := make([]float64, 0, len(proj))
	for _, p := range proj {
		rows = append(rows, []string{
			fmt.Sprintf("+%d", p.Month),
			l.Today.AddDate(0, p.Month, 0).Format("Jan 2006"),
			l.signed(p.Balance),
		})
		values = append(values, p.Balance.InexactFloat64())
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Projection from %s", l.signed(balance)),
		Headers: []string{"Month", "When", "Balance"},
		Rows:    rows,
	}))
	fmt.Printf("\n  %s\n", cli.RenderSparkline(values))

	goal := l.Settings.SavingsGoal
	fmt.Println()
	if pred, ok := pipeline.PredictGoalDate(balance, l.Transactions, goal, l.Today); ok {
		if pred.Months == 0 {
			fmt.Printf("  Savings goal of %s already reached\n", l.money(goal))
		} else {
			fmt.Printf("  Savings goal of %s reached in %d months, around %s\n",
				l.money(goal), pred.Months, pred.Date.Format(model.DateLayout))
		}
	} else {
		fmt.Println("  " + cli.RenderWarn(fmt.Sprintf("Savings goal of %s is out of reach at the current recurring rate", l.money(goal))))
	}
	fmt.Println()
	return nil
}
