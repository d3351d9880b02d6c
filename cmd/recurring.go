package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Recurring items, monthly totals and what is still due",
	RunE:  runRecurring,
}

func init() {
	rootCmd.AddCommand(recurringCmd)
}

func runRecurring(_ *cobra.Command, _ []string) error {
	l, err := loadLedger()
	if err != nil {
		return err
	}

	items := pipeline.Recurring(l.Transactions)
	if len(items) == 0 {
		fmt.Println("\n  No recurring transactions. Add one with --recurring.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, tx := range items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", tx.ID),
			string(tx.Type),
			tx.Category,
			fmt.Sprintf("%d", tx.Date.Day()),
			l.signed(tx.Signed()),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Recurring",
		Headers: []string{"ID", "Type", "Category", "Day", "Amount"},
		Rows:    rows,
	}))

	s := l.snapshot()
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Recurring income", l.money(pipeline.RecurringIncome(l.Transactions))},
			{"Burn rate", l.money(s.BurnRate)},
			{"Net per month", l.signed(s.MonthlyRecurring)},
			{"Posted so far", l.signed(s.RealisedRecurring)},
			{"End of month (est)", l.signed(s.NetBalance)},
		},
	}))

	if !pipeline.HasRecurringIncome(l.Transactions) {
		fmt.Println()
		fmt.Println("  " + cli.RenderWarn("No recurring income recorded"))
	}

	if len(s.Upcoming) > 0 {
		up := make([][]string, 0, len(s.Upcoming))
		for _, tx := range s.Upcoming {
			up = append(up, []string{tx.Date.Format(model.DateLayout), tx.Category, l.signed(tx.Signed())})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Still due this month",
			Headers: []string{"Date", "Category", "Amount"},
			Rows:    up,
		}))
	}
	fmt.Println()
	return nil
}
