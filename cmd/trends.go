package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Income and expenses for the last 12 months",
	RunE:  runTrends,
}

func init() {
	rootCmd.AddCommand(trendsCmd)
}

func runTrends(_ *cobra.Command, _ []string) error {
	l, err := loadLedger()
	if err != nil {
		return err
	}

	trends := pipeline.MonthlyTrends(l.Transactions, l.Today)

	rows := make([][]string, 0, len(trends))
	incomes := make([]float64, 0, len(trends))
	expenses := make([]float64, 0, len(trends))
	for _, m := range trends {
		rows = append(rows, []string{m.Label, l.money(m.Income), l.money(m.Expenses), l.signed(m.Net)})
		incomes = append(incomes, m.Income.InexactFloat64())
		expenses = append(expenses, m.Expenses.InexactFloat64())
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Monthly Trends",
		Headers: []string{"Month", "Income", "Expenses", "Net"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Printf("  Income    %s\n", cli.RenderSparkline(incomes))
	fmt.Printf("  Expenses  %s\n", cli.RenderSparkline(expenses))
	fmt.Println()
	return nil
}
