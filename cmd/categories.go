package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/goals"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Expense totals by category",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	l, err := loadLedger()
	if err != nil {
		return err
	}

	cats := pipeline.CategoryTotals(l.Transactions)
	if len(cats) == 0 {
		fmt.Println("\n  No expenses recorded.")
		return nil
	}

	total := pipeline.Totals(l.Transactions).Expenses
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{
			c.Category,
			l.money(c.Amount),
			cli.FormatPercent(goals.Percentage(c.Amount, total)),
		})
	}
	rows = append(rows, []string{"---"}, []string{"Total", l.money(total), "100.0%"})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Spending by Category",
		Headers: []string{"Category", "Amount", "Share"},
		Rows:    rows,
	}))

	fmt.Println()
	maxVal := cats[0].Amount.InexactFloat64()
	for _, c := range cats {
		fmt.Println(cli.RenderHorizontalBar(c.Category, 16, c.Amount.InexactFloat64(), maxVal, 40))
	}
	fmt.Println()
	return nil
}
