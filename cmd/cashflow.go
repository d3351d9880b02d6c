package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

var flagCashflowAll bool

var cashflowCmd = &cobra.Command{
	Use:   "cashflow",
	Short: "Projected daily balance for the next 30 days",
	RunE:  runCashflow,
}

func init() {
	cashflowCmd.Flags().BoolVarP(&flagCashflowAll, "all", "a", false, "Show days without recurring activity")
	rootCmd.AddCommand(cashflowCmd)
}

func runCashflow(_ *cobra.Command, _ []string) error {
	l, err := loadLedger()
	if err != nil {
		return err
	}

	timeline := l.snapshot().Cashflow

	var rows [][]string
	for i, d := range timeline {
		if !flagCashflowAll && i > 0 && d.Income.IsZero() && d.Expenses.IsZero() {
			continue
		}
		balance := l.signed(d.Balance)
		if d.Warning {
			balance = cli.RenderWarn(balance)
		}
		rows = append(rows, []string{
			d.Date.Format("Mon 02 Jan"),
			l.money(d.Income),
			l.money(d.Expenses),
			l.signed(d.NetChange),
			balance,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Cashflow",
		Headers: []string{"Date", "In", "Out", "Net", "Balance"},
		Rows:    rows,
	}))

	if warn := pipeline.WarningDays(timeline); warn > 0 {
		fmt.Println()
		fmt.Println("  " + cli.RenderWarn(fmt.Sprintf("%d day(s) below %s", warn, l.money(pipeline.LowBalanceThreshold))))
	}
	fmt.Println()
	return nil
}
