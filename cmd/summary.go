package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Balance, monthly figures and savings progress",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	l, err := loadLedger()
	if err != nil {
		return err
	}

	if len(l.Transactions) == 0 {
		fmt.Println("\n  No transactions yet.")
		fmt.Println("  Add one with `fintrack add income 5000 Salary --recurring`.")
		return nil
	}

	s := l.snapshot()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FINTRACK  %s", l.Today.Format("Mon 02 Jan 2006"))))
	fmt.Println()

	rows := [][]string{
		{"Income", l.money(s.Totals.Income)},
		{"Expenses", l.money(s.Totals.Expenses)},
		{"Balance", l.signed(s.Totals.Balance)},
		{"---"},
		{"This month net", l.signed(s.ThisMonthNet)},
		{"Recurring net/month", l.signed(s.MonthlyRecurring)},
		{"Burn rate/month", l.money(s.BurnRate)},
		{"End of month (est)", l.signed(s.NetBalance)},
		{"Avg monthly income", l.signed(s.AverageMonthlyIncome)},
		{"Spending/day", l.money(s.SpendingVelocity)},
		{"---"},
		{"Savings goal", l.money(s.Settings.SavingsGoal)},
		{"Savings progress", cli.FormatPercent(s.SavingsProgress)},
	}
	if s.SavingsPrediction != nil {
		rows = append(rows, []string{"Goal reached (est)",
			fmt.Sprintf("%s (%d months)", s.SavingsPrediction.Date.Format(model.DateLayout), s.SavingsPrediction.Months)})
	}
	if s.Settings.GoalDate != nil {
		rows = append(rows, []string{"Target date", cli.FormatDate(s.Settings.GoalDate)})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Health score", fmt.Sprintf("%d/%d  %s", s.Health.Score, s.Health.MaxScore, s.Health.Grade)},
		[]string{"Transactions", formatNumber(int64(s.TransactionCount))},
	)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if len(s.Upcoming) > 0 {
		fmt.Println()
		fmt.Printf("  %d recurring item(s) still due this month\n", len(s.Upcoming))
	}
	if warn := pipeline.WarningDays(s.Cashflow); warn > 0 {
		fmt.Println("  " + cli.RenderWarn(fmt.Sprintf("Balance dips below %s on %d of the next 30 days",
			l.money(pipeline.LowBalanceThreshold), warn)))
	}
	fmt.Println()
	return nil
}
