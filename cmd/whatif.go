package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/insights"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

var flagWhatIfAdjust string

var whatifCmd = &cobra.Command{
	Use:     "whatif",
	Short:   "Simulate a change in monthly income against your goals",
	Example: "  fintrack whatif --adjust 500\n  fintrack whatif --adjust -250",
	RunE:    runWhatIf,
}

func init() {
	whatifCmd.Flags().StringVar(&flagWhatIfAdjust, "adjust", "0", "Monthly amount to add (negative to remove)")
	rootCmd.AddCommand(whatifCmd)
}

func runWhatIf(_ *cobra.Command, _ []string) error {
	adj, err := decimal.NewFromString(flagWhatIfAdjust)
	if err != nil {
		return fmt.Errorf("parsing --adjust %q: %w", flagWhatIfAdjust, err)
	}

	l, err := loadLedger()
	if err != nil {
		return err
	}

	totals := pipeline.Totals(l.Transactions)
	res := insights.FutureImpact(l.Transactions, totals, l.Goals, adj, l.Today)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("WHAT IF  %s/month", l.signed(adj))))
	fmt.Println()
	fmt.Printf("  Recurring net per month: %s -> %s\n",
		l.signed(pipeline.TotalMonthlyRecurring(l.Transactions)), l.signed(res.NewMonthlyIncome))

	if len(res.Impacts) == 0 {
		fmt.Println("\n  No active balance or monthly savings goals to compare.")
		return nil
	}

	rows := make([][]string, 0, len(res.Impacts))
	for _, im := range res.Impacts {
		var before, after, change string
		switch im.Type {
		case model.GoalBalance:
			before, after = formatMonths(im.CurrentMonths), formatMonths(im.NewMonths)
			change = fmt.Sprintf("%+d months", -im.MonthsSaved)
		default:
			before, after = cli.FormatPercent(im.CurrentPercentage), cli.FormatPercent(im.NewPercentage)
			change = fmt.Sprintf("%+.1f pts", im.NewPercentage-im.CurrentPercentage)
		}
		if im.Improvement {
			change = cli.RenderSeverity(string(model.SeveritySuccess), change)
		}
		rows = append(rows, []string{im.GoalTitle, im.Type.TypeInfo().Label, before, after, change})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Goal", "Type", "Now", "With change", "Change"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func formatMonths(n int) string {
	if n >= insights.UnreachableSentinel {
		return "never"
	}
	return fmt.Sprintf("%d months", n)
}
