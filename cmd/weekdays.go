package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

var weekdaysCmd = &cobra.Command{
	Use:   "weekdays",
	Short: "Expense totals by day of week",
	RunE:  runWeekdays,
}

func init() {
	rootCmd.AddCommand(weekdaysCmd)
}

func runWeekdays(_ *cobra.Command, _ []string) error {
	l, err := loadLedger()
	if err != nil {
		return err
	}

	days := pipeline.SpendingByDayOfWeek(l.Transactions)

	var maxVal float64
	for _, d := range days {
		if v := d.Amount.InexactFloat64(); v > maxVal {
			maxVal = v
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPENDING BY DAY OF WEEK"))
	fmt.Println()
	for _, d := range days {
		bar := cli.RenderHorizontalBar(cli.FormatDayOfWeek(int(d.Day)), 4, d.Amount.InexactFloat64(), maxVal, 36)
		fmt.Printf("%s  %s\n", bar, cli.RenderMuted(l.money(d.Amount)))
	}
	fmt.Println()
	return nil
}
