package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

var flagHeatmapWeeks int

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Calendar heatmap of daily spending",
	RunE:  runHeatmap,
}

func init() {
	heatmapCmd.Flags().IntVarP(&flagHeatmapWeeks, "weeks", "w", 12, "Number of weeks to show")
	rootCmd.AddCommand(heatmapCmd)
}

func runHeatmap(_ *cobra.Command, _ []string) error {
	l, err := loadLedger()
	if err != nil {
		return err
	}
	if flagHeatmapWeeks < 1 {
		flagHeatmapWeeks = 1
	}

	heat := pipeline.SpendingHeatmap(l.Transactions)

	// Columns are weeks starting on Sunday, ending with the current week.
	end := l.Today.AddDate(0, 0, int(time.Saturday-l.Today.Weekday()))
	start := end.AddDate(0, 0, -7*flagHeatmapWeeks+1)

	busiest := decimal.Zero
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if v := heat[d.Format(model.DateLayout)]; v.GreaterThan(busiest) {
			busiest = v
		}
	}
	maxVal := busiest.InexactFloat64()

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPENDING HEATMAP"))
	fmt.Println()
	for wd := 0; wd < 7; wd++ {
		var b strings.Builder
		for w := 0; w < flagHeatmapWeeks; w++ {
			d := start.AddDate(0, 0, w*7+wd)
			if d.After(l.Today) {
				b.WriteString("  ")
				continue
			}
			b.WriteString(cli.HeatLevel(heat[d.Format(model.DateLayout)].InexactFloat64(), maxVal))
			b.WriteByte(' ')
		}
		fmt.Printf("  %s  %s\n", cli.FormatDayOfWeek(wd), b.String())
	}
	fmt.Println()
	fmt.Printf("  %s  busiest day %s\n\n", cli.RenderMuted("· ░ ▒ ▓ █"), l.money(busiest))
	return nil
}
