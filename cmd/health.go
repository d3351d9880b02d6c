package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Financial health score and its factors",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(_ *cobra.Command, _ []string) error {
	l, err := loadLedger()
	if err != nil {
		return err
	}

	h := l.snapshot().Health

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HEALTH  %d/%d  %s", h.Score, h.MaxScore, h.Grade)))
	fmt.Println()

	rows := make([][]string, 0, len(h.Factors))
	for _, f := range h.Factors {
		pct := 0.0
		if f.Max > 0 {
			pct = f.Score / f.Max * 100
		}
		rows = append(rows, []string{
			f.Name,
			fmt.Sprintf("%.1f/%.0f", f.Score, f.Max),
			cli.RenderProgressBar(pct, 16),
			f.Message,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Factor", "Score", "", "Detail"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
