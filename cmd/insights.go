package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Observations about spending, goals and projections",
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(_ *cobra.Command, _ []string) error {
	l, err := loadLedger()
	if err != nil {
		return err
	}

	list := l.snapshot().Insights
	if len(list) == 0 {
		fmt.Println("\n  Nothing to report yet. Insights appear as the ledger grows.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("INSIGHTS"))
	fmt.Println()
	for _, in := range list {
		fmt.Println("  " + cli.RenderSeverity(string(in.Severity), in.Message))
		if in.Detail != "" {
			fmt.Println("    " + cli.RenderMuted(in.Detail))
		}
	}
	fmt.Println()
	return nil
}
