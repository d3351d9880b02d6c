package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/report"
)

var (
	flagReportMonth string
	flagReportOut   string
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Short:   "Write a monthly PDF statement",
	Example: "  fintrack report --month 2025-06\n  fintrack report --out june.pdf",
	RunE:    runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&flagReportMonth, "month", "m", "", "Month as YYYY-MM (default current month)")
	reportCmd.Flags().StringVarP(&flagReportOut, "out", "o", "", "Output file (default fintrack-YYYY-MM.pdf)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	l, err := loadLedger()
	if err != nil {
		return err
	}

	month := l.Today
	if flagReportMonth != "" {
		if month, err = time.ParseInLocation("2006-01", flagReportMonth, time.UTC); err != nil {
			return fmt.Errorf("parsing --month %q: %w", flagReportMonth, err)
		}
	}

	st := report.NewStatement(l.snapshot(), l.Transactions, month, time.Now())
	out := flagReportOut
	if out == "" {
		out = st.Filename()
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	if err := report.Render(f, st); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Printf("  Wrote %s (%d transactions)\n", out, len(st.Transactions))
	return nil
}
