package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/export"
)

var (
	flagExportFormat string
	flagExportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger as CSV or YAML",
	Long: `Export transactions as CSV, or the full ledger (transactions, goals and
settings) as YAML. Writes to stdout unless --out is given.`,
	Example: "  fintrack export --format csv --out ledger.csv\n  fintrack export --format yaml > backup.yaml",
	RunE:    runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "", "csv or yaml (default from --out extension, else csv)")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	format, err := resolveFormat(flagExportFormat, flagExportOut)
	if err != nil {
		return err
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := readLedger(s, true)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if flagExportOut != "" {
		f, err := os.Create(flagExportOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagExportOut, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	switch format {
	case "yaml":
		err = export.WriteYAML(w, export.NewDocument(l.Transactions, l.Goals, l.Settings, time.Now()))
	default:
		err = export.WriteTransactionsCSV(w, l.Transactions)
	}
	if err != nil {
		return err
	}

	if flagExportOut != "" {
		log.Info().Str("file", flagExportOut).Str("format", format).
			Int("transactions", len(l.Transactions)).Msg("exported")
	}
	return nil
}

// resolveFormat picks csv or yaml from the flag, then the file extension.
func resolveFormat(flag, path string) (string, error) {
	f := strings.ToLower(flag)
	if f == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			f = "yaml"
		default:
			f = "csv"
		}
	}
	switch f {
	case "csv":
		return f, nil
	case "yaml", "yml":
		return "yaml", nil
	}
	return "", fmt.Errorf("unknown format %q (want csv or yaml)", flag)
}
