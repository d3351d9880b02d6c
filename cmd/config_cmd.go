// Package cmd implements the fintrack CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Ledger:              %s\n", dbPath(cfg))
	if v := os.Getenv(config.EnvDB); v != "" && flagDB == "" {
		fmt.Printf("                         (from %s)\n", config.EnvDB)
	}
	fmt.Printf("    Income window:       %d months\n", cfg.General.IncomeWindowMonths)
	fmt.Printf("    Projection horizon:  %d months\n", cfg.General.ProjectionMonths)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:       %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Poll interval: %ds\n", cfg.Daemon.IntervalSec)
	fmt.Printf("    Event buffer:  %d\n", cfg.Daemon.EventsBuffer)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Auto refresh:     %v\n", cfg.TUI.AutoRefresh)
	fmt.Printf("    Refresh interval: %ds\n", cfg.TUI.RefreshIntervalSec)
	fmt.Println()

	fmt.Println("  Run `fintrack setup` to reconfigure.")
	return nil
}
