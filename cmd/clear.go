package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var flagClearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every transaction and goal and reset settings",
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&flagClearYes, "yes", false, "Confirm the wipe")
	rootCmd.AddCommand(clearCmd)
}

func runClear(_ *cobra.Command, _ []string) error {
	if !flagClearYes {
		return fmt.Errorf("refusing to clear the ledger without --yes")
	}

	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Clear(); err != nil {
		return err
	}
	log.Info().Str("db", dbPath(cfg)).Msg("ledger cleared")
	fmt.Println("  Ledger cleared")
	return nil
}
