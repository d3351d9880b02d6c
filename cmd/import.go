package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/export"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/store"
)

var (
	flagImportFormat  string
	flagImportReplace bool
	flagImportDryRun  bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import transactions from CSV or a YAML backup",
	Long: `Import a CSV written by "fintrack export" or a YAML backup. YAML backups
also restore goals and settings. Ids in the file are ignored; the ledger
assigns new ones.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&flagImportFormat, "format", "f", "", "csv or yaml (default from file extension)")
	importCmd.Flags().BoolVar(&flagImportReplace, "replace", false, "Clear the ledger before importing")
	importCmd.Flags().BoolVar(&flagImportDryRun, "dry-run", false, "Validate the file without writing")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	path := args[0]
	format, err := resolveFormat(flagImportFormat, path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var (
		txs      []model.Transaction
		goals    []model.Goal
		settings *model.Settings
	)
	switch format {
	case "yaml":
		doc, err := export.ReadYAML(f)
		if err != nil {
			return err
		}
		if txs, err = doc.TransactionsList(); err != nil {
			return err
		}
		if goals, err = doc.GoalsList(); err != nil {
			return err
		}
		if settings, err = doc.SettingsValue(); err != nil {
			return err
		}
	default:
		if txs, err = export.ReadTransactionsCSV(f); err != nil {
			return err
		}
	}

	newTxs := make([]store.NewTransaction, 0, len(txs))
	for i, tx := range txs {
		n := store.NewTransaction{
			Type:        tx.Type,
			Amount:      tx.Amount,
			Category:    tx.Category,
			Description: tx.Description,
			Date:        tx.Date,
			IsRecurring: tx.IsRecurring,
		}
		if err := n.Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", i+1, err)
		}
		newTxs = append(newTxs, n)
	}
	for i, g := range goals {
		if err := goalFields(g).Validate(); err != nil {
			return fmt.Errorf("goal %d: %w", i+1, err)
		}
	}

	if flagImportDryRun {
		fmt.Printf("  %s is valid: %d transaction(s), %d goal(s)\n", path, len(newTxs), len(goals))
		return nil
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if flagImportReplace {
		if err := s.Clear(); err != nil {
			return err
		}
	}
	for _, n := range newTxs {
		if _, err := s.CreateTransaction(n); err != nil {
			return err
		}
	}
	for _, g := range goals {
		id, err := s.CreateGoal(goalFields(g))
		if err != nil {
			return err
		}
		if g.Completed {
			if err := s.SetGoalCompleted(id, true); err != nil {
				return err
			}
		}
		if g.Archived {
			if err := s.ArchiveGoal(id); err != nil {
				return err
			}
		}
	}
	if settings != nil {
		if err := s.UpdateSettings(settings.SavingsGoal, settings.GoalDate); err != nil {
			return err
		}
		if settings.Currency != "" {
			if err := s.UpdateCurrency(settings.Currency); err != nil {
				return err
			}
		}
	}

	log.Debug().Str("file", path).Str("format", format).Msg("import finished")
	fmt.Printf("  Imported %d transaction(s) and %d goal(s) from %s\n", len(newTxs), len(goals), path)
	return nil
}

func goalFields(g model.Goal) store.NewGoal {
	return store.NewGoal{Title: g.Title, Type: g.Type, TargetAmount: g.TargetAmount, Deadline: g.Deadline}
}
