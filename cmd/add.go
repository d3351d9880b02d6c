package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/store"
)

var (
	flagAddDesc      string
	flagAddDate      string
	flagAddRecurring bool
)

var addCmd = &cobra.Command{
	Use:   "add <income|expense> <amount> <category>",
	Short: "Record a transaction",
	Example: `  fintrack add income 5000 Salary --recurring
  fintrack add expense 120.50 Food --desc groceries --date 2025-06-03`,
	Args: cobra.ExactArgs(3),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagAddDesc, "desc", "m", "", "Description")
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Transaction date YYYY-MM-DD (default today)")
	addCmd.Flags().BoolVarP(&flagAddRecurring, "recurring", "r", false, "Repeats monthly on the same day")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	n, err := parseNewTransaction(args[0], args[1], args[2], flagAddDesc, flagAddDate, flagAddRecurring)
	if err != nil {
		return err
	}

	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.CreateTransaction(n)
	if err != nil {
		return err
	}
	log.Debug().Int64("id", id).Str("db", dbPath(cfg)).Msg("transaction created")

	settings, err := s.GetSettings()
	if err != nil {
		return err
	}
	fmt.Printf("  Added %s #%d: %s %s on %s\n", n.Type, id,
		model.FormatMoney(settings.Currency, n.Amount), n.Category, n.Date.Format(model.DateLayout))
	return nil
}

func parseNewTransaction(typ, amount, category, desc, date string, recurring bool) (store.NewTransaction, error) {
	n := store.NewTransaction{
		Type:        model.TxType(strings.ToLower(typ)),
		Category:    category,
		Description: desc,
		IsRecurring: recurring,
	}

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return n, fmt.Errorf("%w: amount %q", store.ErrInvalid, amount)
	}
	n.Amount = amt

	if date == "" {
		if n.Date, err = today(); err != nil {
			return n, err
		}
	} else if n.Date, err = model.ParseDate(date); err != nil {
		return n, fmt.Errorf("%w: date %q", store.ErrInvalid, date)
	}

	return n, n.Validate()
}
