package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

var (
	flagListSince    string
	flagListUntil    string
	flagListCategory string
	flagListType     string
	flagListLimit    int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List transactions, newest first",
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVar(&flagListSince, "since", "", "Only on or after this date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&flagListUntil, "until", "", "Only on or before this date (YYYY-MM-DD)")
	listCmd.Flags().StringVarP(&flagListCategory, "category", "c", "", "Filter to category (substring match)")
	listCmd.Flags().StringVarP(&flagListType, "type", "t", "", "Filter to income or expense")
	listCmd.Flags().IntVarP(&flagListLimit, "limit", "n", 50, "Max rows to show (0 = all)")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	l, err := loadLedger()
	if err != nil {
		return err
	}

	txs, err := filterTransactions(l.Transactions)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Println("\n  No matching transactions.")
		return nil
	}

	shown := txs
	if flagListLimit > 0 && len(shown) > flagListLimit {
		shown = shown[:flagListLimit]
	}

	rows := make([][]string, 0, len(shown))
	for _, tx := range shown {
		amount := l.money(tx.Amount)
		if tx.IsExpense() {
			amount = "-" + amount
		}
		recurring := ""
		if tx.IsRecurring {
			recurring = "monthly"
		}
		rows = append(rows, []string{
			strconv.FormatInt(tx.ID, 10),
			tx.Date.Format(model.DateLayout),
			string(tx.Type),
			cli.Truncate(tx.Category, 18),
			cli.Truncate(tx.Description, 28),
			amount,
			recurring,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Transactions (%d of %d)", len(shown), len(txs)),
		Headers: []string{"ID", "Date", "Type", "Category", "Description", "Amount", "Repeats"},
		Rows:    rows,
	}))

	t := pipeline.Totals(txs)
	fmt.Printf("\n  In %s   Out %s   Net %s\n\n", l.money(t.Income), l.money(t.Expenses), l.signed(t.Balance))
	return nil
}

func filterTransactions(txs []model.Transaction) ([]model.Transaction, error) {
	var since, until time.Time
	var err error
	if flagListSince != "" {
		if since, err = model.ParseDate(flagListSince); err != nil {
			return nil, fmt.Errorf("parsing --since: %w", err)
		}
	}
	if flagListUntil != "" {
		if until, err = model.ParseDate(flagListUntil); err != nil {
			return nil, fmt.Errorf("parsing --until: %w", err)
		}
	}

	out := pipeline.FilterByDateRange(txs, since, until)
	out = pipeline.FilterByCategory(out, flagListCategory)
	if flagListType != "" {
		typ := model.TxType(flagListType)
		if !typ.Valid() {
			return nil, fmt.Errorf("unknown --type %q (want income or expense)", flagListType)
		}
		out = pipeline.FilterByType(out, typ)
	}
	return out, nil
}
