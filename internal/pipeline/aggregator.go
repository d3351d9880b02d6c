// Package pipeline derives ledger aggregates, recurring projections and
// balance forecasts from a transaction snapshot. Every function is pure.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

// Totals sums income and expenses over every transaction, with no date filter.
func Totals(txs []model.Transaction) model.Totals {
	var t model.Totals
	for _, tx := range txs {
		switch tx.Type {
		case model.Income:
			t.Income = t.Income.Add(tx.Amount)
		case model.Expense:
			t.Expenses = t.Expenses.Add(tx.Amount)
		}
	}
	t.Balance = t.Income.Sub(t.Expenses)
	return t
}

// MonthlyNet returns income minus expenses for one calendar month.
// Recurring and one-off transactions count alike.
func MonthlyNet(txs []model.Transaction, month time.Month, year int) decimal.Decimal {
	net := decimal.Zero
	for _, tx := range txs {
		if tx.Date.Month() != month || tx.Date.Year() != year {
			continue
		}
		net = net.Add(tx.Signed())
	}
	return net
}

// MonthlyExpenses returns the expense sum for one calendar month.
func MonthlyExpenses(txs []model.Transaction, month time.Month, year int) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		if !tx.IsExpense() || tx.Date.Month() != month || tx.Date.Year() != year {
			continue
		}
		sum = sum.Add(tx.Amount)
	}
	return sum
}

// CategoryTotals groups expenses by category, largest first.
// Equal amounts keep the order in which their category was first seen.
func CategoryTotals(txs []model.Transaction) []model.CategoryTotal {
	idx := make(map[string]int)
	var out []model.CategoryTotal

	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		i, ok := idx[tx.Category]
		if !ok {
			i = len(out)
			idx[tx.Category] = i
			out = append(out, model.CategoryTotal{Category: tx.Category, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(tx.Amount)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

// MonthlyTrends returns 12 months of income/expense sums, oldest first,
// ending with the month containing today. Empty months are zero.
func MonthlyTrends(txs []model.Transaction, today time.Time) []model.MonthTrend {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	trends := make([]model.MonthTrend, 12)
	keys := make(map[int]int, 12)
	for i := range trends {
		m := first.AddDate(0, i-11, 0)
		trends[i] = model.MonthTrend{
			Label:    m.Format("Jan 06"),
			Year:     m.Year(),
			Month:    m.Month(),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
		keys[monthKey(m.Year(), m.Month())] = i
	}

	for _, tx := range txs {
		i, ok := keys[monthKey(tx.Date.Year(), tx.Date.Month())]
		if !ok {
			continue
		}
		switch tx.Type {
		case model.Income:
			trends[i].Income = trends[i].Income.Add(tx.Amount)
		case model.Expense:
			trends[i].Expenses = trends[i].Expenses.Add(tx.Amount)
		}
	}

	for i := range trends {
		trends[i].Net = trends[i].Income.Sub(trends[i].Expenses)
	}
	return trends
}

func monthKey(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

// SpendingByDayOfWeek buckets expenses by weekday, Sunday first.
func SpendingByDayOfWeek(txs []model.Transaction) []model.DaySpending {
	days := make([]model.DaySpending, 7)
	for i := range days {
		wd := time.Weekday(i)
		days[i] = model.DaySpending{Day: wd, Name: wd.String(), Amount: decimal.Zero}
	}

	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		wd := tx.Date.Weekday()
		days[wd].Amount = days[wd].Amount.Add(tx.Amount)
	}
	return days
}

// SpendingHeatmap maps each YYYY-MM-DD date to that day's expense sum.
// Days without expenses are absent.
func SpendingHeatmap(txs []model.Transaction) map[string]decimal.Decimal {
	heat := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		key := tx.Date.Format(model.DateLayout)
		heat[key] = heat[key].Add(tx.Amount)
	}
	return heat
}

// FilterByDateRange returns transactions dated within [since, until].
// A zero bound is open.
func FilterByDateRange(txs []model.Transaction, since, until time.Time) []model.Transaction {
	if since.IsZero() && until.IsZero() {
		return txs
	}

	var result []model.Transaction
	for _, tx := range txs {
		if !since.IsZero() && tx.Date.Before(model.DateOf(since)) {
			continue
		}
		if !until.IsZero() && tx.Date.After(model.DateOf(until)) {
			continue
		}
		result = append(result, tx)
	}
	return result
}

// FilterByCategory returns transactions whose category contains substr.
func FilterByCategory(txs []model.Transaction, substr string) []model.Transaction {
	if substr == "" {
		return txs
	}
	var result []model.Transaction
	for _, tx := range txs {
		if containsIgnoreCase(tx.Category, substr) {
			result = append(result, tx)
		}
	}
	return result
}

// FilterByType returns transactions of the given type.
func FilterByType(txs []model.Transaction, typ model.TxType) []model.Transaction {
	var result []model.Transaction
	for _, tx := range txs {
		if tx.Type == typ {
			result = append(result, tx)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
