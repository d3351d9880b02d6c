package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

// LowBalanceThreshold is the running balance below which a cashflow day warns.
var LowBalanceThreshold = decimal.NewFromInt(1000)

// CashflowHorizonDays is the number of days covered by CashflowTimeline.
const CashflowHorizonDays = 30

// Recurring returns the transactions flagged as recurring.
func Recurring(txs []model.Transaction) []model.Transaction {
	var result []model.Transaction
	for _, tx := range txs {
		if tx.IsRecurring {
			result = append(result, tx)
		}
	}
	return result
}

// TotalMonthlyRecurring returns recurring income minus recurring expenses,
// regardless of date. This is the steady-state monthly delta used by every
// projection.
func TotalMonthlyRecurring(txs []model.Transaction) decimal.Decimal {
	net := decimal.Zero
	for _, tx := range txs {
		if tx.IsRecurring {
			net = net.Add(tx.Signed())
		}
	}
	return net
}

// RecurringIncome returns the sum of recurring income amounts.
func RecurringIncome(txs []model.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		if tx.IsRecurring && tx.IsIncome() {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// HasRecurringIncome reports whether any income transaction is recurring.
func HasRecurringIncome(txs []model.Transaction) bool {
	for _, tx := range txs {
		if tx.IsRecurring && tx.IsIncome() {
			return true
		}
	}
	return false
}

// BurnRate returns the monthly run-rate of fixed costs: the sum of
// recurring expense amounts.
func BurnRate(txs []model.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		if tx.IsRecurring && tx.IsExpense() {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// UpcomingRecurring returns recurring transactions dated later this month
// than today, ordered by day of month.
func UpcomingRecurring(txs []model.Transaction, today time.Time) []model.Transaction {
	var upcoming []model.Transaction
	for _, tx := range txs {
		if !tx.IsRecurring {
			continue
		}
		if tx.Date.Year() != today.Year() || tx.Date.Month() != today.Month() {
			continue
		}
		if tx.Date.Day() > today.Day() {
			upcoming = append(upcoming, tx)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Day() < upcoming[j].Date.Day()
	})
	return upcoming
}

// NetBalance estimates the end-of-month balance once this month's pending
// recurring items post: current + upcoming income - upcoming expenses.
func NetBalance(currentBalance decimal.Decimal, txs []model.Transaction, today time.Time) decimal.Decimal {
	net := currentBalance
	for _, tx := range UpcomingRecurring(txs, today) {
		net = net.Add(tx.Signed())
	}
	return net
}

// RealisedRecurringNet returns the recurring net that has already posted:
// past months in full, the current month only up to today.
func RealisedRecurringNet(txs []model.Transaction, today time.Time) decimal.Decimal {
	net := decimal.Zero
	current := monthKey(today.Year(), today.Month())
	for _, tx := range txs {
		if !tx.IsRecurring {
			continue
		}
		k := monthKey(tx.Date.Year(), tx.Date.Month())
		switch {
		case k < current:
			net = net.Add(tx.Signed())
		case k == current && tx.Date.Day() <= today.Day():
			net = net.Add(tx.Signed())
		}
	}
	return net
}

// AverageMonthlyIncome returns the mean monthly net over a trailing window
// that includes the current partial month. With less than a month of
// history it falls back to TotalMonthlyRecurring.
func AverageMonthlyIncome(txs []model.Transaction, windowMonths int, today time.Time) decimal.Decimal {
	if len(txs) == 0 {
		return decimal.Zero
	}
	today = model.DateOf(today)

	oldest := today
	for _, tx := range txs {
		if tx.Date.Before(oldest) {
			oldest = tx.Date
		}
	}

	history := model.DaysBetween(oldest, today) / 30
	if history < 1 {
		return TotalMonthlyRecurring(txs)
	}

	n := windowMonths
	if history+1 < n {
		n = history + 1
	}
	if n < 1 {
		return TotalMonthlyRecurring(txs)
	}

	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	sum := decimal.Zero
	for i := 0; i < n; i++ {
		m := first.AddDate(0, -i, 0)
		sum = sum.Add(MonthlyNet(txs, m.Month(), m.Year()))
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

// SpendingVelocity returns expense per day across the inclusive span
// between the earliest and latest expense. A single-day ledger divides by 1.
func SpendingVelocity(txs []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	var oldest, newest time.Time
	found := false

	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		total = total.Add(tx.Amount)
		if !found || tx.Date.Before(oldest) {
			oldest = tx.Date
		}
		if !found || tx.Date.After(newest) {
			newest = tx.Date
		}
		found = true
	}
	if !found {
		return decimal.Zero
	}

	days := model.DaysBetween(oldest, newest) + 1
	days = int(math.Max(1, float64(days)))
	return total.Div(decimal.NewFromInt(int64(days)))
}

// CashflowTimeline projects a daily running balance for the next 30 days
// using recurring items only, matched by day-of-month number. Day 0 starts
// at currentBalance; items on today's day number are treated as posted.
func CashflowTimeline(txs []model.Transaction, currentBalance decimal.Decimal, today time.Time) []model.CashflowDay {
	recurring := Recurring(txs)
	today = model.DateOf(today)

	timeline := make([]model.CashflowDay, CashflowHorizonDays)
	for i := range timeline {
		date := today.AddDate(0, 0, i)
		income, expenses := decimal.Zero, decimal.Zero

		for _, tx := range recurring {
			if tx.Date.Day() != date.Day() {
				continue
			}
			switch tx.Type {
			case model.Income:
				income = income.Add(tx.Amount)
			case model.Expense:
				expenses = expenses.Add(tx.Amount)
			}
		}

		net := income.Sub(expenses)
		balance := currentBalance
		if i > 0 {
			balance = timeline[i-1].Balance.Add(net)
		}

		timeline[i] = model.CashflowDay{
			Date:      date,
			Income:    income,
			Expenses:  expenses,
			NetChange: net,
			Balance:   balance,
			Warning:   balance.LessThan(LowBalanceThreshold),
		}
	}
	return timeline
}

// WarningDays counts timeline entries whose balance dips below the threshold.
func WarningDays(timeline []model.CashflowDay) int {
	n := 0
	for _, d := range timeline {
		if d.Warning {
			n++
		}
	}
	return n
}
