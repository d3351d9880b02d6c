package pipeline

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

// ProjectFutureBalance extends the current balance linearly by the
// recurring monthly net for each of the next monthsAhead months.
func ProjectFutureBalance(currentBalance decimal.Decimal, txs []model.Transaction, monthsAhead int) []model.BalanceProjection {
	if monthsAhead <= 0 {
		return nil
	}
	monthly := TotalMonthlyRecurring(txs)

	out := make([]model.BalanceProjection, monthsAhead)
	for i := range out {
		n := int64(i + 1)
		out[i] = model.BalanceProjection{
			Month:   i + 1,
			Balance: currentBalance.Add(monthly.Mul(decimal.NewFromInt(n))),
		}
	}
	return out
}

// PredictGoalDate estimates when the balance reaches goalAmount at the
// current recurring rate. It reports false when the rate is not positive.
// A goal already reached predicts zero months from today.
func PredictGoalDate(currentBalance decimal.Decimal, txs []model.Transaction, goalAmount decimal.Decimal, today time.Time) (model.GoalPrediction, bool) {
	monthly := TotalMonthlyRecurring(txs)
	if !monthly.IsPositive() {
		return model.GoalPrediction{}, false
	}

	remaining := goalAmount.Sub(currentBalance)
	months := 0
	if remaining.IsPositive() {
		months = int(remaining.Div(monthly).Ceil().IntPart())
	}

	return model.GoalPrediction{
		Months: months,
		Date:   model.DateOf(today).AddDate(0, 0, months*30),
	}, true
}
