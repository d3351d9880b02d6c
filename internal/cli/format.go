// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

// FormatMoney formats an amount with the currency tag, ignoring sign.
// e.g., 1234.5 -> "N$1,234.50"
func FormatMoney(currency string, d decimal.Decimal) string {
	return model.FormatMoney(currency, d)
}

// FormatSignedMoney formats an amount with a leading minus when negative.
func FormatSignedMoney(currency string, d decimal.Decimal) string {
	return model.FormatSignedMoney(currency, d)
}

// FormatCompactMoney formats an amount with human-readable suffixes.
// e.g., 1234 -> "N$1.2K", 1234567 -> "N$1.2M"
func FormatCompactMoney(currency string, d decimal.Decimal) string {
	f := d.InexactFloat64()
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	switch {
	case f >= 1_000_000_000:
		return fmt.Sprintf("%s%s%.1fB", sign, currency, f/1_000_000_000)
	case f >= 1_000_000:
		return fmt.Sprintf("%s%s%.1fM", sign, currency, f/1_000_000)
	case f >= 1_000:
		return fmt.Sprintf("%s%s%.1fK", sign, currency, f/1_000)
	default:
		return fmt.Sprintf("%s%s%.0f", sign, currency, f)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 percentage.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDelta formats the change from previous to current with a sign.
func FormatDelta(currency string, current, previous decimal.Decimal) string {
	delta := current.Sub(previous)
	if delta.IsNegative() {
		return "-" + FormatMoney(currency, delta)
	}
	return "+" + FormatMoney(currency, delta)
}

// FormatDate formats a calendar date as YYYY-MM-DD, or "-" when unset.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format(model.DateLayout)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// Truncate shortens s to max runes, ending with an ellipsis when cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 1 {
		return s
	}
	return string(r[:max-1]) + "…"
}
