package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders the absolute value of d with two decimals and
// thousands separators, prefixed by the currency tag: "N$1,234.50".
func FormatMoney(currency string, d decimal.Decimal) string {
	return currency + groupThousands(d.Abs().StringFixed(2))
}

// FormatSignedMoney is FormatMoney with a leading minus for negative values.
func FormatSignedMoney(currency string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatMoney(currency, d)
	}
	return FormatMoney(currency, d)
}

func groupThousands(s string) string {
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(frac)
	return b.String()
}
