package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds a monetary amount to two decimal places. All stored and
// compared totals go through this; formatting never does its own rounding.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatBR renders an amount with exactly two decimals and a comma
// separator, e.g. 55 -> "55,00". Presentation only.
func FormatBR(d decimal.Decimal) string {
	return strings.ReplaceAll(d.StringFixed(2), ".", ",")
}
