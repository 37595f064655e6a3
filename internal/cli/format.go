// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatAmount renders a decimal string as money with thousands separators
// and two decimal places, e.g. "-5000" -> "-₹5,000.00". Input that is not a
// number is returned unchanged.
func FormatAmount(currency, amount string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return amount
	}
	return FormatDecimal(currency, d)
}

// FormatDecimal is FormatAmount for an already parsed value. The value is
// rounded to cents and formatted exactly, without a float conversion.
func FormatDecimal(currency string, d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	_, cents, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + currency + humanize.BigComma(d.BigInt()) + "." + cents
}

// FormatMonths formats a horizon, e.g. 1 -> "1 month", 12 -> "12 months".
func FormatMonths(n int32) string {
	if n == 1 {
		return "1 month"
	}
	return humanize.Comma(int64(n)) + " months"
}

// FormatTier capitalises a tier name for display.
func FormatTier(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
