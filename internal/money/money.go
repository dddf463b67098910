// Package money parses user-entered amounts and formats them for display.
package money

import (
	"errors"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for amounts that are not positive numbers with
// at most two decimal places.
var ErrInvalidAmount = errors.New("invalid amount")

// MaxAmount is the largest value a NUMERIC(12,2) column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// Parse converts an amount typed in a form to a decimal. Both "12.34" and
// "12,34" are accepted. Zero, negative values and more than two decimal
// places are rejected.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") || (hasFrac && fracPart == "") || len(fracPart) > 2 {
		return decimal.Zero, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return decimal.Zero, ErrInvalidAmount
		}
	}

	normalized := intPart
	if fracPart != "" {
		normalized += "." + fracPart
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() || d.GreaterThan(MaxAmount) {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Valid reports whether s would be accepted by Parse.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Format renders d with thousands grouping and two decimals, prefixed by the
// currency symbol: "₹ 1,234.50".
func Format(symbol string, d decimal.Decimal) string {
	if symbol == "" {
		return Plain(d)
	}
	return symbol + " " + Plain(d)
}

// Plain renders d with thousands grouping and two decimals and no symbol.
func Plain(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()
	return sign + humanize.Comma(whole.IntPart()) + "." + twoDigits(cents)
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + string(rune('0'+n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}
