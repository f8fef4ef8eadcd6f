package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Format renders the amount as dollars with thousands separators,
// e.g. "$1,234,567.89" or "-$50,000.00".
func (m Money) Format() string {
	rounded := m.Decimal.Round(2)
	s := "$" + group(rounded.Abs().StringFixed(2))
	if rounded.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatWhole is Format without cents.
func (m Money) FormatWhole() string {
	rounded := m.Decimal.Round(0)
	s := "$" + group(rounded.Abs().StringFixed(0))
	if rounded.IsNegative() {
		return "-" + s
	}
	return s
}

// group inserts a comma every three digits of the integer part of s.
func group(s string) string {
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return intPart + frac
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
	return b.String() + frac
}
