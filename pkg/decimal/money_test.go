package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestNewMoneyFromDecimal(t *testing.T) {
	d := stddec.NewFromFloat(10.125)
	m := NewMoneyFromDecimal(d)
	if !m.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m.Decimal, d)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in    float64
		full  string
		whole string
	}{
		{0, "$0.00", "$0"},
		{999.994, "$999.99", "$1,000"},
		{1234.5, "$1,234.50", "$1,235"},
		{42000, "$42,000.00", "$42,000"},
		{1234567.891, "$1,234,567.89", "$1,234,568"},
		{-50000, "-$50,000.00", "-$50,000"},
		{-0.001, "$0.00", "$0"},
	}
	for _, c := range cases {
		m := NewMoney(c.in)
		if got := m.Format(); got != c.full {
			t.Errorf("Format(%v) = %q, want %q", c.in, got, c.full)
		}
		if got := m.FormatWhole(); got != c.whole {
			t.Errorf("FormatWhole(%v) = %q, want %q", c.in, got, c.whole)
		}
	}
}
