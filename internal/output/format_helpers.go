package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	money "github.com/rpgo/bootstrap-sim/pkg/decimal"
)

// FormatCurrency formats a decimal as USD currency with 2 decimals.
func FormatCurrency(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Format() }

// formatAmount renders a simulated portfolio value in whole dollars.
func formatAmount(v float64) string { return money.NewMoney(v).FormatWhole() }

// formatRate renders a fractional return (0.064) as a percentage (6.40%).
func formatRate(r float64) string { return fmt.Sprintf("%.2f%%", r*100) }
