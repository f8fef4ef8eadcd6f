package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/bootstrap-sim/internal/calculation"
)

// ConsoleVerboseFormatter renders the full year-by-year table with assumptions and risk.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(result *calculation.SimulationResult) ([]byte, error) {
	if result == nil || result.Table == nil || result.Table.Len() == 0 {
		return nil, fmt.Errorf("console: empty simulation result")
	}
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "BOOTSTRAPPED RETIREMENT SIMULATION")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(result) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "HISTORICAL DATA")
	fmt.Fprintln(&buf, "===============")
	buf.WriteString(FormatHistorySummary(result.History, nil))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "PORTFOLIO VALUE BY YEAR")
	fmt.Fprintln(&buf, "=======================")
	writeYearTable(&buf, result)
	fmt.Fprintln(&buf)

	writeRiskSection(&buf, AnalyzeOutcome(result))
	return buf.Bytes(), nil
}

func writeYearTable(buf *bytes.Buffer, result *calculation.SimulationResult) {
	fmt.Fprintf(buf, "%4s  %-12s %14s %14s %14s %14s %14s %14s %12s %12s\n",
		"Year", "Phase", "Mean", "Median", "P5", "P25", "P75", "P95", "Invested", "Withdrawn")
	fmt.Fprintln(buf, strings.Repeat("-", 148))

	for _, row := range result.Table.Rows {
		phase := "start"
		if row.Year > 0 {
			phase = calculation.PhaseForYear(row.Year, result.Parameters.YearsBeforeRetirement).String()
		}
		fmt.Fprintf(buf, "%4d  %-12s %14s %14s %14s %14s %14s %14s %12s %12s\n",
			row.Year, phase,
			formatAmount(row.Mean), formatAmount(row.Median),
			formatAmount(row.Percentile5), formatAmount(row.Percentile25),
			formatAmount(row.Percentile75), formatAmount(row.Percentile95),
			formatAmount(row.TotalInvested), formatAmount(row.TotalWithdrawn))
	}
}

func writeRiskSection(buf *bytes.Buffer, o Outcome) {
	fmt.Fprintf(buf, "RISK AT YEAR %d\n", o.Risk.Year)
	fmt.Fprintln(buf, "==================")
	fmt.Fprintf(buf, "Median:   %s\n", formatAmount(o.Risk.Median))
	fmt.Fprintf(buf, "VaR 75%%:  %s\n", formatAmount(o.Risk.VaR75))
	fmt.Fprintf(buf, "VaR 95%%:  %s\n", formatAmount(o.Risk.VaR95))
	if o.SolventShare >= 0 {
		fmt.Fprintf(buf, "Scenarios ending above zero: %.1f%%\n", o.SolventShare*100)
	}
	if o.DepletionYear > 0 {
		fmt.Fprintf(buf, "Median portfolio is depleted in year %d\n", o.DepletionYear)
	}
}
