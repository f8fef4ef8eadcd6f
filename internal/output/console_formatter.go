package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/bootstrap-sim/internal/calculation"
)

// ConsoleFormatter provides a concise risk summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(result *calculation.SimulationResult) ([]byte, error) {
	if result == nil || result.Table == nil || result.Table.Len() == 0 {
		return nil, fmt.Errorf("console-lite: empty simulation result")
	}
	var buf bytes.Buffer
	p := result.Parameters

	fmt.Fprintln(&buf, "RETIREMENT SIMULATION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Start=%s Save=%s x %d Withdraw=%s x %d Scenarios=%d\n",
		FormatCurrency(p.StartValue),
		FormatCurrency(p.YearlyInstallment), p.YearsBeforeRetirement,
		FormatCurrency(p.YearlyWithdrawal), p.YearsAfterRetirement,
		p.NumScenarios)
	fmt.Fprintf(&buf, "Mean=%s Volatility=%s\n", formatRate(result.Target.Mean), formatRate(result.Target.Volatility))
	fmt.Fprintln(&buf)

	if p.YearsBeforeRetirement > 0 && p.YearsBeforeRetirement < result.Table.Len() {
		atRetirement := result.Table.Rows[p.YearsBeforeRetirement]
		fmt.Fprintf(&buf, "At retirement (year %d): Median=%s P5=%s P95=%s\n",
			atRetirement.Year, formatAmount(atRetirement.Median),
			formatAmount(atRetirement.Percentile5), formatAmount(atRetirement.Percentile95))
	}
	writeRiskSection(&buf, AnalyzeOutcome(result))
	return buf.Bytes(), nil
}
