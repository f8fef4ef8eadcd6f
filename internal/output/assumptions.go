package output

import (
	"fmt"

	"github.com/rpgo/bootstrap-sim/internal/calculation"
	"github.com/rpgo/bootstrap-sim/pkg/dateutil"
)

// DefaultAssumptions lists the modeling assumptions every run shares.
var DefaultAssumptions = []string{
	"Each simulated year resamples the historical real returns with replacement",
	"Sampled returns are rescaled to the target mean and volatility",
	"A year can lose at most 100% of the portfolio; gains are uncapped",
	"Savings are added through the retirement year; withdrawals start the year after",
}

// GenerateAssumptions creates the assumptions list from the run's parameters.
func GenerateAssumptions(result *calculation.SimulationResult) []string {
	p := result.Parameters
	h := result.History

	source := func(override bool) string {
		if override {
			return "override"
		}
		return "historical"
	}

	lines := []string{
		fmt.Sprintf("Historical real returns: %d observations (%s)", h.Count, dateutil.FormatRange(h.FirstDate, h.LastDate)),
		fmt.Sprintf("Target mean return: %s (%s)", formatRate(result.Target.Mean), source(p.TargetMean != nil)),
		fmt.Sprintf("Target volatility: %s (%s)", formatRate(result.Target.Volatility), source(p.TargetVolatility != nil)),
		fmt.Sprintf("Savings: %s per year for %d years", FormatCurrency(p.YearlyInstallment), p.YearsBeforeRetirement),
		fmt.Sprintf("Withdrawals: %s per year for %d years", FormatCurrency(p.YearlyWithdrawal), p.YearsAfterRetirement),
		fmt.Sprintf("Scenarios: %d", p.NumScenarios),
	}
	if result.Seed != 0 {
		lines[len(lines)-1] += fmt.Sprintf(" (seed %d)", result.Seed)
	}
	return append(lines, DefaultAssumptions...)
}
