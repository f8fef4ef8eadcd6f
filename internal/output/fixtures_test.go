package output

import (
	"testing"
	"time"

	"github.com/rpgo/bootstrap-sim/internal/calculation"
	"github.com/rpgo/bootstrap-sim/internal/domain"
	"github.com/shopspring/decimal"
)

// buildTestResult runs a small seeded simulation: 4 scenarios, 2 years saving, 2 years drawing.
func buildTestResult(t *testing.T) *calculation.SimulationResult {
	t.Helper()
	series := domain.MustReturnSeries(time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC), 0.25, 0.42, -0.25, -0.33, 0.02)
	params := domain.SimulationParameters{
		StartValue:            decimal.NewFromInt(42000),
		YearsBeforeRetirement: 2,
		YearsAfterRetirement:  2,
		YearlyInstallment:     decimal.NewFromInt(20000),
		YearlyWithdrawal:      decimal.NewFromInt(50000),
		NumScenarios:          4,
	}
	result, err := calculation.NewBootstrapEngine(42).SimulateAndStats(series, params)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	return result
}

// buildFixedResult assembles a result from a hand-written matrix so figures are known exactly.
func buildFixedResult(t *testing.T, rows ...[]float64) *calculation.SimulationResult {
	t.Helper()
	m := domain.NewScenarioMatrix(len(rows)-1, len(rows[0]), rows[0][0])
	md := domain.NewYearMetadata(len(rows) - 1)
	for i, r := range rows {
		m.SetRow(i, r)
		if i > 0 {
			md.Append(0, 0, 0, 0)
		}
	}
	table, err := calculation.ComputeStatistics(m, md)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	return &calculation.SimulationResult{
		Parameters: domain.SimulationParameters{
			StartValue:            decimal.NewFromFloat(rows[0][0]),
			YearsBeforeRetirement: 1,
			YearsAfterRetirement:  len(rows) - 2,
			NumScenarios:          len(rows[0]),
		},
		Target:   domain.ReturnTarget{Mean: 0.05, Volatility: 0.2},
		Table:    table,
		Metadata: md,
		Matrix:   m,
	}
}
