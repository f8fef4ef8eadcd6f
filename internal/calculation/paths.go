package calculation

import (
	"context"
	"fmt"
	"sort"

	"github.com/rpgo/bootstrap-sim/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PhaseForYear reports whether simulated year t (1-based) is still saving or
// already drawing down. Year yearsBeforeRetirement is the last accumulation year.
func PhaseForYear(t, yearsBeforeRetirement int) domain.Phase {
	if t <= yearsBeforeRetirement {
		return domain.Accumulation
	}
	return domain.Decumulation
}

// SimulatePortfolioValues iterates the wealth recursion over every scenario:
//
//	V(t) = V(t-1) + payoff(V(t-1)) + installment   while t <= years before retirement
//	V(t) = V(t-1) + payoff(V(t-1)) - withdrawal    afterwards
//
// Each year draws a fresh, independent sample for all scenarios. Values are
// allowed to turn negative.
func (be *BootstrapEngine) SimulatePortfolioValues(series *domain.ReturnSeries, params domain.SimulationParameters, target domain.ReturnTarget) (*domain.ScenarioMatrix, *domain.YearMetadata, error) {
	return be.SimulatePortfolioValuesContext(context.Background(), series, params, target)
}

// SimulatePortfolioValuesContext checks ctx before every simulated year.
func (be *BootstrapEngine) SimulatePortfolioValuesContext(ctx context.Context, series *domain.ReturnSeries, params domain.SimulationParameters, target domain.ReturnTarget) (*domain.ScenarioMatrix, *domain.YearMetadata, error) {
	if series == nil || series.Len() == 0 {
		return nil, nil, domain.ErrEmptySeries
	}
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	if err := target.Validate(); err != nil {
		return nil, nil, err
	}

	values := series.Values()
	if floats.Min(values) == floats.Max(values) {
		return nil, nil, fmt.Errorf("%w: all %d historical returns equal %v", domain.ErrZeroVariance, len(values), values[0])
	}

	years := params.TotalYears()
	n := params.NumScenarios
	installment := params.YearlyInstallment.InexactFloat64()
	withdrawal := params.YearlyWithdrawal.InexactFloat64()

	matrix := domain.NewScenarioMatrix(years, n, params.StartValue.InexactFloat64())
	metadata := domain.NewYearMetadata(years)
	next := make([]float64, n)

	for t := 1; t <= years; t++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("stopped before year %d: %w", t, err)
		}
		prev := matrix.RawRow(t - 1)
		growth, err := be.SimulatePayoffs(values, n, prev, target)
		if err != nil {
			return nil, nil, fmt.Errorf("year %d: %w", t, err)
		}

		var invested, withdrawn float64
		switch PhaseForYear(t, params.YearsBeforeRetirement) {
		case domain.Accumulation:
			invested = installment
		case domain.Decumulation:
			withdrawn = withdrawal
		}

		for s := range next {
			next[s] = prev[s] + growth[s] + invested - withdrawn
		}
		matrix.SetRow(t, next)

		meanGrowth := stat.Mean(growth, nil)
		sort.Float64s(growth)
		metadata.Append(invested, withdrawn, meanGrowth, quantileSorted(growth, 0.5))
	}

	be.Logger.Debugf("simulated %d years x %d scenarios", years, n)
	return matrix, metadata, nil
}
