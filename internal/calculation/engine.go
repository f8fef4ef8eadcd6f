package calculation

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rpgo/bootstrap-sim/internal/domain"
)

// BootstrapEngine runs bootstrapped Monte Carlo simulations of a retirement plan.
// All randomness flows through Source, so a seeded source makes runs reproducible.
type BootstrapEngine struct {
	Source  RandomSource
	Logger  Logger
	Workers int // Upper bound on goroutines used by the statistics stage
	Seed    int64
}

// NewBootstrapEngine creates an engine with a seeded source. A zero seed is
// replaced by a fresh one from seedFunc.
func NewBootstrapEngine(seed int64) *BootstrapEngine {
	if seed == 0 {
		seed = seedFunc()
	}
	be := NewBootstrapEngineWithSource(NewSeededSource(seed))
	be.Seed = seed
	return be
}

// NewBootstrapEngineWithSource creates an engine drawing from src.
func NewBootstrapEngineWithSource(src RandomSource) *BootstrapEngine {
	return &BootstrapEngine{
		Source:  src,
		Logger:  NopLogger{},
		Workers: runtime.GOMAXPROCS(0),
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (be *BootstrapEngine) SetLogger(l Logger) {
	if l == nil {
		be.Logger = NopLogger{}
		return
	}
	be.Logger = l
}

// SimulationResult bundles everything one simulation run produces.
type SimulationResult struct {
	Parameters domain.SimulationParameters `json:"parameters" yaml:"parameters"`
	Target     domain.ReturnTarget         `json:"target" yaml:"target"`
	Seed       int64                       `json:"seed,omitempty" yaml:"seed,omitempty"`
	History    SeriesStatistics            `json:"history" yaml:"history"`
	Table      *domain.StatisticsTable     `json:"statistics" yaml:"statistics"`
	Metadata   *domain.YearMetadata        `json:"-" yaml:"-"`
	Matrix     *domain.ScenarioMatrix      `json:"scenarios,omitempty" yaml:"-"`
}

// WithoutScenarios returns a shallow copy of r that drops the scenario matrix,
// which holds (T+1) x N values and dwarfs everything else in the result.
func (r *SimulationResult) WithoutScenarios() *SimulationResult {
	c := *r
	c.Matrix = nil
	return &c
}

// SimulateAndStats simulates the plan described by params and reduces the
// scenario matrix to per-year statistics. Unset target overrides fall back to
// the historical series' mean and volatility.
func (be *BootstrapEngine) SimulateAndStats(series *domain.ReturnSeries, params domain.SimulationParameters) (*SimulationResult, error) {
	return be.SimulateAndStatsContext(context.Background(), series, params)
}

// SimulateAndStatsContext is SimulateAndStats that stops between simulated
// years once ctx is done. The error then wraps ctx.Err().
func (be *BootstrapEngine) SimulateAndStatsContext(ctx context.Context, series *domain.ReturnSeries, params domain.SimulationParameters) (*SimulationResult, error) {
	if series == nil || series.Len() == 0 {
		return nil, domain.ErrEmptySeries
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	history := SummarizeSeries(series)
	target := params.ResolveTarget(history.Mean, history.Volatility)

	be.Logger.Infof("simulating %d scenarios over %d years (mean %.4f, volatility %.4f, %d observations)",
		params.NumScenarios, params.TotalYears(), target.Mean, target.Volatility, series.Len())

	matrix, metadata, err := be.SimulatePortfolioValuesContext(ctx, series, params, target)
	if err != nil {
		return nil, fmt.Errorf("path simulation failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := computeStatistics(matrix, metadata, be.Workers)
	if err != nil {
		return nil, fmt.Errorf("statistics aggregation failed: %w", err)
	}

	final := table.Final()
	be.Logger.Debugf("year %d: median %.2f, p5 %.2f, p95 %.2f", final.Year, final.Median, final.Percentile5, final.Percentile95)

	return &SimulationResult{
		Parameters: params,
		Target:     target,
		Seed:       be.Seed,
		History:    history,
		Table:      table,
		Metadata:   metadata,
		Matrix:     matrix,
	}, nil
}
