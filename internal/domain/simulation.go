package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MinScenarios is the smallest scenario count that can be simulated. A single
// draw per year has no spread to standardize.
const MinScenarios = 2

// SimulationParameters describes one retirement plan to simulate.
type SimulationParameters struct {
	StartValue            decimal.Decimal `json:"start_value" yaml:"start_value"`
	YearsBeforeRetirement int             `json:"years_before_retirement" yaml:"years_before_retirement"`
	YearsAfterRetirement  int             `json:"years_after_retirement" yaml:"years_after_retirement"`
	YearlyInstallment     decimal.Decimal `json:"yearly_installment" yaml:"yearly_installment"`
	YearlyWithdrawal      decimal.Decimal `json:"yearly_withdrawal" yaml:"yearly_withdrawal"`
	NumScenarios          int             `json:"num_scenarios" yaml:"num_scenarios"`

	// Optional overrides; nil means "use the historical series' statistic".
	TargetMean       *decimal.Decimal `json:"target_mean,omitempty" yaml:"target_mean,omitempty"`
	TargetVolatility *decimal.Decimal `json:"target_volatility,omitempty" yaml:"target_volatility,omitempty"`

	// Seed for the random source; 0 draws a fresh seed.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// TotalYears is T, the number of simulated years after the starting point.
func (p SimulationParameters) TotalYears() int {
	return p.YearsBeforeRetirement + p.YearsAfterRetirement
}

// Validate checks the structural constraints the simulation relies on.
// Start value, installment and withdrawal are expected to be non-negative;
// the signs are left to the configuration and API layers.
func (p SimulationParameters) Validate() error {
	if p.YearsBeforeRetirement < 0 {
		return fmt.Errorf("%w: years before retirement cannot be negative (got %d)", ErrInvalidInput, p.YearsBeforeRetirement)
	}
	if p.YearsAfterRetirement < 0 {
		return fmt.Errorf("%w: years after retirement cannot be negative (got %d)", ErrInvalidInput, p.YearsAfterRetirement)
	}
	if p.NumScenarios < MinScenarios {
		return fmt.Errorf("%w: at least %d scenarios are needed to standardize each year's draw (got %d)", ErrInvalidInput, MinScenarios, p.NumScenarios)
	}
	if p.TargetVolatility != nil && p.TargetVolatility.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: target volatility cannot be negative (got %s)", ErrInvalidInput, p.TargetVolatility)
	}
	return nil
}

// ResolveTarget picks the target mean and volatility, falling back to the given
// historical statistics when no override is set.
func (p SimulationParameters) ResolveTarget(historicalMean, historicalVolatility float64) ReturnTarget {
	t := ReturnTarget{Mean: historicalMean, Volatility: historicalVolatility}
	if p.TargetMean != nil {
		t.Mean = p.TargetMean.InexactFloat64()
	}
	if p.TargetVolatility != nil {
		t.Volatility = p.TargetVolatility.InexactFloat64()
	}
	return t
}

// ReturnTarget is the mean and volatility sampled returns are rescaled to.
type ReturnTarget struct {
	Mean       float64 `json:"mean" yaml:"mean"`
	Volatility float64 `json:"volatility" yaml:"volatility"`
}

// Validate rejects NaN targets and negative volatility.
func (t ReturnTarget) Validate() error {
	if math.IsNaN(t.Mean) || math.IsInf(t.Mean, 0) {
		return fmt.Errorf("%w: target mean must be finite", ErrInvalidInput)
	}
	if math.IsNaN(t.Volatility) || math.IsInf(t.Volatility, 0) || t.Volatility < 0 {
		return fmt.Errorf("%w: target volatility must be finite and non-negative (got %v)", ErrInvalidInput, t.Volatility)
	}
	return nil
}

// Phase is the life-cycle stage a simulated year belongs to.
type Phase int

const (
	// Accumulation years receive the yearly installment.
	Accumulation Phase = iota
	// Decumulation years pay out the yearly withdrawal.
	Decumulation
)

func (p Phase) String() string {
	switch p {
	case Accumulation:
		return "accumulation"
	case Decumulation:
		return "decumulation"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}
