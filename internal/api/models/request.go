package models

import (
	"fmt"

	"github.com/rpgo/bootstrap-sim/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxScenarioCells caps scenarios x (years+1) for one API request, about
// 160 MB of float64 values.
const MaxScenarioCells = 20_000_000

// CheckSize rejects plans whose scenario matrix would exceed MaxScenarioCells.
func CheckSize(p domain.SimulationParameters) error {
	cells := int64(p.NumScenarios) * int64(p.TotalYears()+1)
	if cells > MaxScenarioCells {
		return fmt.Errorf("%w: %d scenarios over %d years need %d values, the limit is %d; lower num_scenarios or the horizon",
			domain.ErrInvalidInput, p.NumScenarios, p.TotalYears(), cells, MaxScenarioCells)
	}
	return nil
}

// SimulateRequest represents the request body for running a simulation.
// Omitted fields fall back to the server's default plan.
type SimulateRequest struct {
	StartValue            *float64 `json:"start_value" binding:"omitempty,gte=0"`
	YearsBeforeRetirement *int     `json:"years_before_retirement" binding:"omitempty,gte=0,lte=100"`
	YearsAfterRetirement  *int     `json:"years_after_retirement" binding:"omitempty,gte=0,lte=100"`
	YearlyInstallment     *float64 `json:"yearly_installment" binding:"omitempty,gte=0"`
	YearlyWithdrawal      *float64 `json:"yearly_withdrawal" binding:"omitempty,gte=0"`
	NumScenarios          *int     `json:"num_scenarios" binding:"omitempty,gte=2,lte=1000000"`
	TargetMean            *float64 `json:"target_mean,omitempty" binding:"omitempty,gt=-1"`
	TargetVolatility      *float64 `json:"target_volatility,omitempty" binding:"omitempty,gte=0"`
	Seed                  int64    `json:"seed,omitempty"`

	StartDate        string `json:"start_date,omitempty"` // YYYY-MM-DD; empty uses the server default
	IncludeScenarios bool   `json:"include_scenarios,omitempty"`
}

// Parameters overlays the request onto defaults.
func (r SimulateRequest) Parameters(defaults domain.SimulationParameters) domain.SimulationParameters {
	p := defaults
	if r.StartValue != nil {
		p.StartValue = decimal.NewFromFloat(*r.StartValue)
	}
	if r.YearsBeforeRetirement != nil {
		p.YearsBeforeRetirement = *r.YearsBeforeRetirement
	}
	if r.YearsAfterRetirement != nil {
		p.YearsAfterRetirement = *r.YearsAfterRetirement
	}
	if r.YearlyInstallment != nil {
		p.YearlyInstallment = decimal.NewFromFloat(*r.YearlyInstallment)
	}
	if r.YearlyWithdrawal != nil {
		p.YearlyWithdrawal = decimal.NewFromFloat(*r.YearlyWithdrawal)
	}
	if r.NumScenarios != nil {
		p.NumScenarios = *r.NumScenarios
	}
	if r.TargetMean != nil {
		m := decimal.NewFromFloat(*r.TargetMean)
		p.TargetMean = &m
	}
	if r.TargetVolatility != nil {
		v := decimal.NewFromFloat(*r.TargetVolatility)
		p.TargetVolatility = &v
	}
	if r.Seed != 0 {
		p.Seed = r.Seed
	}
	return p
}
