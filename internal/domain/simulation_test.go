package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParameters() SimulationParameters {
	return SimulationParameters{
		StartValue:            decimal.NewFromInt(10000),
		YearsBeforeRetirement: 30,
		YearsAfterRetirement:  20,
		YearlyInstallment:     decimal.NewFromInt(10000),
		YearlyWithdrawal:      decimal.NewFromInt(50000),
		NumScenarios:          1000,
	}
}

func TestSimulationParameters_Validate(t *testing.T) {
	require.NoError(t, validParameters().Validate())

	negVol := decimal.NewFromFloat(-0.1)
	zeroVol := decimal.Zero

	tests := []struct {
		name    string
		mutate  func(*SimulationParameters)
		wantErr bool
	}{
		{"negative years before", func(p *SimulationParameters) { p.YearsBeforeRetirement = -1 }, true},
		{"negative years after", func(p *SimulationParameters) { p.YearsAfterRetirement = -1 }, true},
		{"zero scenarios", func(p *SimulationParameters) { p.NumScenarios = 0 }, true},
		{"single scenario", func(p *SimulationParameters) { p.NumScenarios = 1 }, true},
		{"two scenarios", func(p *SimulationParameters) { p.NumScenarios = 2 }, false},
		{"negative volatility", func(p *SimulationParameters) { p.TargetVolatility = &negVol }, true},
		{"zero volatility", func(p *SimulationParameters) { p.TargetVolatility = &zeroVol }, false},
		{"zero horizon", func(p *SimulationParameters) { p.YearsBeforeRetirement, p.YearsAfterRetirement = 0, 0 }, false},
		{"negative start value", func(p *SimulationParameters) { p.StartValue = decimal.NewFromInt(-5) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParameters()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.True(t, IsInputError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSimulationParameters_ResolveTarget(t *testing.T) {
	p := validParameters()
	assert.Equal(t, 50, p.TotalYears())
	assert.Equal(t, ReturnTarget{Mean: 0.07, Volatility: 0.18}, p.ResolveTarget(0.07, 0.18))

	mean := decimal.NewFromFloat(0.04)
	p.TargetMean = &mean
	assert.Equal(t, ReturnTarget{Mean: 0.04, Volatility: 0.18}, p.ResolveTarget(0.07, 0.18))

	vol := decimal.NewFromFloat(0.3)
	p.TargetVolatility = &vol
	assert.Equal(t, ReturnTarget{Mean: 0.04, Volatility: 0.3}, p.ResolveTarget(0.07, 0.18))
}

func TestReturnTarget_Validate(t *testing.T) {
	assert.NoError(t, ReturnTarget{Mean: -0.02, Volatility: 0}.Validate())
	assert.ErrorIs(t, ReturnTarget{Mean: math.NaN(), Volatility: 0.1}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, ReturnTarget{Mean: 0.05, Volatility: math.Inf(1)}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, ReturnTarget{Mean: 0.05, Volatility: -0.01}.Validate(), ErrInvalidInput)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "accumulation", Accumulation.String())
	assert.Equal(t, "decumulation", Decumulation.String())
	assert.Equal(t, "Phase(7)", Phase(7).String())
}

func TestIsInputError(t *testing.T) {
	assert.True(t, IsInputError(ErrEmptySeries))
	assert.True(t, IsInputError(ErrZeroVariance))
	assert.False(t, IsInputError(ErrNumericDegeneracy))
	assert.False(t, IsInputError(nil))
}
