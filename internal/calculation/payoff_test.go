package calculation

import (
	"testing"

	"github.com/rpgo/bootstrap-sim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestSimulatePayoffs_MatchesTarget(t *testing.T) {
	values := sampleSeries().Values()
	wealth := defaultTestParameters.startValue
	n := defaultTestParameters.numScenarios

	for name, target := range targets() {
		t.Run(name, func(t *testing.T) {
			engine := NewBootstrapEngine(2024)
			payoffs, err := engine.SimulatePayoffsScalar(values, n, wealth, target)
			require.NoError(t, err)
			require.Len(t, payoffs, n)

			mean, std := stat.PopMeanStdDev(payoffs, nil)
			assert.InDelta(t, target.Mean*wealth, mean, 1e-6*wealth)
			assert.InDelta(t, target.Volatility*wealth, std, 1e-6*wealth)
		})
	}
}

func TestSimulatePayoffs_VectorWealth(t *testing.T) {
	values := sampleSeries().Values()
	target := domain.ReturnTarget{Mean: 0.05, Volatility: 0.2}

	wealth := make([]float64, 200)
	for i := range wealth {
		wealth[i] = float64(1000 * (i + 1))
	}

	payoffs, err := NewBootstrapEngine(7).SimulatePayoffs(values, len(wealth), wealth, target)
	require.NoError(t, err)

	implied := make([]float64, len(payoffs))
	for i := range payoffs {
		implied[i] = payoffs[i] / wealth[i]
	}
	mean, std := stat.PopMeanStdDev(implied, nil)
	assert.InDelta(t, target.Mean, mean, 1e-9)
	assert.InDelta(t, target.Volatility, std, 1e-9)
}

func TestSimulatePayoffs_FloorsAtTotalLoss(t *testing.T) {
	// Alternating draws of 0 and 1 standardize to exactly -1 and +1.
	engine := NewBootstrapEngineWithSource(&cyclingSource{indices: []int{0, 1}})
	target := domain.ReturnTarget{Mean: 0, Volatility: 3}

	payoffs, err := engine.SimulatePayoffsScalar([]float64{0, 1}, 4, 100, target)
	require.NoError(t, err)
	assert.Equal(t, []float64{-100, 300, -100, 300}, payoffs)
}

func TestSimulatePayoffs_NoUpperClip(t *testing.T) {
	engine := NewBootstrapEngineWithSource(&cyclingSource{indices: []int{0, 1}})
	target := domain.ReturnTarget{Mean: 5, Volatility: 2}

	payoffs, err := engine.SimulatePayoffsScalar([]float64{0, 1}, 2, 10, target)
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 70}, payoffs)
}

func TestSimulatePayoffs_NegativeWealth(t *testing.T) {
	engine := NewBootstrapEngineWithSource(&cyclingSource{indices: []int{0, 1}})
	target := domain.ReturnTarget{Mean: 0.1, Volatility: 0}

	payoffs, err := engine.SimulatePayoffs([]float64{0, 1}, 2, []float64{-1000, 500}, target)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-100, 50}, payoffs, 1e-9)
}

func TestSimulatePayoffs_ZeroVariance(t *testing.T) {
	target := domain.ReturnTarget{Mean: 0.05, Volatility: 0.2}

	t.Run("constant history", func(t *testing.T) {
		_, err := NewBootstrapEngine(1).SimulatePayoffsScalar([]float64{0.1, 0.1, 0.1}, 50, 1, target)
		assert.ErrorIs(t, err, domain.ErrZeroVariance)
	})

	t.Run("single scenario", func(t *testing.T) {
		_, err := NewBootstrapEngine(1).SimulatePayoffsScalar(sampleSeries().Values(), 1, 1, target)
		assert.ErrorIs(t, err, domain.ErrZeroVariance)
	})

	t.Run("degenerate draw from varied history", func(t *testing.T) {
		engine := NewBootstrapEngineWithSource(&cyclingSource{indices: []int{3}})
		_, err := engine.SimulatePayoffsScalar(sampleSeries().Values(), 10, 1, target)
		assert.ErrorIs(t, err, domain.ErrZeroVariance)
	})
}

func TestSimulatePayoffs_InvalidInput(t *testing.T) {
	values := sampleSeries().Values()
	valid := domain.ReturnTarget{Mean: 0.05, Volatility: 0.2}
	engine := NewBootstrapEngine(3)

	tests := []struct {
		name   string
		n      int
		wealth []float64
		target domain.ReturnTarget
	}{
		{"zero scenarios", 0, []float64{1}, valid},
		{"negative scenarios", -5, []float64{1}, valid},
		{"wealth length mismatch", 10, []float64{1, 2, 3}, valid},
		{"negative volatility", 10, []float64{1}, domain.ReturnTarget{Mean: 0.05, Volatility: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.SimulatePayoffs(values, tt.n, tt.wealth, tt.target)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := engine.SimulatePayoffsScalar(nil, 10, 1, valid)
	assert.ErrorIs(t, err, domain.ErrEmptySeries)
}
