package calculation

import (
	"fmt"
	"math"

	"github.com/rpgo/bootstrap-sim/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// maxLoss is the worst possible one-year return: losing the whole position.
const maxLoss = -1.0

// SimulatePayoffs converts n bootstrapped returns into next-period dollar payoffs.
//
// The drawn sample is standardized with its own mean and population standard
// deviation, rescaled to the target, floored at -100% and multiplied by wealth.
// A single wealth value is broadcast; otherwise wealth must hold n values and is
// applied position-wise.
func (be *BootstrapEngine) SimulatePayoffs(values []float64, n int, wealth []float64, target domain.ReturnTarget) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: number of scenarios must be positive (got %d)", domain.ErrInvalidInput, n)
	}
	if len(wealth) != 1 && len(wealth) != n {
		return nil, fmt.Errorf("%w: wealth has %d values, want 1 or %d", domain.ErrInvalidInput, len(wealth), n)
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	returns, err := be.Resample(values, n)
	if err != nil {
		return nil, err
	}

	if floats.Min(returns) == floats.Max(returns) {
		return nil, fmt.Errorf("%w: all %d drawn returns equal %v", domain.ErrZeroVariance, n, returns[0])
	}
	mean, std := stat.PopMeanStdDev(returns, nil)
	if std == 0 || math.IsNaN(std) {
		return nil, fmt.Errorf("%w: drawn sample standard deviation is %v", domain.ErrZeroVariance, std)
	}

	for i, r := range returns {
		scaled := (r-mean)/std*target.Volatility + target.Mean
		if scaled < maxLoss {
			scaled = maxLoss
		}
		w := wealth[0]
		if len(wealth) > 1 {
			w = wealth[i]
		}
		returns[i] = scaled * w
	}
	return returns, nil
}

// SimulatePayoffsScalar is SimulatePayoffs with the same wealth for every scenario.
func (be *BootstrapEngine) SimulatePayoffsScalar(values []float64, n int, wealth float64, target domain.ReturnTarget) ([]float64, error) {
	return be.SimulatePayoffs(values, n, []float64{wealth}, target)
}
