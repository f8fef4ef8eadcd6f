package calculation

import (
	"fmt"

	"github.com/rpgo/bootstrap-sim/internal/domain"
)

// Resample draws n values uniformly at random with replacement from values.
// The draws are returned untransformed.
func (be *BootstrapEngine) Resample(values []float64, n int) ([]float64, error) {
	if len(values) == 0 {
		return nil, domain.ErrEmptySeries
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: sample size cannot be negative (got %d)", domain.ErrInvalidInput, n)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = values[be.Source.IntN(len(values))]
	}
	return out, nil
}
