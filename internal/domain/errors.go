package domain

import "errors"

// Sentinel errors shared by the loader, the simulation core and the outer surfaces.
// Callers match them with errors.Is; the detection point wraps them with context.
var (
	// ErrInvalidInput covers malformed parameters (negative counts, NaN targets, size mismatches).
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptySeries is returned when there are no historical observations to draw from.
	ErrEmptySeries = errors.New("historical return series is empty")
	// ErrZeroVariance is returned when a sample cannot be standardized because its spread is zero.
	ErrZeroVariance = errors.New("return sample has zero variance")
	// ErrNumericDegeneracy flags NaN or infinite values produced during aggregation.
	ErrNumericDegeneracy = errors.New("numeric degeneracy")
)

// IsInputError reports whether err was caused by bad caller input rather than an internal fault.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrEmptySeries) || errors.Is(err, ErrZeroVariance)
}
