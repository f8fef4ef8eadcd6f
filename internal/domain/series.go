package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"time"
)

// ReturnObservation is a single dated real return (0.053 = +5.3%).
type ReturnObservation struct {
	Date   time.Time `json:"date" yaml:"date"`
	Return float64   `json:"return" yaml:"return"`
}

// ReturnSeries is an immutable, chronologically ordered set of historical returns.
// The simulation core only ever reads from it.
type ReturnSeries struct {
	observations []ReturnObservation
	fingerprint  string
}

// NewReturnSeries validates and copies the observations. Dates must be strictly
// increasing and every return must be finite.
func NewReturnSeries(observations []ReturnObservation) (*ReturnSeries, error) {
	if len(observations) == 0 {
		return nil, ErrEmptySeries
	}

	obs := make([]ReturnObservation, len(observations))
	copy(obs, observations)

	for i, o := range obs {
		if math.IsNaN(o.Return) || math.IsInf(o.Return, 0) {
			return nil, fmt.Errorf("%w: observation %d (%s) has non-finite return", ErrInvalidInput, i, o.Date.Format("2006-01-02"))
		}
		if i > 0 && !o.Date.After(obs[i-1].Date) {
			return nil, fmt.Errorf("%w: dates must be strictly increasing (%s follows %s)",
				ErrInvalidInput, o.Date.Format("2006-01-02"), obs[i-1].Date.Format("2006-01-02"))
		}
	}

	return &ReturnSeries{observations: obs, fingerprint: fingerprint(obs)}, nil
}

// MustReturnSeries builds a series from bare returns dated one year apart ending
// at the given date. Intended for tests and examples; it panics on invalid input.
func MustReturnSeries(end time.Time, returns ...float64) *ReturnSeries {
	obs := make([]ReturnObservation, len(returns))
	for i, r := range returns {
		obs[i] = ReturnObservation{Date: end.AddDate(i-len(returns)+1, 0, 0), Return: r}
	}
	s, err := NewReturnSeries(obs)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of observations.
func (s *ReturnSeries) Len() int { return len(s.observations) }

// At returns the i-th observation.
func (s *ReturnSeries) At(i int) ReturnObservation { return s.observations[i] }

// Values returns a copy of the returns in chronological order.
func (s *ReturnSeries) Values() []float64 {
	out := make([]float64, len(s.observations))
	for i, o := range s.observations {
		out[i] = o.Return
	}
	return out
}

// Dates returns a copy of the timestamp axis.
func (s *ReturnSeries) Dates() []time.Time {
	out := make([]time.Time, len(s.observations))
	for i, o := range s.observations {
		out[i] = o.Date
	}
	return out
}

// Observations returns a copy of the underlying observations.
func (s *ReturnSeries) Observations() []ReturnObservation {
	out := make([]ReturnObservation, len(s.observations))
	copy(out, s.observations)
	return out
}

// FirstDate returns the earliest observation date.
func (s *ReturnSeries) FirstDate() time.Time { return s.observations[0].Date }

// LastDate returns the latest observation date.
func (s *ReturnSeries) LastDate() time.Time { return s.observations[len(s.observations)-1].Date }

// Since returns the observations dated on or after start. A zero start returns s itself.
func (s *ReturnSeries) Since(start time.Time) (*ReturnSeries, error) {
	if start.IsZero() {
		return s, nil
	}
	for i, o := range s.observations {
		if !o.Date.Before(start) {
			return NewReturnSeries(s.observations[i:])
		}
	}
	return nil, fmt.Errorf("%w: no observations on or after %s", ErrEmptySeries, start.Format("2006-01-02"))
}

// Fingerprint identifies the series by content. Two series with the same dates
// and returns share a fingerprint.
func (s *ReturnSeries) Fingerprint() string { return s.fingerprint }

func fingerprint(obs []ReturnObservation) string {
	h := sha256.New()
	var buf [16]byte
	for _, o := range obs {
		binary.LittleEndian.PutUint64(buf[:8], uint64(o.Date.UnixNano()))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(o.Return))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
