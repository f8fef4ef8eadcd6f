package domain

import (
	"encoding/json"

	"gonum.org/v1/gonum/mat"
)

// ScenarioMatrix holds simulated portfolio values indexed by (year, scenario).
// Row 0 is the starting value broadcast to every scenario.
type ScenarioMatrix struct {
	values *mat.Dense
}

// NewScenarioMatrix allocates a (years+1) x scenarios matrix and seeds row 0 with start.
func NewScenarioMatrix(years, scenarios int, start float64) *ScenarioMatrix {
	m := mat.NewDense(years+1, scenarios, nil)
	row := m.RawRowView(0)
	for s := range row {
		row[s] = start
	}
	return &ScenarioMatrix{values: m}
}

// Years returns T, the number of simulated years (rows minus the starting row).
func (m *ScenarioMatrix) Years() int {
	r, _ := m.values.Dims()
	return r - 1
}

// Scenarios returns N.
func (m *ScenarioMatrix) Scenarios() int {
	_, c := m.values.Dims()
	return c
}

// At returns the value of scenario s at year t.
func (m *ScenarioMatrix) At(t, s int) float64 { return m.values.At(t, s) }

// Row returns a copy of year t across all scenarios.
func (m *ScenarioMatrix) Row(t int) []float64 { return mat.Row(nil, t, m.values) }

// RawRow returns year t without copying. Callers must not modify it.
func (m *ScenarioMatrix) RawRow(t int) []float64 { return m.values.RawRowView(t) }

// SetRow overwrites year t.
func (m *ScenarioMatrix) SetRow(t int, v []float64) { m.values.SetRow(t, v) }

// MarshalJSON encodes the matrix as an array of year rows.
func (m *ScenarioMatrix) MarshalJSON() ([]byte, error) {
	rows := make([][]float64, m.Years()+1)
	for t := range rows {
		rows[t] = m.Row(t)
	}
	return json.Marshal(rows)
}

// YearMetadata captures the cash flows and cross-sectional earnings per year.
// Index 0 is the starting point and holds zeros.
type YearMetadata struct {
	Invested       []float64 `json:"invested_per_year"`
	Withdrawn      []float64 `json:"withdrawn_per_year"`
	MeanEarnings   []float64 `json:"mean_earnings_per_year"`
	MedianEarnings []float64 `json:"median_earnings_per_year"`
}

// NewYearMetadata returns metadata holding only the zero sentinel for year 0.
func NewYearMetadata(years int) *YearMetadata {
	return &YearMetadata{
		Invested:       make([]float64, 1, years+1),
		Withdrawn:      make([]float64, 1, years+1),
		MeanEarnings:   make([]float64, 1, years+1),
		MedianEarnings: make([]float64, 1, years+1),
	}
}

// Append records one simulated year.
func (md *YearMetadata) Append(invested, withdrawn, meanEarnings, medianEarnings float64) {
	md.Invested = append(md.Invested, invested)
	md.Withdrawn = append(md.Withdrawn, withdrawn)
	md.MeanEarnings = append(md.MeanEarnings, meanEarnings)
	md.MedianEarnings = append(md.MedianEarnings, medianEarnings)
}

// Len returns the number of years recorded, including year 0.
func (md *YearMetadata) Len() int { return len(md.Invested) }

// Consistent reports whether all four series have the same length.
func (md *YearMetadata) Consistent() bool {
	n := len(md.Invested)
	return len(md.Withdrawn) == n && len(md.MeanEarnings) == n && len(md.MedianEarnings) == n
}
