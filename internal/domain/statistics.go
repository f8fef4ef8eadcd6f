package domain

import (
	"fmt"
	"math"
)

// YearStatistics summarizes the cross-section of scenarios for one year.
type YearStatistics struct {
	Year         int     `json:"year" yaml:"year"`
	Mean         float64 `json:"mean" yaml:"mean"`
	Median       float64 `json:"median" yaml:"median"`
	Percentile5  float64 `json:"percentile_5" yaml:"percentile_5"`
	Percentile25 float64 `json:"percentile_25" yaml:"percentile_25"`
	Percentile75 float64 `json:"percentile_75" yaml:"percentile_75"`
	Percentile95 float64 `json:"percentile_95" yaml:"percentile_95"`

	// Running sums over the year metadata
	TotalInvested     float64 `json:"total_invested" yaml:"total_invested"`
	TotalWithdrawn    float64 `json:"total_withdrawn" yaml:"total_withdrawn"`
	TotalMeanReturn   float64 `json:"total_mean_return" yaml:"total_mean_return"`
	TotalMedianReturn float64 `json:"total_median_return" yaml:"total_median_return"`

	// Raw year metadata
	InvestedPerYear       float64 `json:"invested_per_year" yaml:"invested_per_year"`
	WithdrawnPerYear      float64 `json:"withdrawn_per_year" yaml:"withdrawn_per_year"`
	MeanEarningsPerYear   float64 `json:"mean_earnings_per_year" yaml:"mean_earnings_per_year"`
	MedianEarningsPerYear float64 `json:"median_earnings_per_year" yaml:"median_earnings_per_year"`
}

// statisticsColumns lists the table columns in display order.
var statisticsColumns = []string{
	"Mean",
	"Median",
	"Percentile 5",
	"Percentile 25",
	"Percentile 75",
	"Percentile 95",
	"Total invested",
	"Total withdrawn",
	"Total mean return",
	"Total median return",
	"Invested per year",
	"Withdrawn per year",
	"Mean earnings per year",
	"Median earnings per year",
}

// values returns the numeric cells in column order.
func (ys YearStatistics) values() []float64 {
	return []float64{
		ys.Mean, ys.Median,
		ys.Percentile5, ys.Percentile25, ys.Percentile75, ys.Percentile95,
		ys.TotalInvested, ys.TotalWithdrawn, ys.TotalMeanReturn, ys.TotalMedianReturn,
		ys.InvestedPerYear, ys.WithdrawnPerYear, ys.MeanEarningsPerYear, ys.MedianEarningsPerYear,
	}
}

// StatisticsTable is the per-year summary consumed by formatters and the API.
type StatisticsTable struct {
	Rows []YearStatistics `json:"rows" yaml:"rows"`
}

// Columns returns the canonical column names, excluding the Year index.
func (st *StatisticsTable) Columns() []string {
	out := make([]string, len(statisticsColumns))
	copy(out, statisticsColumns)
	return out
}

// Record returns row i's values in Columns order.
func (st *StatisticsTable) Record(i int) []float64 { return st.Rows[i].values() }

// Len returns the number of rows (T+1).
func (st *StatisticsTable) Len() int { return len(st.Rows) }

// Final returns the last simulated year.
func (st *StatisticsTable) Final() YearStatistics { return st.Rows[len(st.Rows)-1] }

// Validate reports the first NaN or infinite cell.
func (st *StatisticsTable) Validate() error {
	for i, row := range st.Rows {
		for j, v := range row.values() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: year %d column %q is %v", ErrNumericDegeneracy, i, statisticsColumns[j], v)
			}
		}
	}
	return nil
}

// RiskSummary is the end-of-horizon view of the distribution.
type RiskSummary struct {
	Year   int     `json:"year" yaml:"year"`
	Median float64 `json:"median" yaml:"median"`
	VaR75  float64 `json:"var_75" yaml:"var_75"` // 25th percentile
	VaR95  float64 `json:"var_95" yaml:"var_95"` // 5th percentile
}

// Risk returns the final-year median and value-at-risk levels.
func (st *StatisticsTable) Risk() RiskSummary {
	f := st.Final()
	return RiskSummary{Year: f.Year, Median: f.Median, VaR75: f.Percentile25, VaR95: f.Percentile5}
}
