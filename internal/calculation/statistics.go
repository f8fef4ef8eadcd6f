package calculation

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/rpgo/bootstrap-sim/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// Percentile levels reported for every year.
var percentileLevels = [4]float64{0.05, 0.25, 0.75, 0.95}

// ComputeStatistics reduces the scenario matrix to one row of distributional
// statistics per year. The cumulative columns are running sums over metadata,
// not re-derived from the matrix.
func ComputeStatistics(matrix *domain.ScenarioMatrix, metadata *domain.YearMetadata) (*domain.StatisticsTable, error) {
	return computeStatistics(matrix, metadata, 0)
}

func computeStatistics(matrix *domain.ScenarioMatrix, metadata *domain.YearMetadata, workers int) (*domain.StatisticsTable, error) {
	if matrix == nil || metadata == nil {
		return nil, fmt.Errorf("%w: scenario matrix and metadata are required", domain.ErrInvalidInput)
	}
	rows := matrix.Years() + 1
	if !metadata.Consistent() || metadata.Len() != rows {
		return nil, fmt.Errorf("%w: metadata covers %d years, matrix has %d", domain.ErrInvalidInput, metadata.Len(), rows)
	}
	if workers <= 0 {
		workers = 4
	}

	table := &domain.StatisticsTable{Rows: make([]domain.YearStatistics, rows)}

	// Rows are independent; each goroutine writes only its own slot.
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)
	for t := 0; t < rows; t++ {
		wg.Add(1)
		go func(year int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			table.Rows[year] = summarizeYear(year, matrix.RawRow(year))
		}(t)
	}
	wg.Wait()

	var invested, withdrawn, meanReturn, medianReturn float64
	for t := range table.Rows {
		invested += metadata.Invested[t]
		withdrawn += metadata.Withdrawn[t]
		meanReturn += metadata.MeanEarnings[t]
		medianReturn += metadata.MedianEarnings[t]

		row := &table.Rows[t]
		row.TotalInvested = invested
		row.TotalWithdrawn = withdrawn
		row.TotalMeanReturn = meanReturn
		row.TotalMedianReturn = medianReturn
		row.InvestedPerYear = metadata.Invested[t]
		row.WithdrawnPerYear = metadata.Withdrawn[t]
		row.MeanEarningsPerYear = metadata.MeanEarnings[t]
		row.MedianEarningsPerYear = metadata.MedianEarnings[t]
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func summarizeYear(year int, values []float64) domain.YearStatistics {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return domain.YearStatistics{
		Year:         year,
		Mean:         stat.Mean(values, nil),
		Median:       quantileSorted(sorted, 0.5),
		Percentile5:  quantileSorted(sorted, percentileLevels[0]),
		Percentile25: quantileSorted(sorted, percentileLevels[1]),
		Percentile75: quantileSorted(sorted, percentileLevels[2]),
		Percentile95: quantileSorted(sorted, percentileLevels[3]),
	}
}

// Quantile returns the q-quantile of values using linear interpolation between
// the closest ranks, h = (n-1)q. values need not be sorted.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return quantileSorted(sorted, q)
}

// Median is the 0.5 quantile.
func Median(values []float64) float64 { return Quantile(values, 0.5) }

// quantileSorted expects ascending input. gonum's stat.Quantile only offers
// the empirical and CDF-interpolated estimators, which disagree with the
// closest-ranks definition used for the reported percentiles.
func quantileSorted(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := float64(n-1) * q
	lo := math.Floor(h)
	i := int(lo)
	if i >= n-1 {
		return sorted[n-1]
	}
	if i < 0 {
		return sorted[0]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
