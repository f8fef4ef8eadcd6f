package calculation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rpgo/bootstrap-sim/internal/domain"
	"github.com/rpgo/bootstrap-sim/pkg/dateutil"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HistoricalDataLoader reads a yearly real-return series from CSV.
//
// The file must have a "Date" column and exactly one value column. Blank and
// NaN values are dropped; rows are ordered chronologically before the optional
// StartDate filter is applied.
type HistoricalDataLoader struct {
	DataPath  string
	StartDate time.Time
	Logger    Logger
}

// NewHistoricalDataLoader creates a loader for the CSV at dataPath.
func NewHistoricalDataLoader(dataPath string) *HistoricalDataLoader {
	return &HistoricalDataLoader{
		DataPath: dataPath,
		Logger:   NopLogger{},
	}
}

// Load reads DataPath.
func (hdl *HistoricalDataLoader) Load() (*domain.ReturnSeries, error) {
	file, err := os.Open(hdl.DataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", hdl.DataPath, err)
	}
	defer file.Close()

	series, err := hdl.LoadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", hdl.DataPath, err)
	}
	return series, nil
}

// LoadFrom parses CSV content from r.
func (hdl *HistoricalDataLoader) LoadFrom(r io.Reader) (*domain.ReturnSeries, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	dateCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "date") {
			dateCol = i
			break
		}
	}
	if dateCol < 0 {
		return nil, fmt.Errorf("invalid CSV format: no Date column in header %v", header)
	}
	if len(header) != 2 {
		return nil, fmt.Errorf("invalid CSV format: expected one return column besides Date, got %d", len(header)-1)
	}
	valueCol := 1 - dateCol

	var observations []domain.ReturnObservation
	line := 1
	dropped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read data row %d: %w", line, err)
		}

		raw := strings.TrimSpace(record[valueCol])
		if raw == "" || strings.EqualFold(raw, "nan") {
			dropped++
			continue
		}

		date, err := dateutil.ParseObservationDate(record[dateCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid return %q: %w", line, raw, err)
		}

		observations = append(observations, domain.ReturnObservation{Date: date, Return: value})
	}

	if dropped > 0 {
		hdl.logger().Debugf("dropped %d rows with missing returns", dropped)
	}
	if len(observations) == 0 {
		return nil, fmt.Errorf("%w: no valid data points found", domain.ErrEmptySeries)
	}

	sort.SliceStable(observations, func(i, j int) bool { return observations[i].Date.Before(observations[j].Date) })

	series, err := domain.NewReturnSeries(observations)
	if err != nil {
		return nil, err
	}

	series, err = series.Since(hdl.StartDate)
	if err != nil {
		return nil, err
	}

	hdl.logger().Infof("loaded %d historical returns (%s)", series.Len(), dateutil.FormatRange(series.FirstDate(), series.LastDate()))
	return series, nil
}

func (hdl *HistoricalDataLoader) logger() Logger {
	if hdl.Logger == nil {
		return NopLogger{}
	}
	return hdl.Logger
}

// SeriesStatistics provides a statistical summary of a return series.
type SeriesStatistics struct {
	Count      int       `json:"count" yaml:"count"`
	FirstDate  time.Time `json:"first_date" yaml:"first_date"`
	LastDate   time.Time `json:"last_date" yaml:"last_date"`
	Mean       float64   `json:"mean" yaml:"mean"`
	Volatility float64   `json:"volatility" yaml:"volatility"` // sample standard deviation
	Skewness   float64   `json:"skewness" yaml:"skewness"`
	Median     float64   `json:"median" yaml:"median"`
	Min        float64   `json:"min" yaml:"min"`
	Max        float64   `json:"max" yaml:"max"`
}

// SummarizeSeries computes the derived statistics of a loaded series.
// Volatility is reported as zero for fewer than two observations and
// skewness as zero for fewer than three, where they are undefined.
func SummarizeSeries(series *domain.ReturnSeries) SeriesStatistics {
	if series == nil || series.Len() == 0 {
		return SeriesStatistics{}
	}
	values := series.Values()

	summary := SeriesStatistics{
		Count:     len(values),
		FirstDate: series.FirstDate(),
		LastDate:  series.LastDate(),
		Mean:      stat.Mean(values, nil),
		Median:    Median(values),
		Min:       floats.Min(values),
		Max:       floats.Max(values),
	}
	if len(values) >= 2 {
		summary.Volatility = stat.StdDev(values, nil)
	}
	if len(values) >= 3 && summary.Volatility > 0 {
		if skew := stat.Skew(values, nil); !math.IsNaN(skew) && !math.IsInf(skew, 0) {
			summary.Skewness = skew
		}
	}
	return summary
}

// ValidateDataQuality performs quality checks on a loaded series and returns
// human-readable findings. An empty result means nothing looked suspicious.
func ValidateDataQuality(series *domain.ReturnSeries) []string {
	var issues []string
	if series == nil || series.Len() == 0 {
		return []string{"series is empty"}
	}

	for i := 0; i < series.Len(); i++ {
		obs := series.At(i)
		if obs.Return > 1 {
			issues = append(issues, fmt.Sprintf("Extreme positive return on %s: %.4f", obs.Date.Format("2006-01-02"), obs.Return))
		}
		if obs.Return < -0.5 {
			issues = append(issues, fmt.Sprintf("Extreme negative return on %s: %.4f", obs.Date.Format("2006-01-02"), obs.Return))
		}
		if i > 0 {
			prev := series.At(i - 1).Date
			if gap := dateutil.YearsUntilDate(prev, obs.Date); gap > 1.5 {
				issues = append(issues, fmt.Sprintf("Gap of %.1f years between %s and %s", gap, prev.Format("2006-01-02"), obs.Date.Format("2006-01-02")))
			}
		}
	}

	if values := series.Values(); floats.Min(values) == floats.Max(values) {
		issues = append(issues, "All returns are identical; the series cannot be standardized")
	}
	return issues
}
