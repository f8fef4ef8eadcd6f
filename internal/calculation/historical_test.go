package calculation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpgo/bootstrap-sim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReturnsCSV = `Date,0
2013-12-31,0.25
2014-12-31,0.42
2015-12-31,-0.25
2016-12-31,-0.33
2017-12-31,0.02
`

// createTestDataFile writes content to a CSV under dir and returns its path.
func createTestDataFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "real_returns.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestHistoricalDataLoader_Load(t *testing.T) {
	path := createTestDataFile(t, t.TempDir(), sampleReturnsCSV)

	series, err := NewHistoricalDataLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, 5, series.Len())
	assert.Equal(t, []float64{0.25, 0.42, -0.25, -0.33, 0.02}, series.Values())
	assert.True(t, series.FirstDate().Equal(time.Date(2013, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.True(t, series.LastDate().Equal(time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, sampleSeries().Fingerprint(), series.Fingerprint())
}

func TestHistoricalDataLoader_StartDate(t *testing.T) {
	loader := NewHistoricalDataLoader("")
	loader.StartDate = time.Date(2015, 6, 30, 0, 0, 0, 0, time.UTC)

	series, err := loader.LoadFrom(strings.NewReader(sampleReturnsCSV))
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.25, -0.33, 0.02}, series.Values())

	loader.StartDate = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = loader.LoadFrom(strings.NewReader(sampleReturnsCSV))
	assert.ErrorIs(t, err, domain.ErrEmptySeries)
}

func TestHistoricalDataLoader_DropsMissingAndSorts(t *testing.T) {
	csv := "Date,real_return\n" +
		"2016,-0.33\n" +
		"2013,0.25\n" +
		"2014,\n" +
		"2015,NaN\n" +
		"2017,0.02\n"

	series, err := NewHistoricalDataLoader("").LoadFrom(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, -0.33, 0.02}, series.Values())
}

func TestHistoricalDataLoader_DateColumnSecond(t *testing.T) {
	csv := "value,date\n0.1,2001-12-31\n0.2,2002-12-31\n"
	series, err := NewHistoricalDataLoader("").LoadFrom(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, series.Values())
}

func TestHistoricalDataLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"more than one return column", "Date,real,nominal\n2013-12-31,0.1,0.12\n", nil},
		{"no date column", "Year,0\n2013,0.1\n", nil},
		{"only header", "Date,0\n", domain.ErrEmptySeries},
		{"all missing", "Date,0\n2013-12-31,\n2014-12-31,nan\n", domain.ErrEmptySeries},
		{"bad date", "Date,0\nyesterday,0.1\n", nil},
		{"bad value", "Date,0\n2013-12-31,ten percent\n", nil},
		{"duplicate date", "Date,0\n2013-12-31,0.1\n2013-12-31,0.2\n", domain.ErrInvalidInput},
		{"empty file", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHistoricalDataLoader("").LoadFrom(strings.NewReader(tt.content))
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}

	_, err := NewHistoricalDataLoader(filepath.Join(t.TempDir(), "missing.csv")).Load()
	assert.Error(t, err)
}

func TestSummarizeSeries(t *testing.T) {
	summary := SummarizeSeries(sampleSeries())

	assert.Equal(t, 5, summary.Count)
	assert.InDelta(t, 0.022, summary.Mean, 1e-12)
	assert.InDelta(t, 0.319484, summary.Volatility, 1e-6)
	assert.InDelta(t, 0.02, summary.Median, 1e-12)
	assert.Equal(t, -0.33, summary.Min)
	assert.Equal(t, 0.42, summary.Max)
	assert.Greater(t, summary.Skewness, 0.0)
	assert.True(t, summary.FirstDate.Equal(time.Date(2013, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.True(t, summary.LastDate.Equal(time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestSummarizeSeries_ShortSeries(t *testing.T) {
	one := domain.MustReturnSeries(time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), 0.1)
	summary := SummarizeSeries(one)
	assert.Equal(t, 1, summary.Count)
	assert.Zero(t, summary.Volatility)
	assert.Zero(t, summary.Skewness)

	assert.Equal(t, SeriesStatistics{}, SummarizeSeries(nil))
}

func TestValidateDataQuality(t *testing.T) {
	assert.Empty(t, ValidateDataQuality(sampleSeries()))

	obs := []domain.ReturnObservation{
		{Date: time.Date(1929, 12, 31, 0, 0, 0, 0, time.UTC), Return: -0.6},
		{Date: time.Date(1930, 12, 31, 0, 0, 0, 0, time.UTC), Return: 0.1},
		{Date: time.Date(1935, 12, 31, 0, 0, 0, 0, time.UTC), Return: 1.2},
	}
	series, err := domain.NewReturnSeries(obs)
	require.NoError(t, err)

	issues := ValidateDataQuality(series)
	require.Len(t, issues, 3)
	assert.Contains(t, issues[0], "Extreme negative return")
	assert.Contains(t, issues[1], "Extreme positive return")
	assert.Contains(t, issues[2], "Gap of 5.0 years")

	flat := domain.MustReturnSeries(time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), 0.05, 0.05)
	assert.Contains(t, ValidateDataQuality(flat), "All returns are identical; the series cannot be standardized")
}
