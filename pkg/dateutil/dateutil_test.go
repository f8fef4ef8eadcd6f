package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObservationDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"ISO date", "2013-12-31", time.Date(2013, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"RFC3339", "2014-12-31T00:00:00Z", time.Date(2014, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"Timestamp", "2015-12-31 00:00:00", time.Date(2015, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"Slashes", "2016/12/31", time.Date(2016, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"US format", "12/31/2017", time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"Bare year", "1949", time.Date(1949, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"Whitespace", "  2018-12-31 ", time.Date(2018, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseObservationDate(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseObservationDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not-a-date", "31.12.2013", "20x3"} {
		_, err := ParseObservationDate(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestYearsUntilDate(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want float64
		tol  float64
	}{
		{"1 year", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), 1.0, 0.01},
		{"2.5 years", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC), 2.5, 0.05},
		{"Year ends", YearEnd(1949), YearEnd(1951), 2.0, 0.01},
		{"Zero", YearEnd(2025), YearEnd(2025), 0.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, YearsUntilDate(tt.from, tt.to), tt.tol)
		})
	}
}

func TestDaysInYear(t *testing.T) {
	assert.Equal(t, 366, DaysInYear(2000))
	assert.Equal(t, 365, DaysInYear(1900))
	assert.Equal(t, 366, DaysInYear(2024))
	assert.Equal(t, 365, DaysInYear(2023))
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "1949-12-31 to 2023-12-31", FormatRange(YearEnd(1949), YearEnd(2023)))
}
