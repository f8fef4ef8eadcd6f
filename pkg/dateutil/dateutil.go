package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// observationLayouts are tried in order when parsing dates from return files.
var observationLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// ParseObservationDate parses the date column of a historical return file.
// A bare four-digit year is read as the last day of that year, which is how
// annual return series are stamped.
func ParseObservationDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if len(s) == 4 {
		if year, err := strconv.Atoi(s); err == nil {
			return YearEnd(year), nil
		}
	}

	for _, layout := range observationLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// YearEnd returns midnight UTC on December 31 of year.
func YearEnd(year int) time.Time {
	return time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
}

// YearsUntilDate calculates the number of years between two dates
func YearsUntilDate(fromDate, toDate time.Time) float64 {
	duration := toDate.Sub(fromDate)
	return duration.Hours() / 24 / 365.25
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// FormatRange renders a date span as "YYYY-MM-DD to YYYY-MM-DD".
func FormatRange(from, to time.Time) string {
	return from.Format("2006-01-02") + " to " + to.Format("2006-01-02")
}
