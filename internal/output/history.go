package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/bootstrap-sim/internal/calculation"
	"github.com/rpgo/bootstrap-sim/pkg/dateutil"
)

// FormatHistorySummary renders the derived statistics of a return series,
// followed by any data-quality findings.
func FormatHistorySummary(stats calculation.SeriesStatistics, issues []string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Observations: %d (%s)\n", stats.Count, dateutil.FormatRange(stats.FirstDate, stats.LastDate))
	fmt.Fprintf(&buf, "Mean:         %s\n", formatRate(stats.Mean))
	fmt.Fprintf(&buf, "Median:       %s\n", formatRate(stats.Median))
	fmt.Fprintf(&buf, "Volatility:   %s\n", formatRate(stats.Volatility))
	fmt.Fprintf(&buf, "Skewness:     %.3f\n", stats.Skewness)
	fmt.Fprintf(&buf, "Worst year:   %s\n", formatRate(stats.Min))
	fmt.Fprintf(&buf, "Best year:    %s\n", formatRate(stats.Max))

	if len(issues) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "DATA QUALITY WARNINGS:")
		for _, issue := range issues {
			fmt.Fprintf(&buf, "  - %s\n", issue)
		}
	}
	return buf.String()
}
