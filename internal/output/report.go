package output

import (
	"fmt"
	"strings"

	"github.com/rpgo/bootstrap-sim/internal/calculation"
)

// GenerateReport writes result in the named format to dir and returns the
// files written. "all" writes the console table plus both CSV exports.
func GenerateReport(result *calculation.SimulationResult, format, dir string) ([]string, error) {
	if result == nil || result.Table == nil {
		return nil, fmt.Errorf("no simulation result to report")
	}

	var formatters []Formatter
	if NormalizeFormatName(format) == "all" {
		formatters = []Formatter{ConsoleVerboseFormatter{}, CSVSummarizer{}, ScenarioCSVExporter{}}
	} else if f := GetFormatterByName(format); f != nil {
		formatters = []Formatter{f}
	} else {
		return nil, UnsupportedFormatError(format)
	}

	var written []string
	for _, f := range formatters {
		name, err := WriteFormatted(f, result, dir, FileExtension(f.Name()))
		if err != nil {
			return written, fmt.Errorf("%s report: %w", f.Name(), err)
		}
		written = append(written, name)
	}
	return written, nil
}

// UnsupportedFormatError wraps ErrUnsupportedFormat with the available choices.
func UnsupportedFormatError(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
