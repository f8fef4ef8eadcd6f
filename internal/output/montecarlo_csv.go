package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rpgo/bootstrap-sim/internal/calculation"
)

// ScenarioCSVExporter dumps the raw scenario matrix: one row per year and one
// column per simulated path. Meant for debugging and external plotting.
type ScenarioCSVExporter struct{}

func (s ScenarioCSVExporter) Name() string { return "scenarios-csv" }

func (s ScenarioCSVExporter) Format(result *calculation.SimulationResult) ([]byte, error) {
	if result == nil || result.Matrix == nil {
		return nil, fmt.Errorf("scenarios-csv: scenario matrix not available")
	}
	m := result.Matrix

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := make([]string, 0, m.Scenarios()+1)
	header = append(header, "Year")
	for s := 1; s <= m.Scenarios(); s++ {
		header = append(header, "Scenario "+strconv.Itoa(s))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	record := make([]string, m.Scenarios()+1)
	for t := 0; t <= m.Years(); t++ {
		record[0] = strconv.Itoa(t)
		for s, v := range m.RawRow(t) {
			record[s+1] = formatCell(v)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
