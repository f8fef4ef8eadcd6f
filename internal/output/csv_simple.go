package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rpgo/bootstrap-sim/internal/calculation"
)

// CSVSummarizer exports the statistics table, one row per year, using the
// canonical column names.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *calculation.SimulationResult) ([]byte, error) {
	if result == nil || result.Table == nil {
		return nil, fmt.Errorf("csv: empty simulation result")
	}
	table := result.Table

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := append([]string{"Year"}, table.Columns()...)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, row := range table.Rows {
		record := []string{strconv.Itoa(row.Year)}
		for _, v := range table.Record(i) {
			record = append(record, formatCell(v))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatCell(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
