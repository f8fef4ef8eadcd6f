package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/rpgo/bootstrap-sim/internal/calculation"
)

// HTMLFormatter produces a standalone HTML report with the percentile table and a fan chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"amount": formatAmount,
	"rate":   formatRate,
	"pct":    func(share float64) string { return fmt.Sprintf("%.1f%%", share*100) },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// fanSeries is the chart payload: one array per percentile band, indexed by year.
type fanSeries struct {
	Years  []int     `json:"years"`
	P5     []float64 `json:"p5"`
	P25    []float64 `json:"p25"`
	Median []float64 `json:"median"`
	P75    []float64 `json:"p75"`
	P95    []float64 `json:"p95"`
}

func (h HTMLFormatter) Format(result *calculation.SimulationResult) ([]byte, error) {
	if result == nil || result.Table == nil || result.Table.Len() == 0 {
		return nil, fmt.Errorf("html: empty simulation result")
	}

	var chart fanSeries
	for _, row := range result.Table.Rows {
		chart.Years = append(chart.Years, row.Year)
		chart.P5 = append(chart.P5, row.Percentile5)
		chart.P25 = append(chart.P25, row.Percentile25)
		chart.Median = append(chart.Median, row.Median)
		chart.P75 = append(chart.P75, row.Percentile75)
		chart.P95 = append(chart.P95, row.Percentile95)
	}

	data := struct {
		*calculation.SimulationResult
		Outcome     Outcome
		Assumptions []string
		Chart       fanSeries
	}{result, AnalyzeOutcome(result), GenerateAssumptions(result), chart}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
