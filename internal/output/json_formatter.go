package output

import (
	"encoding/json"
	"fmt"

	"github.com/rpgo/bootstrap-sim/internal/calculation"
	"github.com/rpgo/bootstrap-sim/internal/domain"
	"gopkg.in/yaml.v3"
)

// reportDocument is the serialized shape shared by the JSON and YAML formatters.
type reportDocument struct {
	Parameters  domain.SimulationParameters  `json:"parameters" yaml:"parameters"`
	Target      domain.ReturnTarget          `json:"target" yaml:"target"`
	Seed        int64                        `json:"seed,omitempty" yaml:"seed,omitempty"`
	History     calculation.SeriesStatistics `json:"history" yaml:"history"`
	Assumptions []string                     `json:"assumptions" yaml:"assumptions"`
	Risk        domain.RiskSummary           `json:"risk" yaml:"risk"`
	Statistics  []domain.YearStatistics      `json:"statistics" yaml:"statistics"`
	Scenarios   *domain.ScenarioMatrix       `json:"scenarios,omitempty" yaml:"-"`
}

func newReportDocument(result *calculation.SimulationResult, includeScenarios bool) (*reportDocument, error) {
	if result == nil || result.Table == nil || result.Table.Len() == 0 {
		return nil, fmt.Errorf("empty simulation result")
	}
	doc := &reportDocument{
		Parameters:  result.Parameters,
		Target:      result.Target,
		Seed:        result.Seed,
		History:     result.History,
		Assumptions: GenerateAssumptions(result),
		Risk:        result.Table.Risk(),
		Statistics:  result.Table.Rows,
	}
	if includeScenarios {
		doc.Scenarios = result.Matrix
	}
	return doc, nil
}

// JSONFormatter serializes the simulation as pretty-printed JSON. The raw
// scenario matrix is only included when IncludeScenarios is set.
type JSONFormatter struct {
	IncludeScenarios bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *calculation.SimulationResult) ([]byte, error) {
	doc, err := newReportDocument(result, j.IncludeScenarios)
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// YAMLFormatter serializes the simulation summary as YAML.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(result *calculation.SimulationResult) ([]byte, error) {
	doc, err := newReportDocument(result, false)
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return yaml.Marshal(doc)
}
