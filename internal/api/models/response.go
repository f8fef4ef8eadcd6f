package models

import (
	"github.com/rpgo/bootstrap-sim/internal/calculation"
	"github.com/rpgo/bootstrap-sim/internal/domain"
)

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	Parameters domain.SimulationParameters  `json:"parameters"`
	Target     domain.ReturnTarget          `json:"target"`
	Seed       int64                        `json:"seed,omitempty"`
	History    calculation.SeriesStatistics `json:"history"`
	Risk       domain.RiskSummary           `json:"risk"`
	Columns    []string                     `json:"columns"`
	Statistics []domain.YearStatistics      `json:"statistics"`
	Scenarios  *domain.ScenarioMatrix       `json:"scenarios,omitempty"` // only with include_scenarios
}

// NewSimulateResponse builds the response body for result.
func NewSimulateResponse(result *calculation.SimulationResult, includeScenarios bool) SimulateResponse {
	resp := SimulateResponse{
		Parameters: result.Parameters,
		Target:     result.Target,
		Seed:       result.Seed,
		History:    result.History,
		Risk:       result.Table.Risk(),
		Columns:    result.Table.Columns(),
		Statistics: result.Table.Rows,
	}
	if includeScenarios {
		resp.Scenarios = result.Matrix
	}
	return resp
}

// HistoryResponse describes the loaded historical return series
type HistoryResponse struct {
	Summary      calculation.SeriesStatistics `json:"summary"`
	Issues       []string                     `json:"issues"`
	Observations []domain.ReturnObservation   `json:"observations,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
