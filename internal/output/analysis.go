package output

import (
	"github.com/rpgo/bootstrap-sim/internal/calculation"
	"github.com/rpgo/bootstrap-sim/internal/domain"
)

// Outcome condenses a simulation into the figures a saver looks at first.
type Outcome struct {
	Risk domain.RiskSummary
	// SolventShare is the fraction of scenarios ending above zero; -1 when
	// the scenario matrix was not kept.
	SolventShare float64
	// DepletionYear is the first year whose median value is at or below
	// zero, or 0 if the median never runs out.
	DepletionYear int
}

// AnalyzeOutcome extracts the final-year risk figures and depletion signals.
func AnalyzeOutcome(result *calculation.SimulationResult) Outcome {
	out := Outcome{Risk: result.Table.Risk(), SolventShare: -1}

	for _, row := range result.Table.Rows[1:] {
		if row.Median <= 0 {
			out.DepletionYear = row.Year
			break
		}
	}

	if m := result.Matrix; m != nil && m.Scenarios() > 0 {
		solvent := 0
		for _, v := range m.RawRow(m.Years()) {
			if v > 0 {
				solvent++
			}
		}
		out.SolventShare = float64(solvent) / float64(m.Scenarios())
	}
	return out
}
