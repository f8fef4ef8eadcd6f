package calculation

import (
	"time"

	"github.com/rpgo/bootstrap-sim/internal/domain"
	"github.com/shopspring/decimal"
)

// sampleSeries is the five-year fixture used throughout the engine tests.
func sampleSeries() *domain.ReturnSeries {
	return domain.MustReturnSeries(time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC), 0.25, 0.42, -0.25, -0.33, 0.02)
}

type testParameters struct {
	startValue            float64
	numScenarios          int
	yearsBeforeRetirement int
	yearsAfterRetirement  int
	yearlyInstallment     float64
	yearlyWithdrawal      float64
}

var defaultTestParameters = testParameters{
	startValue:            42_000,
	numScenarios:          100,
	yearsBeforeRetirement: 30,
	yearsAfterRetirement:  20,
	yearlyInstallment:     20_000,
	yearlyWithdrawal:      50_000,
}

func (tp testParameters) simulation() domain.SimulationParameters {
	return domain.SimulationParameters{
		StartValue:            decimal.NewFromFloat(tp.startValue),
		YearsBeforeRetirement: tp.yearsBeforeRetirement,
		YearsAfterRetirement:  tp.yearsAfterRetirement,
		YearlyInstallment:     decimal.NewFromFloat(tp.yearlyInstallment),
		YearlyWithdrawal:      decimal.NewFromFloat(tp.yearlyWithdrawal),
		NumScenarios:          tp.numScenarios,
	}
}

// cyclingSource returns the given indices in order, wrapping around.
type cyclingSource struct {
	indices []int
	pos     int
}

func (cs *cyclingSource) IntN(n int) int {
	i := cs.indices[cs.pos%len(cs.indices)] % n
	cs.pos++
	return i
}

// targets returns the historical-mean/volatility target plus fixed overrides.
func targets() map[string]domain.ReturnTarget {
	h := SummarizeSeries(sampleSeries())
	return map[string]domain.ReturnTarget{
		"historical":          {Mean: h.Mean, Volatility: h.Volatility},
		"mean override":       {Mean: 0.05, Volatility: h.Volatility},
		"volatility override": {Mean: h.Mean, Volatility: 0.24},
		"both overridden":     {Mean: 0.05, Volatility: 0.24},
		"documented example":  {Mean: 0.064, Volatility: 0.317},
	}
}
