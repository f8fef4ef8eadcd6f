package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rpgo/bootstrap-sim/internal/domain"
	"github.com/rpgo/bootstrap-sim/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultReturnsPath is where the yearly real S&P return series is expected
// when no configuration says otherwise.
const DefaultReturnsPath = "data/real_sp_yearly_returns.csv"

// Configuration is the on-disk description of a simulation run.
type Configuration struct {
	HistoricalData HistoricalDataConfig        `yaml:"historical_data" json:"historical_data"`
	Simulation     domain.SimulationParameters `yaml:"simulation" json:"simulation"`
	Output         OutputConfig                `yaml:"output" json:"output"`
}

// HistoricalDataConfig points at the return series and the part of it to use.
type HistoricalDataConfig struct {
	ReturnsPath string `yaml:"returns_path" json:"returns_path"`
	// StartDate drops observations dated before it; empty keeps the full series.
	StartDate string `yaml:"start_date,omitempty" json:"start_date,omitempty"`
}

// StartTime parses StartDate. An empty StartDate yields the zero time.
func (h HistoricalDataConfig) StartTime() (time.Time, error) {
	if h.StartDate == "" {
		return time.Time{}, nil
	}
	return dateutil.ParseObservationDate(h.StartDate)
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Format    string `yaml:"format" json:"format"`
	Directory string `yaml:"directory,omitempty" json:"directory,omitempty"`
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file. Fields missing
// from the file keep their DefaultConfiguration values, and a relative
// returns_path is resolved against the file's directory.
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}

	if p := config.HistoricalData.ReturnsPath; p != "" && !filepath.IsAbs(p) {
		candidate := filepath.Join(filepath.Dir(filename), p)
		if _, statErr := os.Stat(candidate); statErr == nil {
			config.HistoricalData.ReturnsPath = candidate
		}
	}

	return config, nil
}

// Parse decodes and validates configuration bytes.
func (ip *InputParser) Parse(data []byte) (*Configuration, error) {
	config := DefaultConfiguration()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *Configuration) error {
	if config == nil {
		return fmt.Errorf("%w: configuration is nil", domain.ErrInvalidInput)
	}

	if config.HistoricalData.ReturnsPath == "" {
		return fmt.Errorf("%w: historical_data.returns_path is required", domain.ErrInvalidInput)
	}
	if _, err := config.HistoricalData.StartTime(); err != nil {
		return fmt.Errorf("%w: historical_data.start_date: %v", domain.ErrInvalidInput, err)
	}

	if err := ip.validateSimulation(&config.Simulation); err != nil {
		return fmt.Errorf("simulation validation failed: %w", err)
	}

	if config.Output.Format == "" {
		return fmt.Errorf("%w: output.format is required", domain.ErrInvalidInput)
	}

	return nil
}

// validateSimulation adds the checks that only make sense for user-supplied
// plans on top of SimulationParameters.Validate.
func (ip *InputParser) validateSimulation(sim *domain.SimulationParameters) error {
	if err := sim.Validate(); err != nil {
		return err
	}
	if sim.StartValue.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: start value cannot be negative", domain.ErrInvalidInput)
	}
	if sim.YearlyInstallment.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: yearly installment cannot be negative", domain.ErrInvalidInput)
	}
	if sim.YearlyWithdrawal.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: yearly withdrawal cannot be negative", domain.ErrInvalidInput)
	}
	if sim.TargetMean != nil && sim.TargetMean.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("%w: target mean must be greater than -100%%", domain.ErrInvalidInput)
	}
	return nil
}

// SaveConfiguration writes config to filename as YAML.
func (ip *InputParser) SaveConfiguration(config *Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// DefaultConfiguration returns the plan the calculator opens with: 10k start,
// 10k saved per year for 30 years, 50k withdrawn per year for 20 years,
// 100k scenarios drawn from post-1949 returns.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		HistoricalData: HistoricalDataConfig{
			ReturnsPath: DefaultReturnsPath,
			StartDate:   "1949-12-31",
		},
		Simulation: domain.SimulationParameters{
			StartValue:            decimal.NewFromInt(10000),
			YearsBeforeRetirement: 30,
			YearsAfterRetirement:  20,
			YearlyInstallment:     decimal.NewFromInt(10000),
			YearlyWithdrawal:      decimal.NewFromInt(50000),
			NumScenarios:          100000,
		},
		Output: OutputConfig{
			Format: "console",
		},
	}
}
