package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rpgo/bootstrap-sim/internal/calculation"
	"github.com/rpgo/bootstrap-sim/internal/config"
	"github.com/rpgo/bootstrap-sim/internal/domain"
	"github.com/rpgo/bootstrap-sim/internal/output"
	"github.com/rpgo/bootstrap-sim/internal/service"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a bootstrapped Monte Carlo simulation",
		Long: `Run a bootstrapped Monte Carlo simulation of a savings plan.

Settings come from --config (or the built-in defaults) and any flag given on
the command line overrides the matching configuration value. Without
--output the report is printed; with it, report files are written to that
directory.`,
		Example: `  retiresim simulate --data returns.csv --scenarios 10000
  retiresim simulate -c plan.yaml --mean 0.05 --volatility 0.15 --format csv
  retiresim simulate -c plan.yaml --format all --output reports/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd)

			cfg, err := loadConfiguration(cmd)
			if err != nil {
				return err
			}
			if err := applySimulateFlags(cmd, cfg); err != nil {
				return err
			}
			if err := config.NewInputParser().ValidateConfiguration(cfg); err != nil {
				return err
			}

			series, err := loadSeries(cfg.HistoricalData, log)
			if err != nil {
				return err
			}

			timeout, _ := cmd.Flags().GetDuration("timeout")
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			svc := service.NewSimulationService(0, 0)
			svc.SetLogger(calculation.NewZerologLogger(log, "simulation"))

			started := time.Now()
			result, err := svc.RunWithScenarios(ctx, series, cfg.Simulation)
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}
			log.Info().
				Int("scenarios", cfg.Simulation.NumScenarios).
				Int("years", cfg.Simulation.TotalYears()).
				Dur("elapsed", time.Since(started)).
				Msg("simulation complete")

			return writeResult(cmd, result, cfg.Output)
		},
	}

	cmd.Flags().Float64("start-value", 0, "Portfolio value at the start")
	cmd.Flags().Int("years-before", 0, "Years of saving before retirement")
	cmd.Flags().Int("years-after", 0, "Years of withdrawals after retirement")
	cmd.Flags().Float64("installment", 0, "Amount saved each year before retirement")
	cmd.Flags().Float64("withdrawal", 0, "Amount withdrawn each year after retirement")
	cmd.Flags().Int("scenarios", 0, "Number of simulated scenarios")
	cmd.Flags().Float64("mean", 0, "Target mean yearly real return (default: historical mean)")
	cmd.Flags().Float64("volatility", 0, "Target yearly volatility (default: historical volatility)")
	cmd.Flags().Int64("seed", 0, "Random seed; 0 picks one at random")
	cmd.Flags().String("data", "", "CSV file of yearly real returns")
	cmd.Flags().String("start-date", "", "Ignore returns dated before this date (empty keeps all)")
	cmd.Flags().StringP("format", "f", "", "Report format (console, console-lite, csv, scenarios-csv, json, yaml, html, all)")
	cmd.Flags().StringP("output", "o", "", "Write report files to this directory instead of stdout")
	cmd.Flags().Duration("timeout", 0, "Abort the simulation after this long (0 means no limit)")

	return cmd
}

// applySimulateFlags copies every flag the user set onto cfg.
func applySimulateFlags(cmd *cobra.Command, cfg *config.Configuration) error {
	flags := cmd.Flags()
	sim := &cfg.Simulation

	if flags.Changed("start-value") {
		v, _ := flags.GetFloat64("start-value")
		sim.StartValue = decimal.NewFromFloat(v)
	}
	if flags.Changed("years-before") {
		sim.YearsBeforeRetirement, _ = flags.GetInt("years-before")
	}
	if flags.Changed("years-after") {
		sim.YearsAfterRetirement, _ = flags.GetInt("years-after")
	}
	if flags.Changed("installment") {
		v, _ := flags.GetFloat64("installment")
		sim.YearlyInstallment = decimal.NewFromFloat(v)
	}
	if flags.Changed("withdrawal") {
		v, _ := flags.GetFloat64("withdrawal")
		sim.YearlyWithdrawal = decimal.NewFromFloat(v)
	}
	if flags.Changed("scenarios") {
		sim.NumScenarios, _ = flags.GetInt("scenarios")
	}
	if flags.Changed("mean") {
		v, _ := flags.GetFloat64("mean")
		d := decimal.NewFromFloat(v)
		sim.TargetMean = &d
	}
	if flags.Changed("volatility") {
		v, _ := flags.GetFloat64("volatility")
		d := decimal.NewFromFloat(v)
		sim.TargetVolatility = &d
	}
	if flags.Changed("seed") {
		sim.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("data") {
		cfg.HistoricalData.ReturnsPath, _ = flags.GetString("data")
	}
	if flags.Changed("start-date") {
		cfg.HistoricalData.StartDate, _ = flags.GetString("start-date")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("output") {
		cfg.Output.Directory, _ = flags.GetString("output")
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = "console"
	}
	if output.NormalizeFormatName(cfg.Output.Format) == "all" {
		if cfg.Output.Directory == "" {
			return fmt.Errorf("format %q writes several files and needs --output", cfg.Output.Format)
		}
		return nil
	}
	if output.GetFormatterByName(cfg.Output.Format) == nil {
		return output.UnsupportedFormatError(cfg.Output.Format)
	}
	return nil
}

// loadSeries reads the return series named by the configuration.
func loadSeries(hd config.HistoricalDataConfig, log zerolog.Logger) (*domain.ReturnSeries, error) {
	start, err := hd.StartTime()
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", hd.StartDate, err)
	}

	loader := calculation.NewHistoricalDataLoader(hd.ReturnsPath)
	loader.StartDate = start
	loader.Logger = calculation.NewZerologLogger(log, "historical")

	series, err := loader.Load()
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("path", hd.ReturnsPath).
		Int("observations", series.Len()).
		Time("first", series.FirstDate()).
		Time("last", series.LastDate()).
		Msg("loaded return series")
	return series, nil
}

func writeResult(cmd *cobra.Command, result *calculation.SimulationResult, oc config.OutputConfig) error {
	if oc.Directory != "" {
		files, err := output.GenerateReport(result, oc.Format, oc.Directory)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
		}
		return nil
	}

	formatter := output.GetFormatterByName(oc.Format)
	if formatter == nil {
		return output.UnsupportedFormatError(oc.Format)
	}
	data, err := formatter.Format(result)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", formatter.Name(), err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
