package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/bootstrap-sim/internal/calculation"
	"github.com/rpgo/bootstrap-sim/internal/output"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Summarize the historical return series",
		Long: `Print the mean, volatility and range of the historical return series the
simulation samples from, along with any data quality warnings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd)

			cfg, err := loadConfiguration(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data") {
				cfg.HistoricalData.ReturnsPath, _ = cmd.Flags().GetString("data")
			}
			if cmd.Flags().Changed("start-date") {
				cfg.HistoricalData.StartDate, _ = cmd.Flags().GetString("start-date")
			}

			series, err := loadSeries(cfg.HistoricalData, log)
			if err != nil {
				return err
			}

			stats := calculation.SummarizeSeries(series)
			issues := calculation.ValidateDataQuality(series)
			fmt.Fprint(cmd.OutOrStdout(), output.FormatHistorySummary(stats, issues))
			return nil
		},
	}

	cmd.Flags().String("data", "", "CSV file of yearly real returns")
	cmd.Flags().String("start-date", "", "Ignore returns dated before this date (empty keeps all)")
	return cmd
}
