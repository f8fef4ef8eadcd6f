package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/bootstrap-sim/internal/config"
)

// loadConfiguration reads the --config file, or returns the defaults when none is given.
func loadConfiguration(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.DefaultConfiguration(), nil
	}
	return config.NewInputParser().LoadFromFile(path)
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create configuration files",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigValidateCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <file>",
		Short: "Write the default configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.NewInputParser().SaveConfiguration(config.DefaultConfiguration(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", args[0])
			return nil
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a configuration file for errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid: %d scenarios over %d years using %s\n",
				cfg.Simulation.NumScenarios, cfg.Simulation.TotalYears(), cfg.HistoricalData.ReturnsPath)
			return nil
		},
	}
}
