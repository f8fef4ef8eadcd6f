package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "retiresim",
		Short: "Bootstrapped Monte Carlo retirement simulator",
		Long: `retiresim projects a savings plan through many simulated markets.

Every simulated year draws returns with replacement from a history of real
(inflation-adjusted) yearly returns, rescales them to a target mean and
volatility, and applies them to each scenario's portfolio. Savings are added
until retirement and withdrawals taken afterwards. The result is a per-year
table of the mean, median and percentiles of portfolio value.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newSimulateCmd(),
		newHistoryCmd(),
		newServeCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return rootCmd
}
