package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/rpgo/bootstrap-sim/internal/api"
	"github.com/rpgo/bootstrap-sim/internal/calculation"
	"github.com/rpgo/bootstrap-sim/internal/config"
	"github.com/rpgo/bootstrap-sim/internal/service"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve simulations over HTTP",
		Long: `Start an HTTP API that runs simulations against the configured return series.

  POST /api/v1/simulate   run a simulation (JSON body, any field optional)
  GET  /api/v1/history    summary statistics of the return series
  GET  /health            liveness check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd)

			cfg, err := loadConfiguration(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data") {
				cfg.HistoricalData.ReturnsPath, _ = cmd.Flags().GetString("data")
			}
			opts, err := serveOptions(cmd, cfg)
			if err != nil {
				return err
			}
			opts.Logger = log
			opts.Service.SetLogger(calculation.NewZerologLogger(log, "simulation"))

			// The API filters by start date per request, so load everything.
			full := cfg.HistoricalData
			full.StartDate = ""
			opts.Series, err = loadSeries(full, log)
			if err != nil {
				return err
			}

			if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr, _ := cmd.Flags().GetString("addr")
			return api.Serve(ctx, addr, api.NewRouter(opts), log)
		},
	}

	cmd.Flags().String("addr", ":8080", "Address to listen on")
	cmd.Flags().String("data", "", "CSV file of yearly real returns")
	cmd.Flags().StringSlice("cors-origin", nil, "Allowed CORS origins (default: any)")
	cmd.Flags().Duration("timeout", 2*time.Minute, "Per-request simulation timeout")
	cmd.Flags().Float64("rate-limit", 2, "Simulations per second allowed across all clients (0 disables)")
	cmd.Flags().Int("rate-burst", 5, "Burst size for the simulation rate limit")
	cmd.Flags().Duration("cache-ttl", service.DefaultCacheTTL, "How long identical seeded requests are served from cache (0 disables)")
	cmd.Flags().Int("cache-size", service.DefaultCacheSize, "Maximum number of cached results")
	return cmd
}

// serveOptions builds router options from flags and configuration, leaving the
// series and logger for the caller.
func serveOptions(cmd *cobra.Command, cfg *config.Configuration) (api.Options, error) {
	flags := cmd.Flags()
	origins, _ := flags.GetStringSlice("cors-origin")
	timeout, _ := flags.GetDuration("timeout")
	rateLimit, _ := flags.GetFloat64("rate-limit")
	rateBurst, _ := flags.GetInt("rate-burst")
	cacheTTL, _ := flags.GetDuration("cache-ttl")
	cacheSize, _ := flags.GetInt("cache-size")

	start, err := cfg.HistoricalData.StartTime()
	if err != nil {
		return api.Options{}, err
	}

	return api.Options{
		Service:          service.NewSimulationService(cacheTTL, cacheSize),
		Defaults:         cfg.Simulation,
		DefaultStartDate: start,
		AllowedOrigins:   origins,
		RequestTimeout:   timeout,
		RateLimit:        rateLimit,
		RateBurst:        rateBurst,
	}, nil
}
