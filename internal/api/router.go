package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rpgo/bootstrap-sim/internal/api/handlers"
	"github.com/rpgo/bootstrap-sim/internal/api/middleware"
	"github.com/rpgo/bootstrap-sim/internal/domain"
	"github.com/rpgo/bootstrap-sim/internal/service"
)

// Options configures the HTTP API.
type Options struct {
	Service          *service.SimulationService
	Series           *domain.ReturnSeries
	Defaults         domain.SimulationParameters
	DefaultStartDate time.Time
	AllowedOrigins   []string
	RequestTimeout   time.Duration
	RateLimit        float64 // simulations per second; 0 disables
	RateBurst        int
	Logger           zerolog.Logger
}

// NewRouter wires middleware and routes.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.Logger(opts.Logger))
	router.Use(middleware.ErrorHandler(opts.Logger))

	simulationHandler := handlers.NewSimulationHandler(opts.Service, opts.Series, opts.Defaults, opts.DefaultStartDate)
	simulationHandler.SetTimeout(opts.RequestTimeout)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if opts.Series != nil {
			body["observations"] = opts.Series.Len()
		}
		c.JSON(http.StatusOK, body)
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", middleware.RateLimit(opts.RateLimit, opts.RateBurst), simulationHandler.Simulate)
		api.GET("/history", simulationHandler.History)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})

	return router
}

// Serve runs handler on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting API server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
