package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rpgo/bootstrap-sim/internal/calculation"
	"github.com/rpgo/bootstrap-sim/internal/domain"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long a memoized simulation stays valid.
const DefaultCacheTTL = time.Hour

// DefaultCacheSize bounds the number of memoized simulations.
const DefaultCacheSize = 128

// EngineFactory builds the engine for one run. seed is the request's seed;
// zero asks for a fresh one.
type EngineFactory func(seed int64) *calculation.BootstrapEngine

// SimulationService runs simulations on behalf of the CLI and the HTTP API and
// memoizes their results. The engine itself stays stateless; all caching
// lives here.
type SimulationService struct {
	cache     *ResultCache
	newEngine EngineFactory
	logger    calculation.Logger
	group     singleflight.Group
}

// NewSimulationService creates a service caching results for ttl (0 disables
// the cache) and holding at most maxEntries of them.
func NewSimulationService(ttl time.Duration, maxEntries int) *SimulationService {
	return &SimulationService{
		cache:     NewResultCache(ttl, maxEntries),
		newEngine: calculation.NewBootstrapEngine,
		logger:    calculation.NopLogger{},
	}
}

// SetLogger sets the logger for the service and the engines it creates.
// If nil is provided, a no-op logger is used.
func (s *SimulationService) SetLogger(l calculation.Logger) {
	if l == nil {
		s.logger = calculation.NopLogger{}
		return
	}
	s.logger = l
}

// SetEngineFactory replaces how engines are built (use in tests to inject a
// deterministic source).
func (s *SimulationService) SetEngineFactory(f EngineFactory) {
	if f != nil {
		s.newEngine = f
	}
}

// Cache exposes the underlying result cache; nil when caching is disabled.
func (s *SimulationService) Cache() *ResultCache { return s.cache }

// Run simulates params against series and returns the per-year statistics
// without the scenario matrix. Seeded runs are memoized, and identical seeded
// requests in flight at the same time share one run.
func (s *SimulationService) Run(ctx context.Context, series *domain.ReturnSeries, params domain.SimulationParameters) (*calculation.SimulationResult, error) {
	return s.run(ctx, series, params, false)
}

// RunWithScenarios is Run that also keeps the full scenario matrix. Results
// are memoized separately from Run's.
func (s *SimulationService) RunWithScenarios(ctx context.Context, series *domain.ReturnSeries, params domain.SimulationParameters) (*calculation.SimulationResult, error) {
	return s.run(ctx, series, params, true)
}

func (s *SimulationService) run(ctx context.Context, series *domain.ReturnSeries, params domain.SimulationParameters, keepScenarios bool) (*calculation.SimulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if series == nil || series.Len() == 0 {
		return nil, domain.ErrEmptySeries
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// Unseeded runs are meant to differ, so they bypass the cache.
	if params.Seed == 0 {
		ch := make(chan singleflight.Result, 1)
		go func() {
			result, err := s.simulate(ctx, series, params, keepScenarios, "unseeded")
			ch <- singleflight.Result{Val: result, Err: err}
		}()
		return wait(ctx, ch)
	}

	key, err := CacheKey(series, params, keepScenarios)
	if err != nil {
		return nil, fmt.Errorf("failed to build cache key: %w", err)
	}
	if result, ok := s.cache.Get(key); ok {
		s.logger.Debugf("cache hit for %s", key[:12])
		return result, nil
	}

	for {
		// The shared run stops when the caller that started it goes away.
		ch := s.group.DoChan(key, func() (interface{}, error) {
			result, err := s.simulate(ctx, series, params, keepScenarios, key[:12])
			if err != nil {
				return nil, err
			}
			if ctx.Err() == nil {
				s.cache.Set(key, result)
			}
			return result, nil
		})
		result, err := wait(ctx, ch)
		if err != nil && ctx.Err() == nil && isContextError(err) {
			// Another caller's cancellation ended the shared run; start over.
			continue
		}
		return result, err
	}
}

func (s *SimulationService) simulate(ctx context.Context, series *domain.ReturnSeries, params domain.SimulationParameters, keepScenarios bool, label string) (*calculation.SimulationResult, error) {
	engine := s.newEngine(params.Seed)
	engine.SetLogger(s.logger)

	start := time.Now()
	result, err := engine.SimulateAndStatsContext(ctx, series, params)
	if err != nil {
		if isContextError(err) {
			s.logger.Warnf("simulation %s abandoned after %s: %v", label, time.Since(start).Round(time.Millisecond), err)
		}
		return nil, err
	}
	s.logger.Infof("simulation %s finished in %s", label, time.Since(start).Round(time.Millisecond))
	if !keepScenarios {
		result = result.WithoutScenarios()
	}
	return result, nil
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// wait returns the run's outcome, or the context's error if it ends first.
func wait(ctx context.Context, ch <-chan singleflight.Result) (*calculation.SimulationResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*calculation.SimulationResult), nil
	}
}
