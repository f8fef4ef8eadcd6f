package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rpgo/bootstrap-sim/internal/api/models"
	"github.com/rpgo/bootstrap-sim/internal/calculation"
	"github.com/rpgo/bootstrap-sim/internal/domain"
	"github.com/rpgo/bootstrap-sim/internal/service"
	"github.com/rpgo/bootstrap-sim/pkg/dateutil"
)

// SimulationHandler handles simulation and history requests
type SimulationHandler struct {
	svc       *service.SimulationService
	series    *domain.ReturnSeries
	defaults  domain.SimulationParameters
	startDate time.Time
	timeout   time.Duration
}

// NewSimulationHandler creates a handler simulating against series. defaults
// fills fields a request leaves out; startDate is the default series cut-off.
func NewSimulationHandler(svc *service.SimulationService, series *domain.ReturnSeries, defaults domain.SimulationParameters, startDate time.Time) *SimulationHandler {
	return &SimulationHandler{svc: svc, series: series, defaults: defaults, startDate: startDate}
}

// SetTimeout bounds how long one simulation request may run. Zero means no bound.
func (h *SimulationHandler) SetTimeout(d time.Duration) { h.timeout = d }

// Simulate handles POST /api/v1/simulate
func (h *SimulationHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	series, err := h.seriesFrom(req.StartDate)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	params := req.Parameters(h.defaults)
	if err := models.CheckSize(params); err != nil {
		respondError(c, err)
		return
	}

	run := h.svc.Run
	if req.IncludeScenarios {
		run = h.svc.RunWithScenarios
	}
	result, err := run(ctx, series, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewSimulateResponse(result, req.IncludeScenarios))
}

// History handles GET /api/v1/history
func (h *SimulationHandler) History(c *gin.Context) {
	series, err := h.seriesFrom(c.Query("start_date"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.HistoryResponse{
		Summary: calculation.SummarizeSeries(series),
		Issues:  calculation.ValidateDataQuality(series),
	}
	if resp.Issues == nil {
		resp.Issues = []string{}
	}
	if c.Query("observations") == "true" {
		resp.Observations = series.Observations()
	}
	c.JSON(http.StatusOK, resp)
}

// seriesFrom applies the requested start date, or the default one when raw is empty.
func (h *SimulationHandler) seriesFrom(raw string) (*domain.ReturnSeries, error) {
	if h.series == nil {
		return nil, domain.ErrEmptySeries
	}
	start := h.startDate
	if raw != "" {
		parsed, err := dateutil.ParseObservationDate(raw)
		if err != nil {
			return nil, errors.Join(domain.ErrInvalidInput, err)
		}
		start = parsed
	}
	return h.series.Since(start)
}

// respondError maps simulation errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "SIMULATION_FAILED"
	switch {
	case domain.IsInputError(err):
		status, code = http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrNumericDegeneracy):
		status, code = http.StatusUnprocessableEntity, "NUMERIC_DEGENERACY"
	case errors.Is(err, context.DeadlineExceeded):
		status, code = http.StatusServiceUnavailable, "TIMEOUT"
	case errors.Is(err, context.Canceled):
		status, code = http.StatusServiceUnavailable, "CANCELLED"
	}
	_ = c.Error(err)
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}
