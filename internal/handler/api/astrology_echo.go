package api

import (
	"time"

	models "AstroCore/internal/domain/models"
	domrepo "AstroCore/internal/domain/repository"
	"AstroCore/internal/service/ratelimit"
	"AstroCore/internal/usecase"
	xhttp "AstroCore/pkg/http"
	xlogger "AstroCore/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AstrologyEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type AstrologyEchoHandler struct {
	logger   *xlogger.Logger
	calc     *usecase.ChartCalculator
	synastry *usecase.Synastry
	history  domrepo.CalculationLog

	limiter      *ratelimit.Limiter
	rateCapacity float64
	rateRefill   float64

	streamInterval time.Duration
}

// HandlerOption configures the handler.
type HandlerOption func(*AstrologyEchoHandler)

// WithRateLimit enables per-IP token bucket limiting on all routes.
func WithRateLimit(capacity, refillPerSec float64) HandlerOption {
	return func(h *AstrologyEchoHandler) {
		h.limiter = ratelimit.New()
		h.rateCapacity = capacity
		h.rateRefill = refillPerSec
	}
}

// WithStreamInterval overrides the transit stream push interval.
func WithStreamInterval(d time.Duration) HandlerOption {
	return func(h *AstrologyEchoHandler) {
		if d > 0 {
			h.streamInterval = d
		}
	}
}

// WithHistory wires the calculation history store.
func WithHistory(store domrepo.CalculationLog) HandlerOption {
	return func(h *AstrologyEchoHandler) { h.history = store }
}

func NewAstrologyEchoHandler(logger *xlogger.Logger, calc *usecase.ChartCalculator, synastry *usecase.Synastry, opts ...HandlerOption) *AstrologyEchoHandler {
	h := &AstrologyEchoHandler{logger: logger, calc: calc, synastry: synastry, streamInterval: time.Minute}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *AstrologyEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/astrology")
	if h.limiter != nil {
		g.Use(h.rateLimitMiddleware)
	}
	g.POST("/chart", h.Chart)
	g.POST("/compatibility", h.Compatibility)
	g.GET("/transits", h.Transits)
	g.GET("/transits/stream", h.TransitsStream)
	g.GET("/history", h.History)
}

func (h *AstrologyEchoHandler) rateLimitMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.limiter.Allow(c.RealIP(), h.rateCapacity, h.rateRefill) {
			return xhttp.TooManyRequestsResponse(c, "Rate limit exceeded. Please slow down.")
		}
		return next(c)
	}
}

func (h *AstrologyEchoHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.calc.CalculateNatal(c.Request().Context(), req.Input())
	if err != nil {
		if verr, ok := err.(*models.ValidationError); ok {
			return xhttp.BadRequestResponse(c, verr.Fields)
		}
		h.logger.Error("chart usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstrologyEchoHandler) Compatibility(c echo.Context) error {
	req := &models.CompatibilityRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.synastry.Compare(c.Request().Context(), req.Person1.Input(), req.Person2.Input())
	if err != nil {
		if verr, ok := err.(*models.ValidationError); ok {
			return xhttp.BadRequestResponse(c, verr.Fields)
		}
		h.logger.Error("compatibility usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstrologyEchoHandler) Transits(c echo.Context) error {
	res, err := h.calc.Transits(c.Request().Context(), time.Now().UTC())
	if err != nil {
		h.logger.Error("transits usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, res)
}

func (h *AstrologyEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.history == nil {
		return xhttp.ListResponse(c, []*domrepo.CalculationRecord{}, 0)
	}

	kind := req.Kind
	if kind == "" {
		kind = string(models.KindNatal)
	}
	recs, err := h.history.Recent(c.Request().Context(), kind, req.Limit)
	if err != nil {
		h.logger.Error("history query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, recs, int64(len(recs)))
}
