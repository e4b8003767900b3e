package usecase

import (
	"context"
	"errors"
	"time"

	"AstroCore/internal/domain/models"
	domrepo "AstroCore/internal/domain/repository"
	domsvc "AstroCore/internal/domain/service"
	chartcache "AstroCore/internal/service/cache"
	"AstroCore/internal/services/astro"
	applogger "AstroCore/pkg/logger"
)

// CalculatorOption configures ChartCalculator.
type CalculatorOption func(*ChartCalculator)

// ChartCalculator runs the backend chain with caching and provenance.
// Backends are tried in order; the first success wins and records its
// method label. When every backend fails callers get a structured
// unavailable result, never a transport error.
type ChartCalculator struct {
	backends       []domsvc.ChartBackend
	cache          *chartcache.ChartCache
	store          domrepo.CalculationLog
	pub            domrepo.ChartPublisher
	metrics        domrepo.AstroMetrics
	log            *applogger.Logger
	attemptTimeout time.Duration
}

// NewChartCalculator creates the orchestrator over an ordered backend chain.
func NewChartCalculator(chain []domsvc.ChartBackend, cache *chartcache.ChartCache, opts ...CalculatorOption) *ChartCalculator {
	c := &ChartCalculator{
		backends:       chain,
		cache:          cache,
		attemptTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCalculationLog attaches the audit store. Optional; nil is skipped.
func WithCalculationLog(store domrepo.CalculationLog) CalculatorOption {
	return func(c *ChartCalculator) { c.store = store }
}

// WithChartPublisher attaches the computed-event publisher. Optional.
func WithChartPublisher(pub domrepo.ChartPublisher) CalculatorOption {
	return func(c *ChartCalculator) { c.pub = pub }
}

// WithCalcMetrics attaches the metrics recorder.
func WithCalcMetrics(m domrepo.AstroMetrics) CalculatorOption {
	return func(c *ChartCalculator) { c.metrics = m }
}

// WithCalcLogger attaches the logger.
func WithCalcLogger(l *applogger.Logger) CalculatorOption {
	return func(c *ChartCalculator) { c.log = l }
}

// WithAttemptTimeout bounds each backend attempt.
func WithAttemptTimeout(d time.Duration) CalculatorOption {
	return func(c *ChartCalculator) {
		if d > 0 {
			c.attemptTimeout = d
		}
	}
}

// CalculateNatal normalizes birth data and computes the full natal chart.
// Validation failures return *models.ValidationError before any backend
// is consulted.
func (c *ChartCalculator) CalculateNatal(ctx context.Context, in models.BirthInput) (*models.ChartResult, error) {
	moment, err := astro.NormalizeBirth(in)
	if err != nil {
		return nil, err
	}
	return c.Calculate(ctx, moment, models.KindNatal)
}

// Transits computes current-sky positions. The instant is truncated to the
// minute so close-together requests share one fingerprint.
func (c *ChartCalculator) Transits(ctx context.Context, at time.Time) (*models.ChartResult, error) {
	utc := at.UTC().Truncate(time.Minute)
	moment := models.BirthMoment{
		UTC:       utc,
		JulianDay: astro.JulianDay(utc),
	}
	return c.Calculate(ctx, moment, models.KindTransits)
}

// Calculate resolves one normalized moment through cache and backends.
func (c *ChartCalculator) Calculate(ctx context.Context, moment models.BirthMoment, kind models.ChartKind) (*models.ChartResult, error) {
	key := chartcache.Fingerprint(kind, moment.JulianDay, moment.Latitude, moment.Longitude)

	result, hit, err := c.cache.GetOrCompute(ctx, key, kind, func(ctx context.Context) (*models.ChartResult, error) {
		return c.compute(ctx, key, moment, kind), nil
	})
	if err != nil {
		return nil, err
	}

	if c.metrics != nil {
		if hit {
			c.metrics.RecordCacheHit(string(kind))
		} else {
			c.metrics.RecordCacheMiss(string(kind))
		}
	}
	return result, nil
}

func (c *ChartCalculator) compute(ctx context.Context, key string, moment models.BirthMoment, kind models.ChartKind) *models.ChartResult {
	start := time.Now()

	for _, backend := range c.backends {
		attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
		chart, err := backend.Calculate(attemptCtx, moment, kind)
		cancel()

		if err != nil {
			if c.log != nil {
				c.log.Warn("chart backend failed",
					applogger.String("backend", backend.Name()),
					applogger.String("kind", string(kind)),
					applogger.Error(err),
				)
			}
			if c.metrics != nil {
				c.metrics.RecordBackendError(backend.Name(), errorKind(err))
			}
			continue
		}

		elapsed := time.Since(start)
		if c.metrics != nil {
			c.metrics.RecordChartComputed(backend.Name(), string(kind))
			c.metrics.RecordCalculationDuration(backend.Name(), elapsed.Seconds())
		}

		result := &models.ChartResult{
			Chart: chart,
			Meta: models.ResultMeta{
				CalculatedAt:            time.Now().UTC(),
				Method:                  backend.Name(),
				ResponseTimeMs:          elapsed.Milliseconds(),
				SwissEphemerisAvailable: backend.Accuracy() == models.AccuracyHigh,
			},
		}
		c.record(ctx, key, moment, kind, backend.Name(), elapsed)
		return result
	}

	if c.log != nil {
		c.log.Error("all chart backends failed", applogger.String("kind", string(kind)))
	}
	if c.metrics != nil {
		c.metrics.RecordBackendError("all", "exhausted")
	}
	return models.UnavailableChartResult(kind, time.Since(start))
}

// record appends the audit row and publishes the computed event. Both are
// best effort: failures log and never affect the result.
func (c *ChartCalculator) record(ctx context.Context, key string, moment models.BirthMoment, kind models.ChartKind, method string, elapsed time.Duration) {
	if c.store == nil && c.pub == nil {
		return
	}

	rec := &domrepo.CalculationRecord{
		Fingerprint: key,
		Kind:        kind,
		Method:      method,
		JulianDay:   moment.JulianDay,
		Latitude:    moment.Latitude,
		Longitude:   moment.Longitude,
		DurationMs:  elapsed.Milliseconds(),
		ComputedAt:  time.Now().UTC(),
	}

	if c.store != nil {
		if err := c.store.Append(ctx, rec); err != nil && c.log != nil {
			c.log.Warn("calculation log append failed", applogger.Error(err))
		}
	}
	if c.pub != nil {
		if err := c.pub.PublishComputed(ctx, rec); err != nil && c.log != nil {
			c.log.Warn("computed event publish failed", applogger.Error(err))
		}
	}
}

func errorKind(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, models.ErrPolarLatitude) {
		return "polar_latitude"
	}
	return "failure"
}
