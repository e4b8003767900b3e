package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	chartsComputed *prometheus.CounterVec
	backendErrors  *prometheus.CounterVec
	cacheEvents    *prometheus.CounterVec
	calcDuration   *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		chartsComputed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astrocore_charts_computed_total",
				Help: "Total number of chart calculations by producing backend",
			},
			[]string{"backend", "kind"},
		),
		backendErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astrocore_backend_errors_total",
				Help: "Total number of backend failures",
			},
			[]string{"backend", "type"},
		),
		cacheEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astrocore_cache_events_total",
				Help: "Chart result cache hits and misses",
			},
			[]string{"kind", "result"},
		),
		calcDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "astrocore_calculation_duration_seconds",
				Help:    "Duration of chart calculations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"backend"},
		),
	}
}

// RecordChartComputed records a completed calculation.
func (r *Recorder) RecordChartComputed(backend, kind string) {
	r.chartsComputed.WithLabelValues(backend, kind).Inc()
}

// RecordBackendError records a backend failure.
func (r *Recorder) RecordBackendError(backend, kind string) {
	r.backendErrors.WithLabelValues(backend, kind).Inc()
}

// RecordCacheHit records a result served from cache.
func (r *Recorder) RecordCacheHit(kind string) {
	r.cacheEvents.WithLabelValues(kind, "hit").Inc()
}

// RecordCacheMiss records a cache miss.
func (r *Recorder) RecordCacheMiss(kind string) {
	r.cacheEvents.WithLabelValues(kind, "miss").Inc()
}

// RecordCalculationDuration records backend latency in seconds.
func (r *Recorder) RecordCalculationDuration(backend string, seconds float64) {
	r.calcDuration.WithLabelValues(backend).Observe(seconds)
}
