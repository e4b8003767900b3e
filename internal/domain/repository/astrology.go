package repository

import (
	"context"
	"time"

	"AstroCore/internal/domain/models"
)

// CalculationRecord is one audit row for a completed computation.
type CalculationRecord struct {
	Fingerprint string           `json:"fingerprint"`
	Kind        models.ChartKind `json:"kind"`
	Method      string           `json:"method"`
	JulianDay   float64          `json:"julianDay"`
	Latitude    float64          `json:"latitude"`
	Longitude   float64          `json:"longitude"`
	DurationMs  int64            `json:"durationMs"`
	ComputedAt  time.Time        `json:"computedAt"`
}

// CalculationLog persists completed computations for later inspection.
type CalculationLog interface {
	Init(ctx context.Context) error // ensure tables exist
	Append(ctx context.Context, rec *CalculationRecord) error
	Recent(ctx context.Context, kind string, limit int) ([]*CalculationRecord, error)
	Health(ctx context.Context) error
	Close() error
}

// ChartPublisher emits computed-chart events to interested consumers.
type ChartPublisher interface {
	PublishComputed(ctx context.Context, rec *CalculationRecord) error
	Close() error
}

// AstroMetrics records operational counters for the calculation path.
type AstroMetrics interface {
	RecordChartComputed(backend, kind string)
	RecordBackendError(backend, kind string)
	RecordCacheHit(kind string)
	RecordCacheMiss(kind string)
	RecordCalculationDuration(backend string, seconds float64)
}
