// Package cache keys and stores computed chart results. Identical inputs
// share one fingerprint, concurrent misses compute once, and cache
// failures degrade to recomputation instead of failing requests.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"AstroCore/internal/domain/models"
	pkgcache "AstroCore/pkg/cache"
	applogger "AstroCore/pkg/logger"
)

// Fingerprint derives the deterministic cache key for a calculation.
// Kind, Julian Day and coordinates fully determine a result.
func Fingerprint(kind models.ChartKind, jd, lat, lon float64) string {
	raw := fmt.Sprintf("%s:%.8f:%.6f:%.6f", kind, jd, lat, lon)
	return pkgcache.GenerateKey("chart", pkgcache.HashKey(raw))
}

// ChartCacheOption configures ChartCache.
type ChartCacheOption func(*ChartCache)

// ChartCache wraps a cache backend with chart-aware TTLs and request
// coalescing.
type ChartCache struct {
	store       pkgcache.Service
	group       singleflight.Group
	natalTTL    time.Duration
	transitsTTL time.Duration
	log         *applogger.Logger
}

// NewChartCache creates the result cache over the given backend.
func NewChartCache(store pkgcache.Service, opts ...ChartCacheOption) *ChartCache {
	c := &ChartCache{
		store:       store,
		natalTTL:    24 * time.Hour,
		transitsTTL: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTTLs sets per-kind result lifetimes.
func WithTTLs(natal, transits time.Duration) ChartCacheOption {
	return func(c *ChartCache) {
		if natal > 0 {
			c.natalTTL = natal
		}
		if transits > 0 {
			c.transitsTTL = transits
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *applogger.Logger) ChartCacheOption {
	return func(c *ChartCache) { c.log = l }
}

func (c *ChartCache) ttl(kind models.ChartKind) time.Duration {
	if kind == models.KindTransits {
		return c.transitsTTL
	}
	return c.natalTTL
}

// Get returns a cached result, or (nil, false) on miss or cache trouble.
func (c *ChartCache) Get(ctx context.Context, key string) (*models.ChartResult, bool) {
	if c.store == nil {
		return nil, false
	}
	var raw string
	if err := c.store.Get(ctx, key, &raw); err != nil {
		if err != pkgcache.ErrCacheMiss && c.log != nil {
			c.log.Warn("chart cache read failed", applogger.String("key", key), applogger.Error(err))
		}
		return nil, false
	}
	var result models.ChartResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		if c.log != nil {
			c.log.Warn("chart cache entry corrupt", applogger.String("key", key), applogger.Error(err))
		}
		return nil, false
	}
	result.Meta.Cached = true
	return &result, true
}

// Put stores a result. Unavailable results are never cached so the next
// request retries the backends. Store errors only log.
func (c *ChartCache) Put(ctx context.Context, key string, kind models.ChartKind, result *models.ChartResult) {
	if c.store == nil || result == nil || result.IsUnavailable {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		if c.log != nil {
			c.log.Warn("chart cache marshal failed", applogger.Error(err))
		}
		return
	}
	if err := c.store.Set(ctx, key, string(raw), c.ttl(kind)); err != nil && c.log != nil {
		c.log.Warn("chart cache write failed", applogger.String("key", key), applogger.Error(err))
	}
}

// GetOrCompute serves from cache when possible and otherwise runs compute
// exactly once per key across concurrent callers. The boolean reports a
// cache hit.
func (c *ChartCache) GetOrCompute(
	ctx context.Context,
	key string,
	kind models.ChartKind,
	compute func(context.Context) (*models.ChartResult, error),
) (*models.ChartResult, bool, error) {
	if result, ok := c.Get(ctx, key); ok {
		return result, true, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A racing caller may have filled the cache already.
		if result, ok := c.Get(ctx, key); ok {
			return result, nil
		}
		result, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.Put(ctx, key, kind, result)
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}
	result := v.(*models.ChartResult)
	return result, result.Meta.Cached, nil
}
