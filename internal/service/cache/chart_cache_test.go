package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"AstroCore/internal/domain/models"
	pkgcache "AstroCore/pkg/cache"
)

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint(models.KindNatal, 2448058.854, 40.7, -74.0)
	b := Fingerprint(models.KindNatal, 2448058.854, 40.7, -74.0)
	if a != b {
		t.Fatalf("same inputs must share a fingerprint: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "chart:") {
		t.Fatalf("unexpected key shape %s", a)
	}
}

func TestFingerprintDiscriminates(t *testing.T) {
	base := Fingerprint(models.KindNatal, 2448058.854, 40.7, -74.0)
	variants := []string{
		Fingerprint(models.KindTransits, 2448058.854, 40.7, -74.0),
		Fingerprint(models.KindNatal, 2448058.855, 40.7, -74.0),
		Fingerprint(models.KindNatal, 2448058.854, 40.8, -74.0),
		Fingerprint(models.KindNatal, 2448058.854, 40.7, -74.1),
	}
	for i, v := range variants {
		if v == base {
			t.Fatalf("variant %d collides with base", i)
		}
	}
}

func TestChartCacheRoundTrip(t *testing.T) {
	c := NewChartCache(pkgcache.NewMemoryCache())
	ctx := context.Background()
	key := Fingerprint(models.KindNatal, 2448058.854, 40.7, -74.0)

	if _, ok := c.Get(ctx, key); ok {
		t.Fatalf("expected miss on empty cache")
	}

	result := &models.ChartResult{
		Chart: &models.Chart{Version: models.SchemaVersion, Kind: models.KindNatal, JulianDay: 2448058.854},
		Meta:  models.ResultMeta{Method: "test"},
	}
	c.Put(ctx, key, models.KindNatal, result)

	got, ok := c.Get(ctx, key)
	if !ok {
		t.Fatalf("expected hit after put")
	}
	if !got.Meta.Cached {
		t.Fatalf("cache reads must be marked cached")
	}
	if got.Chart == nil || got.Chart.JulianDay != result.Chart.JulianDay {
		t.Fatalf("round trip lost the chart")
	}
}

func TestChartCacheExpiryRecomputes(t *testing.T) {
	c := NewChartCache(pkgcache.NewMemoryCache(), WithTTLs(30*time.Millisecond, 30*time.Millisecond))
	ctx := context.Background()
	key := Fingerprint(models.KindNatal, 2448058.854, 40.7, -74.0)

	computes := 0
	compute := func(context.Context) (*models.ChartResult, error) {
		computes++
		return &models.ChartResult{
			Chart: &models.Chart{Version: models.SchemaVersion, Kind: models.KindNatal, JulianDay: 2448058.854},
			Meta:  models.ResultMeta{Method: "test"},
		}, nil
	}

	if _, hit, err := c.GetOrCompute(ctx, key, models.KindNatal, compute); err != nil || hit {
		t.Fatalf("first call: hit=%t err=%v", hit, err)
	}
	if _, hit, err := c.GetOrCompute(ctx, key, models.KindNatal, compute); err != nil || !hit {
		t.Fatalf("second call before expiry: hit=%t err=%v", hit, err)
	}
	if computes != 1 {
		t.Fatalf("expected 1 computation before expiry, got %d", computes)
	}

	time.Sleep(60 * time.Millisecond)

	if _, hit, err := c.GetOrCompute(ctx, key, models.KindNatal, compute); err != nil || hit {
		t.Fatalf("call after expiry: hit=%t err=%v", hit, err)
	}
	if computes != 2 {
		t.Fatalf("expected recomputation after expiry, got %d computations", computes)
	}
}

func TestChartCacheSkipsUnavailable(t *testing.T) {
	c := NewChartCache(pkgcache.NewMemoryCache())
	ctx := context.Background()
	key := Fingerprint(models.KindNatal, 1, 0, 0)

	c.Put(ctx, key, models.KindNatal, models.UnavailableChartResult(models.KindNatal, 0))
	if _, ok := c.Get(ctx, key); ok {
		t.Fatalf("unavailable results must not be cached")
	}
}
