package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"AstroCore/internal/domain/models"
	domsvc "AstroCore/internal/domain/service"
	chartcache "AstroCore/internal/service/cache"
	pkgcache "AstroCore/pkg/cache"
)

type fakeBackend struct {
	name     string
	accuracy models.Accuracy
	err      error
	failures int32 // fail this many calls before succeeding
	delay    time.Duration
	calls    int32
}

func (b *fakeBackend) Name() string              { return b.name }
func (b *fakeBackend) Accuracy() models.Accuracy { return b.accuracy }

func (b *fakeBackend) Calculate(ctx context.Context, moment models.BirthMoment, kind models.ChartKind) (*models.Chart, error) {
	n := atomic.AddInt32(&b.calls, 1)
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	if b.err != nil {
		return nil, b.err
	}
	if n <= atomic.LoadInt32(&b.failures) {
		return nil, &models.EphemerisError{Backend: b.name, Err: errors.New("transient")}
	}
	return &models.Chart{
		Version:   models.SchemaVersion,
		Kind:      kind,
		JulianDay: moment.JulianDay,
		Positions: []models.Position{{Body: models.Sun, Longitude: 10}},
	}, nil
}

func newTestCalculator(chain ...domsvc.ChartBackend) *ChartCalculator {
	cache := chartcache.NewChartCache(pkgcache.NewMemoryCache())
	return NewChartCalculator(chain, cache)
}

func validInput() models.BirthInput {
	return models.BirthInput{Date: "1990-06-15T08:30:00Z", Latitude: 40.7, Longitude: -74.0}
}

func TestCalculateNatalRejectsInvalidInput(t *testing.T) {
	backend := &fakeBackend{name: "primary", accuracy: models.AccuracyHigh}
	calc := newTestCalculator(backend)

	_, err := calc.CalculateNatal(context.Background(), models.BirthInput{Latitude: 95})
	if err == nil {
		t.Fatalf("expected error")
	}
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if atomic.LoadInt32(&backend.calls) != 0 {
		t.Fatalf("backend consulted on invalid input")
	}
}

func TestCalculateNatalFirstBackendWins(t *testing.T) {
	primary := &fakeBackend{name: "primary", accuracy: models.AccuracyHigh}
	fallback := &fakeBackend{name: "fallback", accuracy: models.AccuracyApproximate}
	calc := newTestCalculator(primary, fallback)

	result, err := calc.CalculateNatal(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if result.Meta.Method != "primary" {
		t.Fatalf("expected primary method, got %s", result.Meta.Method)
	}
	if !result.Meta.SwissEphemerisAvailable {
		t.Fatalf("high accuracy backend should set availability")
	}
	if atomic.LoadInt32(&fallback.calls) != 0 {
		t.Fatalf("fallback consulted after primary success")
	}
}

func TestCalculateNatalFallsBack(t *testing.T) {
	primary := &fakeBackend{name: "primary", accuracy: models.AccuracyHigh, err: errors.New("boom")}
	fallback := &fakeBackend{name: "fallback", accuracy: models.AccuracyApproximate}
	calc := newTestCalculator(primary, fallback)

	result, err := calc.CalculateNatal(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if result.Meta.Method != "fallback" {
		t.Fatalf("expected fallback method, got %s", result.Meta.Method)
	}
	if result.Meta.SwissEphemerisAvailable {
		t.Fatalf("approximate backend must not claim high accuracy")
	}
}

func TestCalculateNatalAllBackendsFail(t *testing.T) {
	primary := &fakeBackend{name: "primary", err: errors.New("boom")}
	fallback := &fakeBackend{name: "fallback", err: errors.New("also boom")}
	calc := newTestCalculator(primary, fallback)

	result, err := calc.CalculateNatal(context.Background(), validInput())
	if err != nil {
		t.Fatalf("exhaustion must not surface as an error, got %v", err)
	}
	if !result.IsUnavailable {
		t.Fatalf("expected unavailable result")
	}
	if result.Chart != nil {
		t.Fatalf("unavailable result must carry no chart")
	}
	if result.Message == "" {
		t.Fatalf("expected a user-facing message")
	}
}

func TestCalculateNatalCachesResults(t *testing.T) {
	backend := &fakeBackend{name: "primary", accuracy: models.AccuracyHigh}
	calc := newTestCalculator(backend)

	first, err := calc.CalculateNatal(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if first.Meta.Cached {
		t.Fatalf("first result must not be marked cached")
	}

	second, err := calc.CalculateNatal(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !second.Meta.Cached {
		t.Fatalf("second identical request should hit the cache")
	}
	if atomic.LoadInt32(&backend.calls) != 1 {
		t.Fatalf("expected 1 backend call, got %d", backend.calls)
	}
}

func TestUnavailableResultsAreNotCached(t *testing.T) {
	backend := &fakeBackend{name: "primary", accuracy: models.AccuracyHigh, failures: 1}
	calc := newTestCalculator(backend)

	first, err := calc.CalculateNatal(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !first.IsUnavailable {
		t.Fatalf("expected first result unavailable")
	}

	second, err := calc.CalculateNatal(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if second.IsUnavailable {
		t.Fatalf("retry should have recomputed instead of caching the failure")
	}
	if second.Meta.Cached {
		t.Fatalf("recomputed result must not be marked cached")
	}
}

func TestConcurrentRequestsComputeOnce(t *testing.T) {
	backend := &fakeBackend{name: "primary", accuracy: models.AccuracyHigh, delay: 30 * time.Millisecond}
	calc := newTestCalculator(backend)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := calc.CalculateNatal(context.Background(), validInput()); err != nil {
				t.Errorf("unexpected error %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&backend.calls); got != 1 {
		t.Fatalf("expected a single backend call, got %d", got)
	}
}

func TestTransitsShareMinuteBuckets(t *testing.T) {
	backend := &fakeBackend{name: "primary", accuracy: models.AccuracyHigh}
	calc := newTestCalculator(backend)

	at := time.Date(2024, 6, 1, 12, 30, 5, 0, time.UTC)
	if _, err := calc.Transits(context.Background(), at); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := calc.Transits(context.Background(), at.Add(20*time.Second)); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if atomic.LoadInt32(&backend.calls) != 1 {
		t.Fatalf("same-minute transits should share one computation, got %d calls", backend.calls)
	}

	if _, err := calc.Transits(context.Background(), at.Add(time.Minute)); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if atomic.LoadInt32(&backend.calls) != 2 {
		t.Fatalf("next minute should recompute, got %d calls", backend.calls)
	}
}
