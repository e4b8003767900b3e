package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"AstroCore/internal/services/backends"
	"AstroCore/internal/usecase"
	xhttp "AstroCore/pkg/http"

	chartcache "AstroCore/internal/service/cache"
	domsvc "AstroCore/internal/domain/service"
	pkgcache "AstroCore/pkg/cache"
	xlogger "AstroCore/pkg/logger"

	"github.com/labstack/echo/v4"
)

func newTestHandler(t *testing.T, opts ...HandlerOption) *echo.Echo {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	chain := []domsvc.ChartBackend{backends.NewInternalBackend(l)}
	cache := chartcache.NewChartCache(pkgcache.NewMemoryCache())
	calc := usecase.NewChartCalculator(chain, cache)
	syn := usecase.NewSynastry(calc, usecase.NewSynastryScorer(), l)

	e := echo.New()
	NewAstrologyEchoHandler(l, calc, syn, opts...).RegisterRoutes(e)
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestChartEndpoint(t *testing.T) {
	e := newTestHandler(t)
	rec := postJSON(e, "/api/astrology/chart",
		`{"birthDate":"1990-06-15","birthTime":"08:30","latitude":40.7,"longitude":-74.0}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp xhttp.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Fatalf("expected envelope status 200, got %d", resp.Status)
	}
	if resp.Data == nil {
		t.Fatalf("expected chart payload")
	}
}

func TestChartEndpointRejectsOutOfRange(t *testing.T) {
	e := newTestHandler(t)
	rec := postJSON(e, "/api/astrology/chart",
		`{"birthDate":"1990-06-15","latitude":95,"longitude":0}`)

	var resp xhttp.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("expected envelope status 400, got %d", resp.Status)
	}
}

func TestCompatibilityEndpoint(t *testing.T) {
	e := newTestHandler(t)
	rec := postJSON(e, "/api/astrology/compatibility",
		`{"person1":{"birthDate":"1990-06-15","latitude":40.7,"longitude":-74.0},
		  "person2":{"birthDate":"1992-01-20","latitude":52.5,"longitude":13.4}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status int `json:"status"`
		Data   struct {
			Love struct {
				Rating int `json:"rating"`
			} `json:"love"`
			KeyAspects []string `json:"keyAspects"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if resp.Data.Love.Rating < 1 || resp.Data.Love.Rating > 5 {
		t.Fatalf("love rating %d out of range", resp.Data.Love.Rating)
	}
	if len(resp.Data.KeyAspects) < 3 {
		t.Fatalf("expected at least 3 key aspects, got %d", len(resp.Data.KeyAspects))
	}
}

func TestTransitsEndpoint(t *testing.T) {
	e := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/astrology/transits", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if cc := rec.Header().Get(echo.HeaderCacheControl); !strings.Contains(cc, "max-age") {
		t.Fatalf("expected cache-control header, got %q", cc)
	}
}

func TestRateLimitReturns429(t *testing.T) {
	e := newTestHandler(t, WithRateLimit(1, 0))

	first := postJSON(e, "/api/astrology/chart",
		`{"birthDate":"1990-06-15","latitude":40.7,"longitude":-74.0}`)
	if first.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", first.Code)
	}

	second := postJSON(e, "/api/astrology/chart",
		`{"birthDate":"1990-06-15","latitude":40.7,"longitude":-74.0}`)
	var resp xhttp.APIResponse
	if err := json.Unmarshal(second.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if resp.Status != http.StatusTooManyRequests {
		t.Fatalf("expected envelope status 429, got %d", resp.Status)
	}
}
