package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func metricsStatus(s *Server, path string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec.Code
}

func TestServerMetricsEndpointDefault(t *testing.T) {
	s := NewServer(nil)
	if code := metricsStatus(s, "/metrics"); code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", code)
	}
}

func TestServerMetricsEndpointDisabled(t *testing.T) {
	s := NewServer(nil, WithMetricsEndpoint(false, ""))
	if code := metricsStatus(s, "/metrics"); code != http.StatusNotFound {
		t.Fatalf("expected 404 when metrics disabled, got %d", code)
	}
}

func TestServerMetricsEndpointCustomPath(t *testing.T) {
	s := NewServer(nil, WithMetricsEndpoint(true, "/internal/metrics"))
	if code := metricsStatus(s, "/internal/metrics"); code != http.StatusOK {
		t.Fatalf("expected 200 from custom path, got %d", code)
	}
	if code := metricsStatus(s, "/metrics"); code != http.StatusNotFound {
		t.Fatalf("expected 404 from default path, got %d", code)
	}
}
