package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func get(t *testing.T, h http.Handler, path string) (int, map[string]string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("%s: decode: %v", path, err)
	}
	return rec.Code, body
}

func TestLiveness(t *testing.T) {
	code, body := get(t, New(Options{}).Handler(), "/healthz")
	if code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("healthz = %d %v", code, body)
	}
}

func TestReadinessFollowsPing(t *testing.T) {
	var pingErr error
	srv := New(Options{Ready: pingFunc(func(context.Context) error { return pingErr })})

	code, body := get(t, srv.Handler(), "/readyz")
	if code != http.StatusOK || body["database"] != "ok" {
		t.Fatalf("readyz = %d %v", code, body)
	}

	pingErr = errors.New("connection refused")
	code, body = get(t, srv.Handler(), "/readyz")
	if code != http.StatusServiceUnavailable || body["status"] != "degraded" {
		t.Fatalf("readyz = %d %v", code, body)
	}
}

func TestVersion(t *testing.T) {
	code, body := get(t, New(Options{}).Handler(), "/version")
	if code != http.StatusOK || body["version"] == "" {
		t.Fatalf("version = %d %v", code, body)
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	New(Options{}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("code = %d", rec.Code)
	}
}
