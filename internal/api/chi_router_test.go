// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/middleware"
)

func TestRouter_EnvelopeMeta(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, true, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/suggest?q=roma", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-abc")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get(middleware.RequestIDHeader); got != "req-abc" {
		t.Errorf("X-Request-ID = %q, want req-abc", got)
	}
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestRouter_HSTSBehindTLSProxy(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, true, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("missing Strict-Transport-Security header")
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, true, nil)

	rec, env := do(t, srv, http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("unknown route: status = %d, error = %+v", rec.Code, env.Error)
	}

	rec, env = do(t, srv, http.MethodGet, "/api/v1/recommend", "")
	if rec.Code != http.StatusMethodNotAllowed || env.Error == nil || env.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("wrong method: status = %d, error = %+v", rec.Code, env.Error)
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, true, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/metrics status = %d", rec.Code)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	cfg.RateLimitWindow = time.Minute
	srv := newTestServer(t, true, cfg)

	first, _ := do(t, srv, http.MethodGet, "/api/v1/suggest?q=roma", "")
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, want 200", first.Code)
	}
	second, env := do(t, srv, http.MethodGet, "/api/v1/suggest?q=roma", "")
	if second.Code != http.StatusTooManyRequests || env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("second: status = %d, error = %+v, want 429", second.Code, env.Error)
	}

	// probes are exempt
	if rec, _ := do(t, srv, http.MethodGet, "/api/v1/health/live", ""); rec.Code != http.StatusOK {
		t.Errorf("health status = %d under rate limit", rec.Code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://app.example"}
	cfg.RateLimitDisabled = true
	srv := newTestServer(t, true, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommend", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
