// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/models"
)

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		store      Store
		target     string
		wantStatus int
		wantState  string
	}{
		{"live ignores database", &fakeStore{pingErr: errors.New("down")}, "/health/live", http.StatusOK, "alive"},
		{"ready", &fakeStore{}, "/health/ready", http.StatusOK, "ready"},
		{"not ready", &fakeStore{pingErr: errors.New("database is locked")}, "/health/ready", http.StatusServiceUnavailable, ""},
		{"not ready without store", nil, "/health/ready", http.StatusServiceUnavailable, ""},
		{"healthy", &fakeStore{books: 12}, "/health", http.StatusOK, "healthy"},
		{"degraded", &fakeStore{pingErr: errors.New("closed")}, "/health", http.StatusOK, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newTestServer(&fakeEngine{}, tt.store, testSecurity())
			rec, resp := doGet(t, srv, tt.target)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantState == "" {
				if resp.Error == nil || resp.Error.Code != models.ErrCodeUnavailable {
					t.Errorf("error = %+v, want %s", resp.Error, models.ErrCodeUnavailable)
				}
				return
			}
			data, _ := resp.Data.(map[string]interface{})
			if data["status"] != tt.wantState {
				t.Errorf("status = %v, want %s", data["status"], tt.wantState)
			}
			if data["strategy"] != "fallback" {
				t.Errorf("strategy = %v", data["strategy"])
			}
		})
	}
}

func TestHealth_ReportsCatalogSize(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeEngine{}, &fakeStore{books: 12}, testSecurity())
	_, resp := doGet(t, srv, "/health")

	data, _ := resp.Data.(map[string]interface{})
	checks, _ := data["checks"].(map[string]interface{})
	if checks["catalog"] != "12 eligible books" {
		t.Errorf("checks = %v", checks)
	}
}

func TestRouter_NotFoundUsesEnvelope(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeEngine{}, &fakeStore{}, testSecurity())
	rec, resp := doGet(t, srv, "/api/v1/nope")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeNotFound {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeEngine{result: sampleResult()}, &fakeStore{}, testSecurity())
	doGet(t, srv, "/api/v1/users/u1/recommendations")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `folio_api_requests_total{endpoint="/api/v1/users/{userID}/recommendations"`) {
		t.Error("metrics output missing request counter for the recommendations route")
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeEngine{result: sampleResult()}, &fakeStore{}, testSecurity())
	rec, _ := doGet(t, srv, "/api/v1/users/u1/recommendations")

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeEngine{}, &fakeStore{}, testSecurity())

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://app.folio.test", true},
		{"https://evil.example", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/users/u1/recommendations", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		got := rec.Header().Get("Access-Control-Allow-Origin")
		if tt.allowed && got != tt.origin {
			t.Errorf("origin %s: Allow-Origin = %q, want echo", tt.origin, got)
		}
		if !tt.allowed && got != "" {
			t.Errorf("origin %s: Allow-Origin = %q, want empty", tt.origin, got)
		}
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	sec := testSecurity()
	sec.RateLimitReqs = 2
	sec.RateLimitWindow = time.Minute
	srv := newTestServer(&fakeEngine{result: sampleResult()}, &fakeStore{}, sec)

	for i := 0; i < 2; i++ {
		if rec, _ := doGet(t, srv, "/api/v1/users/u1/recommendations"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}

	rec, resp := doGet(t, srv, "/api/v1/users/u1/recommendations")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeRateLimited {
		t.Errorf("error = %+v", resp.Error)
	}

	// health has its own budget
	if rec, _ := doGet(t, srv, "/health/live"); rec.Code != http.StatusOK {
		t.Errorf("health status = %d after API limit hit", rec.Code)
	}
}

func TestRouter_RateLimitDisabled(t *testing.T) {
	t.Parallel()

	sec := &config.SecurityConfig{RateLimitReqs: 1, RateLimitWindow: time.Minute, RateLimitDisabled: true, CORSOrigins: []string{"*"}}
	srv := newTestServer(&fakeEngine{result: sampleResult()}, &fakeStore{}, sec)

	for i := 0; i < 5; i++ {
		if rec, _ := doGet(t, srv, "/api/v1/users/u1/recommendations"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	if got := sanitizeLogValue("/a\nb\r\x7fc"); got != "/abc" {
		t.Errorf("sanitizeLogValue() = %q", got)
	}
}
