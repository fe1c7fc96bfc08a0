// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/recommender/internal/config"
	"github.com/tomtom215/recommender/internal/logging"
	"github.com/tomtom215/recommender/internal/recommend"
)

// =====================================================
// ChiMiddleware Configuration Tests
// =====================================================

func TestNewChiMiddleware_DefaultConfig(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(nil)
	if m.config == nil {
		t.Fatal("config is nil")
	}
	// Secure by default: no origins until configured
	if len(m.config.CORSAllowedOrigins) != 0 {
		t.Errorf("CORSAllowedOrigins = %v, want []", m.config.CORSAllowedOrigins)
	}
	if m.config.RateLimitRequests != 100 || m.config.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d/%v, want 100/1m", m.config.RateLimitRequests, m.config.RateLimitWindow)
	}
}

func TestChiMiddlewareConfigFromServer(t *testing.T) {
	t.Parallel()

	cfg := ChiMiddlewareConfigFromServer(&config.ServerConfig{
		CORSOrigins:     []string{"https://shop.example.com"},
		RateLimitReqs:   20,
		RateLimitWindow: 30 * time.Second,
	})
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "https://shop.example.com" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRequests != 20 || cfg.RateLimitWindow != 30*time.Second {
		t.Errorf("rate limit = %d/%v, want 20/30s", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	// zero values keep defaults
	cfg = ChiMiddlewareConfigFromServer(&config.ServerConfig{RateLimitDisabled: true})
	if cfg.RateLimitRequests != 100 || !cfg.RateLimitDisabled {
		t.Errorf("got %d requests, disabled=%v; want defaults with limiter disabled", cfg.RateLimitRequests, cfg.RateLimitDisabled)
	}
}

// =====================================================
// Middleware Behaviour Tests
// =====================================================

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitRequests: 1, RateLimitWindow: time.Minute})
	handler := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429]", codes)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitRequests: 1, RateLimitWindow: time.Minute, RateLimitDisabled: true})
	handler := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rec.Code)
		}
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://shop.example.com"}
	handler := NewChiMiddleware(cfg).CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations/1", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations/1", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q for disallowed origin", got)
	}
}

func TestRequestIDWithLogging(t *testing.T) {
	t.Parallel()

	var gotRequestID, gotCorrelationID string
	handler := RequestIDWithLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = logging.RequestIDFromContext(r.Context())
		gotCorrelationID = logging.CorrelationIDFromContext(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if gotRequestID == "" {
			t.Fatal("request id not set in context")
		}
		if rec.Header().Get("X-Request-Id") != gotRequestID {
			t.Errorf("response header = %q, context = %q", rec.Header().Get("X-Request-Id"), gotRequestID)
		}
		if gotCorrelationID == "" {
			t.Error("correlation id not set in context")
		}
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", "upstream-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if gotRequestID != "upstream-123" {
			t.Errorf("request id = %q, want upstream-123", gotRequestID)
		}
	})
}

func TestAPISecurityHeaders(t *testing.T) {
	t.Parallel()

	svc := &fakeService{recs: &recommend.Recommendations{UserID: 1, Source: recommend.SourceFallback}}
	_, srv := newTestHandler(svc, fakePinger{})

	rec := do(t, srv, http.MethodGet, "/api/v1/recommendations/1")
	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"line\nbreak", `line\x0abreak`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateETag_Stable(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte(`{"items":[1,2]}`))
	b := generateETag([]byte(`{"items":[1,2]}`))
	c := generateETag([]byte(`{"items":[2,1]}`))
	if a != b {
		t.Errorf("same input gave %q and %q", a, b)
	}
	if a == c {
		t.Error("different inputs gave the same ETag")
	}
}
