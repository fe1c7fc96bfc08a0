// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues("get", "cache"))

	RecordRecommendation("get", "cache")
	RecordRecommendation("get", "cache")

	after := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues("get", "cache"))
	if after-before != 2 {
		t.Errorf("expected counter to increase by 2, got %v", after-before)
	}
}

func TestRecordComputation(t *testing.T) {
	var before dto.Metric
	if err := RecommendComputeDuration.Write(&before); err != nil {
		t.Fatalf("write histogram: %v", err)
	}

	RecordComputation(15*time.Millisecond, 12, 40)

	var after dto.Metric
	if err := RecommendComputeDuration.Write(&after); err != nil {
		t.Fatalf("write histogram: %v", err)
	}

	if got := after.GetHistogram().GetSampleCount() - before.GetHistogram().GetSampleCount(); got != 1 {
		t.Errorf("expected 1 new observation, got %d", got)
	}
	if got := testutil.ToFloat64(RecommendMatrixUsers); got != 12 {
		t.Errorf("matrix users = %v, want 12", got)
	}
	if got := testutil.ToFloat64(RecommendMatrixItems); got != 40 {
		t.Errorf("matrix items = %v, want 40", got)
	}
}

func TestRecordFallback(t *testing.T) {
	tests := []struct {
		name   string
		reason string
	}{
		{name: "unknown user", reason: "unknown_user"},
		{name: "no data", reason: "no_data"},
		{name: "no candidates", reason: "no_candidates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(RecommendFallbackTotal.WithLabelValues(tt.reason))
			RecordFallback(tt.reason)
			after := testutil.ToFloat64(RecommendFallbackTotal.WithLabelValues(tt.reason))
			if after-before != 1 {
				t.Errorf("expected fallback counter for %q to increase by 1", tt.reason)
			}
		})
	}
}

func TestRecordCacheOperation(t *testing.T) {
	before := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("set", "error"))
	RecordCacheOperation("set", "error")
	if got := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("set", "error")) - before; got != 1 {
		t.Errorf("expected 1 cache set error, got %v", got)
	}
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		wantErr   float64
	}{
		{name: "successful select", operation: "select", table: "order_items", wantErr: 0},
		{name: "failed select", operation: "select", table: "user_interactions", err: errors.New("connection refused"), wantErr: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table))
			RecordDBQuery(tt.operation, tt.table, 5*time.Millisecond, tt.err)
			after := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table))
			if after-before != tt.wantErr {
				t.Errorf("error counter delta = %v, want %v", after-before, tt.wantErr)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations/{userID}", "404"))
	RecordAPIRequest("GET", "/api/v1/recommendations/{userID}", 404, 3*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations/{userID}", "404"))
	if after-before != 1 {
		t.Errorf("expected api request counter to increase by 1, got %v", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != start+1 {
		t.Errorf("active requests = %v, want %v", got, start+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != start {
		t.Errorf("active requests = %v, want %v", got, start)
	}
}

func TestCollectorsRegistered(t *testing.T) {
	collectors := []prometheus.Collector{
		RecommendRequestsTotal,
		RecommendComputeDuration,
		RecommendFallbackTotal,
		CacheOperationsTotal,
		CircuitBreakerState,
		RecalcEventsTotal,
	}
	for _, c := range collectors {
		if err := prometheus.Register(c); err == nil {
			t.Errorf("collector %v was not registered by promauto", c)
		} else {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				t.Errorf("unexpected register error: %v", err)
			}
		}
	}
}
