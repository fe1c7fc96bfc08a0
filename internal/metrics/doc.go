// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Overview

The package provides metrics for:
  - Recommendation requests by result source (cache, computed, fallback)
  - Pipeline computation latency and interaction matrix shape
  - Popularity fallbacks by reason
  - Result cache hit/miss/error rates
  - Data provider query latency and errors
  - HTTP request latency and throughput
  - Circuit breaker state transitions

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8001/metrics

# Usage

All collectors are registered with the default registry via promauto. Callers use
the Record* helpers rather than touching collectors directly:

	metrics.RecordFallback("unknown_user")
	metrics.RecordCacheOperation("get", "hit")
*/
package metrics
