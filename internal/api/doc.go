// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

/*
Package api provides the HTTP surface of the recommendation service.

# Routes

	GET  /                                          welcome message
	GET  /health                                    database and cache connectivity
	GET  /health/live                               liveness, no dependency checks
	GET  /metrics                                   Prometheus exposition
	GET  /api/v1/recommendations/{userID}           cached or computed list
	POST /api/v1/recommendations/recalculate/{userID}  recompute and overwrite the cache

Both recommendation routes accept num_recommendations (1..max_count).
Recalculation also accepts async=true, which publishes the request to the
event bus and returns 202.

# Responses

Recommendation reads and all errors use models.APIResponse. Recalculation,
health and the root endpoint return plain objects. Error codes:

	400 VALIDATION_ERROR     malformed user id or count
	404 NOT_FOUND            unknown user
	429 RATE_LIMIT_EXCEEDED  httprate limit hit
	503 SERVICE_UNAVAILABLE  user lookup or data source failure

# Middleware

The stack is built on go-chi: request ids wired into the logging context,
RealIP, Recoverer, go-chi/cors, go-chi/httprate, security headers and
Prometheus request metrics keyed by route pattern.
*/
package api
