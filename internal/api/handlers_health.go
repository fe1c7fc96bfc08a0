// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/recommender/internal/logging"
	"github.com/tomtom215/recommender/internal/models"
	"github.com/tomtom215/recommender/internal/recommend"
)

const healthCheckTimeout = 5 * time.Second

// Root handles GET /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	logging.Ctx(r.Context()).Debug().Msg("Root endpoint accessed")
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Welcome to the Recommender Service!"})
}

// Health handles GET /health. It pings the database and the result cache
// and answers 503 when either is unreachable. A disabled cache is reported
// but does not make the service unhealthy.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := models.HealthStatus{Status: models.HealthOK}

	if err := h.db.Ping(ctx); err != nil {
		status.Add("database", models.HealthDisconnected, err)
	} else {
		status.Add("database", models.HealthConnected, nil)
	}

	switch err := h.service.PingCache(ctx); {
	case errors.Is(err, recommend.ErrCacheDisabled):
		status.Add(h.cacheName, models.HealthDisabled, nil)
	case err != nil:
		status.Add(h.cacheName, models.HealthDisconnected, err)
	default:
		status.Add(h.cacheName, models.HealthConnected, nil)
	}

	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		logging.Ctx(r.Context()).Error().Interface("health", status).Msg("Health check failed")
	}
	writeJSON(w, code, status)
}

// HealthLive handles GET /health/live. It never touches dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         models.HealthOK,
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	})
}
