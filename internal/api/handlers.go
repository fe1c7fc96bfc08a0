// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package api

import (
	"context"
	"time"

	"github.com/tomtom215/recommender/internal/models"
	"github.com/tomtom215/recommender/internal/recommend"
)

// RecommendationService is the subset of recommend.Service used by the handlers.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID int64, num int) (*recommend.Recommendations, error)
	ForceRecalculate(ctx context.Context, userID int64, num int) (*recommend.RecalculateResult, error)
	PingCache(ctx context.Context) error
	Config() *recommend.Config
}

// Pinger checks connectivity of the relational store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RecalcPublisher queues a recalculation on the event bus.
type RecalcPublisher interface {
	PublishRecalculate(ctx context.Context, req *models.RecalculateRequest) error
}

var _ RecommendationService = (*recommend.Service)(nil)

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response helpers
//   - handlers_health.go: root, health and liveness endpoints
//   - handlers_recommend.go: recommendation read and recalculation
type Handler struct {
	service   RecommendationService
	db        Pinger
	cacheName string
	publisher RecalcPublisher
	startTime time.Time
}

// NewHandler creates a new API handler. cacheName labels the cache entry in
// the health response and is typically the configured backend name.
func NewHandler(service RecommendationService, db Pinger, cacheName string) *Handler {
	if cacheName == "" {
		cacheName = "cache"
	}
	return &Handler{
		service:   service,
		db:        db,
		cacheName: cacheName,
		startTime: time.Now(),
	}
}

// SetRecalcPublisher enables ?async=true on the recalculation endpoint.
func (h *Handler) SetRecalcPublisher(p RecalcPublisher) {
	h.publisher = p
}
