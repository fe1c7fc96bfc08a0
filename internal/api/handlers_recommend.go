// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/recommender/internal/logging"
	"github.com/tomtom215/recommender/internal/models"
	"github.com/tomtom215/recommender/internal/recommend"
	"github.com/tomtom215/recommender/internal/validation"
)

// GetRecommendations handles GET /api/v1/recommendations/{userID}.
//
// Query parameters:
//   - num_recommendations: list length, 1..max_count (default from config)
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	q, verr := h.parseRecommendationQuery(r)
	if verr != nil {
		respondValidationError(w, verr)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("user_id", q.UserID).Msg("Received recommendation request")

	start := time.Now()
	recs, err := h.service.GetRecommendations(r.Context(), q.UserID, q.NumRecommendations)
	if err != nil {
		h.respondServiceError(w, r, q.UserID, err)
		return
	}

	meta := models.Metadata{Timestamp: time.Now()}
	if recs.Source == recommend.SourceCache {
		meta.Cached = true
	} else {
		meta.QueryTimeMS = time.Since(start).Milliseconds()
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: models.RecommendationList{
			UserID: recs.UserID,
			Items:  nonNil(recs.Items),
			Source: string(recs.Source),
		},
		Metadata: meta,
	})
}

// Recalculate handles POST /api/v1/recommendations/recalculate/{userID}.
//
// With async=true the request is published to the event bus and answered
// with 202; the consumer performs the recalculation.
func (h *Handler) Recalculate(w http.ResponseWriter, r *http.Request) {
	q, verr := h.parseRecommendationQuery(r)
	if verr != nil {
		respondValidationError(w, verr)
		return
	}

	// an unparseable value means synchronous
	if async, _ := strconv.ParseBool(r.URL.Query().Get("async")); async {
		h.queueRecalculate(w, r, q)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("user_id", q.UserID).Msg("Forcing recalculation")

	res, err := h.service.ForceRecalculate(r.Context(), q.UserID, q.NumRecommendations)
	if err != nil {
		h.respondServiceError(w, r, q.UserID, err)
		return
	}

	writeJSON(w, http.StatusOK, models.RecalculateResponse{
		Message:    models.RecalculateMessage(res.UserID, string(res.CacheWrite)),
		UserID:     res.UserID,
		Items:      nonNil(res.Items),
		Source:     string(res.Source),
		Cached:     res.Cached,
		CacheWrite: string(res.CacheWrite),
		CacheError: res.CacheError,
	})
}

func (h *Handler) queueRecalculate(w http.ResponseWriter, r *http.Request, q *validation.RecommendationQuery) {
	if h.publisher == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUnavailable, ErrAsyncDisabled.Error(), nil)
		return
	}

	req := &models.RecalculateRequest{UserID: q.UserID, NumRecommendations: q.NumRecommendations}
	if err := h.publisher.PublishRecalculate(r.Context(), req); err != nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUnavailable, "Failed to queue recalculation", err)
		return
	}

	writeJSON(w, http.StatusAccepted, models.MessageResponse{
		Message: fmt.Sprintf("Recalculation for user %d queued.", q.UserID),
	})
}

// parseRecommendationQuery reads {userID} and num_recommendations. An absent
// count takes the configured default; an explicit out-of-range one is rejected.
func (h *Handler) parseRecommendationQuery(r *http.Request) (*validation.RecommendationQuery, *validation.RequestValidationError) {
	cfg := h.service.Config()

	userID, verr := validation.ParseIntParam("user_id", chi.URLParam(r, "userID"))
	if verr != nil {
		return nil, verr
	}

	q := &validation.RecommendationQuery{UserID: userID, NumRecommendations: cfg.DefaultCount}
	if raw := r.URL.Query().Get("num_recommendations"); raw != "" {
		n, verr := validation.ParseIntParam("num_recommendations", raw)
		if verr != nil {
			return nil, verr
		}
		q.NumRecommendations = int(n)
	}

	if verr := validation.ValidateRecommendationQuery(q, cfg.MaxCount); verr != nil {
		return nil, verr
	}
	return q, nil
}

// respondServiceError maps service errors onto HTTP statuses. Lookup and
// computation failures are 503, never 404.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, userID int64, err error) {
	switch {
	case errors.Is(err, recommend.ErrUserNotFound):
		logging.Ctx(r.Context()).Info().Int64("user_id", userID).Msg("User not found")
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound,
			fmt.Sprintf("User with ID %d not found.", userID), nil)
	case errors.Is(err, recommend.ErrInvalidUserID):
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "user_id must be greater than 0", nil)
	default:
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUnavailable,
			"Recommendations are temporarily unavailable", err)
	}
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
