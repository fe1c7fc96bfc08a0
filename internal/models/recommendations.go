// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package models

import "fmt"

// RecommendationList is the data payload of GET /api/v1/recommendations/{userID}.
type RecommendationList struct {
	UserID int64   `json:"user_id"`
	Items  []int64 `json:"items"`
	Source string  `json:"source"`
}

// RecalculateResponse is the body of POST /api/v1/recommendations/recalculate/{userID}.
type RecalculateResponse struct {
	Message    string  `json:"message"`
	UserID     int64   `json:"user_id"`
	Items      []int64 `json:"items"`
	Source     string  `json:"source"`
	Cached     bool    `json:"cached"`
	CacheWrite string  `json:"cache_write"`
	CacheError string  `json:"cache_error,omitempty"`
}

// RecalculateMessage renders the human-readable recalculation outcome for
// a cache write of "stored", "cleared", "skipped" or "failed".
func RecalculateMessage(userID int64, cacheWrite string) string {
	switch cacheWrite {
	case "stored":
		return fmt.Sprintf("Recommendations for user %d re-calculated and cached.", userID)
	case "cleared":
		return fmt.Sprintf("Recommendations for user %d re-calculated; no items, cached entry cleared.", userID)
	case "failed":
		return fmt.Sprintf("Recommendations for user %d re-calculated (cache update failed).", userID)
	default:
		return fmt.Sprintf("Recommendations for user %d re-calculated (cache not configured).", userID)
	}
}

// RecalculateRequest is the event payload published to the recalculation
// topic. NumRecommendations 0 means the configured default.
type RecalculateRequest struct {
	UserID             int64 `json:"user_id" validate:"required,gt=0"`
	NumRecommendations int   `json:"num_recommendations,omitempty" validate:"omitempty,gte=1"`
}

// MessageResponse is a body carrying only a human-readable message, used by
// GET / and queued recalculations.
type MessageResponse struct {
	Message string `json:"message"`
}
