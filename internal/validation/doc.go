// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

// Package validation provides struct validation using go-playground/validator v10.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Field names reported by query or json tag, as the client spelled them
//   - Error translation to human-readable messages
//   - APIError conversion matching the VALIDATION_ERROR response format
//
// # Request Types
//
// RecommendationQuery covers GET and POST recommendation routes. The upper
// bound on num_recommendations is configuration, so it is checked by
// ValidateRecommendationQuery instead of a static tag:
//
//	q := validation.RecommendationQuery{UserID: id, NumRecommendations: n}
//	if verr := validation.ValidateRecommendationQuery(&q, cfg.MaxCount); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Event payloads (models.RecalculateRequest) carry their own validate tags and
// go through ValidateStruct directly.
//
// # Thread Safety
//
// GetValidator and ValidateStruct are safe for concurrent use.
package validation
