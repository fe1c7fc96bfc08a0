// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package validation

import (
	"strconv"
)

// RecommendationQuery holds the parsed inputs of a recommendation request.
// Callers fill NumRecommendations with the default when the parameter is
// absent, so an explicit 0 is rejected.
type RecommendationQuery struct {
	UserID             int64 `query:"user_id" validate:"gt=0"`
	NumRecommendations int   `query:"num_recommendations" validate:"gte=1"`
}

// ValidateRecommendationQuery validates q and enforces the configured upper
// bound on the requested count.
func ValidateRecommendationQuery(q *RecommendationQuery, maxCount int) *RequestValidationError {
	if err := ValidateStruct(q); err != nil {
		return err
	}

	if maxCount > 0 && q.NumRecommendations > maxCount {
		const field = "num_recommendations"
		return &RequestValidationError{errors: []FieldError{{
			field:   field,
			tag:     "lte",
			value:   q.NumRecommendations,
			message: describe(field, "lte", strconv.Itoa(maxCount)),
		}}}
	}
	return nil
}

// ParseIntParam converts a raw path or query value into an int64. A failure
// is reported in the same shape as a struct validation failure.
func ParseIntParam(field, raw string) (int64, *RequestValidationError) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &RequestValidationError{errors: []FieldError{{
			field:   field,
			tag:     "numeric",
			value:   raw,
			message: describe(field, "numeric", ""),
		}}}
	}
	return v, nil
}
