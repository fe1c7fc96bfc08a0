// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recommender/internal/metrics"
)

// Engine runs the aggregation -> matrix -> similarity -> ranking pipeline,
// falling back to popularity whenever personalization is impossible.
//
// The engine holds no per-request state; it is safe for concurrent use and
// every call rebuilds its inputs from the DataProvider.
type Engine struct {
	provider DataProvider
	logger   zerolog.Logger
}

// NewEngine creates an engine over the given data provider.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(provider DataProvider, logger zerolog.Logger) *Engine {
	return &Engine{
		provider: provider,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}
}

// Recommend computes up to n item ids for userID.
//
// The only errors returned are context errors observed before work starts.
// Data source failures, sparse data and unknown users all resolve to a
// popularity list.
func (e *Engine) Recommend(ctx context.Context, userID int64, n int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("recommend for user %d: %w", userID, err)
	}

	start := time.Now()
	logger := e.logger.With().Int64("user_id", userID).Int("n", n).Logger()

	agg := LoadAggregation(ctx, e.provider, logger)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("recommend for user %d: %w", userID, err)
	}

	im := BuildMatrix(agg)
	sim := CosineSimilarity(im.M)
	items, reason := Rank(userID, n, im, sim)

	if reason != FallbackNone {
		logger.Debug().Str("reason", string(reason)).Msg("Falling back to popularity")
		metrics.RecordFallback(string(reason))
		items = LoadPopularity(ctx, e.provider, n, logger)
	}

	result := &Result{
		Items:          items,
		FallbackReason: reason,
		Users:          len(im.UserIDs),
		ItemsInMatrix:  len(im.ItemIDs),
		Duration:       time.Since(start),
	}
	metrics.RecordComputation(result.Duration, result.Users, result.ItemsInMatrix)

	logger.Debug().
		Int("users", result.Users).
		Int("items", result.ItemsInMatrix).
		Int("nonzero", im.M.NonZero()).
		Int("returned", len(items)).
		Str("source", string(result.Source())).
		Dur("duration", result.Duration).
		Msg("Recommendation computed")

	return result, nil
}

// Popularity returns the non-personalized ranking directly.
func (e *Engine) Popularity(ctx context.Context, n int) []int64 {
	return LoadPopularity(ctx, e.provider, n, e.logger)
}
