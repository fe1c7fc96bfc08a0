// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

// Package recommend implements user-based collaborative filtering for product
// recommendations with a deterministic popularity fallback.
//
// # Pipeline
//
// Every computation runs the same stages, leaves first:
//
//   - Aggregation: order line items (always strength 5) and logged interactions
//     (purchase=5, favorite=4, add_to_cart=3, click=2, other=1) collapse to one
//     maximum-strength record per (user, item) pair.
//   - Matrix: aggregated records become a dense user x item matrix plus the
//     position -> id arrays for both axes.
//   - Similarity: user-user cosine similarity over matrix rows.
//   - Ranking: positive-similarity neighbors contribute score*similarity to
//     items the target has no evidence for.
//   - Popularity: items ranked by purchased quantity, padded from the catalog.
//
// Popularity is used whenever personalization cannot produce a result: no data,
// unknown user, fewer than two users, an all-zero matrix, or zero candidates.
//
// # Determinism
//
// Ranked scores tie-break on ascending item id, neighbors of equal similarity
// on ascending matrix row, and popularity padding walks the catalog in
// ascending id order. Recomputing from unchanged data yields the same list.
//
// # Concurrency
//
// Nothing is memoized between requests. Each call rebuilds the matrix and
// similarity from current data, so concurrent requests share no mutable state.
// The Service layer adds the external result cache on top.
//
// # Usage
//
//	engine := recommend.NewEngine(provider, logger)
//	svc := recommend.NewService(engine, users, resultCache, recommend.DefaultConfig(), logger)
//
//	recs, err := svc.GetRecommendations(ctx, userID, 5)
//	if errors.Is(err, recommend.ErrUserNotFound) {
//	    // 404
//	}
package recommend
