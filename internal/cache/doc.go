// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

// Package cache provides result cache backends for recommendation lists.
//
// Every backend stores an ordered []int64 under a string key with a TTL and
// reports absence as (nil, false, nil):
//
//   - RedisResultCache: shared cache, wrapped in a circuit breaker
//   - BadgerResultCache: embedded on-disk (or in-memory) store with native TTL
//   - MemoryResultCache: bounded in-process LRU with per-entry expiry
//
// New selects a backend from configuration. The "none" backend returns a nil
// Backend, which the recommendation service treats as caching disabled.
package cache
