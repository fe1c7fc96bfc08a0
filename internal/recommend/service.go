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

// CacheKey returns the result cache key for a user.
func CacheKey(userID int64) string {
	return fmt.Sprintf("user:%d:recommendations", userID)
}

// Service exposes the caller-facing operations: cached recommendations and
// forced recalculation. Identity validation is the only hard failure; cache
// problems never fail a request that already has a result.
type Service struct {
	engine *Engine
	users  UserDirectory
	cache  ResultCache
	config *Config
	logger zerolog.Logger
}

// NewService wires the engine, identity store and result cache.
// A nil cache disables caching; a nil config uses DefaultConfig.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(engine *Engine, users UserDirectory, cache ResultCache, cfg *Config, logger zerolog.Logger) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Service{
		engine: engine,
		users:  users,
		cache:  cache,
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend-service").Logger(),
	}
}

// Config returns a copy of the active configuration.
func (s *Service) Config() *Config {
	return s.config.Clone()
}

// GetRecommendations returns the cached or freshly computed list for userID.
// num <= 0 uses the configured default. A cache hit is returned verbatim.
func (s *Service) GetRecommendations(ctx context.Context, userID int64, num int) (*Recommendations, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	key := CacheKey(userID)
	if ids, ok := s.cacheGet(ctx, key); ok {
		s.logger.Debug().Int64("user_id", userID).Msg("Returning cached recommendations")
		metrics.RecordRecommendation("get", string(SourceCache))
		return &Recommendations{UserID: userID, Items: ids, Source: SourceCache}, nil
	}

	result, err := s.compute(ctx, userID, num)
	if err != nil {
		return nil, err
	}

	if len(result.Items) > 0 {
		if err := s.cacheSet(ctx, key, result.Items); err != nil {
			s.logger.Warn().Err(err).Int64("user_id", userID).Msg("Failed to cache recommendations")
		}
	}

	metrics.RecordRecommendation("get", string(result.Source()))
	return &Recommendations{UserID: userID, Items: result.Items, Source: result.Source()}, nil
}

// ForceRecalculate bypasses the cache read, recomputes and overwrites the
// cache entry. The cache write outcome is reported in the result; a failed
// write does not make the call fail.
func (s *Service) ForceRecalculate(ctx context.Context, userID int64, num int) (*RecalculateResult, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	result, err := s.compute(ctx, userID, num)
	if err != nil {
		return nil, err
	}

	out := &RecalculateResult{
		UserID: userID,
		Items:  result.Items,
		Source: result.Source(),
	}

	out.CacheWrite, out.CacheError = s.overwrite(ctx, CacheKey(userID), result.Items)
	out.Cached = out.CacheWrite == CacheWriteStored
	if out.CacheWrite == CacheWriteFailed {
		s.logger.Warn().Str("error", out.CacheError).Int64("user_id", userID).Msg("Recalculated but failed to update cache")
	}

	s.logger.Info().
		Int64("user_id", userID).
		Int("items", len(out.Items)).
		Str("cache_write", string(out.CacheWrite)).
		Msg("Recommendations recalculated")

	metrics.RecordRecommendation("recalculate", string(result.Source()))
	return out, nil
}

// checkUser enforces the identity precondition. Infrastructure errors are
// wrapped and distinct from ErrUserNotFound.
func (s *Service) checkUser(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidUserID, userID)
	}
	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user %d: %w", userID, err)
	}
	if !exists {
		return fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
	}
	return nil
}

func (s *Service) compute(ctx context.Context, userID int64, num int) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.ComputeTimeout)
	defer cancel()

	result, err := s.engine.Recommend(ctx, userID, s.config.normalizeCount(num))
	if err != nil {
		return nil, fmt.Errorf("compute recommendations: %w", err)
	}
	return result, nil
}

// cacheGet treats an absent cache and read errors as a miss.
func (s *Service) cacheGet(ctx context.Context, key string) ([]int64, bool) {
	if s.cache == nil {
		return nil, false
	}

	ids, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.logger.Warn().Err(err).Str("key", key).Msg("Result cache read failed, treating as miss")
		metrics.RecordCacheOperation("get", "error")
		return nil, false
	case !ok:
		metrics.RecordCacheOperation("get", "miss")
		return nil, false
	default:
		metrics.RecordCacheOperation("get", "hit")
		return ids, true
	}
}

func (s *Service) cacheSet(ctx context.Context, key string, ids []int64) error {
	if s.cache == nil {
		return ErrCacheDisabled
	}
	if err := s.cache.Set(ctx, key, ids, s.config.CacheTTL); err != nil {
		metrics.RecordCacheOperation("set", "error")
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	metrics.RecordCacheOperation("set", "ok")
	return nil
}

// overwrite replaces the entry with ids. An empty list deletes the entry so
// a stale list cannot outlive the recalculation.
func (s *Service) overwrite(ctx context.Context, key string, ids []int64) (CacheWrite, string) {
	if s.cache == nil {
		return CacheWriteSkipped, ""
	}

	if len(ids) == 0 {
		if err := s.cache.Delete(ctx, key); err != nil {
			metrics.RecordCacheOperation("delete", "error")
			return CacheWriteFailed, fmt.Errorf("cache delete %s: %w", key, err).Error()
		}
		metrics.RecordCacheOperation("delete", "ok")
		return CacheWriteCleared, ""
	}

	if err := s.cacheSet(ctx, key, ids); err != nil {
		return CacheWriteFailed, err.Error()
	}
	return CacheWriteStored, ""
}

// PingCache checks the result cache. A disabled cache reports ErrCacheDisabled.
func (s *Service) PingCache(ctx context.Context) error {
	if s.cache == nil {
		return ErrCacheDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.cache.Ping(ctx)
}
