// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package cache

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/recommender/internal/config"
	"github.com/tomtom215/recommender/internal/recommend"
)

// Backend is a ResultCache with a name and lifecycle.
type Backend interface {
	recommend.ResultCache

	// Name identifies the backend in health output and logs.
	Name() string

	// Close releases connections or files.
	Close() error
}

var (
	_ Backend = (*RedisResultCache)(nil)
	_ Backend = (*BadgerResultCache)(nil)
	_ Backend = (*MemoryResultCache)(nil)
)

// New builds the configured backend. The "none" backend yields (nil, nil).
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg *config.CacheConfig, logger zerolog.Logger) (Backend, error) {
	switch cfg.Backend {
	case config.CacheRedis:
		return NewRedisResultCache(&cfg.Redis, logger), nil
	case config.CacheBadger:
		c, err := NewBadgerResultCache(&cfg.Badger, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.CacheMemory:
		return NewMemoryResultCache(cfg.Memory.MaxEntries), nil
	case config.CacheNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

func encodeIDs(ids []int64) ([]byte, error) {
	data, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("encode recommendation list: %w", err)
	}
	return data, nil
}

func decodeIDs(data []byte) ([]int64, error) {
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode recommendation list: %w", err)
	}
	return ids, nil
}
