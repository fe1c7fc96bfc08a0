// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package recommend

import (
	"fmt"
	"time"
)

// DefaultCacheTTL is the fixed expiry for cached recommendation lists.
const DefaultCacheTTL = 3600 * time.Second

// Config contains service-level recommendation settings.
type Config struct {
	// DefaultCount is used when the caller does not ask for a count.
	// Default: 5.
	DefaultCount int `json:"default_count"`

	// MaxCount caps the requested count.
	// Default: 100.
	MaxCount int `json:"max_count"`

	// CacheTTL is the result cache expiry.
	// Default: 3600s.
	CacheTTL time.Duration `json:"cache_ttl"`

	// ComputeTimeout bounds a single computation including data loading.
	// Default: 30s.
	ComputeTimeout time.Duration `json:"compute_timeout"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultCount:   5,
		MaxCount:       100,
		CacheTTL:       DefaultCacheTTL,
		ComputeTimeout: 30 * time.Second,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.DefaultCount < 1 {
		return fmt.Errorf("default_count must be positive, got %d", c.DefaultCount)
	}
	if c.MaxCount < c.DefaultCount {
		return fmt.Errorf("max_count (%d) must be >= default_count (%d)", c.MaxCount, c.DefaultCount)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got %v", c.CacheTTL)
	}
	if c.ComputeTimeout <= 0 {
		return fmt.Errorf("compute_timeout must be positive, got %v", c.ComputeTimeout)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// normalizeCount applies the default and the cap.
func (c *Config) normalizeCount(n int) int {
	if n <= 0 {
		return c.DefaultCount
	}
	if n > c.MaxCount {
		return c.MaxCount
	}
	return n
}
