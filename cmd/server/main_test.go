// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recommender/internal/config"
	"github.com/tomtom215/recommender/internal/database/pgstore"
	"github.com/tomtom215/recommender/internal/recommend"
)

func TestRecommendConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Config
		want recommend.Config
	}{
		{
			name: "zero values keep defaults",
			want: *recommend.DefaultConfig(),
		},
		{
			name: "overrides",
			cfg: config.Config{
				Recommend: config.RecommendConfig{DefaultCount: 8, MaxCount: 20, ComputeTimeout: 5 * time.Second},
				Cache:     config.CacheConfig{TTL: time.Minute},
			},
			want: recommend.Config{DefaultCount: 8, MaxCount: 20, CacheTTL: time.Minute, ComputeTimeout: 5 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := recommendConfig(&tt.cfg)
			if *got != tt.want {
				t.Errorf("recommendConfig() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestOpenStore_SQLite(t *testing.T) {
	t.Parallel()

	store, err := openStore(context.Background(), &config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Path:     ":memory:",
		SeedDemo: true,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("openStore() error = %v", err)
	}
	defer store.Close() //nolint:errcheck

	exists, err := store.UserExists(context.Background(), 1)
	if err != nil || !exists {
		t.Errorf("UserExists(1) = %v, %v; want true", exists, err)
	}
}

func TestOpenStore_PostgresWithoutURL(t *testing.T) {
	t.Parallel()

	store, err := openStore(context.Background(), &config.DatabaseConfig{Driver: config.DriverPostgres}, zerolog.Nop())
	if !errors.Is(err, pgstore.ErrMissingURL) {
		t.Fatalf("openStore() error = %v, want ErrMissingURL", err)
	}
	if store != nil {
		t.Error("openStore() returned a non-nil store on error")
	}
}

func TestInitEvents_Disabled(t *testing.T) {
	t.Parallel()

	components, err := initEvents(&config.EventsConfig{Enabled: false}, nil, defaultEmbeddedPort)
	if err != nil {
		t.Fatalf("initEvents() error = %v", err)
	}
	if components != nil {
		t.Fatal("initEvents() should return nil components when disabled")
	}
	if components.Publisher() != nil || components.Consumer() != nil {
		t.Error("nil components should expose nil publisher and consumer")
	}
	// Should not panic
	components.Shutdown(context.Background())
}

func TestInitEvents_Embedded(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping embedded NATS test in short mode")
	}

	cfg := &config.EventsConfig{
		Enabled:          true,
		Embedded:         true,
		URL:              "nats://unused:4222",
		Topic:            "recommend.recalculate",
		SubscribersCount: 1,
		DurableName:      "recommender",
		QueueGroup:       "recalculators",
		AckWait:          5 * time.Second,
		StoreDir:         t.TempDir(),
	}

	components, err := initEvents(cfg, nil, -1)
	if err != nil {
		t.Fatalf("initEvents() error = %v", err)
	}
	defer components.Shutdown(context.Background())

	if components.Publisher() == nil || components.Consumer() == nil {
		t.Fatal("embedded events should provide a publisher and consumer")
	}
	if cfg.URL != "nats://unused:4222" {
		t.Errorf("initEvents() modified the caller's URL to %q", cfg.URL)
	}
}
