// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

//go:build integration

package testinfra

import (
	"context"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tomtom215/recommender/internal/config"
)

const (
	// DefaultRedisImage is the Redis image used for cache tests.
	DefaultRedisImage = "redis:7-alpine"

	redisPort = "6379/tcp"
)

// RedisContainer is a running Redis instance.
type RedisContainer struct {
	testcontainers.Container

	// Config points at the container and can be passed to
	// cache.NewRedisResultCache as is.
	Config config.RedisConfig
}

// NewRedisContainer starts Redis and waits until it accepts connections.
func NewRedisContainer(ctx context.Context) (*RedisContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        DefaultRedisImage,
		ExposedPorts: []string{redisPort},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(redisPort),
			wait.ForLog("Ready to accept connections"),
		).WithStartupTimeout(60 * time.Second),
	}

	container, host, port, err := startContainer(ctx, req, redisPort)
	if err != nil {
		return nil, err
	}

	return &RedisContainer{
		Container: container,
		Config: config.RedisConfig{
			Host:        host,
			Port:        port,
			DialTimeout: 5 * time.Second,
		},
	}, nil
}
