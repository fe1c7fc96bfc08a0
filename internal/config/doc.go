// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

// Package config loads service configuration with koanf.
//
// Sources, lowest to highest precedence:
//  1. Built-in defaults (defaultConfig)
//  2. YAML file: CONFIG_PATH, config.yaml, /etc/recommender/config.yaml
//  3. A .env file in the working directory (or ENV_FILE), loaded with godotenv
//  4. Process environment variables
//
// Environment variables use flat legacy names (REDIS_HOST, DATABASE_URL,
// HTTP_PORT) mapped onto nested koanf paths by envTransformFunc. Unmapped
// variables are ignored.
//
// Example config.yaml:
//
//	database:
//	  driver: duckdb
//	  path: /data/recommender.duckdb
//	cache:
//	  backend: redis
//	  redis:
//	    host: redis
//	    port: 6379
//	recommend:
//	  default_count: 5
package config
