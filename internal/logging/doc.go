// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

// Package logging provides the process-wide zerolog logger and adapters that
// route third-party logging through it.
//
// # Usage
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int64("user_id", id).Msg("Recommendations served")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Cache read failed")
//
// Components take a zerolog.Logger by value and derive a child with a
// "component" field:
//
//	logger := logging.WithComponent("cache")
//
// # Adapters
//
//   - SlogHandler: slog.Handler for sutureslog (supervisor events)
//   - WatermillAdapter: watermill.LoggerAdapter for the NATS consumer
//
// # Environment
//
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include file:line (default: false)
package logging
