// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package api

import "errors"

// Common API errors
var (
	// ErrAsyncDisabled indicates a queued recalculation was requested but no
	// event publisher is configured.
	ErrAsyncDisabled = errors.New("asynchronous recalculation is not enabled")
)
