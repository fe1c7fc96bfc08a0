// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package recommend

import "errors"

// ErrUserNotFound is returned when the requested user has no identity record.
// It is the only condition that produces a hard failure for callers.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidUserID is returned for non-positive user ids.
var ErrInvalidUserID = errors.New("invalid user id")

// ErrCacheDisabled is reported when no result cache is configured.
var ErrCacheDisabled = errors.New("result cache disabled")
