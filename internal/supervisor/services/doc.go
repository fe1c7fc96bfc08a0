// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

// Package services adapts blocking components to suture.Service.
//
// HTTPServerService translates http.Server's ListenAndServe/Shutdown pair
// into a context-aware Serve. Other supervised components (the badger cache
// GC loop and the event consumer) implement Serve themselves.
package services
