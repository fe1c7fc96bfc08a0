// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

/*
Package models defines the wire types shared by the HTTP API and the event
consumer.

Key Components:

  - APIResponse, Metadata, APIError: the standard response envelope
  - RecommendationList: payload of a recommendation read
  - RecalculateResponse: body of a forced recalculation
  - RecalculateRequest: NATS event payload that triggers a recalculation
  - HealthStatus: dependency health with backend-named components

All types serialize with github.com/goccy/go-json.
*/
package models
