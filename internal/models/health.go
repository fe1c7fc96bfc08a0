// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package models

import (
	"github.com/goccy/go-json"
)

// Health values.
const (
	HealthOK           = "ok"
	HealthUnhealthy    = "unhealthy"
	HealthConnected    = "connected"
	HealthDisconnected = "disconnected"
	HealthDisabled     = "disabled"
)

// ComponentHealth is one dependency's state in a HealthStatus.
type ComponentHealth struct {
	Name  string
	State string
	Error string
}

// HealthStatus is the /health body. Components are flattened into the
// top-level object keyed by name, so a Redis-backed deployment reports
//
//	{"status":"ok","database":"connected","redis":"connected"}
type HealthStatus struct {
	Status     string
	Components []ComponentHealth
}

// Add appends a component and downgrades Status when it is disconnected.
func (h *HealthStatus) Add(name, state string, err error) {
	c := ComponentHealth{Name: name, State: state}
	if err != nil {
		c.Error = err.Error()
	}
	h.Components = append(h.Components, c)
	if state == HealthDisconnected {
		h.Status = HealthUnhealthy
	}
}

// Healthy reports whether every component is usable.
func (h *HealthStatus) Healthy() bool {
	return h.Status == HealthOK
}

// MarshalJSON flattens components into the top-level object. Failure
// reasons are reported under "errors" keyed by component name.
func (h HealthStatus) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(h.Components)+2)
	out["status"] = h.Status

	var errs map[string]string
	for _, c := range h.Components {
		out[c.Name] = c.State
		if c.Error != "" {
			if errs == nil {
				errs = make(map[string]string)
			}
			errs[c.Name] = c.Error
		}
	}
	if errs != nil {
		out["errors"] = errs
	}
	return json.Marshal(out)
}
