// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     zerolog.Level
		slogLevel slog.Level
		want      bool
	}{
		{"info logger allows error", zerolog.InfoLevel, slog.LevelError, true},
		{"info logger allows warn", zerolog.InfoLevel, slog.LevelWarn, true},
		{"error logger drops warn", zerolog.ErrorLevel, slog.LevelWarn, false},
		{"error logger drops info", zerolog.ErrorLevel, slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewSlogHandler(zerolog.New(&bytes.Buffer{}).Level(tt.level))
			if got := h.Enabled(context.Background(), tt.slogLevel); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.slogLevel, got, tt.want)
			}
		})
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf)))

	logger.With("supervisor", "api").
		WithGroup("event").
		Warn("service restarted", "service", "http-server", "failures", 2, "err", errors.New("bind: address in use"))

	out := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"supervisor":"api"`,
		`"event.service":"http-server"`,
		`"event.failures":2`,
		`"event.err":"bind: address in use"`,
		`"message":"service restarted"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output: %s", want, out)
		}
	}
}

func TestSlogHandler_GroupAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf)))
	logger.Error("terminated", slog.Group("svc", slog.String("name", "recalc-consumer")))

	if !strings.Contains(buf.String(), `"svc.name":"recalc-consumer"`) {
		t.Errorf("expected nested group key, got: %s", buf.String())
	}
}
