// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

//go:build nats

package events

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recommender/internal/config"
	"github.com/tomtom215/recommender/internal/logging"
	"github.com/tomtom215/recommender/internal/models"
)

// TestNATS_RoundTrip exercises the JetStream transports against the embedded
// server. Run with -tags nats.
func TestNATS_RoundTrip(t *testing.T) {
	srv := startEmbeddedServer(t)

	cfg := &config.EventsConfig{
		URL:              srv.ClientURL(),
		Topic:            testTopic,
		SubscribersCount: 1,
		DurableName:      "recommender",
		QueueGroup:       "recommender",
		AckWait:          5 * time.Second,
	}
	if err := EnsureStream(cfg.URL, cfg.Topic); err != nil {
		t.Fatalf("EnsureStream() error = %v", err)
	}

	wmLogger := logging.NewWatermillAdapter(zerolog.Nop())
	sub, err := NewNATSSubscriber(cfg, wmLogger)
	if err != nil {
		t.Fatalf("NewNATSSubscriber() error = %v", err)
	}
	defer sub.Close()

	wmPub, err := NewNATSPublisher(cfg, wmLogger)
	if err != nil {
		t.Fatalf("NewNATSPublisher() error = %v", err)
	}
	pub := NewPublisher(wmPub, cfg.Topic)
	defer pub.Close()

	recalc := newFakeRecalculator()
	consumer := NewConsumer(sub, recalc, ConsumerConfig{Topic: cfg.Topic}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = consumer.Serve(ctx) //nolint:errcheck // returns ctx.Err on shutdown
	}()
	defer func() {
		cancel()
		<-done
	}()

	if err := pub.PublishRecalculate(context.Background(), &models.RecalculateRequest{UserID: 11, NumRecommendations: 4}); err != nil {
		t.Fatalf("PublishRecalculate() error = %v", err)
	}

	got := recalc.wait(t)
	if got.UserID != 11 || got.NumRecommendations != 4 {
		t.Errorf("recalculated %+v, want user 11 with 4 items", got)
	}
}
