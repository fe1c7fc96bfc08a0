// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/recommender/internal/logging"
	"github.com/tomtom215/recommender/internal/models"
)

func TestPublisher_PublishRecalculate(t *testing.T) {
	t.Parallel()

	ps := newPubSub()
	defer ps.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := ps.Subscribe(ctx, testTopic)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	pub := NewPublisher(ps, testTopic)
	pubCtx := logging.ContextWithCorrelationID(ctx, "corr-42")
	if err := pub.PublishRecalculate(pubCtx, &models.RecalculateRequest{UserID: 42, NumRecommendations: 3}); err != nil {
		t.Fatalf("PublishRecalculate() error = %v", err)
	}

	select {
	case msg := <-messages:
		msg.Ack()
		var got models.RecalculateRequest
		if err := json.Unmarshal(msg.Payload, &got); err != nil {
			t.Fatalf("payload %q: %v", msg.Payload, err)
		}
		if got.UserID != 42 || got.NumRecommendations != 3 {
			t.Errorf("payload = %+v", got)
		}
		if v := msg.Metadata.Get(MetadataCorrelationID); v != "corr-42" {
			t.Errorf("correlation_id = %q, want corr-42", v)
		}
		if v := msg.Metadata.Get(MetadataUserID); v != "42" {
			t.Errorf("user_id = %q, want 42", v)
		}
	case <-ctx.Done():
		t.Fatal("message not delivered")
	}
}

func TestPublisher_RejectsInvalidRequest(t *testing.T) {
	t.Parallel()

	pub := NewPublisher(newPubSub(), testTopic)
	defer pub.Close()

	tests := []*models.RecalculateRequest{
		{UserID: 0},
		{UserID: -3},
		{UserID: 1, NumRecommendations: -1},
	}
	for _, req := range tests {
		if err := pub.PublishRecalculate(context.Background(), req); err == nil {
			t.Errorf("PublishRecalculate(%+v) error = nil, want validation error", req)
		}
	}
}

func TestPublisher_Closed(t *testing.T) {
	t.Parallel()

	pub := NewPublisher(newPubSub(), testTopic)
	if err := pub.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	err := pub.PublishRecalculate(context.Background(), &models.RecalculateRequest{UserID: 1})
	if !errors.Is(err, ErrPublisherClosed) {
		t.Errorf("PublishRecalculate() after Close error = %v, want ErrPublisherClosed", err)
	}
}
