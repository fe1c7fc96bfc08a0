// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/tomtom215/recommender/internal/logging"
	"github.com/tomtom215/recommender/internal/models"
	"github.com/tomtom215/recommender/internal/validation"
)

// ErrPublisherClosed is returned by PublishRecalculate after Close.
var ErrPublisherClosed = errors.New("publisher is closed")

// Metadata keys set on outgoing messages.
const (
	MetadataCorrelationID = "correlation_id"
	MetadataUserID        = "user_id"
)

// Publisher sends recalculation requests to a topic.
type Publisher struct {
	publisher message.Publisher
	topic     string

	mu     sync.RWMutex
	closed bool
}

// NewPublisher wraps any Watermill publisher.
func NewPublisher(pub message.Publisher, topic string) *Publisher {
	return &Publisher{publisher: pub, topic: topic}
}

// PublishRecalculate validates and publishes req. The request's correlation
// id travels in message metadata so consumer logs can be joined to it.
func (p *Publisher) PublishRecalculate(ctx context.Context, req *models.RecalculateRequest) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	if verr := validation.ValidateStruct(req); verr != nil {
		return fmt.Errorf("invalid recalculation request: %w", verr)
	}

	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal recalculation request: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(MetadataUserID, strconv.FormatInt(req.UserID, 10))
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		msg.Metadata.Set(MetadataCorrelationID, id)
	}
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}

	logging.Ctx(ctx).Debug().
		Str("message_uuid", msg.UUID).
		Int64("user_id", req.UserID).
		Msg("Published recalculation request")
	return nil
}

// Close closes the underlying publisher once.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.publisher.Close()
}
