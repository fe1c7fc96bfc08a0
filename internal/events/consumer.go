// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/recommender/internal/logging"
	"github.com/tomtom215/recommender/internal/metrics"
	"github.com/tomtom215/recommender/internal/models"
	"github.com/tomtom215/recommender/internal/recommend"
	"github.com/tomtom215/recommender/internal/validation"
)

// Event outcomes recorded in metrics.
const (
	ResultOK          = "ok"
	ResultInvalid     = "invalid"
	ResultUnknownUser = "unknown_user"
	ResultError       = "error"
)

// Recalculator is the service operation the consumer drives.
type Recalculator interface {
	ForceRecalculate(ctx context.Context, userID int64, num int) (*recommend.RecalculateResult, error)
}

// ConsumerConfig tunes a Consumer.
type ConsumerConfig struct {
	Topic string
	// MaxPerSecond limits recalculations; 0 disables the limit.
	MaxPerSecond float64
}

// Consumer drains the recalculation topic. It implements suture.Service.
type Consumer struct {
	subscriber message.Subscriber
	recalc     Recalculator
	topic      string
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewConsumer creates a consumer reading cfg.Topic from sub.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewConsumer(sub message.Subscriber, recalc Recalculator, cfg ConsumerConfig, logger zerolog.Logger) *Consumer {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.MaxPerSecond > 0 {
		burst := int(cfg.MaxPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.MaxPerSecond), burst)
	}

	return &Consumer{
		subscriber: sub,
		recalc:     recalc,
		topic:      cfg.Topic,
		limiter:    limiter,
		logger:     logger.With().Str("component", "recalc-consumer").Str("topic", cfg.Topic).Logger(),
	}
}

// Serve consumes messages until ctx is canceled.
func (c *Consumer) Serve(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", c.topic, err)
	}

	c.logger.Info().Msg("Recalculation consumer started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("Recalculation consumer stopped")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			c.process(ctx, msg)
		}
	}
}

// String names the service in supervisor logs.
func (c *Consumer) String() string {
	return "recalc-consumer"
}

func (c *Consumer) process(ctx context.Context, msg *message.Message) {
	if err := c.limiter.Wait(ctx); err != nil {
		// shutting down; let the broker redeliver
		msg.Nack()
		return
	}

	result := c.handle(ctx, msg)
	metrics.RecordRecalcEvent(result)

	if result == ResultError {
		msg.Nack()
		return
	}
	msg.Ack()
}

// handle reports the outcome. Only ResultError leads to redelivery.
func (c *Consumer) handle(ctx context.Context, msg *message.Message) string {
	ctx = logging.ContextWithLogger(ctx, c.logger)
	if id := msg.Metadata.Get(MetadataCorrelationID); id != "" {
		ctx = logging.ContextWithCorrelationID(ctx, id)
	} else {
		ctx = logging.ContextWithCorrelationID(ctx, logging.GenerateCorrelationID())
	}
	log := logging.Ctx(ctx).With().Str("message_uuid", msg.UUID).Logger()

	var req models.RecalculateRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		log.Warn().Err(err).Msg("Dropping malformed recalculation request")
		return ResultInvalid
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		log.Warn().Str("error", verr.Error()).Msg("Dropping invalid recalculation request")
		return ResultInvalid
	}

	res, err := c.recalc.ForceRecalculate(ctx, req.UserID, req.NumRecommendations)
	switch {
	case errors.Is(err, recommend.ErrUserNotFound):
		log.Info().Int64("user_id", req.UserID).Msg("Dropping recalculation for unknown user")
		return ResultUnknownUser
	case err != nil:
		log.Error().Err(err).Int64("user_id", req.UserID).Msg("Recalculation failed, requesting redelivery")
		return ResultError
	}

	log.Info().
		Int64("user_id", res.UserID).
		Int("items", len(res.Items)).
		Str("cache_write", string(res.CacheWrite)).
		Msg("Recalculated from event")
	return ResultOK
}
