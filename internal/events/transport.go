// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/recommender/internal/config"
)

// StreamName is the JetStream stream holding recalculation requests.
// Topics contain dots, which stream names may not, so the stream is
// provisioned explicitly instead of by Watermill.
const StreamName = "RECOMMEND_EVENTS"

const (
	maxReconnects = 10
	reconnectWait = 2 * time.Second
	maxDeliver    = 5
	maxAckPending = 256
	closeTimeout  = 30 * time.Second
)

func natsOptions(logger watermill.LoggerAdapter, name string) []natsgo.Option {
	return []natsgo.Option{
		natsgo.Name(name),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(maxReconnects),
		natsgo.ReconnectWait(reconnectWait),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}
}

// EnsureStream creates the recalculation stream when it does not exist.
func EnsureStream(url, topic string) error {
	nc, err := natsgo.Connect(url, natsgo.Timeout(5*time.Second))
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		return fmt.Errorf("jetstream context: %w", err)
	}

	if _, err := js.StreamInfo(StreamName); err == nil {
		return nil
	} else if !errors.Is(err, natsgo.ErrStreamNotFound) {
		return fmt.Errorf("stream info %s: %w", StreamName, err)
	}

	_, err = js.AddStream(&natsgo.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{topic},
		Retention: natsgo.WorkQueuePolicy,
		Storage:   natsgo.FileStorage,
		MaxAge:    24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("add stream %s: %w", StreamName, err)
	}
	return nil
}

// NewNATSPublisher creates a JetStream publisher bound to the recalculation stream.
func NewNATSPublisher(cfg *config.EventsConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: natsOptions(logger, "recommender-publisher"),
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: false,
			TrackMsgId:    true,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}
	return pub, nil
}

// NewNATSSubscriber creates a durable, queue-grouped JetStream subscriber.
func NewNATSSubscriber(cfg *config.EventsConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	subscribers := cfg.SubscribersCount
	if subscribers < 1 {
		subscribers = 1
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              cfg.URL,
		QueueGroupPrefix: cfg.QueueGroup,
		SubscribersCount: subscribers,
		AckWaitTimeout:   cfg.AckWait,
		CloseTimeout:     closeTimeout,
		NatsOptions:      natsOptions(logger, "recommender-consumer"),
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: false,
			AckAsync:      false,
			DurablePrefix: cfg.DurableName,
			SubscribeOptions: []natsgo.SubOpt{
				natsgo.BindStream(StreamName),
				natsgo.MaxDeliver(maxDeliver),
				natsgo.MaxAckPending(maxAckPending),
				natsgo.AckWait(cfg.AckWait),
				natsgo.DeliverAll(),
			},
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill subscriber: %w", err)
	}
	return sub, nil
}
