// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/recommender/internal/config"
	"github.com/tomtom215/recommender/internal/events"
	"github.com/tomtom215/recommender/internal/logging"
)

// defaultEmbeddedPort is the client port of the in-process broker.
const defaultEmbeddedPort = 4222

// EventsComponents holds the NATS pieces for lifecycle management.
type EventsComponents struct {
	server     *events.EmbeddedServer
	publisher  *events.Publisher
	subscriber message.Subscriber
	consumer   *events.Consumer
}

// initEvents wires the recalculation queue when NATS_ENABLED=true. It returns
// nil components when events are disabled.
func initEvents(cfg *config.EventsConfig, recalc events.Recalculator, embeddedPort int) (*EventsComponents, error) {
	if !cfg.Enabled {
		logging.Info().Msg("Event processing disabled (NATS_ENABLED=false)")
		return nil, nil
	}

	// local copy; the embedded server overrides the URL
	evCfg := *cfg
	components := &EventsComponents{}

	if evCfg.Embedded {
		srv, err := events.NewEmbeddedServer(&events.ServerConfig{
			Port:     embeddedPort,
			StoreDir: evCfg.StoreDir,
		})
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS: %w", err)
		}
		components.server = srv
		evCfg.URL = srv.ClientURL()
		logging.Info().Str("url", evCfg.URL).Msg("Embedded NATS server started")
	} else {
		logging.Info().Str("url", evCfg.URL).Msg("Using external NATS server")
	}

	if err := events.EnsureStream(evCfg.URL, evCfg.Topic); err != nil {
		components.Shutdown(context.Background())
		return nil, err
	}

	wmLogger := logging.NewWatermillAdapter(logging.WithComponent("watermill"))

	pub, err := events.NewNATSPublisher(&evCfg, wmLogger)
	if err != nil {
		components.Shutdown(context.Background())
		return nil, err
	}
	components.publisher = events.NewPublisher(pub, evCfg.Topic)

	sub, err := events.NewNATSSubscriber(&evCfg, wmLogger)
	if err != nil {
		components.Shutdown(context.Background())
		return nil, err
	}
	components.subscriber = sub

	components.consumer = events.NewConsumer(sub, recalc, events.ConsumerConfig{
		Topic:        evCfg.Topic,
		MaxPerSecond: evCfg.MaxPerSecond,
	}, logging.Logger())

	logging.Info().
		Str("topic", evCfg.Topic).
		Str("stream", events.StreamName).
		Int("subscribers", evCfg.SubscribersCount).
		Msg("Event processing initialized")
	return components, nil
}

// Publisher returns the recalculation publisher, or nil when disabled.
func (c *EventsComponents) Publisher() *events.Publisher {
	if c == nil {
		return nil
	}
	return c.publisher
}

// Consumer returns the recalculation consumer, or nil when disabled.
func (c *EventsComponents) Consumer() *events.Consumer {
	if c == nil {
		return nil
	}
	return c.consumer
}

// Shutdown closes the publisher and subscriber, then stops the embedded
// server. Safe on nil and on partially initialized components.
func (c *EventsComponents) Shutdown(ctx context.Context) {
	if c == nil {
		return
	}

	var errs []error
	if c.publisher != nil {
		errs = append(errs, c.publisher.Close())
	}
	if c.subscriber != nil {
		errs = append(errs, c.subscriber.Close())
	}
	if c.server != nil {
		errs = append(errs, c.server.Shutdown(ctx))
	}

	if err := errors.Join(errs...); err != nil {
		logging.Error().Err(err).Msg("Error shutting down event processing")
		return
	}
	logging.Info().Msg("Event processing stopped")
}
