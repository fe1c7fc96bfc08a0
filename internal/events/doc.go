// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

/*
Package events carries recalculation requests over NATS JetStream using
Watermill.

A RecalculateRequest published to the recalculation topic is consumed by
Consumer, which calls ForceRecalculate on the recommendation service.

	{"user_id": 42, "num_recommendations": 10}

# Delivery

  - Malformed or invalid payloads are acked and dropped.
  - An unknown user is acked and dropped.
  - Any other failure is nacked and JetStream redelivers it after AckWait.

Consumer throttles recalculations with golang.org/x/time/rate so a burst of
events cannot saturate the database.

# Components

  - EmbeddedServer: in-process nats-server with JetStream for single-node setups
  - NewNATSPublisher / NewNATSSubscriber: watermill-nats transports
  - Publisher: typed PublishRecalculate over any message.Publisher
  - Consumer: a suture.Service that drains the topic

Tests use Watermill's gochannel Pub/Sub, so the consumer logic runs without a
broker.
*/
package events
