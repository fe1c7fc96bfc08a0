// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package recommend

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/recommender/internal/metrics"
)

// Aggregation is the collapsed interaction table for one computation.
//
// Records hold one entry per distinct (user, item) pair in the order the pair
// was first observed. UserIndex and ItemIndex assign dense zero-based positions
// in first-seen order across order items followed by logged interactions.
type Aggregation struct {
	Records   []AggregatedRecord
	UserIndex map[int64]int
	ItemIndex map[int64]int
}

// Empty reports whether the aggregation carries no evidence at all.
func (a *Aggregation) Empty() bool {
	return a == nil || len(a.Records) == 0
}

type pairKey struct {
	user int64
	item int64
}

// aggregator accumulates raw events into an Aggregation.
type aggregator struct {
	agg     *Aggregation
	pairPos map[pairKey]int
}

func newAggregator(capacity int) *aggregator {
	return &aggregator{
		agg: &Aggregation{
			Records:   make([]AggregatedRecord, 0, capacity),
			UserIndex: make(map[int64]int),
			ItemIndex: make(map[int64]int),
		},
		pairPos: make(map[pairKey]int, capacity),
	}
}

// observe records one raw event, keeping the maximum score per pair.
func (a *aggregator) observe(userID, itemID int64, score int) {
	if _, ok := a.agg.UserIndex[userID]; !ok {
		a.agg.UserIndex[userID] = len(a.agg.UserIndex)
	}
	if _, ok := a.agg.ItemIndex[itemID]; !ok {
		a.agg.ItemIndex[itemID] = len(a.agg.ItemIndex)
	}

	key := pairKey{user: userID, item: itemID}
	if pos, ok := a.pairPos[key]; ok {
		if score > a.agg.Records[pos].Score {
			a.agg.Records[pos].Score = score
		}
		return
	}

	a.pairPos[key] = len(a.agg.Records)
	a.agg.Records = append(a.agg.Records, AggregatedRecord{
		UserID: userID,
		ItemID: itemID,
		Score:  score,
	})
}

// Aggregate merges order line items (strength 5) and logged interactions
// (strength by kind) into one maximum-score record per (user, item) pair.
// Both inputs empty yields an empty, non-nil Aggregation.
func Aggregate(orderItems []OrderItem, interactions []Interaction) *Aggregation {
	a := newAggregator(len(orderItems) + len(interactions))

	for _, oi := range orderItems {
		a.observe(oi.UserID, oi.ItemID, StrengthPurchase)
	}
	for _, in := range interactions {
		a.observe(in.UserID, in.ItemID, in.Kind.Strength())
	}

	return a.agg
}

// LoadAggregation reads both interaction sources concurrently and aggregates
// them. A failing source is logged and treated as empty; this never returns an
// error so the pipeline degrades to popularity instead of failing.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func LoadAggregation(ctx context.Context, provider DataProvider, logger zerolog.Logger) *Aggregation {
	var (
		orderItems   []OrderItem
		interactions []Interaction
		g            errgroup.Group
	)

	g.Go(func() error {
		items, err := provider.OrderItems(ctx)
		if err != nil {
			logger.Warn().Err(err).Str("source", "order_items").Msg("Data source unavailable, treating as empty")
			metrics.RecordDataSourceError("order_items")
			return nil
		}
		orderItems = items
		return nil
	})

	g.Go(func() error {
		events, err := provider.Interactions(ctx)
		if err != nil {
			logger.Warn().Err(err).Str("source", "interactions").Msg("Data source unavailable, treating as empty")
			metrics.RecordDataSourceError("interactions")
			return nil
		}
		interactions = events
		return nil
	})

	_ = g.Wait()

	return Aggregate(orderItems, interactions)
}
