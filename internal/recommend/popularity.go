// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package recommend

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/recommender/internal/metrics"
)

// PopularityRank returns up to n distinct item ids ranked by total purchased
// quantity (descending, ties by ascending id), padded with catalog ids in
// ascending order. Items without positive volume only appear via padding.
// Returning fewer than n items when the catalog is exhausted is not an error.
func PopularityRank(volumes []ItemVolume, catalog []int64, n int) []int64 {
	if n <= 0 {
		return []int64{}
	}

	totals := make(map[int64]int64, len(volumes))
	for _, v := range volumes {
		totals[v.ItemID] += v.Quantity
	}

	ranked := make([]ItemVolume, 0, len(totals))
	for id, qty := range totals {
		if qty > 0 {
			ranked = append(ranked, ItemVolume{ItemID: id, Quantity: qty})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].ItemID < ranked[j].ItemID
	})

	out := make([]int64, 0, n)
	chosen := make(map[int64]struct{}, n)
	for _, v := range ranked {
		if len(out) == n {
			return out
		}
		out = append(out, v.ItemID)
		chosen[v.ItemID] = struct{}{}
	}

	padding := make([]int64, len(catalog))
	copy(padding, catalog)
	sort.Slice(padding, func(i, j int) bool { return padding[i] < padding[j] })

	for _, id := range padding {
		if len(out) == n {
			break
		}
		if _, dup := chosen[id]; dup {
			continue
		}
		out = append(out, id)
		chosen[id] = struct{}{}
	}

	return out
}

// LoadPopularity reads purchase volume and the catalog concurrently and ranks
// them. Either source failing is treated as empty, so this path never fails.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func LoadPopularity(ctx context.Context, provider DataProvider, n int, logger zerolog.Logger) []int64 {
	var (
		volumes []ItemVolume
		catalog []int64
		g       errgroup.Group
	)

	g.Go(func() error {
		v, err := provider.PurchaseVolume(ctx)
		if err != nil {
			logger.Warn().Err(err).Str("source", "purchase_volume").Msg("Data source unavailable, treating as empty")
			metrics.RecordDataSourceError("purchase_volume")
			return nil
		}
		volumes = v
		return nil
	})

	g.Go(func() error {
		ids, err := provider.CatalogItemIDs(ctx)
		if err != nil {
			logger.Warn().Err(err).Str("source", "catalog").Msg("Data source unavailable, treating as empty")
			metrics.RecordDataSourceError("catalog")
			return nil
		}
		catalog = ids
		return nil
	})

	_ = g.Wait()

	return PopularityRank(volumes, catalog, n)
}
