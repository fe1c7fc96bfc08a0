// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package pgstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tomtom215/recommender/internal/metrics"
	"github.com/tomtom215/recommender/internal/recommend"
)

var (
	_ recommend.DataProvider  = (*Store)(nil)
	_ recommend.UserDirectory = (*Store)(nil)
)

const defaultQueryTimeout = 30 * time.Second

type orderItemRow struct {
	UserID    int64
	ProductID int64
}

type interactionRow struct {
	UserID          int64
	ProductID       int64
	InteractionType string
}

type volumeRow struct {
	ProductID     int64
	TotalQuantity int64
}

// query runs fn on a context-bound session with the configured timeout and
// records the outcome.
func (s *Store) query(ctx context.Context, op, table string, fn func(tx *gorm.DB) error) error {
	timeout := s.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := fn(s.db.WithContext(ctx))
	metrics.RecordDBQuery(op, table, time.Since(start), err)
	if err != nil {
		s.logger.Debug().Err(err).Str("table", table).Msg("Query failed")
	}
	return err
}

// OrderItems returns one (user, product) pair per purchase line item.
func (s *Store) OrderItems(ctx context.Context) ([]recommend.OrderItem, error) {
	var rows []orderItemRow
	err := s.query(ctx, "select", "order_items", func(tx *gorm.DB) error {
		q := tx.Table("order_items AS oi").
			Select("o.user_id, oi.product_id").
			Joins("JOIN orders o ON o.id = oi.order_id")
		if len(s.cfg.CompletedStatuses) > 0 {
			q = q.Where("o.status IN ?", s.cfg.CompletedStatuses)
		}
		return q.Order("oi.id").Scan(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}

	out := make([]recommend.OrderItem, len(rows))
	for i, r := range rows {
		out[i] = recommend.OrderItem{UserID: r.UserID, ItemID: r.ProductID}
	}
	return out, nil
}

// Interactions returns every logged interaction in insertion order.
func (s *Store) Interactions(ctx context.Context) ([]recommend.Interaction, error) {
	var rows []interactionRow
	err := s.query(ctx, "select", "user_interactions", func(tx *gorm.DB) error {
		return tx.Model(&UserInteraction{}).
			Select("user_id, product_id, interaction_type").
			Order("id").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}

	out := make([]recommend.Interaction, len(rows))
	for i, r := range rows {
		out[i] = recommend.Interaction{
			UserID: r.UserID,
			ItemID: r.ProductID,
			Kind:   recommend.ParseInteractionKind(r.InteractionType),
		}
	}
	return out, nil
}

// CatalogItemIDs returns every product id in ascending order.
func (s *Store) CatalogItemIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := s.query(ctx, "select", "products", func(tx *gorm.DB) error {
		return tx.Model(&Product{}).Order("id").Pluck("id", &ids).Error
	})
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	return ids, nil
}

// PurchaseVolume sums order line quantities per product.
func (s *Store) PurchaseVolume(ctx context.Context) ([]recommend.ItemVolume, error) {
	var rows []volumeRow
	err := s.query(ctx, "aggregate", "order_items", func(tx *gorm.DB) error {
		return tx.Model(&OrderItem{}).
			Select("product_id, SUM(quantity)::BIGINT AS total_quantity").
			Group("product_id").
			Order("total_quantity DESC, product_id ASC").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("query purchase volume: %w", err)
	}

	out := make([]recommend.ItemVolume, len(rows))
	for i, r := range rows {
		out[i] = recommend.ItemVolume{ItemID: r.ProductID, Quantity: r.TotalQuantity}
	}
	return out, nil
}

// UserExists reports whether a user row exists.
func (s *Store) UserExists(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := s.query(ctx, "lookup", "users", func(tx *gorm.DB) error {
		return tx.Model(&User{}).Where("id = ?", userID).Count(&count).Error
	})
	if err != nil {
		return false, fmt.Errorf("query user %d: %w", userID, err)
	}
	return count > 0, nil
}
