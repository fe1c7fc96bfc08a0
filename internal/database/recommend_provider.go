// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/recommender/internal/metrics"
	"github.com/tomtom215/recommender/internal/recommend"
)

var (
	_ recommend.DataProvider  = (*DB)(nil)
	_ recommend.UserDirectory = (*DB)(nil)
)

// OrderItems returns one (user, product) pair per purchase line item. When
// completed statuses are configured only orders in those states count.
func (db *DB) OrderItems(ctx context.Context) ([]recommend.OrderItem, error) {
	query := `
		SELECT o.user_id, oi.product_id
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id`

	statuses := db.cfg.CompletedStatuses
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		query += fmt.Sprintf(" WHERE o.status IN (%s)", placeholders(len(statuses)))
		for _, s := range statuses {
			args = append(args, s)
		}
	}
	query += " ORDER BY oi.id"

	var out []recommend.OrderItem
	err := db.timedQuery(ctx, "select", "order_items", query, args, func(rows *sql.Rows) error {
		var item recommend.OrderItem
		if err := rows.Scan(&item.UserID, &item.ItemID); err != nil {
			return err
		}
		out = append(out, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	return out, nil
}

// Interactions returns every logged interaction in insertion order.
func (db *DB) Interactions(ctx context.Context) ([]recommend.Interaction, error) {
	query := `
		SELECT user_id, product_id, interaction_type
		FROM user_interactions
		ORDER BY id`

	var out []recommend.Interaction
	err := db.timedQuery(ctx, "select", "user_interactions", query, nil, func(rows *sql.Rows) error {
		var (
			in   recommend.Interaction
			kind string
		)
		if err := rows.Scan(&in.UserID, &in.ItemID, &kind); err != nil {
			return err
		}
		in.Kind = recommend.ParseInteractionKind(kind)
		out = append(out, in)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	return out, nil
}

// CatalogItemIDs returns every product id in ascending order.
func (db *DB) CatalogItemIDs(ctx context.Context) ([]int64, error) {
	var out []int64
	err := db.timedQuery(ctx, "select", "products", `SELECT id FROM products ORDER BY id`, nil, func(rows *sql.Rows) error {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		out = append(out, id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	return out, nil
}

// PurchaseVolume sums order line quantities per product across all orders.
func (db *DB) PurchaseVolume(ctx context.Context) ([]recommend.ItemVolume, error) {
	query := `
		SELECT product_id, CAST(SUM(quantity) AS BIGINT) AS total_quantity
		FROM order_items
		GROUP BY product_id
		ORDER BY total_quantity DESC, product_id ASC`

	var out []recommend.ItemVolume
	err := db.timedQuery(ctx, "aggregate", "order_items", query, nil, func(rows *sql.Rows) error {
		var v recommend.ItemVolume
		if err := rows.Scan(&v.ItemID, &v.Quantity); err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query purchase volume: %w", err)
	}
	return out, nil
}

// UserExists reports whether a user row exists.
func (db *DB) UserExists(ctx context.Context, userID int64) (bool, error) {
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	var one int
	err := db.conn.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, userID).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		metrics.RecordDBQuery("lookup", "users", time.Since(start), nil)
		return false, nil
	case err != nil:
		metrics.RecordDBQuery("lookup", "users", time.Since(start), err)
		db.logQueryError(err, "users")
		return false, fmt.Errorf("query user %d: %w", userID, err)
	default:
		metrics.RecordDBQuery("lookup", "users", time.Since(start), nil)
		return true, nil
	}
}

// timedQuery runs a read query under the configured timeout, feeding each row
// to scan and recording duration and errors.
func (db *DB) timedQuery(ctx context.Context, op, table, query string, args []any, scan func(*sql.Rows) error) (err error) {
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery(op, table, time.Since(start), err)
		if err != nil {
			db.logQueryError(err, table)
		}
	}()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer closeWithLog(rows, &db.logger, "rows")

	for rows.Next() {
		if err = scan(rows); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
	}
	return rows.Err()
}

func (db *DB) logQueryError(err error, table string) {
	if isConnectionError(err) {
		db.logger.Error().Err(err).Str("table", table).Msg("Database connection lost")
		return
	}
	db.logger.Debug().Err(err).Str("table", table).Msg("Query failed")
}
