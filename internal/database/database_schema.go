// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

/*
database_schema.go - Storefront Schema

Tables (shared by DuckDB and SQLite; Postgres uses GORM models in pgstore):
  - users: shopper identities, the target of recommendation requests
  - categories / products: the catalog, products is the padding source for
    popularity rankings
  - orders: one row per checkout with a status string
  - order_items: purchase line items, joined to orders for user_id
  - user_interactions: logged clicks, favorites, cart adds and views

Ids are supplied by the writer. Neither embedded engine shares an
autoincrement syntax with the other, and the storefront owns id assignment.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// tableCreationQueries returns the CREATE TABLE statements in dependency order.
func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			price DECIMAL(10, 2) NOT NULL DEFAULT 0,
			stock INTEGER NOT NULL DEFAULT 0,
			category_id BIGINT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGINT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			order_number VARCHAR(255) NOT NULL UNIQUE,
			total_amount DECIMAL(10, 2) NOT NULL DEFAULT 0,
			status VARCHAR(64) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGINT PRIMARY KEY,
			order_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			quantity INTEGER NOT NULL,
			price DECIMAL(10, 2) NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS user_interactions (
			id BIGINT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			interaction_type VARCHAR(255) NOT NULL,
			"timestamp" TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}
}

// indexCreationQueries covers the join and group-by columns used by the
// recommendation queries.
func indexCreationQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_user ON user_interactions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_type ON user_interactions(interaction_type)`,
	}
}
