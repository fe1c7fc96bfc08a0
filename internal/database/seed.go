// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package database

import (
	"context"
	"database/sql"
	"fmt"
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// User is a storefront shopper.
type User struct {
	ID    int64
	Name  string
	Email string
}

// Category groups products.
type Category struct {
	ID   int64
	Name string
}

// Product is a catalog entry.
type Product struct {
	ID         int64
	Name       string
	Price      float64
	Stock      int
	CategoryID int64
}

// OrderLine is one line of an Order.
type OrderLine struct {
	ID        int64
	ProductID int64
	Quantity  int
	Price     float64
}

// Order is a checkout with its line items.
type Order struct {
	ID     int64
	UserID int64
	Number string
	Status string
	Lines  []OrderLine
}

// InteractionRecord is a logged user-product interaction row.
type InteractionRecord struct {
	ID        int64
	UserID    int64
	ProductID int64
	Type      string
}

// Dataset is a bundle of rows written together by Load.
type Dataset struct {
	Users        []User
	Categories   []Category
	Products     []Product
	Orders       []Order
	Interactions []InteractionRecord
}

// Load writes every row of ds in a single transaction.
func (db *DB) Load(ctx context.Context, ds *Dataset) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck // no-op after commit

	if err := writeDataset(ctx, tx, ds); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	return nil
}

func writeDataset(ctx context.Context, ex execer, ds *Dataset) error {
	for _, u := range ds.Users {
		if _, err := ex.ExecContext(ctx,
			`INSERT INTO users (id, name, email) VALUES (?, ?, ?)`,
			u.ID, u.Name, u.Email); err != nil {
			return fmt.Errorf("insert user %d: %w", u.ID, err)
		}
	}
	for _, c := range ds.Categories {
		if _, err := ex.ExecContext(ctx,
			`INSERT INTO categories (id, name) VALUES (?, ?)`,
			c.ID, c.Name); err != nil {
			return fmt.Errorf("insert category %d: %w", c.ID, err)
		}
	}
	for _, p := range ds.Products {
		var category any
		if p.CategoryID > 0 {
			category = p.CategoryID
		}
		if _, err := ex.ExecContext(ctx,
			`INSERT INTO products (id, name, price, stock, category_id) VALUES (?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Price, p.Stock, category); err != nil {
			return fmt.Errorf("insert product %d: %w", p.ID, err)
		}
	}
	for _, o := range ds.Orders {
		if err := writeOrder(ctx, ex, &o); err != nil {
			return err
		}
	}
	for _, in := range ds.Interactions {
		if _, err := ex.ExecContext(ctx,
			`INSERT INTO user_interactions (id, user_id, product_id, interaction_type) VALUES (?, ?, ?, ?)`,
			in.ID, in.UserID, in.ProductID, in.Type); err != nil {
			return fmt.Errorf("insert interaction %d: %w", in.ID, err)
		}
	}
	return nil
}

func writeOrder(ctx context.Context, ex execer, o *Order) error {
	var total float64
	for _, l := range o.Lines {
		total += l.Price * float64(l.Quantity)
	}
	number := o.Number
	if number == "" {
		number = fmt.Sprintf("ORD-%06d", o.ID)
	}

	if _, err := ex.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, order_number, total_amount, status) VALUES (?, ?, ?, ?, ?)`,
		o.ID, o.UserID, number, total, o.Status); err != nil {
		return fmt.Errorf("insert order %d: %w", o.ID, err)
	}
	for _, l := range o.Lines {
		if _, err := ex.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, product_id, quantity, price) VALUES (?, ?, ?, ?, ?)`,
			l.ID, o.ID, l.ProductID, l.Quantity, l.Price); err != nil {
			return fmt.Errorf("insert order item %d: %w", l.ID, err)
		}
	}
	return nil
}

// SeedDemoData inserts DemoDataset when the users table is empty. Running it
// against a populated database is a no-op.
func (db *DB) SeedDemoData(ctx context.Context) error {
	var count int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		db.logger.Debug().Int64("users", count).Msg("Database already populated, skipping demo seed")
		return nil
	}

	ds := DemoDataset()
	if err := db.Load(ctx, ds); err != nil {
		return err
	}

	db.logger.Info().
		Int("users", len(ds.Users)).
		Int("products", len(ds.Products)).
		Int("orders", len(ds.Orders)).
		Int("interactions", len(ds.Interactions)).
		Msg("Seeded demo data")
	return nil
}

// DemoDataset returns a small deterministic storefront. Shoppers 1-3 share
// tastes in electronics and 4-5 lean toward books. Shopper 6 has no history.
func DemoDataset() *Dataset {
	return &Dataset{
		Users: []User{
			{ID: 1, Name: "Alice", Email: "alice@example.com"},
			{ID: 2, Name: "Bob", Email: "bob@example.com"},
			{ID: 3, Name: "Charlie", Email: "charlie@example.com"},
			{ID: 4, Name: "Dana", Email: "dana@example.com"},
			{ID: 5, Name: "Emma", Email: "emma@example.com"},
			{ID: 6, Name: "Frank", Email: "frank@example.com"},
		},
		Categories: []Category{
			{ID: 1, Name: "Electronics"},
			{ID: 2, Name: "Books"},
			{ID: 3, Name: "Home"},
		},
		Products: []Product{
			{ID: 101, Name: "Wireless Headphones", Price: 89.99, Stock: 40, CategoryID: 1},
			{ID: 102, Name: "USB-C Charger", Price: 24.50, Stock: 120, CategoryID: 1},
			{ID: 103, Name: "Mechanical Keyboard", Price: 129.00, Stock: 25, CategoryID: 1},
			{ID: 104, Name: "Portable SSD", Price: 99.00, Stock: 30, CategoryID: 1},
			{ID: 201, Name: "Go in Practice", Price: 39.99, Stock: 15, CategoryID: 2},
			{ID: 202, Name: "Distributed Systems", Price: 54.00, Stock: 10, CategoryID: 2},
			{ID: 203, Name: "Database Internals", Price: 47.25, Stock: 12, CategoryID: 2},
			{ID: 301, Name: "Desk Lamp", Price: 32.00, Stock: 50, CategoryID: 3},
			{ID: 302, Name: "Coffee Grinder", Price: 64.90, Stock: 18, CategoryID: 3},
		},
		Orders: []Order{
			{ID: 1, UserID: 1, Status: "completed", Lines: []OrderLine{
				{ID: 1, ProductID: 101, Quantity: 1, Price: 89.99},
				{ID: 2, ProductID: 102, Quantity: 2, Price: 24.50},
			}},
			{ID: 2, UserID: 2, Status: "completed", Lines: []OrderLine{
				{ID: 3, ProductID: 101, Quantity: 1, Price: 89.99},
				{ID: 4, ProductID: 103, Quantity: 1, Price: 129.00},
				{ID: 5, ProductID: 201, Quantity: 1, Price: 39.99},
			}},
			{ID: 3, UserID: 3, Status: "completed", Lines: []OrderLine{
				{ID: 6, ProductID: 102, Quantity: 3, Price: 24.50},
				{ID: 7, ProductID: 104, Quantity: 1, Price: 99.00},
			}},
			{ID: 4, UserID: 4, Status: "completed", Lines: []OrderLine{
				{ID: 8, ProductID: 201, Quantity: 1, Price: 39.99},
				{ID: 9, ProductID: 202, Quantity: 1, Price: 54.00},
			}},
			{ID: 5, UserID: 5, Status: "pending", Lines: []OrderLine{
				{ID: 10, ProductID: 201, Quantity: 1, Price: 39.99},
				{ID: 11, ProductID: 302, Quantity: 1, Price: 64.90},
			}},
		},
		Interactions: []InteractionRecord{
			{ID: 1, UserID: 1, ProductID: 103, Type: "click"},
			{ID: 2, UserID: 1, ProductID: 104, Type: "view"},
			{ID: 3, UserID: 2, ProductID: 102, Type: "favorite"},
			{ID: 4, UserID: 3, ProductID: 101, Type: "add_to_cart"},
			{ID: 5, UserID: 4, ProductID: 203, Type: "favorite"},
			{ID: 6, UserID: 5, ProductID: 202, Type: "click"},
			{ID: 7, UserID: 5, ProductID: 301, Type: "view"},
			{ID: 8, UserID: 3, ProductID: 302, Type: "favorite"},
		},
	}
}
