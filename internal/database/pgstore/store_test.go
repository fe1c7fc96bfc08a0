// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package pgstore

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recommender/internal/config"
	"github.com/tomtom215/recommender/internal/database"
)

func TestOpen_MissingURL(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), &config.DatabaseConfig{Driver: config.DriverPostgres}, zerolog.Nop())
	if !errors.Is(err, ErrMissingURL) {
		t.Fatalf("Open() error = %v, want ErrMissingURL", err)
	}
}

func TestFromDataset(t *testing.T) {
	t.Parallel()

	ds := database.DemoDataset()
	users, categories, products, orders, interactions := fromDataset(ds)

	if len(users) != len(ds.Users) {
		t.Errorf("users = %d, want %d", len(users), len(ds.Users))
	}
	if len(categories) != len(ds.Categories) {
		t.Errorf("categories = %d, want %d", len(categories), len(ds.Categories))
	}
	if len(products) != len(ds.Products) {
		t.Errorf("products = %d, want %d", len(products), len(ds.Products))
	}
	if len(interactions) != len(ds.Interactions) {
		t.Errorf("interactions = %d, want %d", len(interactions), len(ds.Interactions))
	}
	if len(orders) != len(ds.Orders) {
		t.Fatalf("orders = %d, want %d", len(orders), len(ds.Orders))
	}

	first := orders[0]
	if first.OrderNumber != "ORD-000001" {
		t.Errorf("OrderNumber = %q, want ORD-000001", first.OrderNumber)
	}
	if len(first.Items) != 2 {
		t.Fatalf("order 1 items = %d, want 2", len(first.Items))
	}
	for _, it := range first.Items {
		if it.OrderID != first.ID {
			t.Errorf("item %d OrderID = %d, want %d", it.ID, it.OrderID, first.ID)
		}
	}
	// 89.99 + 2 * 24.50
	if diff := first.TotalAmount - 138.99; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("TotalAmount = %v, want 138.99", first.TotalAmount)
	}

	for _, p := range products {
		if p.CategoryID == nil {
			t.Errorf("product %d lost its category", p.ID)
		}
	}
}

func TestFromDataset_NoCategory(t *testing.T) {
	t.Parallel()

	_, _, products, _, _ := fromDataset(&database.Dataset{
		Products: []database.Product{{ID: 1, Name: "Loose item"}},
	})
	if len(products) != 1 || products[0].CategoryID != nil {
		t.Errorf("products = %+v, want one product without category", products)
	}
}
