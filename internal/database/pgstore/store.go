// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tomtom215/recommender/internal/config"
	"github.com/tomtom215/recommender/internal/database"
)

// ErrMissingURL is returned when the postgres driver is selected without a DSN.
var ErrMissingURL = errors.New("postgres database url is required")

// Store is the Postgres-backed recommendation data source.
type Store struct {
	db     *gorm.DB
	cfg    *config.DatabaseConfig
	logger zerolog.Logger
}

// Open connects to Postgres, validates the pool with a ping, migrates the
// schema and optionally seeds the demo dataset.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(ctx context.Context, cfg *config.DatabaseConfig, logger zerolog.Logger) (*Store, error) {
	if cfg.URL == "" {
		return nil, ErrMissingURL
	}

	logger = logger.With().Str("component", "pgstore").Logger()

	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm sql db: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(max(cfg.MaxOpenConns/2, 1))
	}
	sqlDB.SetConnMaxIdleTime(15 * time.Minute)
	sqlDB.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, cfg: cfg, logger: logger}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Ping(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := s.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if cfg.SeedDemo {
		if err := s.SeedDemoData(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	logger.Info().Msg("Postgres store ready")
	return s, nil
}

// Migrate applies the GORM models to the schema.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Ping checks if the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("gorm sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("gorm sql db: %w", err)
	}
	return sqlDB.Close()
}

// Load writes ds in one transaction.
func (s *Store) Load(ctx context.Context, ds *database.Dataset) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, categories, products, orders, interactions := fromDataset(ds)
		batches := []struct {
			name string
			rows any
			n    int
		}{
			{"users", &users, len(users)},
			{"categories", &categories, len(categories)},
			{"products", &products, len(products)},
			{"orders", &orders, len(orders)},
			{"user_interactions", &interactions, len(interactions)},
		}
		for _, b := range batches {
			if b.n == 0 {
				continue
			}
			if err := tx.Create(b.rows).Error; err != nil {
				return fmt.Errorf("insert %s: %w", b.name, err)
			}
		}
		return nil
	})
}

// SeedDemoData loads database.DemoDataset into an empty store.
func (s *Store) SeedDemoData(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		s.logger.Debug().Int64("users", count).Msg("Database already populated, skipping demo seed")
		return nil
	}
	if err := s.Load(ctx, database.DemoDataset()); err != nil {
		return err
	}
	s.logger.Info().Msg("Seeded demo data")
	return nil
}

// fromDataset converts the driver-neutral dataset into GORM models.
func fromDataset(ds *database.Dataset) ([]User, []Category, []Product, []Order, []UserInteraction) {
	users := make([]User, 0, len(ds.Users))
	for _, u := range ds.Users {
		users = append(users, User{ID: u.ID, Name: u.Name, Email: u.Email})
	}

	categories := make([]Category, 0, len(ds.Categories))
	for _, c := range ds.Categories {
		categories = append(categories, Category{ID: c.ID, Name: c.Name})
	}

	products := make([]Product, 0, len(ds.Products))
	for _, p := range ds.Products {
		prod := Product{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock}
		if p.CategoryID > 0 {
			id := p.CategoryID
			prod.CategoryID = &id
		}
		products = append(products, prod)
	}

	orders := make([]Order, 0, len(ds.Orders))
	for _, o := range ds.Orders {
		order := Order{
			ID:          o.ID,
			UserID:      o.UserID,
			OrderNumber: o.Number,
			Status:      o.Status,
			Items:       make([]OrderItem, 0, len(o.Lines)),
		}
		if order.OrderNumber == "" {
			order.OrderNumber = fmt.Sprintf("ORD-%06d", o.ID)
		}
		for _, l := range o.Lines {
			order.TotalAmount += l.Price * float64(l.Quantity)
			order.Items = append(order.Items, OrderItem{
				ID:        l.ID,
				OrderID:   o.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				Price:     l.Price,
			})
		}
		orders = append(orders, order)
	}

	interactions := make([]UserInteraction, 0, len(ds.Interactions))
	for _, in := range ds.Interactions {
		interactions = append(interactions, UserInteraction{
			ID:              in.ID,
			UserID:          in.UserID,
			ProductID:       in.ProductID,
			InteractionType: in.Type,
		})
	}

	return users, categories, products, orders, interactions
}
