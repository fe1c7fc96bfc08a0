// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package pgstore

import "time"

// User maps the users table.
type User struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"size:255;not null;index"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time
}

// Category maps the categories table.
type Category struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false"`
	Name        string `gorm:"size:255;not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// Product maps the products table.
type Product struct {
	ID          int64   `gorm:"primaryKey;autoIncrement:false"`
	Name        string  `gorm:"size:255;not null;index"`
	Description string  `gorm:"type:text"`
	Price       float64 `gorm:"type:decimal(10,2);not null;default:0"`
	Stock       int     `gorm:"not null;default:0"`
	CategoryID  *int64  `gorm:"index"`
	CreatedAt   time.Time
}

// Order maps the orders table.
type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement:false"`
	UserID      int64       `gorm:"not null;index"`
	OrderNumber string      `gorm:"size:255;not null;uniqueIndex"`
	TotalAmount float64     `gorm:"type:decimal(10,2);not null;default:0"`
	Status      string      `gorm:"size:64;not null;index"`
	Items       []OrderItem `gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time
}

// OrderItem maps the order_items table.
type OrderItem struct {
	ID        int64   `gorm:"primaryKey;autoIncrement:false"`
	OrderID   int64   `gorm:"not null;index"`
	ProductID int64   `gorm:"not null;index"`
	Quantity  int     `gorm:"not null"`
	Price     float64 `gorm:"type:decimal(10,2);not null;default:0"`
}

// UserInteraction maps the user_interactions table.
type UserInteraction struct {
	ID              int64     `gorm:"primaryKey;autoIncrement:false"`
	UserID          int64     `gorm:"not null;index"`
	ProductID       int64     `gorm:"not null"`
	InteractionType string    `gorm:"size:255;not null;index"`
	Timestamp       time.Time `gorm:"autoCreateTime"`
}

// allModels lists the models in AutoMigrate order.
func allModels() []any {
	return []any{
		&User{},
		&Category{},
		&Product{},
		&Order{},
		&OrderItem{},
		&UserInteraction{},
	}
}
