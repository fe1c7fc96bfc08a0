// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

// Package pgstore serves recommendation inputs from PostgreSQL through GORM.
//
// The models mirror the embedded schema in the parent database package and
// are applied with AutoMigrate at startup. Store implements
// recommend.DataProvider and recommend.UserDirectory, so it is a drop-in
// replacement for database.DB when database.driver is "postgres".
package pgstore
