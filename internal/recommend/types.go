// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package recommend

import (
	"context"
	"strings"
	"time"
)

// InteractionKind classifies a logged user-item interaction.
type InteractionKind string

const (
	// KindPurchase is a logged purchase interaction.
	KindPurchase InteractionKind = "purchase"
	// KindFavorite marks an item as a favorite.
	KindFavorite InteractionKind = "favorite"
	// KindAddToCart adds an item to the shopping cart.
	KindAddToCart InteractionKind = "add_to_cart"
	// KindClick is a click-through on an item.
	KindClick InteractionKind = "click"
	// KindView is a page view. Any unrecognized kind scores the same as a view.
	KindView InteractionKind = "view"
)

// Strength scores on the fixed ordinal scale.
const (
	StrengthPurchase  = 5
	StrengthFavorite  = 4
	StrengthAddToCart = 3
	StrengthClick     = 2
	StrengthOther     = 1
)

// ParseInteractionKind normalizes a stored interaction type string.
func ParseInteractionKind(s string) InteractionKind {
	return InteractionKind(strings.ToLower(strings.TrimSpace(s)))
}

// Strength returns the ordinal strength score for the kind.
func (k InteractionKind) Strength() int {
	switch k {
	case KindPurchase:
		return StrengthPurchase
	case KindFavorite:
		return StrengthFavorite
	case KindAddToCart:
		return StrengthAddToCart
	case KindClick:
		return StrengthClick
	default:
		return StrengthOther
	}
}

// String returns the kind as stored.
func (k InteractionKind) String() string {
	return string(k)
}

// OrderItem is a completed purchase line item attributed to a user.
type OrderItem struct {
	UserID int64 `json:"user_id"`
	ItemID int64 `json:"item_id"`
}

// Interaction is a logged user-item engagement.
type Interaction struct {
	UserID int64           `json:"user_id"`
	ItemID int64           `json:"item_id"`
	Kind   InteractionKind `json:"kind"`
}

// ItemVolume is the total purchased quantity of an item.
type ItemVolume struct {
	ItemID   int64 `json:"item_id"`
	Quantity int64 `json:"quantity"`
}

// AggregatedRecord is one (user, item) pair with its maximum observed strength.
type AggregatedRecord struct {
	UserID int64 `json:"user_id"`
	ItemID int64 `json:"item_id"`
	Score  int   `json:"score"`
}

// Source identifies where a returned recommendation list came from.
type Source string

const (
	// SourceCache means the list was served verbatim from the result cache.
	SourceCache Source = "cache"
	// SourceComputed means the list came from collaborative filtering.
	SourceComputed Source = "computed"
	// SourceFallback means the list came from the popularity ranking.
	SourceFallback Source = "fallback"
)

// FallbackReason explains why personalization was not used.
type FallbackReason string

const (
	FallbackNone            FallbackReason = ""
	FallbackNoData          FallbackReason = "no_data"
	FallbackUnknownUser     FallbackReason = "unknown_user"
	FallbackNoSimilarity    FallbackReason = "no_similarity"
	FallbackIndexOutOfRange FallbackReason = "index_out_of_range"
	FallbackNoCandidates    FallbackReason = "no_candidates"
)

// Result is the output of a single engine computation.
type Result struct {
	Items          []int64
	FallbackReason FallbackReason
	Users          int
	ItemsInMatrix  int
	Duration       time.Duration
}

// Source reports whether the result was personalized.
func (r *Result) Source() Source {
	if r.FallbackReason != FallbackNone {
		return SourceFallback
	}
	return SourceComputed
}

// Recommendations is returned by Service.GetRecommendations.
type Recommendations struct {
	UserID int64   `json:"user_id"`
	Items  []int64 `json:"items"`
	Source Source  `json:"source"`
}

// CacheWrite is what a recalculation did to the cache entry.
type CacheWrite string

const (
	// CacheWriteStored means the new list replaced the entry.
	CacheWriteStored CacheWrite = "stored"
	// CacheWriteCleared means the list was empty and the entry was deleted.
	CacheWriteCleared CacheWrite = "cleared"
	// CacheWriteSkipped means no cache is configured.
	CacheWriteSkipped CacheWrite = "skipped"
	// CacheWriteFailed means the write or delete returned an error.
	CacheWriteFailed CacheWrite = "failed"
)

// RecalculateResult is returned by Service.ForceRecalculate. Cache write
// success is reported separately from the computation. Cached is true only
// for CacheWriteStored.
type RecalculateResult struct {
	UserID     int64      `json:"user_id"`
	Items      []int64    `json:"items"`
	Source     Source     `json:"source"`
	Cached     bool       `json:"cached"`
	CacheWrite CacheWrite `json:"cache_write"`
	CacheError string     `json:"cache_error,omitempty"`
}

// DataProvider supplies the raw inputs for a computation.
// Implementations live in the database packages.
type DataProvider interface {
	// OrderItems returns (user, item) pairs for completed purchase line items.
	OrderItems(ctx context.Context) ([]OrderItem, error)

	// Interactions returns logged interaction events.
	Interactions(ctx context.Context) ([]Interaction, error)

	// CatalogItemIDs returns every known item id.
	CatalogItemIDs(ctx context.Context) ([]int64, error)

	// PurchaseVolume returns total purchased quantity per item.
	PurchaseVolume(ctx context.Context) ([]ItemVolume, error)
}

// UserDirectory answers identity lookups.
type UserDirectory interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
}

// ResultCache stores finished recommendation lists.
// A miss is (nil, false, nil).
type ResultCache interface {
	Get(ctx context.Context, key string) ([]int64, bool, error)
	Set(ctx context.Context, key string, ids []int64, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
