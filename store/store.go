package store

import (
	"context"
	"errors"

	"pho-paradise-api/models"
)

// ErrNotFound is returned by lookups and updates that reference an
// unknown document id.
var ErrNotFound = errors.New("store: record not found")

// OrderFilter narrows an order query. Zero-value fields are ignored.
type OrderFilter struct {
	Status        models.OrderStatus
	ExcludeStatus models.OrderStatus
	CustomerEmail string
}

// OrderStore is the persistent collection of orders. Updates are atomic
// per document; no cross-document transactions are offered or needed.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	// Find returns matching orders, newest first.
	Find(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	// UpdateByID applies the given column values to one order and
	// returns the updated record. UpdatedAt is refreshed on every call.
	UpdateByID(ctx context.Context, id string, fields map[string]any) (*models.Order, error)
}

// MenuStore is the read-mostly menu catalog.
type MenuStore interface {
	Create(ctx context.Context, item *models.MenuItem) error
	FindByID(ctx context.Context, id string) (*models.MenuItem, error)
	// Find returns menu items, optionally restricted to one category.
	Find(ctx context.Context, category string) ([]models.MenuItem, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
