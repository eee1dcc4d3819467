package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"pho-paradise-api/models"
)

// MemoryOrderStore is an in-memory OrderStore with the same semantics as
// the database-backed one. It backs the unit tests.
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]models.Order

	// Now is the clock used for UpdatedAt; tests override it.
	Now func() time.Time
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{
		orders: make(map[string]models.Order),
		Now:    time.Now,
	}
}

func (s *MemoryOrderStore) Create(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}
	s.orders[order.ID] = *order
	return nil
}

func (s *MemoryOrderStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

func (s *MemoryOrderStore) Find(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var orders []models.Order
	for _, o := range s.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.ExcludeStatus != "" && o.Status == filter.ExcludeStatus {
			continue
		}
		if filter.CustomerEmail != "" && o.CustomerEmail != filter.CustomerEmail {
			continue
		}
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s *MemoryOrderStore) UpdateByID(ctx context.Context, id string, fields map[string]any) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	for column, value := range fields {
		switch column {
		case "status":
			order.Status = value.(models.OrderStatus)
		case "payment_status":
			order.PaymentStatus = value.(models.PaymentStatus)
		case "stripe_session_id":
			order.StripeSessionID = value.(string)
		}
	}
	order.UpdatedAt = s.Now()
	s.orders[id] = order
	return &order, nil
}

// MemoryMenuStore is the in-memory MenuStore counterpart.
type MemoryMenuStore struct {
	mu    sync.RWMutex
	items map[string]models.MenuItem
}

func NewMemoryMenuStore() *MemoryMenuStore {
	return &MemoryMenuStore{items: make(map[string]models.MenuItem)}
}

func (s *MemoryMenuStore) Create(ctx context.Context, item *models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	s.items[item.ID] = *item
	return nil
}

func (s *MemoryMenuStore) FindByID(ctx context.Context, id string) (*models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (s *MemoryMenuStore) Find(ctx context.Context, category string) ([]models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []models.MenuItem
	for _, item := range s.items {
		if category != "" && item.Category != category {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (s *MemoryMenuStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryMenuStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.items)), nil
}
