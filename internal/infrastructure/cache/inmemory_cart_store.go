package cache

import (
	"context"
	"sync"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/google/uuid"
)

// InMemoryCartStore implements cart.Store with a mutex-guarded map.
// Suitable for tests and single-node deployments without Redis.
type InMemoryCartStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]map[uuid.UUID]cart.Item
}

// NewInMemoryCartStore creates an empty in-memory cart store
func NewInMemoryCartStore() *InMemoryCartStore {
	return &InMemoryCartStore{
		carts: make(map[uuid.UUID]map[uuid.UUID]cart.Item),
	}
}

// Get returns the user's cart, empty when none exists
func (s *InMemoryCartStore) Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := &cart.Cart{UserID: userID, Items: make([]cart.Item, 0, len(s.carts[userID]))}
	for _, item := range s.carts[userID] {
		c.Items = append(c.Items, item)
	}
	return c, nil
}

// SetItem upserts one line keyed by product id
func (s *InMemoryCartStore) SetItem(ctx context.Context, userID uuid.UUID, item cart.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.carts[userID] == nil {
		s.carts[userID] = make(map[uuid.UUID]cart.Item)
	}
	s.carts[userID][item.ProductID] = item
	return nil
}

// RemoveItem deletes one line. Removing an absent line is a no-op.
func (s *InMemoryCartStore) RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts[userID], productID)
	return nil
}

// Clear deletes the whole cart. Idempotent.
func (s *InMemoryCartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}

// Ensure InMemoryCartStore implements cart.Store
var _ cart.Store = (*InMemoryCartStore)(nil)
