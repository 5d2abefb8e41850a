// Package cart defines the per-user shopping cart and its store contract.
// Carts are ephemeral: a successful checkout clears the cart, and clearing
// is idempotent so a crashed checkout can be resolved by the next one.
package cart

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Item is a single cart line: product, quantity and variant selectors
type Item struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Color     string    `json:"color,omitempty"`
	Size      string    `json:"size,omitempty"`
}

// Validate checks the item invariants shared by cart writes and checkout
func (i Item) Validate() error {
	if i.ProductID == uuid.Nil {
		return shared.NewDomainError(shared.CodeValidation, "Product ID cannot be empty")
	}
	if i.Quantity < 1 {
		return shared.NewDomainError(shared.CodeValidation, "Quantity must be at least 1")
	}
	return nil
}

// Cart is the full cart for one user
type Cart struct {
	UserID uuid.UUID `json:"user_id"`
	Items  []Item    `json:"items"`
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Store is the cart persistence contract. The production implementation is
// Redis-backed; tests use an in-memory store.
type Store interface {
	// Get returns the user's cart. A user with no cart gets an empty cart,
	// not an error.
	Get(ctx context.Context, userID uuid.UUID) (*Cart, error)
	// SetItem upserts one line keyed by product id.
	SetItem(ctx context.Context, userID uuid.UUID, item Item) error
	// RemoveItem deletes one line. Removing an absent line is a no-op.
	RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) error
	// Clear deletes the whole cart. Idempotent.
	Clear(ctx context.Context, userID uuid.UUID) error
}
