package order

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository is the order persistence contract
type Repository interface {
	// Create persists the order and all of its items in one transaction.
	Create(ctx context.Context, o *Order) error

	// FindByID loads one order with its full item list, ignoring scope.
	// Callers apply ownership and audience rules before returning it.
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindItemByID loads a single order item together with its parent
	// order's status, for item-level authorization and transitions.
	FindItemByID(ctx context.Context, itemID uuid.UUID) (*Item, *Order, error)

	// List returns orders visible under the scope, with nested item lists
	// already restricted by the scope's item filter, plus the total count.
	List(ctx context.Context, scope QueryScope, filter shared.Filter) ([]*Order, int64, error)

	// UpdateStatus applies an order-level transition as a compare-and-set
	// on the previous status. Returns false when another writer won.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status, reason string) (bool, error)

	// UpdateItemStatus applies an item-level transition as a compare-and-set
	// on the previous status.
	UpdateItemStatus(ctx context.Context, itemID uuid.UUID, from, to Status) (bool, error)

	// MarkPaid settles an order exactly once. The update is conditional on
	// payment_status = UNPAID; a false return means it was already paid.
	MarkPaid(ctx context.Context, id uuid.UUID, method string) (bool, error)
}
