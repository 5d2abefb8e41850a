// Package order contains the application services for the order lifecycle:
// checkout, explicit creation, scoped queries, status transitions and the
// mock settlement flow.
package order

import (
	"context"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles order business operations
type Service struct {
	orders   order.Repository
	products catalog.SnapshotReader
	carts    cart.Store
}

// NewService creates a new order Service
func NewService(orders order.Repository, products catalog.SnapshotReader, carts cart.Store) *Service {
	return &Service{
		orders:   orders,
		products: products,
		carts:    carts,
	}
}

func errInvalidAudience(raw string) error {
	return shared.NewDomainErrorf(shared.CodeValidation, "unknown audience: %s", raw)
}

// Checkout converts the caller's cart into a priced order and clears the
// cart. The order and its items are persisted in one transaction; the cart
// clear happens after commit and is idempotent, so a failed clear leaves the
// order standing and the cart recoverable.
func (s *Service) Checkout(ctx context.Context, caller identity.Principal, req CheckoutRequest) (*OrderResponse, error) {
	userCart, err := s.carts.Get(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if userCart.IsEmpty() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Cart is empty")
	}

	o, err := s.buildOrder(ctx, caller.UserID, userCart.Items, req.ShippingAddress, req.ContactPhone)
	if err != nil {
		return nil, err
	}
	o.PaymentMethod = req.PaymentMethod
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, caller.UserID); err != nil {
		// the order is committed; the stale cart will be cleared by the
		// next checkout or expire on its own
		logger.L(ctx).Warn("failed to clear cart after checkout",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err),
		)
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Create places an order from explicit lines, bypassing the cart
func (s *Service) Create(ctx context.Context, caller identity.Principal, req CreateOrderRequest) (*OrderResponse, error) {
	lines := make([]cart.Item, len(req.Items))
	for i, item := range req.Items {
		lines[i] = cart.Item{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Color:     item.Color,
			Size:      item.Size,
		}
	}

	o, err := s.buildOrder(ctx, caller.UserID, lines, req.ShippingAddress, req.ContactPhone)
	if err != nil {
		return nil, err
	}
	o.PaymentMethod = req.PaymentMethod
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// buildOrder batch-fetches current product state and freezes it into a new
// PENDING order. Every line must reference a distinct, known, active product.
func (s *Service) buildOrder(ctx context.Context, userID uuid.UUID, lines []cart.Item, shippingAddress, contactPhone string) (*order.Order, error) {
	ids := make([]uuid.UUID, len(lines))
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[line.ProductID]; dup {
			return nil, shared.NewDomainErrorf(shared.CodeValidation,
				"Product %s is listed more than once", line.ProductID)
		}
		seen[line.ProductID] = struct{}{}
		ids[i] = line.ProductID
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(userID, shippingAddress, contactPhone)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, shared.NewDomainErrorf(shared.CodeNotFound, "Product %s not found", line.ProductID)
		}
		if err := o.AddLine(product, line.Quantity, line.Color, line.Size); err != nil {
			return nil, err
		}
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}
