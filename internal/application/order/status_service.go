package order

import (
	"context"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateOrderStatus applies an order-level transition. Only system admins
// move whole orders; audience admins work at the item level. The write is a
// compare-and-set on the previously read status, so two admins racing the
// same transition produce exactly one winner.
func (s *Service) UpdateOrderStatus(ctx context.Context, caller identity.Principal, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	if caller.Scope != identity.ScopeAll {
		return nil, shared.NewDomainError(shared.CodeForbidden, "only system administrators can change order status")
	}

	target := order.Status(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainErrorf(shared.CodeValidation, "invalid status: %s", req.Status)
	}

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransitionTo(target) {
		return nil, shared.NewDomainErrorf(shared.CodeConflict,
			"order cannot transition from %s to %s", o.Status, target)
	}

	ok, err := s.orders.UpdateStatus(ctx, orderID, o.Status, target, req.Reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.NewDomainError(shared.CodeConflict, "order was modified concurrently")
	}

	logger.L(ctx).Info("order status changed",
		zap.String("order_number", o.OrderNumber),
		zap.String("from", o.Status.String()),
		zap.String("to", target.String()),
	)

	updated, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(updated)
	return &resp, nil
}

// UpdateItemStatus applies an item-level transition. The caller must be an
// admin whose scope covers the item's audience snapshot; items on a
// cancelled order are frozen.
func (s *Service) UpdateItemStatus(ctx context.Context, caller identity.Principal, itemID uuid.UUID, req UpdateStatusRequest) (*OrderItemResponse, error) {
	target := order.Status(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainErrorf(shared.CodeValidation, "invalid status: %s", req.Status)
	}

	item, parent, err := s.orders.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if !order.CanMutateItem(caller.Scope, item.Audience) {
		return nil, shared.ErrForbidden
	}
	if parent.Status == order.StatusCancelled {
		return nil, shared.NewDomainError(shared.CodeConflict, "items on a cancelled order cannot change status")
	}
	if !item.Status.CanTransitionTo(target) {
		return nil, shared.NewDomainErrorf(shared.CodeConflict,
			"item cannot transition from %s to %s", item.Status, target)
	}

	ok, err := s.orders.UpdateItemStatus(ctx, itemID, item.Status, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.NewDomainError(shared.CodeConflict, "item was modified concurrently")
	}

	logger.L(ctx).Info("order item status changed",
		zap.String("order_number", parent.OrderNumber),
		zap.String("item_id", itemID.String()),
		zap.String("from", item.Status.String()),
		zap.String("to", target.String()),
	)

	item.Status = target
	resp := ToOrderItemResponse(item)
	return &resp, nil
}
