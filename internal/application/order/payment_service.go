package order

import (
	"context"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// MockPaymentMethod is the only settlement method; no payment provider is
// wired and every settlement succeeds unless the order was already paid.
const MockPaymentMethod = "MOCK"

// Pay settles a pending order. Settlement is a conditional update keyed on
// the unpaid state, so concurrent or repeated payment attempts settle the
// order exactly once; losers get a conflict.
func (s *Service) Pay(ctx context.Context, caller identity.Principal, req PayRequest) (*PaymentResponse, error) {
	o, err := s.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	// only the owner can settle their order
	if o.UserID != caller.UserID {
		return nil, shared.ErrForbidden
	}

	if o.Status == order.StatusCancelled {
		return nil, shared.NewDomainError(shared.CodeConflict, "a cancelled order cannot be paid")
	}
	if o.PaymentStatus == order.PaymentPaid {
		return nil, shared.NewDomainError(shared.CodeConflict, "Order is already paid")
	}

	settled, err := s.orders.MarkPaid(ctx, req.OrderID, MockPaymentMethod)
	if err != nil {
		return nil, err
	}
	if !settled {
		// lost the compare-and-set to a concurrent payment
		return nil, shared.NewDomainError(shared.CodeConflict, "Order is already paid")
	}

	updated, err := s.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("order settled",
		zap.String("order_number", updated.OrderNumber),
		zap.String("method", MockPaymentMethod),
	)

	return &PaymentResponse{
		OrderID:       updated.ID,
		OrderNumber:   updated.OrderNumber,
		PaymentStatus: updated.PaymentStatus.String(),
		PaymentMethod: updated.PaymentMethod,
		PaidAt:        *updated.PaidAt,
	}, nil
}
