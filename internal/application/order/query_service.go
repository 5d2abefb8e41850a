package order

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// List returns the orders visible to the caller. Customers see their own
// orders; audience-bound admins see orders containing at least one item of
// their audience, with nested items cut to that audience; system admins see
// everything unless they narrow with an audience override.
func (s *Service) List(ctx context.Context, caller identity.Principal, audienceOverride *catalog.Audience, filter shared.Filter) (*OrderListResponse, error) {
	qs, err := order.ResolveQueryScope(caller.Scope, caller.UserID, audienceOverride)
	if err != nil {
		return nil, err
	}

	orders, total, err := s.orders.List(ctx, qs, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(o)
	}
	return &OrderListResponse{
		Orders:   responses,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// GetByID returns one order under the caller's visibility rules. Customers
// may only read their own orders. An audience admin gets the order with the
// nested items cut to their audience; when every item is filtered out the
// order is still returned with an empty item list, so order headers stay
// addressable by id across scopes.
func (s *Service) GetByID(ctx context.Context, caller identity.Principal, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch caller.Scope {
	case identity.ScopeAll:
		// unrestricted
	case identity.ScopeKids, identity.ScopeNext:
		audStr, _ := caller.Scope.Audience()
		o = o.FilterItems(catalog.Audience(audStr))
	default:
		if o.UserID != caller.UserID {
			return nil, shared.ErrForbidden
		}
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}
