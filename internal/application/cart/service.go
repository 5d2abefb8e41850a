// Package cart contains the application service for the per-user cart.
package cart

import (
	"context"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service handles cart operations
type Service struct {
	carts    cart.Store
	products catalog.SnapshotReader
}

// NewService creates a new cart Service
func NewService(carts cart.Store, products catalog.SnapshotReader) *Service {
	return &Service{
		carts:    carts,
		products: products,
	}
}

// Get returns the caller's cart enriched with current product state. Lines
// whose product has vanished from the catalog are dropped from the view;
// checkout would reject them anyway.
func (s *Service) Get(ctx context.Context, caller identity.Principal) (*CartResponse, error) {
	userCart, err := s.carts.Get(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(userCart.Items))
	for i, line := range userCart.Items {
		ids[i] = line.ProductID
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	resp := &CartResponse{
		Items:       make([]ItemResponse, 0, len(userCart.Items)),
		TotalAmount: decimal.Zero,
	}
	for _, line := range userCart.Items {
		product, ok := products[line.ProductID]
		if !ok {
			continue
		}
		item := toItemResponse(line, product)
		resp.Items = append(resp.Items, item)
		resp.TotalAmount = resp.TotalAmount.Add(item.LineAmount)
	}
	return resp, nil
}

// SetItem upserts one line after checking the product exists, is active and
// offers the selected variants
func (s *Service) SetItem(ctx context.Context, caller identity.Principal, req SetItemRequest) (*CartResponse, error) {
	products, err := s.products.FindByIDs(ctx, []uuid.UUID{req.ProductID})
	if err != nil {
		return nil, err
	}
	product, ok := products[req.ProductID]
	if !ok {
		return nil, shared.NewDomainErrorf(shared.CodeNotFound, "Product %s not found", req.ProductID)
	}
	if !product.IsActive {
		return nil, shared.NewDomainErrorf(shared.CodeInactiveProduct,
			"Product %s is not available for purchase", product.Code)
	}
	if req.Color != "" && !product.HasColor(req.Color) {
		return nil, shared.NewDomainErrorf(shared.CodeValidation,
			"Product %s has no color %s", product.Code, req.Color)
	}
	if req.Size != "" && !product.HasSize(req.Size) {
		return nil, shared.NewDomainErrorf(shared.CodeValidation,
			"Product %s has no size %s", product.Code, req.Size)
	}

	line := cart.Item{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Color:     req.Color,
		Size:      req.Size,
	}
	if err := s.carts.SetItem(ctx, caller.UserID, line); err != nil {
		return nil, err
	}
	return s.Get(ctx, caller)
}

// RemoveItem deletes one line. Removing an absent line succeeds.
func (s *Service) RemoveItem(ctx context.Context, caller identity.Principal, productID uuid.UUID) (*CartResponse, error) {
	if err := s.carts.RemoveItem(ctx, caller.UserID, productID); err != nil {
		return nil, err
	}
	return s.Get(ctx, caller)
}

// Clear empties the caller's cart. Idempotent.
func (s *Service) Clear(ctx context.Context, caller identity.Principal) error {
	return s.carts.Clear(ctx, caller.UserID)
}
