package cart

import (
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SetItemRequest upserts one cart line
type SetItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
	Color     string    `json:"color" binding:"max=50"`
	Size      string    `json:"size" binding:"max=20"`
}

// ItemResponse is one cart line enriched with current product state.
// Price here is the live catalog price; it is only frozen at checkout.
type ItemResponse struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Audience    string          `json:"audience"`
	Quantity    int64           `json:"quantity"`
	Color       string          `json:"color,omitempty"`
	Size        string          `json:"size,omitempty"`
	IsActive    bool            `json:"isActive"`
	LineAmount  decimal.Decimal `json:"lineAmount"`
}

// CartResponse is the wire form of a cart
type CartResponse struct {
	Items       []ItemResponse  `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// toItemResponse merges a cart line with its current product state
func toItemResponse(line cart.Item, product *catalog.Product) ItemResponse {
	lineAmount := product.Price.Mul(decimal.NewFromInt(line.Quantity))
	return ItemResponse{
		ProductID:   line.ProductID,
		ProductCode: product.Code,
		ProductName: product.Name,
		Price:       product.Price,
		Audience:    product.Audience.String(),
		Quantity:    line.Quantity,
		Color:       line.Color,
		Size:        line.Size,
		IsActive:    product.IsActive,
		LineAmount:  lineAmount,
	}
}
