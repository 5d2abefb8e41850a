package order

import (
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutRequest converts the caller's cart into an order
type CheckoutRequest struct {
	ShippingAddress string `json:"shippingAddress" binding:"required,min=1,max=500"`
	ContactPhone    string `json:"phone" binding:"required,min=1,max=50"`
	PaymentMethod   string `json:"paymentMethod" binding:"max=50"`
}

// CreateOrderItemInput is one explicit order line
type CreateOrderItemInput struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
	Color     string    `json:"color" binding:"max=50"`
	Size      string    `json:"size" binding:"max=20"`
}

// CreateOrderRequest creates an order from explicit lines, bypassing the cart
type CreateOrderRequest struct {
	Items           []CreateOrderItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddress string                 `json:"shippingAddress" binding:"max=500"`
	ContactPhone    string                 `json:"phone" binding:"max=50"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"max=50"`
}

// UpdateStatusRequest moves an order or item to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

// PayRequest settles one order
type PayRequest struct {
	OrderID uuid.UUID `json:"orderId" binding:"required"`
}

// OrderItemResponse is the wire form of one order line
type OrderItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"productId"`
	ProductCode     string          `json:"productCode"`
	ProductName     string          `json:"productName"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
	Audience        string          `json:"audience"`
	Quantity        int64           `json:"quantity"`
	Color           string          `json:"color,omitempty"`
	Size            string          `json:"size,omitempty"`
	Status          string          `json:"status"`
	LineAmount      decimal.Decimal `json:"lineAmount"`
}

// OrderResponse is the wire form of an order
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	UserID          uuid.UUID           `json:"userId"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"paymentStatus"`
	PaymentMethod   string              `json:"paymentMethod,omitempty"`
	ShippingAddress string              `json:"shippingAddress"`
	ContactPhone    string              `json:"phone"`
	CancelReason    string              `json:"cancelReason,omitempty"`
	PaidAt          *time.Time          `json:"paidAt,omitempty"`
	CancelledAt     *time.Time          `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// OrderListResponse wraps a page of orders with the unpaged total
type OrderListResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

// PaymentResponse reports the outcome of a settlement
type PaymentResponse struct {
	OrderID       uuid.UUID `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentMethod string    `json:"paymentMethod"`
	PaidAt        time.Time `json:"paidAt"`
}

// ToOrderItemResponse converts a domain item to its wire form
func ToOrderItemResponse(i *order.Item) OrderItemResponse {
	return OrderItemResponse{
		ID:              i.ID,
		ProductID:       i.ProductID,
		ProductCode:     i.ProductCode,
		ProductName:     i.ProductName,
		PriceAtPurchase: i.PriceAtPurchase,
		Audience:        i.Audience.String(),
		Quantity:        i.Quantity,
		Color:           i.Color,
		Size:            i.Size,
		Status:          i.Status.String(),
		LineAmount:      i.LineAmount(),
	}
}

// ToOrderResponse converts a domain order to its wire form. The item list is
// whatever the caller's scope left visible; items is never null on the wire.
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ToOrderItemResponse(&o.Items[i])
	}
	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status.String(),
		PaymentStatus:   o.PaymentStatus.String(),
		PaymentMethod:   o.PaymentMethod,
		ShippingAddress: o.ShippingAddress,
		ContactPhone:    o.ContactPhone,
		CancelReason:    o.CancelReason,
		PaidAt:          o.PaidAt,
		CancelledAt:     o.CancelledAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ParseAudience parses an optional ?audience= override. Empty means none.
func ParseAudience(raw string) (*catalog.Audience, error) {
	if raw == "" {
		return nil, nil
	}
	aud := catalog.Audience(raw)
	if !aud.IsValid() {
		return nil, errInvalidAudience(raw)
	}
	return &aud, nil
}
