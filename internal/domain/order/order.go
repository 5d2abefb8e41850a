// Package order is the core aggregate of the back office: an immutable-priced
// order built from a cart, with per-item audience snapshots driving admin
// visibility and independent item status machines.
package order

import (
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one order line. Price, name and audience are frozen copies of the
// product at creation time; later catalog edits never reach placed orders.
type Item struct {
	shared.BaseEntity
	OrderID         uuid.UUID
	ProductID       uuid.UUID
	ProductCode     string
	ProductName     string
	PriceAtPurchase decimal.Decimal
	Audience        catalog.Audience
	Quantity        int64
	Color           string
	Size            string
	Status          Status
}

// LineAmount returns priceAtPurchase * quantity
func (i *Item) LineAmount() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(i.Quantity))
}

// TransitionTo moves the item to the target status, enforcing the
// transition table. An item on a CANCELLED order cannot move at all;
// that rule lives on the aggregate, not here.
func (i *Item) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainErrorf(shared.CodeValidation, "invalid status: %s", target)
	}
	if !i.Status.CanTransitionTo(target) {
		return shared.NewDomainErrorf(shared.CodeConflict,
			"item cannot transition from %s to %s", i.Status, target)
	}
	i.Status = target
	i.UpdatedAt = time.Now()
	return nil
}

// Order is the order aggregate root
type Order struct {
	shared.BaseEntity
	OrderNumber     string
	UserID          uuid.UUID
	Items           []Item
	TotalAmount     decimal.Decimal
	Status          Status
	PaymentStatus   PaymentStatus
	PaymentMethod   string
	ShippingAddress string
	ContactPhone    string
	CancelReason    string
	PaidAt          *time.Time
	CancelledAt     *time.Time
}

// NewOrder creates an empty PENDING order for a user. Lines are added with
// AddLine, which snapshots the product; an order with no lines is invalid
// and rejected by Validate.
func NewOrder(userID uuid.UUID, shippingAddress, contactPhone string) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "User ID cannot be empty")
	}
	return &Order{
		BaseEntity:      shared.NewBaseEntity(),
		UserID:          userID,
		TotalAmount:     decimal.Zero,
		Status:          StatusPending,
		PaymentStatus:   PaymentUnpaid,
		ShippingAddress: shippingAddress,
		ContactPhone:    contactPhone,
	}, nil
}

// AddLine snapshots the product into a new item and recomputes the total.
// The product must be active; variant selectors must exist on the product.
func (o *Order) AddLine(product *catalog.Product, quantity int64, color, size string) error {
	if product == nil {
		return shared.NewDomainError(shared.CodeNotFound, "Product not found")
	}
	if !product.IsActive {
		return shared.NewDomainErrorf(shared.CodeInactiveProduct,
			"Product %s is not available for purchase", product.Code)
	}
	if quantity < 1 {
		return shared.NewDomainError(shared.CodeValidation, "Quantity must be at least 1")
	}
	if color != "" && !product.HasColor(color) {
		return shared.NewDomainErrorf(shared.CodeValidation,
			"Product %s has no color %s", product.Code, color)
	}
	if size != "" && !product.HasSize(size) {
		return shared.NewDomainErrorf(shared.CodeValidation,
			"Product %s has no size %s", product.Code, size)
	}

	item := Item{
		BaseEntity:      shared.NewBaseEntity(),
		OrderID:         o.ID,
		ProductID:       product.ID,
		ProductCode:     product.Code,
		ProductName:     product.Name,
		PriceAtPurchase: product.Price,
		Audience:        product.Audience,
		Quantity:        quantity,
		Color:           color,
		Size:            size,
		Status:          StatusPending,
	}
	o.Items = append(o.Items, item)
	o.recalculateTotal()
	return nil
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineAmount())
	}
	o.TotalAmount = total
}

// Validate checks the aggregate invariants before persistence
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return shared.NewDomainError(shared.CodeValidation, "Order must have at least one item")
	}
	if o.TotalAmount.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Order total cannot be negative")
	}
	return nil
}

// TransitionTo moves the order to the target status, enforcing the
// transition table. Cancellation records the timestamp and optional reason.
func (o *Order) TransitionTo(target Status, reason string) error {
	if !target.IsValid() {
		return shared.NewDomainErrorf(shared.CodeValidation, "invalid status: %s", target)
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainErrorf(shared.CodeConflict,
			"order cannot transition from %s to %s", o.Status, target)
	}
	now := time.Now()
	o.Status = target
	o.UpdatedAt = now
	if target == StatusCancelled {
		o.CancelledAt = &now
		o.CancelReason = reason
	}
	return nil
}

// MarkPaid records a successful settlement. The repository performs the
// actual compare-and-set; this keeps the in-memory aggregate consistent.
func (o *Order) MarkPaid(method string) error {
	if o.PaymentStatus == PaymentPaid {
		return shared.NewDomainError(shared.CodeConflict, "Order is already paid")
	}
	if o.Status != StatusPending {
		return shared.NewDomainErrorf(shared.CodeConflict,
			"order in status %s cannot be paid", o.Status)
	}
	now := time.Now()
	o.PaymentStatus = PaymentPaid
	o.PaymentMethod = method
	o.PaidAt = &now
	o.Status = StatusPaid
	for i := range o.Items {
		if o.Items[i].Status == StatusPending {
			o.Items[i].Status = StatusPaid
		}
	}
	o.UpdatedAt = now
	return nil
}

// HasAudience reports whether any line carries the given audience snapshot
func (o *Order) HasAudience(audience catalog.Audience) bool {
	for i := range o.Items {
		if o.Items[i].Audience == audience {
			return true
		}
	}
	return false
}

// FilterItems returns a copy of the order whose item list is restricted to
// the given audience. The order header, including the total over all lines,
// is left untouched; a fully filtered order keeps an empty item list.
func (o *Order) FilterItems(audience catalog.Audience) *Order {
	filtered := *o
	filtered.Items = make([]Item, 0, len(o.Items))
	for i := range o.Items {
		if o.Items[i].Audience == audience {
			filtered.Items = append(filtered.Items, o.Items[i])
		}
	}
	return &filtered
}
