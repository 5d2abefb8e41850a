package models

import (
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root
type OrderModel struct {
	BaseModel
	OrderNumber     string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	UserID          uuid.UUID            `gorm:"type:uuid;not null;index"`
	Items           []OrderItemModel     `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount     decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Status          order.Status         `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentStatus   order.PaymentStatus  `gorm:"type:varchar(20);not null;default:'UNPAID'"`
	PaymentMethod   string               `gorm:"type:varchar(50)"`
	ShippingAddress string               `gorm:"type:varchar(500)"`
	ContactPhone    string               `gorm:"type:varchar(50)"`
	CancelReason    string               `gorm:"type:varchar(500)"`
	PaidAt          *time.Time           `gorm:"index"`
	CancelledAt     *time.Time
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseEntity:      m.BaseModel.ToDomain(),
		OrderNumber:     m.OrderNumber,
		UserID:          m.UserID,
		TotalAmount:     m.TotalAmount,
		Status:          m.Status,
		PaymentStatus:   m.PaymentStatus,
		PaymentMethod:   m.PaymentMethod,
		ShippingAddress: m.ShippingAddress,
		ContactPhone:    m.ContactPhone,
		CancelReason:    m.CancelReason,
		PaidAt:          m.PaidAt,
		CancelledAt:     m.CancelledAt,
		Items:           make([]order.Item, len(m.Items)),
	}
	for i := range m.Items {
		o.Items[i] = *m.Items[i].ToDomain()
	}
	return o
}

// OrderModelFromDomain creates a persistence model from a domain Order
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		PaymentMethod:   o.PaymentMethod,
		ShippingAddress: o.ShippingAddress,
		ContactPhone:    o.ContactPhone,
		CancelReason:    o.CancelReason,
		PaidAt:          o.PaidAt,
		CancelledAt:     o.CancelledAt,
		Items:           make([]OrderItemModel, len(o.Items)),
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	for i := range o.Items {
		m.Items[i] = *OrderItemModelFromDomain(&o.Items[i])
	}
	return m
}

// OrderItemModel is the persistence model for order items. Product name,
// code, price and audience are frozen copies taken at order creation.
type OrderItemModel struct {
	BaseModel
	OrderID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductCode     string           `gorm:"type:varchar(50);not null"`
	ProductName     string           `gorm:"type:varchar(200);not null"`
	PriceAtPurchase decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Audience        catalog.Audience `gorm:"type:varchar(10);not null;index"`
	Quantity        int64            `gorm:"not null"`
	Color           string           `gorm:"type:varchar(50)"`
	Size            string           `gorm:"type:varchar(20)"`
	Status          order.Status     `gorm:"type:varchar(20);not null;default:'PENDING'"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain order Item
func (m *OrderItemModel) ToDomain() *order.Item {
	return &order.Item{
		BaseEntity:      m.BaseModel.ToDomain(),
		OrderID:         m.OrderID,
		ProductID:       m.ProductID,
		ProductCode:     m.ProductCode,
		ProductName:     m.ProductName,
		PriceAtPurchase: m.PriceAtPurchase,
		Audience:        m.Audience,
		Quantity:        m.Quantity,
		Color:           m.Color,
		Size:            m.Size,
		Status:          m.Status,
	}
}

// OrderItemModelFromDomain creates a persistence model from a domain order Item
func OrderItemModelFromDomain(i *order.Item) *OrderItemModel {
	m := &OrderItemModel{
		OrderID:         i.OrderID,
		ProductID:       i.ProductID,
		ProductCode:     i.ProductCode,
		ProductName:     i.ProductName,
		PriceAtPurchase: i.PriceAtPurchase,
		Audience:        i.Audience,
		Quantity:        i.Quantity,
		Color:           i.Color,
		Size:            i.Size,
		Status:          i.Status,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}
