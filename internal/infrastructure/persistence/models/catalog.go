package models

import (
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for catalog products. Variant lists
// are stored as JSON columns rather than join tables; they are read-only
// display data as far as the order core is concerned.
type ProductModel struct {
	BaseModel
	Code       string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name       string           `gorm:"type:varchar(200);not null"`
	Price      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Audience   catalog.Audience `gorm:"type:varchar(10);not null;index"`
	IsActive   bool             `gorm:"not null;default:true;index"`
	Colors     []string         `gorm:"serializer:json"`
	Sizes      []string         `gorm:"serializer:json"`
	Thumbnails []string         `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
		Price:      m.Price,
		Audience:   m.Audience,
		IsActive:   m.IsActive,
		Colors:     m.Colors,
		Sizes:      m.Sizes,
		Thumbnails: m.Thumbnails,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Code:       p.Code,
		Name:       p.Name,
		Price:      p.Price,
		Audience:   p.Audience,
		IsActive:   p.IsActive,
		Colors:     p.Colors,
		Sizes:      p.Sizes,
		Thumbnails: p.Thumbnails,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
