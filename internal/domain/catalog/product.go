// Package catalog holds the product read model consumed by the order core.
// Catalog administration (create/update/delete) lives in a separate service;
// this package only reads what the order builder needs to snapshot.
package catalog

import (
	"context"
	"slices"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Audience is the storefront tenant a catalog item belongs to
type Audience string

const (
	AudienceKids Audience = "KIDS"
	AudienceNext Audience = "NEXT"
)

// IsValid checks if the audience is a known Audience
func (a Audience) IsValid() bool {
	return a == AudienceKids || a == AudienceNext
}

// String returns the string representation of Audience
func (a Audience) String() string {
	return string(a)
}

// Product is the catalog read model. Price and audience are copied onto
// order items at creation time; later edits here never touch placed orders.
type Product struct {
	shared.BaseEntity
	Code       string
	Name       string
	Price      decimal.Decimal
	Audience   Audience
	IsActive   bool
	Colors     []string
	Sizes      []string
	Thumbnails []string
}

// HasColor reports whether the product offers the given color variant
func (p *Product) HasColor(color string) bool {
	return slices.Contains(p.Colors, color)
}

// HasSize reports whether the product offers the given size variant
func (p *Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}

// SnapshotReader reads current product state for a set of product ids.
// The order builder uses it to freeze price and audience at creation time.
type SnapshotReader interface {
	// FindByIDs batch-fetches products. Unknown ids are simply absent from
	// the result; callers decide whether absence is an error.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error)
}
