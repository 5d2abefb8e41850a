// Package audiencescope translates a caller's visibility filter into GORM
// scopes over the orders and order_items tables.
//
// The rule it encodes: an audience-bound admin sees every order containing
// at least one item of their audience, with the nested item list cut down
// to that audience. The order header, including the total, is never
// recomputed for the narrowed view.
//
// Usage:
//
//	db.Scopes(audiencescope.Orders(qs)).
//	    Preload("Items", audiencescope.Items(qs)).
//	    Find(&orders)
package audiencescope

import (
	"github.com/storefront/backend/internal/domain/order"
	"gorm.io/gorm"
)

// Orders returns a scope restricting which orders are visible.
// An empty QueryScope passes everything through.
func Orders(qs order.QueryScope) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if qs.UserID != nil {
			db = db.Where("orders.user_id = ?", *qs.UserID)
		}
		if qs.OrderAudience != nil {
			db = db.Where(
				"EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = orders.id AND oi.audience = ?)",
				*qs.OrderAudience,
			)
		}
		return db
	}
}

// Items returns a preload condition restricting the nested item lists of
// returned orders. A fully filtered order keeps an empty item list rather
// than disappearing from the result.
func Items(qs order.QueryScope) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if qs.ItemAudience != nil {
			db = db.Where("audience = ?", *qs.ItemAudience)
		}
		return db
	}
}
