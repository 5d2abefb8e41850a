package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/audiencescope"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create persists the order and all of its items in one transaction.
// An order number is generated when the aggregate does not carry one.
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if o.OrderNumber == "" {
			number, err := r.generateOrderNumber(ctx, tx)
			if err != nil {
				return err
			}
			o.OrderNumber = number
		}

		model := models.OrderModelFromDomain(o)
		items := model.Items
		model.Items = nil

		if err := tx.Create(model).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = model.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID loads one order with its full item list, ignoring scope
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindItemByID loads a single order item together with its parent order
func (r *GormOrderRepository) FindItemByID(ctx context.Context, itemID uuid.UUID) (*order.Item, *order.Order, error) {
	var itemModel models.OrderItemModel
	if err := r.db.WithContext(ctx).First(&itemModel, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, shared.ErrNotFound
		}
		return nil, nil, err
	}

	var orderModel models.OrderModel
	if err := r.db.WithContext(ctx).First(&orderModel, "id = ?", itemModel.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, shared.ErrNotFound
		}
		return nil, nil, err
	}

	return itemModel.ToDomain(), orderModel.ToDomain(), nil
}

// List returns orders visible under the scope, nested items already
// restricted by the scope's item filter, plus the total count.
func (r *GormOrderRepository) List(ctx context.Context, qs order.QueryScope, filter shared.Filter) ([]*order.Order, int64, error) {
	scoped := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.OrderModel{}).
			Scopes(audiencescope.Orders(qs))
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var modelList []models.OrderModel
	if err := scoped().
		Preload("Items", audiencescope.Items(qs)).
		Order(orderBy + " " + orderDir).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&modelList).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*order.Order, len(modelList))
	for i := range modelList {
		orders[i] = modelList[i].ToDomain()
	}
	return orders, total, nil
}

// UpdateStatus applies an order-level transition as a compare-and-set on
// the previous status. Returns false when another writer got there first.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to order.Status, reason string) (bool, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": now,
	}
	if to == order.StatusCancelled {
		updates["cancelled_at"] = now
		updates["cancel_reason"] = reason
	}

	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateItemStatus applies an item-level transition as a compare-and-set on
// the previous status.
func (r *GormOrderRepository) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, from, to order.Status) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.OrderItemModel{}).
		Where("id = ? AND status = ?", itemID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkPaid settles an order exactly once. The update is conditional on
// payment_status = UNPAID so concurrent payments cannot both win; a false
// return means the order was already paid.
func (r *GormOrderRepository) MarkPaid(ctx context.Context, id uuid.UUID, method string) (bool, error) {
	var settled bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND payment_status = ?", id, order.PaymentUnpaid).
			Updates(map[string]interface{}{
				"payment_status": order.PaymentPaid,
				"payment_method": method,
				"status":         order.StatusPaid,
				"paid_at":        now,
				"updated_at":     now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			settled = false
			return nil
		}

		if err := tx.Model(&models.OrderItemModel{}).
			Where("order_id = ? AND status = ?", id, order.StatusPending).
			Updates(map[string]interface{}{
				"status":     order.StatusPaid,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}
		settled = true
		return nil
	})
	return settled, err
}

// generateOrderNumber generates a unique order number.
// Format: ORD-YYYY-NNNNN (e.g., ORD-2026-00001)
func (r *GormOrderRepository) generateOrderNumber(ctx context.Context, tx *gorm.DB) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("ORD-%d-", year)

	var numbers []string
	err := tx.WithContext(ctx).Model(&models.OrderModel{}).
		Where("order_number LIKE ?", prefix+"%").
		Order("order_number DESC").
		Limit(1).
		Pluck("order_number", &numbers).Error
	if err != nil {
		return "", err
	}

	var lastNumber string
	if len(numbers) > 0 {
		lastNumber = numbers[0]
	}

	var nextNum int64 = 1
	if lastNumber != "" {
		parts := strings.Split(lastNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
