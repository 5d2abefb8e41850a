package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository is the order core's read-only view of the catalog.
// Catalog writes belong to the catalog service; this side only snapshots
// current product state during checkout and cart validation.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDs batch-fetches products by id. Unknown ids are absent from the
// result map; callers decide whether absence is an error.
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	result := make(map[uuid.UUID]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var modelList []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&modelList).Error; err != nil {
		return nil, err
	}

	for i := range modelList {
		p := modelList[i].ToDomain()
		result[p.ID] = p
	}
	return result, nil
}

// Ensure GormProductRepository implements catalog.SnapshotReader
var _ catalog.SnapshotReader = (*GormProductRepository)(nil)
