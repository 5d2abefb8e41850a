package persistence

import (
	"context"
	"testing"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.ProductModel{}, &models.OrderModel{}, &models.OrderItemModel{})
	require.NoError(t, err)

	return db
}

func activeProduct(t *testing.T, db *gorm.DB, audience catalog.Audience, price string) *catalog.Product {
	t.Helper()
	p := &catalog.Product{
		BaseEntity: shared.NewBaseEntity(),
		Code:       "P-" + uuid.NewString()[:8],
		Name:       "Test Product",
		Price:      decimal.RequireFromString(price),
		Audience:   audience,
		IsActive:   true,
		Colors:     []string{"red"},
		Sizes:      []string{"M"},
	}
	require.NoError(t, db.Create(models.ProductModelFromDomain(p)).Error)
	return p
}

func placedOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, products ...*catalog.Product) *order.Order {
	t.Helper()
	o, err := order.NewOrder(userID, "1 Main St", "555-0100")
	require.NoError(t, err)
	for _, p := range products {
		require.NoError(t, o.AddLine(p, 1, "", ""))
	}
	require.NoError(t, NewGormOrderRepository(db).Create(context.Background(), o))
	return o
}

func TestOrderRepository_CreateAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	kids := activeProduct(t, db, catalog.AudienceKids, "19.99")
	next := activeProduct(t, db, catalog.AudienceNext, "35.00")
	o := placedOrder(t, db, uuid.New(), kids, next)

	assert.NotEmpty(t, o.OrderNumber)
	assert.Contains(t, o.OrderNumber, "ORD-")

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, found.OrderNumber)
	assert.Equal(t, "54.99", found.TotalAmount.StringFixed(2))
	require.Len(t, found.Items, 2)

	// snapshots survived the round trip
	audiences := map[catalog.Audience]bool{}
	for _, item := range found.Items {
		audiences[item.Audience] = true
	}
	assert.True(t, audiences[catalog.AudienceKids])
	assert.True(t, audiences[catalog.AudienceNext])
}

func TestOrderRepository_FindByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderRepository_OrderNumbersIncrement(t *testing.T) {
	db := setupTestDB(t)
	kids := activeProduct(t, db, catalog.AudienceKids, "10.00")

	first := placedOrder(t, db, uuid.New(), kids)
	second := placedOrder(t, db, uuid.New(), kids)

	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
	assert.Greater(t, second.OrderNumber, first.OrderNumber)
}

func TestOrderRepository_ListScopedByOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	kids := activeProduct(t, db, catalog.AudienceKids, "10.00")
	alice, bob := uuid.New(), uuid.New()
	placedOrder(t, db, alice, kids)
	placedOrder(t, db, alice, kids)
	placedOrder(t, db, bob, kids)

	qs := order.QueryScope{UserID: &alice}
	orders, total, err := repo.List(ctx, qs, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, alice, o.UserID)
	}
}

func TestOrderRepository_ListScopedByAudience(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	kidsProduct := activeProduct(t, db, catalog.AudienceKids, "10.00")
	nextProduct := activeProduct(t, db, catalog.AudienceNext, "20.00")

	mixed := placedOrder(t, db, uuid.New(), kidsProduct, nextProduct)
	placedOrder(t, db, uuid.New(), nextProduct)

	kids := catalog.AudienceKids
	qs := order.QueryScope{OrderAudience: &kids, ItemAudience: &kids}

	orders, total, err := repo.List(ctx, qs, shared.DefaultFilter())
	require.NoError(t, err)

	// only the mixed order has a KIDS item
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, mixed.ID, orders[0].ID)

	// nested list cut to KIDS, header total untouched
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, catalog.AudienceKids, orders[0].Items[0].Audience)
	assert.Equal(t, "30.00", orders[0].TotalAmount.StringFixed(2))
}

func TestOrderRepository_ListUnscopedSeesEverything(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	kids := activeProduct(t, db, catalog.AudienceKids, "10.00")
	next := activeProduct(t, db, catalog.AudienceNext, "20.00")
	placedOrder(t, db, uuid.New(), kids)
	placedOrder(t, db, uuid.New(), next)

	orders, total, err := repo.List(ctx, order.QueryScope{}, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, orders, 2)
}

func TestOrderRepository_ListPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	kids := activeProduct(t, db, catalog.AudienceKids, "10.00")
	for i := 0; i < 5; i++ {
		placedOrder(t, db, uuid.New(), kids)
	}

	filter := shared.DefaultFilter()
	filter.Page = 2
	filter.PageSize = 2

	orders, total, err := repo.List(ctx, order.QueryScope{}, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, orders, 2)
}

func TestOrderRepository_UpdateStatusCompareAndSet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	kids := activeProduct(t, db, catalog.AudienceKids, "10.00")
	o := placedOrder(t, db, uuid.New(), kids)

	ok, err := repo.UpdateStatus(ctx, o.ID, order.StatusPending, order.StatusCancelled, "changed my mind")
	require.NoError(t, err)
	assert.True(t, ok)

	// the expected previous status no longer matches
	ok, err = repo.UpdateStatus(ctx, o.ID, order.StatusPending, order.StatusCancelled, "")
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, found.Status)
	assert.Equal(t, "changed my mind", found.CancelReason)
	assert.NotNil(t, found.CancelledAt)
}

func TestOrderRepository_UpdateItemStatusCompareAndSet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	kids := activeProduct(t, db, catalog.AudienceKids, "10.00")
	o := placedOrder(t, db, uuid.New(), kids)
	itemID := o.Items[0].ID

	ok, err := repo.UpdateItemStatus(ctx, itemID, order.StatusPending, order.StatusCancelled)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateItemStatus(ctx, itemID, order.StatusPending, order.StatusCancelled)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOrderRepository_FindItemByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	kids := activeProduct(t, db, catalog.AudienceKids, "10.00")
	o := placedOrder(t, db, uuid.New(), kids)

	item, parent, err := repo.FindItemByID(ctx, o.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, item.OrderID)
	assert.Equal(t, o.ID, parent.ID)
	assert.Equal(t, catalog.AudienceKids, item.Audience)

	_, _, err = repo.FindItemByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderRepository_MarkPaidExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	kids := activeProduct(t, db, catalog.AudienceKids, "10.00")
	o := placedOrder(t, db, uuid.New(), kids)

	settled, err := repo.MarkPaid(ctx, o.ID, "MOCK")
	require.NoError(t, err)
	assert.True(t, settled)

	// second settlement attempt must lose the compare-and-set
	settled, err = repo.MarkPaid(ctx, o.ID, "MOCK")
	require.NoError(t, err)
	assert.False(t, settled)

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, found.PaymentStatus)
	assert.Equal(t, order.StatusPaid, found.Status)
	assert.Equal(t, "MOCK", found.PaymentMethod)
	assert.NotNil(t, found.PaidAt)
	for _, item := range found.Items {
		assert.Equal(t, order.StatusPaid, item.Status)
	}
}
