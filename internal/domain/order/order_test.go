package order

import (
	"testing"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(audience catalog.Audience, price string, active bool) *catalog.Product {
	return &catalog.Product{
		BaseEntity: shared.NewBaseEntity(),
		Code:       "TEE-001",
		Name:       "Graphic Tee",
		Price:      decimal.RequireFromString(price),
		Audience:   audience,
		IsActive:   active,
		Colors:     []string{"red", "blue"},
		Sizes:      []string{"S", "M"},
	}
}

func TestNewOrder(t *testing.T) {
	o, err := NewOrder(uuid.New(), "1 Main St", "555-0100")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentUnpaid, o.PaymentStatus)
	assert.True(t, o.TotalAmount.IsZero())

	_, err = NewOrder(uuid.Nil, "", "")
	assert.Error(t, err)
}

func TestAddLineSnapshotsProduct(t *testing.T) {
	o, _ := NewOrder(uuid.New(), "1 Main St", "555-0100")
	p := testProduct(catalog.AudienceKids, "19.99", true)

	require.NoError(t, o.AddLine(p, 3, "red", "M"))

	// later catalog edits must not reach the placed line
	p.Price = decimal.RequireFromString("29.99")
	p.Audience = catalog.AudienceNext

	require.Len(t, o.Items, 1)
	item := o.Items[0]
	assert.Equal(t, "19.99", item.PriceAtPurchase.StringFixed(2))
	assert.Equal(t, catalog.AudienceKids, item.Audience)
	assert.Equal(t, "Graphic Tee", item.ProductName)
	assert.Equal(t, StatusPending, item.Status)
	assert.Equal(t, "59.97", o.TotalAmount.StringFixed(2))
}

func TestAddLineRejectsInactiveProduct(t *testing.T) {
	o, _ := NewOrder(uuid.New(), "1 Main St", "555-0100")
	err := o.AddLine(testProduct(catalog.AudienceKids, "10.00", false), 1, "", "")
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, shared.CodeInactiveProduct, derr.Code)
}

func TestAddLineRejectsUnknownVariant(t *testing.T) {
	o, _ := NewOrder(uuid.New(), "1 Main St", "555-0100")
	p := testProduct(catalog.AudienceNext, "10.00", true)
	assert.Error(t, o.AddLine(p, 1, "green", ""))
	assert.Error(t, o.AddLine(p, 1, "", "XXL"))
	assert.NoError(t, o.AddLine(p, 1, "", ""))
}

func TestAddLineRejectsBadQuantity(t *testing.T) {
	o, _ := NewOrder(uuid.New(), "1 Main St", "555-0100")
	p := testProduct(catalog.AudienceKids, "10.00", true)
	assert.Error(t, o.AddLine(p, 0, "", ""))
	assert.Error(t, o.AddLine(p, -2, "", ""))
}

func TestTotalSumsAllLines(t *testing.T) {
	o, _ := NewOrder(uuid.New(), "1 Main St", "555-0100")
	require.NoError(t, o.AddLine(testProduct(catalog.AudienceKids, "19.99", true), 2, "", ""))
	require.NoError(t, o.AddLine(testProduct(catalog.AudienceNext, "5.50", true), 1, "", ""))
	assert.Equal(t, "45.48", o.TotalAmount.StringFixed(2))
}

func TestValidateEmptyOrder(t *testing.T) {
	o, _ := NewOrder(uuid.New(), "1 Main St", "555-0100")
	assert.Error(t, o.Validate())
	require.NoError(t, o.AddLine(testProduct(catalog.AudienceKids, "10.00", true), 1, "", ""))
	assert.NoError(t, o.Validate())
}

func TestStatusTransitionTable(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusPaid, StatusShipped, true},
		{StatusPaid, StatusCancelled, true},
		{StatusPaid, StatusPending, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, true},
		{StatusShipped, StatusPaid, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderTransitionTo(t *testing.T) {
	o, _ := NewOrder(uuid.New(), "1 Main St", "555-0100")

	err := o.TransitionTo(StatusShipped, "")
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, shared.CodeConflict, derr.Code)
	assert.Equal(t, StatusPending, o.Status)

	require.NoError(t, o.TransitionTo(StatusCancelled, "customer request"))
	assert.Equal(t, StatusCancelled, o.Status)
	assert.Equal(t, "customer request", o.CancelReason)
	assert.NotNil(t, o.CancelledAt)

	// terminal: no way out
	assert.Error(t, o.TransitionTo(StatusPaid, ""))
}

func TestMarkPaid(t *testing.T) {
	o, _ := NewOrder(uuid.New(), "1 Main St", "555-0100")
	require.NoError(t, o.AddLine(testProduct(catalog.AudienceKids, "10.00", true), 1, "", ""))

	require.NoError(t, o.MarkPaid("MOCK"))
	assert.Equal(t, PaymentPaid, o.PaymentStatus)
	assert.Equal(t, StatusPaid, o.Status)
	assert.Equal(t, StatusPaid, o.Items[0].Status)
	assert.NotNil(t, o.PaidAt)

	err := o.MarkPaid("MOCK")
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, shared.CodeConflict, derr.Code)
}

func TestItemTransitionTo(t *testing.T) {
	item := Item{BaseEntity: shared.NewBaseEntity(), Status: StatusPaid}
	require.NoError(t, item.TransitionTo(StatusShipped))
	assert.Equal(t, StatusShipped, item.Status)

	err := item.TransitionTo(StatusPaid)
	assert.Error(t, err)

	assert.Error(t, item.TransitionTo(Status("BOGUS")))
}

func TestHasAudienceAndFilterItems(t *testing.T) {
	o, _ := NewOrder(uuid.New(), "1 Main St", "555-0100")
	require.NoError(t, o.AddLine(testProduct(catalog.AudienceKids, "10.00", true), 1, "", ""))
	require.NoError(t, o.AddLine(testProduct(catalog.AudienceNext, "20.00", true), 1, "", ""))

	assert.True(t, o.HasAudience(catalog.AudienceKids))
	assert.True(t, o.HasAudience(catalog.AudienceNext))

	kids := o.FilterItems(catalog.AudienceKids)
	require.Len(t, kids.Items, 1)
	assert.Equal(t, catalog.AudienceKids, kids.Items[0].Audience)
	// header total still covers all lines
	assert.Equal(t, "30.00", kids.TotalAmount.StringFixed(2))
	// original untouched
	assert.Len(t, o.Items, 2)
}

func TestResolveQueryScope(t *testing.T) {
	userID := uuid.New()
	kids := catalog.AudienceKids
	next := catalog.AudienceNext

	t.Run("customer sees own orders only", func(t *testing.T) {
		qs, err := ResolveQueryScope(identity.ScopePublic, userID, nil)
		require.NoError(t, err)
		require.NotNil(t, qs.UserID)
		assert.Equal(t, userID, *qs.UserID)
		assert.Nil(t, qs.OrderAudience)
		assert.Nil(t, qs.ItemAudience)
	})

	t.Run("customer cannot override audience", func(t *testing.T) {
		_, err := ResolveQueryScope(identity.ScopePublic, userID, &kids)
		assert.Error(t, err)
	})

	t.Run("kids admin pinned to kids", func(t *testing.T) {
		qs, err := ResolveQueryScope(identity.ScopeKids, userID, nil)
		require.NoError(t, err)
		assert.Nil(t, qs.UserID)
		assert.Equal(t, kids, *qs.OrderAudience)
		assert.Equal(t, kids, *qs.ItemAudience)
	})

	t.Run("kids admin cannot override to next", func(t *testing.T) {
		_, err := ResolveQueryScope(identity.ScopeKids, userID, &next)
		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, shared.CodeForbidden, derr.Code)
	})

	t.Run("system admin unfiltered by default", func(t *testing.T) {
		qs, err := ResolveQueryScope(identity.ScopeAll, userID, nil)
		require.NoError(t, err)
		assert.Nil(t, qs.UserID)
		assert.Nil(t, qs.OrderAudience)
		assert.Nil(t, qs.ItemAudience)
	})

	t.Run("system admin override narrows items only", func(t *testing.T) {
		qs, err := ResolveQueryScope(identity.ScopeAll, userID, &next)
		require.NoError(t, err)
		assert.Nil(t, qs.UserID)
		assert.Nil(t, qs.OrderAudience)
		assert.Equal(t, next, *qs.ItemAudience)
	})
}

func TestCanMutateItem(t *testing.T) {
	assert.True(t, CanMutateItem(identity.ScopeAll, catalog.AudienceKids))
	assert.True(t, CanMutateItem(identity.ScopeKids, catalog.AudienceKids))
	assert.False(t, CanMutateItem(identity.ScopeKids, catalog.AudienceNext))
	assert.True(t, CanMutateItem(identity.ScopeNext, catalog.AudienceNext))
	assert.False(t, CanMutateItem(identity.ScopeNext, catalog.AudienceKids))
	assert.False(t, CanMutateItem(identity.ScopePublic, catalog.AudienceKids))
}
