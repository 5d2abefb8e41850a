package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("ASC; DROP TABLE orders"))
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "order_number", ValidateSortField("order_number", OrderSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", OrderSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("shipping_address", OrderSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("1=1", OrderSortFields, "created_at"))
}
