// internal/domain/inventory/entity_test.go
package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordAvailable(t *testing.T) {
	rec := Record{Quantity: 10, Reserved: 3}
	assert.Equal(t, 7, rec.Available())

	// Over-reservation never shows negative stock.
	rec = Record{Quantity: 2, Reserved: 5}
	assert.Equal(t, 0, rec.Available())

	rec = Record{}
	assert.Equal(t, 0, rec.Available())
}

func TestRecordLowStock(t *testing.T) {
	rec := Record{Quantity: 5, Threshold: 5}
	assert.True(t, rec.LowStock())

	rec.Quantity = 6
	assert.False(t, rec.LowStock())

	rec.Quantity = 0
	assert.True(t, rec.LowStock())
}

func TestTxnTypeFor(t *testing.T) {
	assert.Equal(t, TxnIn, TxnTypeFor(12))
	assert.Equal(t, TxnOut, TxnTypeFor(-3))
	assert.Equal(t, TxnAdjust, TxnTypeFor(0))
}
