// internal/domain/catalog/entity_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMenuItemCartLine(t *testing.T) {
	item := MenuItem{
		ID:       41,
		StoreID:  3,
		Name:     "Phở đặc biệt",
		Price:    75000,
		ImageURL: "/img/pho-db.jpg",
		Store:    &Store{ID: 3, Name: "Quán Phở 24"},
	}

	line := item.CartLine(2)
	assert.Equal(t, item.CartItemID(), line.ID)
	assert.Equal(t, "41", line.ID)
	assert.Equal(t, "3", line.StoreID)
	assert.Equal(t, "Quán Phở 24", line.StoreName)
	assert.Equal(t, "Phở đặc biệt", line.Name)
	assert.Equal(t, int64(75000), line.Price)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "/img/pho-db.jpg", line.Image)
}

func TestMenuItemCartLineWithoutStoreLoaded(t *testing.T) {
	item := MenuItem{ID: 41, StoreID: 3, Name: "Phở đặc biệt", Price: 75000}

	line := item.CartLine(1)
	assert.Equal(t, "3", line.StoreID)
	assert.Empty(t, line.StoreName)
}
