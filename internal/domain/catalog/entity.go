// internal/domain/catalog/entity.go
package catalog

import (
	"strconv"
	"time"

	"github.com/your-org/delivery-backend/internal/domain/cart"
	"gorm.io/gorm"
)

// Store represents a restaurant on the platform
type Store struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Address     string         `gorm:"size:500" json:"address"`
	Phone       string         `gorm:"size:20" json:"phone"`
	ImageURL    string         `gorm:"size:500" json:"image_url"`
	Rating      float64        `gorm:"default:0" json:"rating"`
	IsOpen      bool           `gorm:"default:true" json:"is_open"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Categories []Category `gorm:"foreignKey:StoreID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"categories,omitempty"`
	MenuItems  []MenuItem `gorm:"foreignKey:StoreID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"menu_items,omitempty"`
}

// Category represents a menu section within a store
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoreID   uint      `gorm:"not null;index" json:"store_id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MenuItem represents a dish a store offers. Price is an integer amount in
// the platform currency (VND carries no minor unit).
type MenuItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	StoreID     uint           `gorm:"not null;index" json:"store_id"`
	CategoryID  *uint          `gorm:"index" json:"category_id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"`
	ImageURL    string         `gorm:"size:500" json:"image_url"`
	Available   bool           `gorm:"default:true" json:"available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Store    *Store    `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName overrides the table name for Store
func (Store) TableName() string {
	return "stores"
}

// TableName overrides the table name for Category
func (Category) TableName() string {
	return "categories"
}

// TableName overrides the table name for MenuItem
func (MenuItem) TableName() string {
	return "menu_items"
}

// CartItemID returns the menu item's ID in the string form cart lines key on.
func (m *MenuItem) CartItemID() string {
	return strconv.FormatUint(uint64(m.ID), 10)
}

// CartLine snapshots the menu item into a cart line at its current price.
// The store name rides along when the relation is loaded; otherwise the cart
// falls back to its unknown-store display name.
func (m *MenuItem) CartLine(quantity int) cart.Item {
	line := cart.Item{
		ID:       m.CartItemID(),
		Name:     m.Name,
		Price:    m.Price,
		Quantity: quantity,
		Image:    m.ImageURL,
		StoreID:  strconv.FormatUint(uint64(m.StoreID), 10),
	}
	if m.Store != nil {
		line.StoreName = m.Store.Name
	}
	return line
}
