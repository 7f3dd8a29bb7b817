// internal/domain/inventory/entity.go
package inventory

import (
	"time"

	"github.com/your-org/delivery-backend/internal/domain/catalog"
)

// Record tracks stock for one menu item. Each menu item has at most one
// record; items without one are treated as untracked.
type Record struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MenuItemID uint      `gorm:"uniqueIndex;not null" json:"menu_item_id"`
	Quantity   int       `gorm:"default:0" json:"quantity"`
	Reserved   int       `gorm:"default:0" json:"reserved"`
	Threshold  int       `gorm:"default:0" json:"threshold"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	MenuItem *catalog.MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

// Available returns the stock not held by pending orders, never negative
func (r *Record) Available() int {
	available := r.Quantity - r.Reserved
	if available < 0 {
		return 0
	}
	return available
}

// LowStock reports whether the stock has fallen to the reorder threshold
func (r *Record) LowStock() bool {
	return r.Quantity <= r.Threshold
}

// TxnType classifies a stock movement
type TxnType string

const (
	TxnIn     TxnType = "IN"
	TxnOut    TxnType = "OUT"
	TxnAdjust TxnType = "ADJUST"
)

// TxnTypeFor classifies a stock change by the direction of its delta
func TxnTypeFor(delta int) TxnType {
	switch {
	case delta > 0:
		return TxnIn
	case delta < 0:
		return TxnOut
	default:
		return TxnAdjust
	}
}

// Transaction is the audit trail of one stock movement
type Transaction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MenuItemID uint      `gorm:"not null;index" json:"menu_item_id"`
	Type       TxnType   `gorm:"not null;size:16" json:"type"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Note       string    `gorm:"type:text" json:"note"`
	ActorID    *uint     `gorm:"index" json:"actor_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	MenuItem *catalog.MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

// TableName overrides the table name for Record
func (Record) TableName() string {
	return "inventory"
}

// TableName overrides the table name for Transaction
func (Transaction) TableName() string {
	return "inventory_transactions"
}
