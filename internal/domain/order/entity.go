// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/your-org/delivery-backend/internal/domain/user"
	"gorm.io/gorm"
)

// Status represents where an order is in its lifecycle
type Status string

const (
	StatusCreated    Status = "CREATED"
	StatusConfirmed  Status = "CONFIRMED"
	StatusPreparing  Status = "PREPARING"
	StatusDelivering Status = "DELIVERING"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// validTransitions maps each status to the statuses an order may move to.
var validTransitions = map[Status][]Status{
	StatusCreated:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusPreparing, StatusCancelled},
	StatusPreparing:  {StatusDelivering},
	StatusDelivering: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransitionTo reports whether an order in this status may move to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanBeViewedBy reports whether an account may read this order: the owning
// customer, an admin, or store staff attached to the order's store. Staff of
// other stores are treated like any other customer.
func (o *Order) CanBeViewedBy(userID uint, role user.Role, staffStoreID uint) bool {
	if o.UserID == userID {
		return true
	}
	if role == user.RoleAdmin {
		return true
	}
	return role.CanWorkOrders() && staffStoreID == o.StoreID
}

// Order represents a placed order for a single store
type Order struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Code            string         `gorm:"uniqueIndex;size:50" json:"code"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	StoreID         uint           `gorm:"not null;index" json:"store_id"`
	StoreName       string         `gorm:"size:255" json:"store_name"`
	Status          Status         `gorm:"not null;size:20;default:'CREATED'" json:"status"`
	TotalAmount     int64          `gorm:"not null" json:"total_amount"`
	DeliveryAddress string         `gorm:"size:500" json:"delivery_address"`
	Notes           string         `gorm:"type:text" json:"notes"`
	CancelReason    string         `gorm:"size:255" json:"cancel_reason,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is a priced snapshot of one cart line at checkout time
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	MenuItemID string    `gorm:"not null;size:64" json:"menu_item_id"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	Price      int64     `gorm:"not null" json:"price"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	ImageURL   string    `gorm:"size:500" json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName overrides the table name for Order
func (Order) TableName() string {
	return "orders"
}

// TableName overrides the table name for OrderItem
func (OrderItem) TableName() string {
	return "order_items"
}
