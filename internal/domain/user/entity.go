// internal/domain/user/entity.go
package user

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role represents the access level of an account
type Role string

const (
	RoleCustomer Role = "customer"
	RoleMerchant Role = "merchant"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleMerchant, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// CanManageStore reports whether the role may use the merchant back office.
func (r Role) CanManageStore() bool {
	return r == RoleMerchant || r == RoleAdmin
}

// CanWorkOrders reports whether the role may work the order/kitchen queues.
func (r Role) CanWorkOrders() bool {
	return r == RoleMerchant || r == RoleStaff || r == RoleAdmin
}

// User represents the user entity
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Email       string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password    string         `gorm:"not null;size:255" json:"-"`
	FullName    string         `gorm:"size:200" json:"full_name"`
	Phone       string         `gorm:"size:20" json:"phone"`
	Role        Role           `gorm:"not null;size:20;default:'customer'" json:"role"`
	StoreID     *uint          `gorm:"index" json:"store_id,omitempty"` // merchants and staff belong to a store
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to normalize fields before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = strings.ToLower(u.Email)
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return nil
}

// IdentityID returns the user's ID in the string form used as the cart
// persistence partition.
func (u *User) IdentityID() string {
	return strconv.FormatUint(uint64(u.ID), 10)
}
