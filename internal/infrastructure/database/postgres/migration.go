// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/delivery-backend/internal/domain/catalog"
	"github.com/your-org/delivery-backend/internal/domain/drone"
	"github.com/your-org/delivery-backend/internal/domain/inventory"
	"github.com/your-org/delivery-backend/internal/domain/order"
	"github.com/your-org/delivery-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{db: db}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order: stores before the rows that reference them.
	models := []interface{}{
		&catalog.Store{},
		&catalog.Category{},
		&catalog.MenuItem{},
		&user.User{},
		&order.Order{},
		&order.OrderItem{},
		&inventory.Record{},
		&inventory.Transaction{},
		&drone.Drone{},
		&drone.Assignment{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_menu_items_store_available ON menu_items(store_id, available)",
		"CREATE INDEX IF NOT EXISTS idx_menu_items_price ON menu_items(price)",
		"CREATE INDEX IF NOT EXISTS idx_stores_open_rating ON stores(is_open, rating DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_store_status ON orders(store_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_txns_item_created ON inventory_transactions(menu_item_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_drones_status ON drones(status)",
		"CREATE INDEX IF NOT EXISTS idx_drone_assignments_active ON drone_assignments(drone_id) WHERE completed_at IS NULL",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}

// SeedInitialData seeds development data: an admin, two stores with their
// merchants and menus
func (m *Migration) SeedInitialData() error {
	var count int64
	m.db.Model(&catalog.Store{}).Count(&count)
	if count > 0 {
		return nil // already seeded
	}

	log.Println("🔄 Seeding initial data...")

	stores := []catalog.Store{
		{
			Name:        "Quán Phở 24",
			Description: "Phở bò truyền thống Hà Nội",
			Address:     "24 Lê Lợi, Quận 1, TP.HCM",
			Phone:       "0281234567",
			Rating:      4.6,
			IsOpen:      true,
		},
		{
			Name:        "Bánh Mì Huỳnh Hoa",
			Description: "Bánh mì thịt nguội đặc biệt",
			Address:     "26 Lê Thị Riêng, Quận 1, TP.HCM",
			Phone:       "0287654321",
			Rating:      4.8,
			IsOpen:      true,
		},
	}
	if err := m.db.Create(&stores).Error; err != nil {
		return fmt.Errorf("failed to seed stores: %w", err)
	}

	menus := [][]catalog.MenuItem{
		{
			{Name: "Phở bò tái", Description: "Bánh phở tươi, bò tái mềm", Price: 55000, Available: true},
			{Name: "Phở bò chín", Description: "Nạm gầu chín kỹ", Price: 55000, Available: true},
			{Name: "Phở đặc biệt", Description: "Đầy đủ tái, nạm, gân, bò viên", Price: 75000, Available: true},
		},
		{
			{Name: "Bánh mì đặc biệt", Description: "Đầy đủ pate, thịt nguội, chả", Price: 45000, Available: true},
			{Name: "Bánh mì chả lụa", Description: "Chả lụa, dưa leo, đồ chua", Price: 30000, Available: true},
		},
	}
	for i, store := range stores {
		for j := range menus[i] {
			menus[i][j].StoreID = store.ID
		}
		if err := m.db.Create(&menus[i]).Error; err != nil {
			return fmt.Errorf("failed to seed menu items: %w", err)
		}
	}

	users := []user.User{
		{
			Email:    "admin@delivery.local",
			FullName: "Platform Admin",
			Role:     user.RoleAdmin,
			IsActive: true,
		},
		{
			Email:    "pho24@delivery.local",
			FullName: "Chủ Quán Phở 24",
			Role:     user.RoleMerchant,
			StoreID:  &stores[0].ID,
			IsActive: true,
		},
		{
			Email:    "huynhhoa@delivery.local",
			FullName: "Chủ Bánh Mì Huỳnh Hoa",
			Role:     user.RoleMerchant,
			StoreID:  &stores[1].ID,
			IsActive: true,
		},
	}
	for i := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		users[i].Password = string(hashed)
	}
	if err := m.db.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	// Stock records for every seeded dish so the merchant board has data.
	var records []inventory.Record
	for i := range menus {
		for _, item := range menus[i] {
			records = append(records, inventory.Record{
				MenuItemID: item.ID,
				Quantity:   50,
				Threshold:  10,
			})
		}
	}
	if err := m.db.Create(&records).Error; err != nil {
		return fmt.Errorf("failed to seed inventory: %w", err)
	}

	drones := []drone.Drone{
		{Serial: "VNM-001", Model: "FF TransWing X1", BatteryPct: 100, MaxPayloadKg: 4, MaxRangeKm: 12, HomeLat: 10.7725, HomeLng: 106.6980, CurrentLat: 10.7725, CurrentLng: 106.6980, Status: drone.StatusIdle},
		{Serial: "VNM-002", Model: "FF TransWing X1", BatteryPct: 100, MaxPayloadKg: 4, MaxRangeKm: 12, HomeLat: 10.7725, HomeLng: 106.6980, CurrentLat: 10.7725, CurrentLng: 106.6980, Status: drone.StatusIdle},
		{Serial: "VNM-003", Model: "FF Sprinter S2", BatteryPct: 100, MaxPayloadKg: 2, MaxRangeKm: 8, HomeLat: 10.7769, HomeLng: 106.7009, CurrentLat: 10.7769, CurrentLng: 106.7009, Status: drone.StatusMaintenance},
	}
	if err := m.db.Create(&drones).Error; err != nil {
		return fmt.Errorf("failed to seed drones: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}
