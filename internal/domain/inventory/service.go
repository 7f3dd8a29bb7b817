// internal/domain/inventory/service.go
package inventory

import (
	"fmt"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/catalog"
	"github.com/your-org/delivery-backend/internal/pkg/pagination"
	"gorm.io/gorm"
)

// Service handles merchant stock tracking
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new inventory service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Row is one line of the merchant stock board
type Row struct {
	Record
	Available int  `json:"available"`
	LowStock  bool `json:"low_stock"`
}

// UpdateRequest represents a stock correction for one menu item
type UpdateRequest struct {
	Quantity  *int   `json:"quantity" binding:"required"`
	Threshold *int   `json:"threshold"`
	Note      string `json:"note"`
}

// TransactionListRequest represents stock audit query parameters
type TransactionListRequest struct {
	Page       int  `form:"page,default=0"`
	Limit      int  `form:"limit"`
	MenuItemID uint `form:"menu_item_id"`
}

// TransactionListResponse represents a paginated stock audit listing
type TransactionListResponse struct {
	Transactions []Transaction      `json:"transactions"`
	Pagination   pagination.Info    `json:"pagination"`
	PageWindow   []pagination.Entry `json:"page_window"`
}

// GetStoreInventory returns the stock board for one store, one row per
// tracked menu item
func (s *Service) GetStoreInventory(storeID uint) ([]Row, error) {
	var records []Record
	err := s.db.
		Joins("JOIN menu_items ON menu_items.id = inventory.menu_item_id").
		Where("menu_items.store_id = ?", storeID).
		Preload("MenuItem").
		Order("inventory.menu_item_id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve inventory: %w", err)
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{
			Record:    rec,
			Available: rec.Available(),
			LowStock:  rec.LowStock(),
		})
	}
	return rows, nil
}

// SetQuantity corrects the stock level for one of the store's menu items,
// creating the record on first use, and logs the movement with the acting
// user. Corrections on items of other stores are rejected.
func (s *Service) SetQuantity(storeID, menuItemID uint, req *UpdateRequest, actorID uint) (*Row, error) {
	var rec Record

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item catalog.MenuItem
		result := tx.Where("id = ? AND store_id = ?", menuItemID, storeID).First(&item)
		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				return fmt.Errorf("menu item not found in this store")
			}
			return fmt.Errorf("failed to retrieve menu item: %w", result.Error)
		}

		err := tx.Where(Record{MenuItemID: menuItemID}).FirstOrCreate(&rec).Error
		if err != nil {
			return fmt.Errorf("failed to load inventory record: %w", err)
		}

		delta := *req.Quantity - rec.Quantity
		rec.Quantity = *req.Quantity
		if req.Threshold != nil {
			rec.Threshold = *req.Threshold
		}
		if err := tx.Save(&rec).Error; err != nil {
			return fmt.Errorf("failed to update inventory: %w", err)
		}

		if delta != 0 {
			movement := delta
			if movement < 0 {
				movement = -movement
			}
			txn := Transaction{
				MenuItemID: menuItemID,
				Type:       TxnTypeFor(delta),
				Quantity:   movement,
				Note:       req.Note,
				ActorID:    &actorID,
			}
			if err := tx.Create(&txn).Error; err != nil {
				return fmt.Errorf("failed to log stock movement: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Row{Record: rec, Available: rec.Available(), LowStock: rec.LowStock()}, nil
}

// GetTransactions retrieves the store's stock audit trail, newest first
func (s *Service) GetTransactions(storeID uint, req *TransactionListRequest) (*TransactionListResponse, error) {
	var txns []Transaction
	var total int64

	query := s.db.Model(&Transaction{}).
		Joins("JOIN menu_items ON menu_items.id = inventory_transactions.menu_item_id").
		Where("menu_items.store_id = ?", storeID).
		Preload("MenuItem")

	if req.MenuItemID > 0 {
		query = query.Where("inventory_transactions.menu_item_id = ?", req.MenuItemID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count stock movements: %w", err)
	}

	page, limit := s.normalizePage(req.Page, req.Limit, total)

	err := query.
		Order("inventory_transactions.created_at DESC").
		Offset(page * limit).
		Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve stock movements: %w", err)
	}

	totalPages := pagination.Pages(total, limit)
	return &TransactionListResponse{
		Transactions: txns,
		Pagination: pagination.Info{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages-1,
			HasPrev:    page > 0,
		},
		PageWindow: pagination.Window(page, totalPages, s.config.Pagination.WindowSize),
	}, nil
}

func (s *Service) normalizePage(page, limit int, total int64) (int, int) {
	if limit <= 0 {
		limit = s.config.Pagination.DefaultLimit
	}
	if limit > s.config.Pagination.MaxLimit {
		limit = s.config.Pagination.MaxLimit
	}
	last := pagination.Last(pagination.Pages(total, limit))
	if page < 0 {
		page = 0
	}
	if page > last {
		page = last
	}
	return page, limit
}
