// internal/domain/catalog/service.go
package catalog

import (
	"fmt"
	"strings"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/pkg/pagination"
	"gorm.io/gorm"
)

// Service handles store and menu business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// MenuListRequest represents menu list query parameters. Page is zero-based.
type MenuListRequest struct {
	Page       int    `form:"page,default=0"`
	Limit      int    `form:"limit"`
	StoreID    uint   `form:"store_id"`
	CategoryID uint   `form:"category_id"`
	Search     string `form:"search"`
	Available  *bool  `form:"available"`
	MinPrice   int64  `form:"min_price"`
	MaxPrice   int64  `form:"max_price"`
}

// StoreListRequest represents store list query parameters
type StoreListRequest struct {
	Page   int    `form:"page,default=0"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
	Open   *bool  `form:"open"`
}

// MenuListResponse represents a paginated menu listing with the rendered
// pager window
type MenuListResponse struct {
	Items      []MenuItem         `json:"items"`
	Pagination pagination.Info    `json:"pagination"`
	PageWindow []pagination.Entry `json:"page_window"`
}

// StoreListResponse represents a paginated store listing
type StoreListResponse struct {
	Stores     []Store            `json:"stores"`
	Pagination pagination.Info    `json:"pagination"`
	PageWindow []pagination.Entry `json:"page_window"`
}

// MenuItemRequest represents menu item create/update data
type MenuItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=0"`
	ImageURL    string `json:"image_url"`
	CategoryID  *uint  `json:"category_id"`
	Available   *bool  `json:"available"`
}

// GetMenuItems retrieves menu items with filtering and pagination
func (s *Service) GetMenuItems(req *MenuListRequest) (*MenuListResponse, error) {
	var items []MenuItem
	var total int64

	query := s.db.Model(&MenuItem{}).
		Preload("Store").
		Preload("Category")

	if req.StoreID > 0 {
		query = query.Where("store_id = ?", req.StoreID)
	}
	if req.CategoryID > 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}
	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", search, search)
	}
	if req.Available != nil {
		query = query.Where("available = ?", *req.Available)
	}
	if req.MinPrice > 0 {
		query = query.Where("price >= ?", req.MinPrice)
	}
	if req.MaxPrice > 0 {
		query = query.Where("price <= ?", req.MaxPrice)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count menu items: %w", err)
	}

	page, limit := s.normalizePage(req.Page, req.Limit, total)

	err := query.
		Order("store_id ASC, category_id ASC NULLS FIRST, name ASC").
		Offset(page * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve menu items: %w", err)
	}

	return &MenuListResponse{
		Items:      items,
		Pagination: s.paginationInfo(page, limit, total),
		PageWindow: pagination.Window(page, pagination.Pages(total, limit), s.config.Pagination.WindowSize),
	}, nil
}

// GetMenuItem retrieves a single menu item by ID
func (s *Service) GetMenuItem(id uint) (*MenuItem, error) {
	var item MenuItem
	result := s.db.
		Preload("Store").
		Preload("Category").
		Where("id = ?", id).
		First(&item)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("menu item not found")
		}
		return nil, fmt.Errorf("failed to retrieve menu item: %w", result.Error)
	}

	return &item, nil
}

// GetStores retrieves stores with filtering and pagination
func (s *Service) GetStores(req *StoreListRequest) (*StoreListResponse, error) {
	var stores []Store
	var total int64

	query := s.db.Model(&Store{})

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", search, search)
	}
	if req.Open != nil {
		query = query.Where("is_open = ?", *req.Open)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count stores: %w", err)
	}

	page, limit := s.normalizePage(req.Page, req.Limit, total)

	err := query.
		Order("rating DESC, name ASC").
		Offset(page * limit).
		Limit(limit).
		Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve stores: %w", err)
	}

	return &StoreListResponse{
		Stores:     stores,
		Pagination: s.paginationInfo(page, limit, total),
		PageWindow: pagination.Window(page, pagination.Pages(total, limit), s.config.Pagination.WindowSize),
	}, nil
}

// GetStore retrieves a single store with its categories
func (s *Service) GetStore(id uint) (*Store, error) {
	var store Store
	result := s.db.
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&store)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("store not found")
		}
		return nil, fmt.Errorf("failed to retrieve store: %w", result.Error)
	}

	return &store, nil
}

// CreateMenuItem creates a menu item for a store
func (s *Service) CreateMenuItem(storeID uint, req *MenuItemRequest) (*MenuItem, error) {
	var store Store
	if err := s.db.Where("id = ?", storeID).First(&store).Error; err != nil {
		return nil, fmt.Errorf("store not found")
	}

	if req.CategoryID != nil {
		var category Category
		err := s.db.Where("id = ? AND store_id = ?", *req.CategoryID, storeID).First(&category).Error
		if err != nil {
			return nil, fmt.Errorf("category not found in store")
		}
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item := MenuItem{
		StoreID:     storeID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   available,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	return &item, nil
}

// UpdateMenuItem updates a menu item belonging to the given store
func (s *Service) UpdateMenuItem(storeID, itemID uint, req *MenuItemRequest) (*MenuItem, error) {
	var item MenuItem
	err := s.db.Where("id = ? AND store_id = ?", itemID, storeID).First(&item).Error
	if err != nil {
		return nil, fmt.Errorf("menu item not found")
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.ImageURL = req.ImageURL
	item.CategoryID = req.CategoryID
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	return &item, nil
}

// DeleteMenuItem soft deletes a menu item belonging to the given store
func (s *Service) DeleteMenuItem(storeID, itemID uint) error {
	result := s.db.Where("id = ? AND store_id = ?", itemID, storeID).Delete(&MenuItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete menu item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("menu item not found")
	}
	return nil
}

// normalizePage clamps the requested page and limit against configuration
// and the total record count, mirroring the pager's clamping rules.
func (s *Service) normalizePage(page, limit int, total int64) (int, int) {
	if limit <= 0 {
		limit = s.config.Pagination.DefaultLimit
	}
	if limit > s.config.Pagination.MaxLimit {
		limit = s.config.Pagination.MaxLimit
	}

	totalPages := pagination.Pages(total, limit)
	if page < 0 {
		page = 0
	}
	if totalPages > 0 && page > totalPages-1 {
		page = totalPages - 1
	}
	if totalPages == 0 {
		page = 0
	}

	return page, limit
}

func (s *Service) paginationInfo(page, limit int, total int64) pagination.Info {
	totalPages := pagination.Pages(total, limit)
	return pagination.Info{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages-1,
		HasPrev:    page > 0,
	}
}
