// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"strconv"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/cart"
	"github.com/your-org/delivery-backend/internal/pkg/ordercode"
	"github.com/your-org/delivery-backend/internal/pkg/pagination"
	"gorm.io/gorm"
)

// Service handles order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CheckoutRequest represents order placement data
type CheckoutRequest struct {
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	Notes           string `json:"notes"`
}

// ListRequest represents order list query parameters. Page is zero-based.
type ListRequest struct {
	Page    int    `form:"page,default=0"`
	Limit   int    `form:"limit"`
	Status  string `form:"status"`
	StoreID uint   `form:"store_id"`
	UserID  uint   `form:"-"` // set from the authenticated identity, never bound
}

// ListResponse represents a paginated order listing with the rendered pager
// window
type ListResponse struct {
	Orders     []Order            `json:"orders"`
	Pagination pagination.Info    `json:"pagination"`
	PageWindow []pagination.Entry `json:"page_window"`
}

// Checkout turns the aggregator's current lines into orders, one per store
// group, and clears the cart. The cart's store grouping drives the split the
// same way the cart page renders it.
func (s *Service) Checkout(ctx context.Context, agg *cart.Aggregator, userID uint, req *CheckoutRequest) ([]Order, error) {
	groups := agg.GroupByStore()
	if len(groups) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	var orders []Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, group := range groups {
			storeID, err := strconv.ParseUint(group.StoreID, 10, 32)
			if err != nil {
				return fmt.Errorf("cart line has no deliverable store")
			}

			o := Order{
				UserID:          userID,
				StoreID:         uint(storeID),
				StoreName:       group.StoreName,
				Status:          StatusCreated,
				TotalAmount:     group.Total,
				DeliveryAddress: req.DeliveryAddress,
				Notes:           req.Notes,
			}
			for _, line := range group.Items {
				o.Items = append(o.Items, OrderItem{
					MenuItemID: line.ID,
					Name:       line.Name,
					Price:      line.Price,
					Quantity:   line.Quantity,
					ImageURL:   line.Image,
				})
			}

			if err := tx.Create(&o).Error; err != nil {
				return fmt.Errorf("failed to create order: %w", err)
			}

			// The code needs the generated ID, so it is set in a second step.
			o.Code = ordercode.Suggest(o.ID, o.CreatedAt)
			if err := tx.Model(&Order{}).Where("id = ?", o.ID).Update("code", o.Code).Error; err != nil {
				return fmt.Errorf("failed to assign order code: %w", err)
			}

			orders = append(orders, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	agg.Clear(ctx)
	return orders, nil
}

// GetOrders retrieves orders with filtering and pagination
func (s *Service) GetOrders(req *ListRequest) (*ListResponse, error) {
	var orders []Order
	var total int64

	query := s.db.Model(&Order{}).Preload("Items")

	if req.UserID > 0 {
		query = query.Where("user_id = ?", req.UserID)
	}
	if req.StoreID > 0 {
		query = query.Where("store_id = ?", req.StoreID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.config.Pagination.DefaultLimit
	}
	if limit > s.config.Pagination.MaxLimit {
		limit = s.config.Pagination.MaxLimit
	}

	totalPages := pagination.Pages(total, limit)
	page := req.Page
	if page < 0 {
		page = 0
	}
	if totalPages > 0 && page > totalPages-1 {
		page = totalPages - 1
	}

	err := query.
		Order("created_at DESC").
		Offset(page * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	return &ListResponse{
		Orders: orders,
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

// GetOrder retrieves a single order by ID
func (s *Service) GetOrder(id uint) (*Order, error) {
	var o Order
	result := s.db.Preload("Items").Where("id = ?", id).First(&o)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &o, nil
}

// UpdateStatus moves an order along its lifecycle, rejecting transitions
// the lifecycle does not allow
func (s *Service) UpdateStatus(orderID uint, next Status) (*Order, error) {
	var o Order
	if err := s.db.Preload("Items").Where("id = ?", orderID).First(&o).Error; err != nil {
		return nil, fmt.Errorf("order not found")
	}

	if !o.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("invalid status transition from %s to %s", o.Status, next)
	}

	o.Status = next
	if err := s.db.Save(&o).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return &o, nil
}

// Cancel cancels an order if its lifecycle still allows it
func (s *Service) Cancel(orderID, userID uint, reason string) (*Order, error) {
	var o Order
	if err := s.db.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, fmt.Errorf("order not found")
	}

	if !o.Status.CanTransitionTo(StatusCancelled) {
		return nil, fmt.Errorf("order can no longer be cancelled")
	}

	o.Status = StatusCancelled
	o.CancelReason = reason
	if err := s.db.Save(&o).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	return &o, nil
}
