// internal/domain/drone/service.go
package drone

import (
	"fmt"
	"strings"
	"time"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/order"
	"github.com/your-org/delivery-backend/internal/pkg/pagination"
	"gorm.io/gorm"
)

// Service handles fleet management and delivery assignment
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new drone service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListRequest represents fleet list query parameters. Page is zero-based.
type ListRequest struct {
	Page   int    `form:"page,default=0"`
	Limit  int    `form:"limit"`
	Status string `form:"status"`
}

// ListResponse represents a paginated fleet listing with the rendered pager
// window
type ListResponse struct {
	Drones     []Drone            `json:"drones"`
	Pagination pagination.Info    `json:"pagination"`
	PageWindow []pagination.Entry `json:"page_window"`
}

// CreateRequest represents drone registration data
type CreateRequest struct {
	Serial       string   `json:"serial" binding:"required"`
	Model        string   `json:"model"`
	BatteryPct   *float64 `json:"battery_pct"`
	MaxPayloadKg float64  `json:"max_payload_kg"`
	MaxRangeKm   float64  `json:"max_range_km"`
	HomeLat      float64  `json:"home_lat"`
	HomeLng      float64  `json:"home_lng"`
}

// UpdateRequest represents a partial drone update; nil fields are left alone
type UpdateRequest struct {
	Serial       *string  `json:"serial"`
	Model        *string  `json:"model"`
	BatteryPct   *float64 `json:"battery_pct"`
	MaxPayloadKg *float64 `json:"max_payload_kg"`
	MaxRangeKm   *float64 `json:"max_range_km"`
	HomeLat      *float64 `json:"home_lat"`
	HomeLng      *float64 `json:"home_lng"`
	Active       *bool    `json:"active"`
}

// AssignRequest represents a delivery assignment. OrderID zero picks the
// oldest order waiting for handoff; DroneID nil lets the fleet pick.
type AssignRequest struct {
	OrderID uint  `json:"order_id"`
	DroneID *uint `json:"drone_id"`
}

// AssignmentListRequest represents assignment list query parameters
type AssignmentListRequest struct {
	Page   int   `form:"page,default=0"`
	Limit  int   `form:"limit"`
	Active *bool `form:"active"`
}

// AssignmentListResponse represents a paginated assignment listing
type AssignmentListResponse struct {
	Assignments []Assignment       `json:"assignments"`
	Pagination  pagination.Info    `json:"pagination"`
	PageWindow  []pagination.Entry `json:"page_window"`
}

// GetDrones retrieves the fleet with status filtering and pagination
func (s *Service) GetDrones(req *ListRequest) (*ListResponse, error) {
	var drones []Drone
	var total int64

	query := s.db.Model(&Drone{})

	if req.Status != "" {
		status := Status(strings.ToUpper(strings.TrimSpace(req.Status)))
		if !status.Valid() {
			return nil, fmt.Errorf("unknown drone status %q", req.Status)
		}
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count drones: %w", err)
	}

	page, limit := s.normalizePage(req.Page, req.Limit, total)

	err := query.
		Order("id DESC").
		Offset(page * limit).
		Limit(limit).
		Find(&drones).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve drones: %w", err)
	}

	return &ListResponse{
		Drones:     drones,
		Pagination: s.paginationInfo(page, limit, total),
		PageWindow: pagination.Window(page, pagination.Pages(total, limit), s.config.Pagination.WindowSize),
	}, nil
}

// GetDrone retrieves a single drone by ID
func (s *Service) GetDrone(id uint) (*Drone, error) {
	var d Drone
	result := s.db.Where("id = ?", id).First(&d)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("drone not found")
		}
		return nil, fmt.Errorf("failed to retrieve drone: %w", result.Error)
	}
	return &d, nil
}

// CreateDrone registers a new drone, idle at its home position
func (s *Service) CreateDrone(req *CreateRequest) (*Drone, error) {
	if err := s.checkSerial(req.Serial, 0); err != nil {
		return nil, err
	}

	battery := 100.0
	if req.BatteryPct != nil {
		battery = *req.BatteryPct
	}

	d := Drone{
		Serial:       strings.TrimSpace(req.Serial),
		Model:        req.Model,
		Status:       StatusIdle,
		BatteryPct:   battery,
		MaxPayloadKg: req.MaxPayloadKg,
		MaxRangeKm:   req.MaxRangeKm,
		HomeLat:      req.HomeLat,
		HomeLng:      req.HomeLng,
		CurrentLat:   req.HomeLat,
		CurrentLng:   req.HomeLng,
	}

	if err := s.db.Create(&d).Error; err != nil {
		return nil, fmt.Errorf("failed to create drone: %w", err)
	}
	return &d, nil
}

// UpdateDrone applies a partial update. Deactivating takes the drone
// OFFLINE; reactivating an OFFLINE drone returns it to IDLE, other states
// are left for the assignment lifecycle to manage.
func (s *Service) UpdateDrone(id uint, req *UpdateRequest) (*Drone, error) {
	d, err := s.GetDrone(id)
	if err != nil {
		return nil, err
	}

	if req.Serial != nil && !strings.EqualFold(*req.Serial, d.Serial) {
		if err := s.checkSerial(*req.Serial, d.ID); err != nil {
			return nil, err
		}
		d.Serial = strings.TrimSpace(*req.Serial)
	}
	if req.Model != nil {
		d.Model = *req.Model
	}
	if req.BatteryPct != nil {
		d.BatteryPct = *req.BatteryPct
	}
	if req.MaxPayloadKg != nil {
		d.MaxPayloadKg = *req.MaxPayloadKg
	}
	if req.MaxRangeKm != nil {
		d.MaxRangeKm = *req.MaxRangeKm
	}
	if req.HomeLat != nil {
		d.HomeLat = *req.HomeLat
	}
	if req.HomeLng != nil {
		d.HomeLng = *req.HomeLng
	}
	if req.Active != nil {
		if !*req.Active {
			d.Status = StatusOffline
		} else if d.Status == StatusOffline {
			d.Status = StatusIdle
		}
	}

	if err := s.db.Save(d).Error; err != nil {
		return nil, fmt.Errorf("failed to update drone: %w", err)
	}
	return d, nil
}

// DeleteDrone removes a drone that has no delivery in flight
func (s *Service) DeleteDrone(id uint) error {
	d, err := s.GetDrone(id)
	if err != nil {
		return err
	}

	var active int64
	err = s.db.Model(&Assignment{}).
		Where("drone_id = ? AND completed_at IS NULL", d.ID).
		Count(&active).Error
	if err != nil {
		return fmt.Errorf("failed to check assignments: %w", err)
	}
	if active > 0 {
		return fmt.Errorf("drone has a delivery in flight")
	}

	if err := s.db.Delete(d).Error; err != nil {
		return fmt.Errorf("failed to delete drone: %w", err)
	}
	return nil
}

// FleetStats summarizes the fleet by state
func (s *Service) FleetStats() (*Stats, error) {
	var drones []Drone
	if err := s.db.Find(&drones).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve drones: %w", err)
	}
	stats := TallyStats(drones)
	return &stats, nil
}

// Assign puts a drone on an order waiting for handoff and starts the
// delivery: the drone goes DELIVERING and the order follows its lifecycle
// into DELIVERING. With no explicit order the oldest waiting order is taken;
// with no explicit drone the longest-idle one is picked.
func (s *Service) Assign(req *AssignRequest, assignedBy string) (*Assignment, error) {
	var assignment Assignment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		o, err := s.resolveOrder(tx, req.OrderID)
		if err != nil {
			return err
		}
		if !o.Status.CanTransitionTo(order.StatusDelivering) {
			return fmt.Errorf("order %s is not ready for delivery", o.Code)
		}

		d, mode, err := s.resolveDrone(tx, req.DroneID)
		if err != nil {
			return err
		}

		now := time.Now()
		d.Status = StatusDelivering
		d.LastAssignedAt = &now
		if err := tx.Save(d).Error; err != nil {
			return fmt.Errorf("failed to dispatch drone: %w", err)
		}

		err = tx.Model(&order.Order{}).
			Where("id = ?", o.ID).
			Update("status", order.StatusDelivering).Error
		if err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		assignment = Assignment{
			OrderID:    o.ID,
			DroneID:    d.ID,
			Mode:       mode,
			AssignedBy: assignedBy,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}
		assignment.Drone = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

// Complete closes out a delivery run: the order completes and the drone
// returns to the idle pool.
func (s *Service) Complete(assignmentID uint) (*Assignment, error) {
	var assignment Assignment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Preload("Drone").Where("id = ?", assignmentID).First(&assignment)
		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				return fmt.Errorf("assignment not found")
			}
			return fmt.Errorf("failed to retrieve assignment: %w", result.Error)
		}
		if !assignment.Active() {
			return fmt.Errorf("assignment is already completed")
		}

		var o order.Order
		if err := tx.Where("id = ?", assignment.OrderID).First(&o).Error; err != nil {
			return fmt.Errorf("failed to retrieve order: %w", err)
		}
		if !o.Status.CanTransitionTo(order.StatusCompleted) {
			return fmt.Errorf("order %s cannot complete from %s", o.Code, o.Status)
		}
		err := tx.Model(&order.Order{}).
			Where("id = ?", o.ID).
			Update("status", order.StatusCompleted).Error
		if err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		now := time.Now()
		assignment.CompletedAt = &now
		if err := tx.Save(&assignment).Error; err != nil {
			return fmt.Errorf("failed to complete assignment: %w", err)
		}

		err = tx.Model(&Drone{}).
			Where("id = ?", assignment.DroneID).
			Update("status", StatusIdle).Error
		if err != nil {
			return fmt.Errorf("failed to return drone to pool: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

// GetAssignments retrieves delivery runs, newest first
func (s *Service) GetAssignments(req *AssignmentListRequest) (*AssignmentListResponse, error) {
	var assignments []Assignment
	var total int64

	query := s.db.Model(&Assignment{}).Preload("Drone")

	if req.Active != nil {
		if *req.Active {
			query = query.Where("completed_at IS NULL")
		} else {
			query = query.Where("completed_at IS NOT NULL")
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count assignments: %w", err)
	}

	page, limit := s.normalizePage(req.Page, req.Limit, total)

	err := query.
		Order("assigned_at DESC").
		Offset(page * limit).
		Limit(limit).
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve assignments: %w", err)
	}

	return &AssignmentListResponse{
		Assignments: assignments,
		Pagination:  s.paginationInfo(page, limit, total),
		PageWindow:  pagination.Window(page, pagination.Pages(total, limit), s.config.Pagination.WindowSize),
	}, nil
}

func (s *Service) resolveOrder(tx *gorm.DB, orderID uint) (*order.Order, error) {
	var o order.Order
	if orderID > 0 {
		result := tx.Where("id = ?", orderID).First(&o)
		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("order not found")
			}
			return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
		}
		return &o, nil
	}

	// No explicit order: take the oldest one ready for handoff.
	result := tx.
		Where("status = ?", order.StatusPreparing).
		Order("created_at ASC").
		First(&o)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no orders waiting for delivery")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &o, nil
}

func (s *Service) resolveDrone(tx *gorm.DB, droneID *uint) (*Drone, AssignmentMode, error) {
	if droneID != nil {
		var d Drone
		result := tx.Where("id = ?", *droneID).First(&d)
		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				return nil, ModeManual, fmt.Errorf("drone not found")
			}
			return nil, ModeManual, fmt.Errorf("failed to retrieve drone: %w", result.Error)
		}
		if !d.Available() {
			return nil, ModeManual, fmt.Errorf("drone %s is not available", d.Serial)
		}
		return &d, ModeManual, nil
	}

	var idle []Drone
	if err := tx.Where("status = ?", StatusIdle).Find(&idle).Error; err != nil {
		return nil, ModeAuto, fmt.Errorf("failed to retrieve idle drones: %w", err)
	}
	picked := PickNext(idle)
	if picked == nil {
		return nil, ModeAuto, fmt.Errorf("no available drones")
	}
	return picked, ModeAuto, nil
}

func (s *Service) checkSerial(serial string, excludeID uint) error {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return fmt.Errorf("serial is required")
	}

	var count int64
	query := s.db.Model(&Drone{}).Where("LOWER(serial) = LOWER(?)", serial)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check serial: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("serial %s is already registered", serial)
	}
	return nil
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
