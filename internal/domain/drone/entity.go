// internal/domain/drone/entity.go
package drone

import (
	"time"

	"gorm.io/gorm"
)

// Status represents a drone's fleet state
type Status string

const (
	StatusOffline     Status = "OFFLINE"
	StatusIdle        Status = "IDLE"
	StatusAssigned    Status = "ASSIGNED"
	StatusDelivering  Status = "DELIVERING"
	StatusReturning   Status = "RETURNING"
	StatusMaintenance Status = "MAINTENANCE"
)

// Valid reports whether the status is a known fleet state
func (s Status) Valid() bool {
	switch s {
	case StatusOffline, StatusIdle, StatusAssigned, StatusDelivering,
		StatusReturning, StatusMaintenance:
		return true
	}
	return false
}

// Drone represents one aircraft in the delivery fleet
type Drone struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Serial         string         `gorm:"uniqueIndex;not null;size:64" json:"serial"`
	Model          string         `gorm:"size:100" json:"model"`
	Status         Status         `gorm:"not null;size:32;default:'IDLE'" json:"status"`
	BatteryPct     float64        `gorm:"default:100" json:"battery_pct"`
	MaxPayloadKg   float64        `json:"max_payload_kg"`
	MaxRangeKm     float64        `json:"max_range_km"`
	HomeLat        float64        `json:"home_lat"`
	HomeLng        float64        `json:"home_lng"`
	CurrentLat     float64        `json:"current_lat"`
	CurrentLng     float64        `json:"current_lng"`
	LastAssignedAt *time.Time     `json:"last_assigned_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Available reports whether the drone can take a new assignment
func (d *Drone) Available() bool {
	return d.Status == StatusIdle
}

// AssignmentMode records how an order got its drone
type AssignmentMode string

const (
	ModeAuto   AssignmentMode = "AUTO"
	ModeManual AssignmentMode = "MANUAL"
)

// SystemAssigner marks automatic picks in the assigned_by audit field.
const SystemAssigner = "SYSTEM"

// Assignment links one drone to one order for a delivery run
type Assignment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderID     uint           `gorm:"not null;index" json:"order_id"`
	DroneID     uint           `gorm:"not null;index" json:"drone_id"`
	Mode        AssignmentMode `gorm:"not null;size:16" json:"mode"`
	AssignedBy  string         `gorm:"size:64" json:"assigned_by"`
	AssignedAt  time.Time      `gorm:"autoCreateTime" json:"assigned_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`

	Drone *Drone `gorm:"foreignKey:DroneID" json:"drone,omitempty"`
}

// Active reports whether the delivery run is still in flight
func (a *Assignment) Active() bool {
	return a.CompletedAt == nil
}

// TableName overrides the table name for Drone
func (Drone) TableName() string {
	return "drones"
}

// TableName overrides the table name for Assignment
func (Assignment) TableName() string {
	return "drone_assignments"
}

// PickNext chooses the idle drone that has waited longest since its last
// run: never-assigned drones first, then by oldest last_assigned_at. Returns
// nil when no drone is available.
func PickNext(drones []Drone) *Drone {
	var picked *Drone
	for i := range drones {
		d := &drones[i]
		if !d.Available() {
			continue
		}
		if picked == nil || assignedBefore(d, picked) {
			picked = d
		}
	}
	return picked
}

func assignedBefore(a, b *Drone) bool {
	if a.LastAssignedAt == nil {
		return b.LastAssignedAt != nil
	}
	if b.LastAssignedAt == nil {
		return false
	}
	return a.LastAssignedAt.Before(*b.LastAssignedAt)
}

// Stats summarizes the fleet by state for the admin dashboard
type Stats struct {
	Total       int `json:"total"`
	Idle        int `json:"idle_count"`
	Assigned    int `json:"assigned_count"`
	Delivering  int `json:"delivering_count"`
	Returning   int `json:"returning_count"`
	Maintenance int `json:"maintenance_count"`
	Offline     int `json:"offline_count"`
}

// TallyStats counts the fleet by status
func TallyStats(drones []Drone) Stats {
	stats := Stats{Total: len(drones)}
	for i := range drones {
		switch drones[i].Status {
		case StatusIdle:
			stats.Idle++
		case StatusAssigned:
			stats.Assigned++
		case StatusDelivering:
			stats.Delivering++
		case StatusReturning:
			stats.Returning++
		case StatusMaintenance:
			stats.Maintenance++
		case StatusOffline:
			stats.Offline++
		}
	}
	return stats
}
