// internal/interfaces/http/handlers/drone.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/drone"
	"github.com/your-org/delivery-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// DroneHandler handles fleet management and delivery assignment endpoints
type DroneHandler struct {
	droneService *drone.Service
	config       *config.Config
}

// NewDroneHandler creates a new drone handler
func NewDroneHandler(db *gorm.DB, cfg *config.Config) *DroneHandler {
	return &DroneHandler{
		droneService: drone.NewService(db, cfg),
		config:       cfg,
	}
}

// GetFleetStats handles GET /admin/drones/stats
func (h *DroneHandler) GetFleetStats(c *gin.Context) {
	stats, err := h.droneService.FleetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve fleet stats",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Fleet stats retrieved successfully",
		"data":    stats,
	})
}

// GetDrones handles GET /admin/drones
func (h *DroneHandler) GetDrones(c *gin.Context) {
	var req drone.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	response, err := h.droneService.GetDrones(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Drones retrieved successfully",
		"data":    response,
	})
}

// GetDrone handles GET /admin/drones/:id
func (h *DroneHandler) GetDrone(c *gin.Context) {
	droneID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	d, err := h.droneService.GetDrone(droneID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Drone retrieved successfully",
		"data":    d,
	})
}

// CreateDrone handles POST /admin/drones
func (h *DroneHandler) CreateDrone(c *gin.Context) {
	var req drone.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	d, err := h.droneService.CreateDrone(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Drone registered successfully",
		"data":    d,
	})
}

// UpdateDrone handles PUT /admin/drones/:id
func (h *DroneHandler) UpdateDrone(c *gin.Context) {
	droneID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req drone.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	d, err := h.droneService.UpdateDrone(droneID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Drone updated successfully",
		"data":    d,
	})
}

// DeleteDrone handles DELETE /admin/drones/:id
func (h *DroneHandler) DeleteDrone(c *gin.Context) {
	droneID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.droneService.DeleteDrone(droneID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Drone deleted successfully",
	})
}

// Assign handles POST /staff/assignments - puts a drone on an order and
// starts the delivery
func (h *DroneHandler) Assign(c *gin.Context) {
	var req drone.AssignRequest
	_ = c.ShouldBindJSON(&req)

	assignment, err := h.droneService.Assign(&req, h.assignerFor(c, &req))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Drone assigned successfully",
		"data":    assignment,
	})
}

// CompleteAssignment handles PUT /staff/assignments/:id/complete
func (h *DroneHandler) CompleteAssignment(c *gin.Context) {
	assignmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	assignment, err := h.droneService.Complete(assignmentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery completed successfully",
		"data":    assignment,
	})
}

// GetAssignments handles GET /staff/assignments
func (h *DroneHandler) GetAssignments(c *gin.Context) {
	var req drone.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	response, err := h.droneService.GetAssignments(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve assignments",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Assignments retrieved successfully",
		"data":    response,
	})
}

// assignerFor records who dispatched the drone: automatic picks are audited
// as the system, manual picks as the acting user.
func (h *DroneHandler) assignerFor(c *gin.Context, req *drone.AssignRequest) string {
	if req.DroneID == nil {
		return drone.SystemAssigner
	}
	userID, _ := middleware.GetUserIDFromContext(c)
	return strconv.FormatUint(uint64(userID), 10)
}
