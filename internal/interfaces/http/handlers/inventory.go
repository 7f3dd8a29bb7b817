// internal/interfaces/http/handlers/inventory.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/inventory"
	"github.com/your-org/delivery-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// InventoryHandler handles merchant stock tracking endpoints
type InventoryHandler struct {
	inventoryService *inventory.Service
	config           *config.Config
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(db *gorm.DB, cfg *config.Config) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventory.NewService(db, cfg),
		config:           cfg,
	}
}

// GetInventory handles GET /merchant/inventory - the stock board for the
// merchant's own store
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	storeID, ok := h.merchantStore(c)
	if !ok {
		return
	}

	rows, err := h.inventoryService.GetStoreInventory(storeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve inventory",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory retrieved successfully",
		"data":    rows,
	})
}

// UpdateInventory handles PUT /merchant/inventory/:id - corrects the stock
// level for one of the store's menu items
func (h *InventoryHandler) UpdateInventory(c *gin.Context) {
	storeID, ok := h.merchantStore(c)
	if !ok {
		return
	}

	menuItemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req inventory.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	row, err := h.inventoryService.SetQuantity(storeID, menuItemID, &req, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory updated successfully",
		"data":    row,
	})
}

// GetTransactions handles GET /merchant/inventory/transactions - the stock
// movement audit trail
func (h *InventoryHandler) GetTransactions(c *gin.Context) {
	storeID, ok := h.merchantStore(c)
	if !ok {
		return
	}

	var req inventory.TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	response, err := h.inventoryService.GetTransactions(storeID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve stock movements",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock movements retrieved successfully",
		"data":    response,
	})
}

func (h *InventoryHandler) merchantStore(c *gin.Context) (uint, bool) {
	storeID, exists := middleware.GetStoreIDFromContext(c)
	if !exists {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Account is not attached to a store",
		})
		return 0, false
	}
	return storeID, true
}
