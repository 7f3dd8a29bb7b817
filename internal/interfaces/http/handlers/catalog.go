// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/catalog"
	"github.com/your-org/delivery-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CatalogHandler handles store and menu endpoints
type CatalogHandler struct {
	catalogService *catalog.Service
	config         *config.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(db *gorm.DB, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalog.NewService(db, cfg),
		config:         cfg,
	}
}

// GetStores handles GET /stores
func (h *CatalogHandler) GetStores(c *gin.Context) {
	var req catalog.StoreListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	response, err := h.catalogService.GetStores(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve stores",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stores retrieved successfully",
		"data":    response,
	})
}

// GetStore handles GET /stores/:id
func (h *CatalogHandler) GetStore(c *gin.Context) {
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	store, err := h.catalogService.GetStore(storeID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store retrieved successfully",
		"data":    store,
	})
}

// GetMenu handles GET /menu and GET /stores/:id/menu
func (h *CatalogHandler) GetMenu(c *gin.Context) {
	var req catalog.MenuListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	// Store-scoped route variant.
	if idParam := c.Param("id"); idParam != "" {
		storeID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		req.StoreID = storeID
	}

	response, err := h.catalogService.GetMenuItems(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve menu",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu retrieved successfully",
		"data":    response,
	})
}

// GetMenuItem handles GET /menu/:id
func (h *CatalogHandler) GetMenuItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.catalogService.GetMenuItem(itemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item retrieved successfully",
		"data":    item,
	})
}

// CreateMenuItem handles POST /merchant/menu - scoped to the merchant's own
// store from the token
func (h *CatalogHandler) CreateMenuItem(c *gin.Context) {
	storeID, ok := h.merchantStore(c)
	if !ok {
		return
	}

	var req catalog.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.catalogService.CreateMenuItem(storeID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Menu item created successfully",
		"data":    item,
	})
}

// UpdateMenuItem handles PUT /merchant/menu/:id
func (h *CatalogHandler) UpdateMenuItem(c *gin.Context) {
	storeID, ok := h.merchantStore(c)
	if !ok {
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req catalog.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.catalogService.UpdateMenuItem(storeID, itemID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item updated successfully",
		"data":    item,
	})
}

// DeleteMenuItem handles DELETE /merchant/menu/:id
func (h *CatalogHandler) DeleteMenuItem(c *gin.Context) {
	storeID, ok := h.merchantStore(c)
	if !ok {
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteMenuItem(storeID, itemID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item deleted successfully",
	})
}

func (h *CatalogHandler) merchantStore(c *gin.Context) (uint, bool) {
	storeID, exists := middleware.GetStoreIDFromContext(c)
	if !exists {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Account is not attached to a store",
		})
		return 0, false
	}
	return storeID, true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(id), true
}
