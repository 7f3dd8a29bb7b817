// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/cart"
	"github.com/your-org/delivery-backend/internal/domain/catalog"
	"github.com/your-org/delivery-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints for both guests and logged-in users
type CartHandler struct {
	catalogService *catalog.Service
	cartStore      cart.BlobStore
	config         *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, cartStore cart.BlobStore, cfg *config.Config) *CartHandler {
	return &CartHandler{
		catalogService: catalog.NewService(db, cfg),
		cartStore:      cartStore,
		config:         cfg,
	}
}

// AddItemRequest represents add-to-cart request data. The line itself is
// built server-side from the menu item so clients cannot set their own
// prices.
type AddItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// UpdateQuantityRequest represents a quantity update
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	agg := h.aggregatorFor(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.cartView(agg),
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.catalogService.GetMenuItem(req.MenuItemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}
	if !item.Available {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Menu item is currently unavailable",
		})
		return
	}

	agg := h.aggregatorFor(c)
	agg.AddItem(c.Request.Context(), item.CartLine(req.Quantity))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    h.cartView(agg),
	})
}

// UpdateQuantity handles PUT /cart/items/:id. Quantities below one leave the
// line at quantity one; removing a line is DELETE, not a zero update.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	agg := h.aggregatorFor(c)
	agg.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    h.cartView(agg),
	})
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	agg := h.aggregatorFor(c)
	agg.RemoveItem(c.Request.Context(), c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    h.cartView(agg),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	agg := h.aggregatorFor(c)
	agg.Clear(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// GetCount handles GET /cart/count
func (h *CartHandler) GetCount(c *gin.Context) {
	agg := h.aggregatorFor(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": agg.Count(),
		},
	})
}

// GetGroups handles GET /cart/groups - the per-store view the cart page
// renders
func (h *CartHandler) GetGroups(c *gin.Context) {
	agg := h.aggregatorFor(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart groups retrieved successfully",
		"data": gin.H{
			"groups":       agg.GroupByStore(),
			"total_amount": agg.Total(),
		},
	})
}

// aggregatorFor hydrates an aggregator for the request identity: the user ID
// when authenticated, otherwise a per-device session partition from the
// guest cookie.
func (h *CartHandler) aggregatorFor(c *gin.Context) *cart.Aggregator {
	return cart.NewAggregatorFor(c.Request.Context(), h.cartStore, h.identityFor(c))
}

func (h *CartHandler) identityFor(c *gin.Context) string {
	if identity := middleware.GetIdentityFromContext(c); identity != "" {
		return identity
	}
	return "session:" + h.getOrCreateSessionID(c)
}

func (h *CartHandler) cartView(agg *cart.Aggregator) gin.H {
	return gin.H{
		"items":        agg.Items(),
		"total_amount": agg.Total(),
	}
}

// getOrCreateSessionID gets the guest session ID from the cookie or creates
// a new one.
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie("session_id", sessionID, 86400, "/", "", false, true)
	}
	return sessionID
}
