// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/infrastructure/storage"
	"github.com/your-org/delivery-backend/internal/interfaces/http/handlers"
	"github.com/your-org/delivery-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	cartStore := storage.NewRedisBlobStore(redisClient, 0)

	authHandler := handlers.NewAuthHandler(db, cartStore, cfg)
	catalogHandler := handlers.NewCatalogHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, cartStore, cfg)
	orderHandler := handlers.NewOrderHandler(db, cartStore, cfg)
	inventoryHandler := handlers.NewInventoryHandler(db, cfg)
	droneHandler := handlers.NewDroneHandler(db, cfg)

	// Authentication
	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
		}
	}

	// Public catalog browsing
	stores := rg.Group("/stores")
	{
		stores.GET("", catalogHandler.GetStores)
		stores.GET("/:id", catalogHandler.GetStore)
		stores.GET("/:id/menu", catalogHandler.GetMenu)
	}

	menu := rg.Group("/menu")
	{
		menu.GET("", catalogHandler.GetMenu)
		menu.GET("/:id", catalogHandler.GetMenuItem)
	}

	// Cart works for guests (cookie session) and logged-in users alike
	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.GetCount)
		cart.GET("/groups", cartHandler.GetGroups)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:id", cartHandler.UpdateQuantity)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
		cart.DELETE("", cartHandler.ClearCart)
	}

	// Orders require a logged-in user
	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.POST("", orderHandler.Checkout)
		orders.GET("", orderHandler.GetMyOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/cancel", orderHandler.CancelOrder)
	}

	// Merchant back office
	merchant := rg.Group("/merchant")
	merchant.Use(middleware.AuthMiddleware(cfg), middleware.RequireManager())
	{
		merchant.POST("/menu", catalogHandler.CreateMenuItem)
		merchant.PUT("/menu/:id", catalogHandler.UpdateMenuItem)
		merchant.DELETE("/menu/:id", catalogHandler.DeleteMenuItem)
		merchant.GET("/inventory", inventoryHandler.GetInventory)
		merchant.GET("/inventory/transactions", inventoryHandler.GetTransactions)
		merchant.PUT("/inventory/:id", inventoryHandler.UpdateInventory)
	}

	// Staff order console (kitchen board, delivery handoff)
	staff := rg.Group("/staff")
	staff.Use(middleware.AuthMiddleware(cfg), middleware.RequireStaff())
	{
		staff.GET("/orders", orderHandler.GetQueue)
		staff.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
		staff.GET("/assignments", droneHandler.GetAssignments)
		staff.POST("/assignments", droneHandler.Assign)
		staff.PUT("/assignments/:id/complete", droneHandler.CompleteAssignment)
	}

	// Platform administration
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireAdmin())
	{
		admin.GET("/orders", orderHandler.GetQueue)
		admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
		admin.GET("/drones/stats", droneHandler.GetFleetStats)
		admin.GET("/drones", droneHandler.GetDrones)
		admin.POST("/drones", droneHandler.CreateDrone)
		admin.GET("/drones/:id", droneHandler.GetDrone)
		admin.PUT("/drones/:id", droneHandler.UpdateDrone)
		admin.DELETE("/drones/:id", droneHandler.DeleteDrone)
	}
}
