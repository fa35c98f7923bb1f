package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/agrochain-api/internal/application/admin"
	"github.com/jhoicas/agrochain-api/internal/application/auth"
	"github.com/jhoicas/agrochain-api/internal/application/inventory"
	"github.com/jhoicas/agrochain-api/internal/application/supply"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	AdminUC     *admin.AdminUseCase
	InventoryUC *inventory.InventoryUseCase
	SupplyUC    *supply.SupplyUseCase
	JWTSecret   string
	Logger      *logger.Logger
	// AuthRateLimit peticiones por minuto e IP en /api/auth; 0 = sin límite.
	AuthRateLimit int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth (público, con límite por IP)
	authGroup := api.Group("/auth")
	if deps.AuthRateLimit > 0 {
		authGroup.Use(limiter.New(limiter.Config{
			Max:        deps.AuthRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return apiError(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
			},
		}))
	}
	authHandler := NewAuthHandler(deps.AuthUC, log.Component("auth-handler"))
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Admin (sin autorización; el token solo identifica al remitente de mensajes)
	adminGroup := api.Group("/admin", OptionalAuth(deps.JWTSecret))
	adminHandler := NewAdminHandler(deps.AdminUC, log.Component("admin-handler"))
	adminGroup.Get("/users", adminHandler.ListUsers)
	adminGroup.Get("/users/stats", adminHandler.UserStats)
	adminGroup.Put("/users/:userId", adminHandler.UpdateUser)
	adminGroup.Delete("/users/:userId", adminHandler.DeleteUser)
	adminGroup.Get("/users-by-role", adminHandler.UsersByRole)
	adminGroup.Get("/logs", adminHandler.ListLogs)
	adminGroup.Get("/logs/stats", adminHandler.LogStats)
	adminGroup.Get("/reports", adminHandler.Reports)
	adminGroup.Get("/settings", adminHandler.GetSettings)
	adminGroup.Put("/settings", adminHandler.UpdateSettings)
	adminGroup.Post("/send-message", adminHandler.SendMessage)
	adminGroup.Get("/getMessages", adminHandler.GetMessages)

	// Inventory: las rutas con prefijo fijo van antes de /:wholesalerId.
	inv := api.Group("/inventory")
	invHandler := NewInventoryHandler(deps.InventoryUC, log.Component("inventory-handler"))
	supplyHandler := NewSupplyHandler(deps.SupplyUC, log.Component("supply-handler"))

	inv.Post("/add", invHandler.AddItem)
	inv.Post("/orders", invHandler.CreateOrder)
	inv.Get("/orders/:wholesalerId", invHandler.ListOrders)

	inv.Post("/dealer-requests", supplyHandler.CreateDealerRequest)
	inv.Get("/dealer-requests/wholesaler/:roleId", supplyHandler.ListDealerRequestsForWholesaler)
	inv.Get("/dealer-requests/dealer/:dealerId", supplyHandler.ListDealerRequestsForDealer)
	inv.Patch("/dealer-requests/:id", supplyHandler.UpdateDealerRequest)

	inv.Post("/dealer-stock", supplyHandler.UpsertDealerStock)
	inv.Get("/dealer-stock/available", supplyHandler.ListAvailableStock)

	inv.Get("/transactions/:wholesalerRoleId/statement", supplyHandler.Statement)
	inv.Get("/transactions/:wholesalerRoleId", supplyHandler.ListTransactions)
	inv.Patch("/transactions/:id", supplyHandler.UpdatePayment)

	inv.Post("/retailer-requests", supplyHandler.CreateRetailerRequest)
	inv.Get("/retailer-requests/retailer/:retailerId", supplyHandler.ListRetailerRequestsForRetailer)
	inv.Get("/retailer-requests/dealer/:dealerId", supplyHandler.ListRetailerRequestsForDealer)
	inv.Patch("/retailer-requests/:id", supplyHandler.UpdateRetailerRequest)

	inv.Get("/:wholesalerId/low-stock", invHandler.ListLowStock)
	inv.Get("/:wholesalerId", invHandler.ListItems)
}
