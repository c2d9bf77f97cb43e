package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/auth"
	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/application/sales"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ApplyMovement  *inventory.ApplyMovementUseCase
	ListMovements  *inventory.ListMovementsUseCase
	StockQuery     *usecase.StockQueryUseCase
	CreateSale     *sales.CreateSaleUseCase
	ReturnSale     *sales.ReturnSaleUseCase
	Receipt        *sales.ReceiptUseCase
	ProductUC      *usecase.ProductUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	NotificationUC *usecase.NotificationUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Movimientos manuales (IN, OUT, TRANSFER, ADJUST): solo owner y manager.
	// El kardex y el stock son consultables por cualquier usuario autenticado.
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ApplyMovement, deps.ListMovements, deps.StockQuery)
	invGroup.Post("/movements", RequireRole(entity.RoleOwner, entity.RoleManager), inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/stock", inventoryHandler.GetStock)

	// Ventas POS y devoluciones (cualquier rol autenticado, incluida caja)
	salesGroup := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.CreateSale, deps.ReturnSale, deps.Receipt)
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Post("/:id/return", salesHandler.Return)
	salesGroup.Get("/:id/receipt", salesHandler.Receipt)

	// Products (catálogo: escribir solo owner y manager)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleOwner, entity.RoleManager), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleOwner, entity.RoleManager), productHandler.Update)

	// Warehouses (escribir solo owner y manager)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(entity.RoleOwner, entity.RoleManager), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Notifications (del usuario autenticado)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/:id/read", notificationHandler.MarkRead)
}
