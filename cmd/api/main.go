package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Kardex-api/internal/application/auth"
	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/application/notification"
	"github.com/jhoicas/Kardex-api/internal/application/sales"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Kardex-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Kardex-api/internal/interfaces/http"
	"github.com/jhoicas/Kardex-api/pkg/config"
	"github.com/jhoicas/Kardex-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios de solo lectura sobre el pool; las escrituras corren
	// dentro del TxRunner con repos ligados a la transacción.
	movementRepo := postgres.NewMovementRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	txRunner := postgres.NewTxRunner(pool)
	trigger := notification.NewTrigger()

	applyMovementUC := inventory.NewApplyMovementUseCase(txRunner, trigger)
	listMovementsUC := inventory.NewListMovementsUseCase(movementRepo)
	stockQueryUC := usecase.NewStockQueryUseCase(stockRepo)

	createSaleUC := sales.NewCreateSaleUseCase(txRunner, applyMovementUC)
	returnSaleUC := sales.NewReturnSaleUseCase(txRunner, applyMovementUC)

	// PDF: recibo de venta para el cliente en caja
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	receiptUC := sales.NewReceiptUseCase(saleRepo, productRepo, warehouseRepo, receiptGenerator)

	productUC := usecase.NewProductUseCase(productRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ApplyMovement:  applyMovementUC,
		ListMovements:  listMovementsUC,
		StockQuery:     stockQueryUC,
		CreateSale:     createSaleUC,
		ReturnSale:     returnSaleUC,
		Receipt:        receiptUC,
		ProductUC:      productUC,
		WarehouseUC:    warehouseUC,
		NotificationUC: notificationUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		addr := cfg.HTTP.Addr()
		log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()

	// Apagado ordenado: se drenan las conexiones antes de cerrar el pool.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal recibida, apagando")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
	log.Info().Msg("aplicación detenida")
}
