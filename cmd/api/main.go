package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/agrochain-api/internal/application/admin"
	"github.com/jhoicas/agrochain-api/internal/application/auth"
	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/application/inventory"
	"github.com/jhoicas/agrochain-api/internal/application/logs"
	"github.com/jhoicas/agrochain-api/internal/application/roleid"
	"github.com/jhoicas/agrochain-api/internal/application/supply"
	infrapdf "github.com/jhoicas/agrochain-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/agrochain-api/internal/interfaces/http"
	"github.com/jhoicas/agrochain-api/pkg/config"
	"github.com/jhoicas/agrochain-api/pkg/logger"
)

const (
	swaggerFile   = "./docs/swagger.json"
	authRateLimit = 20 // peticiones por minuto e IP
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
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("aplicación detenida con error")
	}
}

// run arma y sirve la aplicación hasta recibir SIGINT/SIGTERM. Los recursos abiertos
// se cierran antes de devolver, también cuando falla el arranque.
func run(cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()
	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close()
	store := b.store
	recorder := logs.NewRecorder(b.logRepo, cfg.Logs.BufferSize, log)

	authUC := auth.NewAuthUseCase(store.users, roleid.NewAllocator(store.roleSequences), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	adminUC := admin.NewAdminUseCase(store.users, store.reports, b.logRepo, store.messages, b.publisher, log)
	inventoryUC := inventory.NewInventoryUseCase(store.items, store.orders)
	supplyUC := supply.NewSupplyUseCase(
		store.txRunner,
		store.dealerRequests, store.transactions, store.dealerStock, store.retailerRequests,
		infrapdf.NewMarotoStatementGenerator(),
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log, recorder))

	// Swagger UI en local: http://localhost:<port>/docs (requiere swag init)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "AgroChain API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		AdminUC:       adminUC,
		InventoryUC:   inventoryUC,
		SupplyUC:      supplyUC,
		JWTSecret:     cfg.JWT.Secret,
		Logger:        log,
		AuthRateLimit: authRateLimit,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := recorder.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Int64("descartados", recorder.Dropped()).Msg("logs de peticiones pendientes sin guardar")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
