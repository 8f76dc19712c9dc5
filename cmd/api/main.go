package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tallerpro/taller-api/internal/application/auth"
	"github.com/tallerpro/taller-api/internal/application/catalog"
	"github.com/tallerpro/taller-api/internal/application/matching"
	"github.com/tallerpro/taller-api/internal/application/stock"
	infrapdf "github.com/tallerpro/taller-api/internal/infrastructure/pdf"
	"github.com/tallerpro/taller-api/internal/infrastructure/postgres"
	httpRouter "github.com/tallerpro/taller-api/internal/interfaces/http"
	"github.com/tallerpro/taller-api/pkg/config"
	"github.com/tallerpro/taller-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	userRepo := postgres.NewUserRepository(pool)
	materialTypeRepo := postgres.NewMaterialTypeRepository(pool)
	stockRepo := postgres.NewStockLotRepository(pool)
	suggestionRepo := postgres.NewSuggestionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogUC := catalog.NewUseCase(materialTypeRepo)
	stockUC := stock.NewUseCase(stockRepo)
	ledgerUC := stock.NewLedgerUseCase(stockRepo)
	suggestionUC := matching.NewSuggestionUseCase(catalogUC, stockRepo, suggestionRepo, txRunner)

	// PDF: vale de salida de material para sugerencias aceptadas
	ticketGenerator := infrapdf.NewMarotoTicketGenerator()
	ticketUC := matching.NewPickingTicketUseCase(suggestionRepo, stockRepo, ticketGenerator)

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
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CatalogUC:    catalogUC,
		StockUC:      stockUC,
		LedgerUC:     ledgerUC,
		SuggestionUC: suggestionUC,
		TicketUC:     ticketUC,
		JWTSecret:    cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
