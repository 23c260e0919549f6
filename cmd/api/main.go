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

	"github.com/tu-usuario/consigna-pro/internal/application/auth"
	"github.com/tu-usuario/consigna-pro/internal/application/catalog"
	"github.com/tu-usuario/consigna-pro/internal/application/ledger"
	"github.com/tu-usuario/consigna-pro/internal/application/sales"
	infracache "github.com/tu-usuario/consigna-pro/internal/infrastructure/cache"
	infrapdf "github.com/tu-usuario/consigna-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/consigna-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/consigna-pro/internal/interfaces/http"
	"github.com/tu-usuario/consigna-pro/pkg/config"
	"github.com/tu-usuario/consigna-pro/pkg/logger"
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

	// Repositorios sobre el pool (las escrituras transaccionales usan los runners).
	itemRepo := postgres.NewStockItemRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewSaleOrderRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	ledgerTx := postgres.NewLedgerTxRunner(pool)
	salesTx := postgres.NewSalesTxRunner(pool)

	// Caché de conteos: Redis si está configurado, no-op si no.
	var countsCache catalog.Cache = infracache.NewNoopCache()
	if cfg.Redis.Addr != "" {
		redisCache := infracache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, conteos sin caché")
		} else {
			countsCache = redisCache
			defer redisCache.Close()
		}
	}

	// Casos de uso.
	stockLedger := ledger.NewStockLedger(ledgerTx, log)
	stockQueryUC := ledger.NewStockQueryUseCase(itemRepo, movRepo)
	createOrderUC := sales.NewCreateOrderUseCase(salesTx, stockLedger, itemRepo, clientRepo, log)
	cancelOrderUC := sales.NewCancelOrderUseCase(salesTx, stockLedger, log)
	recordPaymentUC := sales.NewRecordPaymentUseCase(salesTx, log)
	orderQueryUC := sales.NewOrderQueryUseCase(orderRepo, movRepo)
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	receiptUC := sales.NewReceiptUseCase(orderRepo, paymentRepo, clientRepo, itemRepo, receiptGenerator, log)
	aggregator := catalog.NewAggregator(orderRepo, 20, log)
	countsUC := catalog.NewCountsUseCase(orderRepo, countsCache,
		time.Duration(cfg.Redis.TTLSecs)*time.Second, log)
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

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ConsignaPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:      httpRouter.NewAuthHandler(authUC),
		Stock:     httpRouter.NewStockHandler(stockLedger, stockQueryUC),
		Sales:     httpRouter.NewSalesHandler(createOrderUC, cancelOrderUC, recordPaymentUC, orderQueryUC, receiptUC),
		Catalog:   httpRouter.NewCatalogHandler(aggregator, countsUC),
		JWTSecret: cfg.JWT.Secret,
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
