// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"chowpay/internal/config"
	"chowpay/internal/events"
	"chowpay/internal/handlers"
	applogger "chowpay/internal/logger"
	"chowpay/internal/metrics"
	"chowpay/internal/middleware"
	"chowpay/internal/provider"
	"chowpay/internal/repositories"
	"chowpay/internal/repositories/cache"
	"chowpay/internal/routes"
	"chowpay/internal/services/cleanup"
	"chowpay/internal/services/loyalty"
	"chowpay/internal/services/payment"
	"chowpay/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := applogger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := repositories.InitDB(cfg.Database)
	if err != nil {
		zl.Fatal("failed to initialise database", zap.Error(err))
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			zl.Warn("failed to close database connection", zap.Error(err))
		}
	}()
	zl.Info("connected to database", zap.String("host", cfg.Database.Host))

	redisClient := cache.NewRedisClient(cfg.Redis)
	defer redisClient.Close()
	if err := cache.Ping(context.Background(), redisClient); err != nil {
		zl.Warn("redis unavailable at startup, wallet cache and action locks will fail until it recovers", zap.Error(err))
	}

	providerClient, err := provider.NewClient(provider.Config{
		BaseURL: cfg.Provider.BaseURL,
		APIKey:  cfg.Provider.APIKey,
		Timeout: cfg.Provider.Timeout,
	}, nil)
	if err != nil {
		zl.Fatal("failed to build wallet provider client", zap.Error(err))
	}

	publisher := events.NewPublisher(cfg.Kafka, zl)
	defer publisher.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewPrometheusCollector(registry)

	store := repositories.NewStore(db)
	cacheService := cache.NewCacheService(redisClient, cfg.Redis.CacheTTL)

	walletService := wallet.NewService(
		store.Profiles,
		providerClient,
		cacheService,
		wallet.Config{ReadRetries: cfg.Provider.ReadRetries},
		zl.Named("wallet"),
		collector,
	)
	loyaltyService := loyalty.NewService(
		store,
		loyalty.Config{PointsUnit: cfg.Loyalty.PointsUnit, FirstOrderBonus: cfg.Loyalty.FirstOrderBonus},
		zl.Named("loyalty"),
	)
	paymentService := payment.NewService(
		store,
		providerClient,
		walletService,
		loyaltyService,
		publisher,
		payment.Config{MerchantWalletID: cfg.MerchantWalletID},
		zl.Named("payment"),
		collector,
	)
	cleanupService := cleanup.NewService(
		store,
		store,
		walletService,
		cache.NewLocker(redisClient, "lock:cleanup:"),
		cacheService,
		publisher,
		cleanup.Config{LockTTL: cfg.ActionLockTTL},
		zl.Named("cleanup"),
		collector,
	)

	app := fiber.New(fiber.Config{
		AppName:      "chowpay",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Origins(), ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + middleware.CSRFHeader,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use("/api/wallet-payment", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	health := handlers.NewHealthHandler(version, map[string]handlers.Checker{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": cacheService.HealthCheck,
	})

	routes.SetupRoutes(app, routes.Handlers{
		Payment: handlers.NewPaymentHandler(paymentService, zl.Named("http")),
		Wallet:  handlers.NewWalletHandler(walletService, store.Transactions, store.Loyalty),
		Cleanup: handlers.NewCleanupHandler(cleanupService),
		Health:  health,
	}, middleware.NewAuthMiddleware(cfg.JWTSecret, store.Profiles, zl.Named("auth")), routes.Options{
		SecureCookies: cfg.IsProduction(),
		Gatherer:      registry,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		zl.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zl.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	zl.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
