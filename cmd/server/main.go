// Package main is the entry point for the settlement API. It wires the
// stores, services and routes and serves until interrupted.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/mahadebmondal004/BrohealBackend/internal/config"
	"github.com/mahadebmondal004/BrohealBackend/internal/handlers"
	"github.com/mahadebmondal004/BrohealBackend/internal/logger"
	"github.com/mahadebmondal004/BrohealBackend/internal/metrics"
	"github.com/mahadebmondal004/BrohealBackend/internal/repositories"
	"github.com/mahadebmondal004/BrohealBackend/internal/repositories/cache"
	"github.com/mahadebmondal004/BrohealBackend/internal/routes"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/commission"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/gateway"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/notification"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/settings"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/settlement"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	walletCacheTTL  = 5 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	db, err := repositories.InitDB(cfg.DB, log)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	cacheService := cache.NewCacheService(redisClient, walletCacheTTL)
	defer func() {
		if err := cacheService.Close(); err != nil {
			log.Warn("failed to close redis connection", zap.Error(err))
		}
	}()

	health := map[string]handlers.HealthChecker{
		"database": repositories.NewDBHealth(db),
		"redis":    cacheService,
	}

	// Wallet reads go straight to postgres while redis is down at boot.
	var walletCache wallet.CacheOperator
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheService.HealthCheck(pingCtx); err != nil {
		log.Warn("wallet cache disabled", zap.Error(err))
	} else {
		walletCache = cacheService
	}
	cancel()

	notifiers := notification.Multi{notification.NewLogNotifier(log)}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaNotifier := notification.NewKafkaNotifier(
			notification.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.PaymentTopic),
			cfg.Kafka.PaymentTopic,
			log,
		)
		defer func() {
			if err := kafkaNotifier.Close(); err != nil {
				log.Warn("failed to close kafka writer", zap.Error(err))
			}
		}()
		notifiers = append(notifiers, kafkaNotifier)
	}

	collector := metrics.New(prometheus.DefaultRegisterer)
	store := repositories.NewStore(db)
	settingsService := settings.NewService(store.Settings(), cfg.Defaults, log)
	walletService := wallet.NewService(store, commission.NewPolicy(settingsService), walletCache, collector, log)
	settlementService := settlement.NewService(
		store,
		settingsService,
		gateway.NewAdapter(log),
		walletService,
		notifiers,
		collector,
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      "broheal-payments",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/payments/initiate", rateLimit(10))
	app.Use("/api/therapist/wallet/withdraw", rateLimit(5))

	routes.SetupRoutes(app, routes.Dependencies{
		Settlement:  settlementService,
		Wallet:      walletService,
		Settings:    settingsService,
		FrontendURL: cfg.Defaults.FrontendURL,
		JWTSecret:   cfg.JWTSecret,
		Health:      health,
		PoolStats:   cacheService,
		Gatherer:    prometheus.DefaultGatherer,
		Log:         log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

func rateLimit(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests. Please try again later.",
			})
		},
	})
}
