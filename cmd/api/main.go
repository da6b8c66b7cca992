package main

// @title Check-in Service API
// @version 1.0.0
// @description Interactive transit check-in service. Provides station search against the Rejseplanen directory, favorite stations with optimistic reconciliation, passenger profiles with age-derived fare types, and a session-scoped check-in flow driven by a slide gesture.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/checkin-service/docs"
	"github.com/checkin-service/internal/config"
	httpDelivery "github.com/checkin-service/internal/delivery/http"
	"github.com/checkin-service/internal/delivery/http/handler"
	"github.com/checkin-service/internal/infrastructure/rejseplanen"
	"github.com/checkin-service/internal/pkg/logger"
	"github.com/checkin-service/internal/repository/cache"
	"github.com/checkin-service/internal/repository/postgres"
	"github.com/checkin-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Check-in Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	passengerRepo := postgres.NewPassengerRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	directoryRepo := rejseplanen.NewClient(&cfg.Directory, log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	stationUC := usecase.NewStationUseCase(
		directoryRepo,
		favoriteRepo,
		cacheRepo,
		cfg.Search,
		cfg.Cache,
		log,
	)
	passengerUC := usecase.NewPassengerUseCase(passengerRepo, log)
	sessionUC := usecase.NewSessionUseCase(passengerRepo, stationUC, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	sessionHandler := handler.NewSessionHandler(sessionUC, log)
	stationHandler := handler.NewStationHandler(stationUC, log)
	passengerHandler := handler.NewPassengerHandler(passengerUC, log)

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		sessionHandler,
		stationHandler,
		passengerHandler,
		db,
		redisClient,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
