package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/checkin-service/internal/config"
	"github.com/checkin-service/internal/infrastructure/rejseplanen"
	"github.com/checkin-service/internal/pkg/logger"
	"github.com/checkin-service/internal/repository/cache"
	"github.com/checkin-service/internal/repository/postgres"
	"github.com/checkin-service/internal/worker"
	"github.com/checkin-service/internal/worker/station"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Departure Refresh Worker",
		zap.Duration("refresh_interval", cfg.Worker.RefreshInterval),
		zap.Int("max_departures", cfg.Worker.MaxDepartures))

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

	// 5. Initialize repositories
	favoriteRepo := postgres.NewFavoriteRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	directoryRepo := rejseplanen.NewClient(&cfg.Directory, log)

	// 6. Initialize workers
	departureWorker := station.NewDepartureRefreshWorker(
		favoriteRepo,
		directoryRepo,
		cacheRepo,
		cfg.Worker,
		cfg.Cache,
		log,
	)

	// 7. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(departureWorker)

	// 8. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
