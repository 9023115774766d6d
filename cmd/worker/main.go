package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/trip-atlas/internal/config"
	"github.com/trip-atlas/internal/infrastructure/nominatim"
	"github.com/trip-atlas/internal/pkg/logger"
	"github.com/trip-atlas/internal/repository/cache"
	"github.com/trip-atlas/internal/repository/postgres"
	redisRepo "github.com/trip-atlas/internal/repository/redis"
	"github.com/trip-atlas/internal/usecase"
	"github.com/trip-atlas/internal/worker"
	"github.com/trip-atlas/internal/worker/render"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
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

	log.Info("Starting Atlas Render Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_batch_size", cfg.Worker.MaxBatchSize))

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
	tripRepo := postgres.NewTripRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient, log)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	geocoder := nominatim.NewNominatimClient(&cfg.Geocoder, log)

	// 6. Initialize use cases
	atlasUC := usecase.NewAtlasUseCase(
		tripRepo,
		cacheRepo,
		streamRepo,
		geocoder,
		log,
		cfg.AtlasOptions(),
		cfg.Cache,
	)

	// 7. Initialize workers
	renderWorker := render.NewAtlasRenderWorker(
		streamRepo,
		atlasUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxBatchSize,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(renderWorker)

	// 9. Setup graceful shutdown
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
