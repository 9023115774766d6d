package main

// @title Trip Atlas Microservice API
// @version 1.0.0
// @description Микросервис построения атласов путешествий. Кластеризует конечные точки move-сегментов поездок, раскладывает кластеры по квадратным тайлам и рендерит атлас малых карт в SVG.
// @description
// @description Основные возможности:
// @description - Импорт поездок с сегментами перемещений
// @description - Синхронный рендеринг SVG-атласа с кластеризацией и проекцией Меркатора
// @description - Асинхронный рендеринг через очередь задач
// @description - Метки кластеров через обратное геокодирование Nominatim

// @contact.name API Support
// @contact.email support@trip-atlas.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/trip-atlas/docs"
	"github.com/trip-atlas/internal/config"
	httpDelivery "github.com/trip-atlas/internal/delivery/http"
	"github.com/trip-atlas/internal/delivery/http/handler"
	"github.com/trip-atlas/internal/infrastructure/nominatim"
	"github.com/trip-atlas/internal/pkg/logger"
	"github.com/trip-atlas/internal/repository/cache"
	"github.com/trip-atlas/internal/repository/postgres"
	redisRepo "github.com/trip-atlas/internal/repository/redis"
	"github.com/trip-atlas/internal/usecase"
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

	log.Info("Starting Trip Atlas Microservice")
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
	log.Info("PostgreSQL connected")

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
	log.Info("Redis connected")

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
	tripRepo := postgres.NewTripRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient, log)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	geocoder := nominatim.NewNominatimClient(&cfg.Geocoder, log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	tripUC := usecase.NewTripUseCase(tripRepo, log)
	atlasUC := usecase.NewAtlasUseCase(
		tripRepo,
		cacheRepo,
		streamRepo,
		geocoder,
		log,
		cfg.AtlasOptions(),
		cfg.Cache,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	tripHandler := handler.NewTripHandler(tripUC, log)
	atlasHandler := handler.NewAtlasHandler(atlasUC, log)

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(cfg, log, tripHandler, atlasHandler)

	log.Info("HTTP server initialized")

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
