package main

// @title Place Discovery API
// @version 1.0.0
// @description Сервис выдачи заведений рядом с пользователем: фильтр по категориям,
// @description сортировка по расстоянию, рейтингу или дате добавления, бесконечная прокрутка и избранное.

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/place-discovery/docs"
	"github.com/place-discovery/internal/config"
	httpDelivery "github.com/place-discovery/internal/delivery/http"
	"github.com/place-discovery/internal/delivery/http/handler"
	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/infrastructure/ipgeo"
	"github.com/place-discovery/internal/pkg/logger"
	"github.com/place-discovery/internal/pkg/token"
	"github.com/place-discovery/internal/repository/cache"
	"github.com/place-discovery/internal/repository/elasticsearch"
	"github.com/place-discovery/internal/repository/postgres"
	redisRepo "github.com/place-discovery/internal/repository/redis"
	"github.com/place-discovery/internal/usecase"
	"github.com/place-discovery/internal/worker"
	"github.com/place-discovery/internal/worker/places"
	"github.com/place-discovery/internal/worker/sessions"
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

	log.Info("Starting Place Discovery")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("backend", cfg.Discovery.Backend),
		zap.Float64("radius_m", cfg.Discovery.RadiusMeters),
		zap.Int("page_size", cfg.Discovery.PageSize),
	)

	// 3. Connect to PostgreSQL (пользователи и избранное, заведения для backend=postgres)
	db, err := postgres.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	// 4. Connect to Redis (кеш и стрим изменений)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	checks := map[string]handler.HealthChecker{
		"postgres": db,
		"redis":    redisClient,
	}

	// 5. Initialize repositories
	var placeRepo repository.PlaceRepository
	switch cfg.Discovery.Backend {
	case config.BackendElasticsearch:
		es, err := elasticsearch.New(&cfg.Elasticsearch, log)
		if err != nil {
			log.Fatal("Failed to connect to Elasticsearch", zap.Error(err))
		}
		checks["elasticsearch"] = es
		placeRepo = elasticsearch.NewPlaceRepository(es, cfg.Discovery.Collection)
	default:
		placeRepo = postgres.NewPlaceRepository(db, cfg.Discovery.Collection)
	}

	wishlistRepo := postgres.NewWishlistRepository(db)
	identityRepo := postgres.NewIdentityRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
	locationProvider := ipgeo.NewClient(&cfg.Location, log)

	log.Info("Repositories initialized")

	// 6. Initialize use cases
	planner := usecase.NewQueryPlanner(usecase.PlannerConfig{
		Collection:   cfg.Discovery.Collection,
		RadiusMeters: cfg.Discovery.RadiusMeters,
		PageSize:     cfg.Discovery.PageSize,
	})
	discoveryUC := usecase.NewDiscoveryUseCase(planner, placeRepo, log)

	resolver := usecase.NewLocationResolver(locationProvider, cacheRepo, usecase.LocationConfig{
		Timeout:         cfg.Location.Timeout,
		HighAccuracy:    cfg.Location.HighAccuracy,
		MaxAge:          cfg.Location.MaxAge,
		FallbackEnabled: cfg.Location.FallbackEnabled,
		Fallback:        domain.Point{Lat: cfg.Location.FallbackLat, Lon: cfg.Location.FallbackLon},
	}, log)

	placeUC := usecase.NewPlaceUseCase(placeRepo, cacheRepo, log, cfg.Cache.PlaceCacheTTL)

	sessionUC := usecase.NewSessionUseCase(discoveryUC, resolver, placeUC, wishlistRepo, usecase.SessionConfig{
		PageSize: cfg.Discovery.PageSize,
		RadiusKm: planner.RadiusKm(),
		Wishlist: usecase.WishlistConfig{
			WriteRetries: cfg.Wishlist.WriteRetries,
			RetryBackoff: cfg.Wishlist.RetryBackoff,
		},
	}, log)

	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	authUC := usecase.NewAuthUseCase(identityRepo, tokens, log)
	coverageUC := usecase.NewCoverageUseCase(cfg.Discovery.RadiusMeters)

	log.Info("Use cases initialized")

	// 7. Initialize HTTP server
	server := httpDelivery.NewServer(cfg, log, authUC, httpDelivery.Handlers{
		Auth:      handler.NewAuthHandler(authUC, log),
		Category:  handler.NewCategoryHandler(),
		Place:     handler.NewPlaceHandler(sessionUC, log),
		Wishlist:  handler.NewWishlistHandler(sessionUC, log),
		Debug:     handler.NewDebugHandler(coverageUC, log),
		Health:    handler.NewHealthHandler(checks, log),
		Discovery: handler.NewDiscoveryHandler(sessionUC, log),
	})

	// 8. Workers: сессии живут в памяти процесса, поэтому воркеры работают здесь же
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	manager := worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
	manager.Register(sessions.NewJanitor(sessionUC, cfg.Worker.SessionIdleTTL, cfg.Worker.JanitorInterval, log))
	if cfg.Worker.Enabled {
		manager.Register(places.NewChangeWorker(streamRepo, sessionUC, cfg.Worker.ConsumerGroup, cfg.Worker.MaxRetries, log))
	} else {
		log.Info("Place change worker disabled, set WORKER_ENABLED=true to enable")
	}
	if err := manager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := manager.Stop(); err != nil {
		log.Error("Workers shutdown error", zap.Error(err))
	}
	stopWorkers()

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}

