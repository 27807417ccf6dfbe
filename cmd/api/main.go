package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-store-inventory/internal/config"
	"go-store-inventory/internal/events"
	"go-store-inventory/internal/handler"
	"go-store-inventory/internal/metrics"
	"go-store-inventory/internal/middleware"
	"go-store-inventory/internal/repository"
	"go-store-inventory/internal/service"
	"go-store-inventory/internal/ws"
	"go-store-inventory/pkg/database"
	"go-store-inventory/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	zl, err := logger.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Setup item store
	itemRepo, closeStore, err := openItemStore(ctx, cfg)
	if err != nil {
		zl.Fatal("failed to open item store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()
	zl.Info("item store connected", zap.String("driver", cfg.StoreDriver))

	if cfg.AutoMigrate {
		if err := itemRepo.EnsureSchema(ctx); err != nil {
			zl.Fatal("failed to prepare item schema", zap.Error(err))
		}
	}

	// 3. Setup WebSocket Hub and event publishing
	wsHub := ws.NewHub(zl)
	go wsHub.Run(ctx)

	var publisher events.Publisher = events.NewHubPublisher(wsHub)
	if cfg.RedisURL != "" {
		rdb, err := database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			zl.Fatal("failed to connect redis", zap.Error(err))
		}
		defer rdb.Close()

		publisher = events.NewRedisPublisher(rdb, events.DefaultChannel)
		relay := events.NewRedisRelay(rdb, events.DefaultChannel, wsHub, zl)
		go relay.Run(ctx)
	}

	// 4. Dependency Injection (Wiring Layers)
	itemMetrics := metrics.NewItemMetrics(prometheus.DefaultRegisterer)
	itemService := service.NewItemService(itemRepo, publisher, itemMetrics, zl)

	resolver := middleware.NewTokenResolver([]byte(cfg.JWTSecret), cfg.SessionCookie)
	invHandler := handler.NewInventoryHandler(itemService, resolver)
	feedHandler := handler.NewFeedHandler(wsHub, resolver.WithQueryParam("token"))

	// 5. Setup Fiber
	app := handler.NewApp(handler.RouterConfig{
		Inventory: invHandler,
		Feed:      feedHandler,
		Gatherer:  prometheus.DefaultGatherer,
		AccessLog: true,
	})

	// 6. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down server")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}
	zl.Info("server exited")
}

// openItemStore connects the configured driver and returns its repository with a closer.
func openItemStore(ctx context.Context, cfg *config.Config) (repository.ItemRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := database.ConnectPostgres(cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return repository.NewItemRepo(db), closer, nil

	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			_ = client.Disconnect(context.Background())
		}
		return repository.NewItemMongoRepo(client.Database(cfg.MongoDatabase)), closer, nil
	}
	return nil, nil, errors.New("unsupported store driver: " + cfg.StoreDriver)
}
