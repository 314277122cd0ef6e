package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/Hala-ashour/Restaurant98/internal/application/catalog"
	"github.com/Hala-ashour/Restaurant98/internal/application/customer"
	"github.com/Hala-ashour/Restaurant98/internal/application/order"
	"github.com/Hala-ashour/Restaurant98/internal/config"
	domainorder "github.com/Hala-ashour/Restaurant98/internal/domain/order"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
	rediscache "github.com/Hala-ashour/Restaurant98/internal/infrastructure/cache/redis"
	"github.com/Hala-ashour/Restaurant98/internal/infrastructure/encoding/avro"
	ginserver "github.com/Hala-ashour/Restaurant98/internal/infrastructure/http/gin"
	kafkainfra "github.com/Hala-ashour/Restaurant98/internal/infrastructure/messaging/kafka"
	"github.com/Hala-ashour/Restaurant98/internal/infrastructure/persistence/memory"
	"github.com/Hala-ashour/Restaurant98/internal/infrastructure/persistence/postgres"
	"github.com/Hala-ashour/Restaurant98/internal/interfaces/http/handler"
	"github.com/Hala-ashour/Restaurant98/internal/interfaces/http/middleware"
	"github.com/Hala-ashour/Restaurant98/internal/interfaces/http/router"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	appLog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = appLog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	policy, err := domainorder.ParseTransitionPolicy(cfg.Order.TransitionPolicy)
	if err != nil {
		appLog.Fatal("invalid order transition policy", logger.Error(err))
	}

	var store repository.Store
	switch cfg.App.Storage {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB, appLog)
		if err != nil {
			appLog.Fatal("postgres connection failed", logger.Error(err))
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			appLog.Fatal("postgres migration failed", logger.Error(err))
		}
		store = postgres.NewStore(pool)
	default:
		appLog.Warn("using in-memory storage; data is lost on restart")
		store = memory.NewStore()
	}

	var cache repository.ProductCache = repository.NopProductCache{}
	if cfg.Redis.Enabled {
		client, err := rediscache.NewClient(ctx, cfg.Redis, appLog)
		if err != nil {
			appLog.Fatal("redis connection failed", logger.Error(err))
		}
		defer func() { _ = client.Close() }()
		cache = rediscache.NewProductCache(client, cfg.Redis.ProductTTL, appLog)
	}

	var publisher order.Publisher = order.NopPublisher{}
	if cfg.Kafka.Enabled {
		codec, err := avro.NewOrderEventCodec()
		if err != nil {
			appLog.Fatal("avro codec init failed", logger.Error(err))
		}
		producer, err := kafkainfra.NewOrderEventProducer(cfg.Kafka, codec, appLog)
		if err != nil {
			appLog.Fatal("kafka producer init failed", logger.Error(err))
		}
		defer func() { _ = producer.Close(context.Background()) }()
		publisher = producer
	}

	orderService := order.NewService(store,
		order.WithPublisher(publisher),
		order.WithProductCache(cache),
		order.WithTransitionPolicy(policy),
		order.WithLogger(appLog),
	)
	catalogService := catalog.NewService(store, cache, appLog)
	customerService := customer.NewService(store, appLog)

	if cfg.Kafka.Enabled {
		consumer := kafkainfra.NewKitchenConsumer(cfg.Kafka, orderService, appLog)
		defer func() { _ = consumer.Close() }()
		go func() {
			if err := consumer.Start(ctx); err != nil {
				appLog.Error("kitchen consumer stopped", logger.Error(err))
			}
		}()
	}

	engine := ginserver.NewEngine(cfg.App.Env,
		ginserver.CORS(cfg.Server.AllowedOrigins),
		middleware.RequestID(),
		middleware.RequestLogger(appLog),
	)
	router.RegisterRoutes(engine, router.Handlers{
		Catalog:  handler.NewCatalogHandler(catalogService, appLog),
		Customer: handler.NewCustomerHandler(customerService, appLog),
		Order:    handler.NewOrderHandler(orderService, appLog),
	}, []byte(cfg.Auth.JWTSecret), appLog)

	server := ginserver.NewServer(cfg.Server, engine)
	errCh := make(chan error, 1)
	go func() {
		appLog.Info("http server listening",
			logger.String("addr", server.Addr()),
			logger.String("storage", cfg.App.Storage),
			logger.String("transition_policy", string(policy)),
		)
		errCh <- server.Run()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			appLog.Error("server run failed", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("server shutdown failed", logger.Error(err))
	}
	appLog.Info("server stopped")
}
