package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/thankimquy/FOODORDER/internal/env"
	"github.com/thankimquy/FOODORDER/internal/excel"
	"github.com/thankimquy/FOODORDER/internal/id"
	"github.com/thankimquy/FOODORDER/internal/queue"
	"github.com/thankimquy/FOODORDER/internal/ratelimiter"
	"github.com/thankimquy/FOODORDER/internal/repo"
	"github.com/thankimquy/FOODORDER/internal/service"
	"github.com/thankimquy/FOODORDER/internal/store/memory"
	"github.com/thankimquy/FOODORDER/internal/store/mongo"
	"github.com/thankimquy/FOODORDER/internal/worker"
	"go.uber.org/zap"
)

const version = "0.0.0"

func main() {
	_ = godotenv.Load()

	cfg := config{
		addr:         env.GetString("ADDR", ":8080"),
		env:          env.GetString("ENV", "development"),
		storeBackend: env.GetString("STORE_BACKEND", "mongo"),
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: env.GetInt("RATELIMITER_REQUESTS_COUNT", 20),
			TimeFrame:            time.Second * 5,
			Enabled:              env.GetBool("RATE_LIMITER_ENABLED", true),
		},
		mongo: mongoConfig{
			URI:      env.GetString("MONGO_URI", "mongodb://localhost:27017"),
			Database: env.GetString("MONGO_DATABASE", "foodorder"),
			Timeout:  time.Second * 10,
		},
		rabbitMQ: rabbitMQConfig{
			URL:           env.GetString("RABBITMQ_URL", ""),
			MaxRetries:    env.GetInt("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay:    time.Second * 2,
			PrefetchCount: env.GetInt("RABBITMQ_PREFETCH_COUNT", 10),
		},
		legacyStore:  env.GetString("LEGACY_STORE_PATH", ""),
		syncFile:     env.GetString("SYNC_FILE", ""),
		syncDebounce: time.Duration(env.GetInt("SYNC_DEBOUNCE_MS", 2000)) * time.Millisecond,
	}

	// logger
	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	// rate limiter
	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	// entity store
	var entityStore repo.EntityStore
	var storage *mongo.Storage
	if cfg.storeBackend == "memory" {
		entityStore = memory.New()
		logger.Warn("using in-memory store, data will not survive a restart")
	} else {
		var err error
		storage, err = mongo.New(mongo.Config{
			URI:      cfg.mongo.URI,
			Database: cfg.mongo.Database,
			Timeout:  cfg.mongo.Timeout,
		})
		if err != nil {
			logger.Fatalw("failed to connect to MongoDB", "error", err)
		}

		logger.Info("connected to MongoDB")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := storage.CreateIndexes(ctx); err != nil {
			logger.Warnw("failed to create indexes", "error", err)
		} else {
			logger.Info("MongoDB indexes created successfully")
		}
		cancel()

		entityStore = mongo.NewEntityStore(storage)
	}

	// broker: rabbitmq when configured, in-process otherwise
	var broker queue.Broker
	if cfg.rabbitMQ.URL != "" {
		var err error
		broker, err = queue.NewRabbitMQBroker(queue.Config{
			URL:           cfg.rabbitMQ.URL,
			MaxRetries:    cfg.rabbitMQ.MaxRetries,
			RetryDelay:    cfg.rabbitMQ.RetryDelay,
			PrefetchCount: cfg.rabbitMQ.PrefetchCount,
		})
		if err != nil {
			logger.Fatalw("failed to connect to RabbitMQ", "error", err)
		}
		logger.Info("connected to RabbitMQ")
	} else {
		broker = queue.NewMemoryBroker()
		logger.Info("using in-process broker")
	}

	idgen := id.UUID{}
	codec := excel.NewCodec(idgen, time.Now)

	storeService := service.NewStoreService(entityStore, broker, idgen, time.Now, logger)
	syncService := service.NewSyncService(storeService, codec, logger)

	// one-time migration from the previous storage generation
	if cfg.legacyStore != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		migrated, err := syncService.MigrateFromLegacy(ctx, cfg.legacyStore)
		cancel()
		if err != nil {
			logger.Warnw("legacy migration failed, continuing with current data", "path", cfg.legacyStore, "error", err)
		} else if migrated {
			logger.Info("legacy store migrated")
		}
	}

	syncWorker := worker.NewAutoSyncWorker(syncService, broker, cfg.syncFile, cfg.syncDebounce, logger)

	app := &application{
		config:      cfg,
		logger:      logger,
		rateLimiter: rateLimiter,
		storage:     storage,
		broker:      broker,
		store:       storeService,
		sync:        syncService,
		syncWorker:  syncWorker,
	}

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
