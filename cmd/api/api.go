package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/thankimquy/FOODORDER/internal/queue"
	"github.com/thankimquy/FOODORDER/internal/ratelimiter"
	"github.com/thankimquy/FOODORDER/internal/service"
	"github.com/thankimquy/FOODORDER/internal/store/mongo"
	"github.com/thankimquy/FOODORDER/internal/worker"
	"go.uber.org/zap"
)

type application struct {
	config      config
	logger      *zap.SugaredLogger
	rateLimiter ratelimiter.Limiter
	storage     *mongo.Storage
	broker      queue.Broker
	store       *service.StoreService
	sync        *service.SyncService
	syncWorker  *worker.AutoSyncWorker
}

type config struct {
	addr         string
	env          string
	storeBackend string
	rateLimiter  ratelimiter.Config
	mongo        mongoConfig
	rabbitMQ     rabbitMQConfig
	legacyStore  string
	syncFile     string
	syncDebounce time.Duration
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Get("/foods", app.listFoodsHandler)
		r.Post("/foods", app.createFoodHandler)
		r.Delete("/foods/{food_id}", app.deleteFoodHandler)

		r.Get("/orders", app.listOrdersHandler)
		r.Post("/orders", app.createOrderHandler)
		r.Put("/orders/{order_id}", app.updateOrderHandler)
		r.Delete("/orders/{order_id}", app.deleteOrderHandler)

		r.Get("/stats", app.statsHandler)

		r.Get("/export/excel", app.exportExcelHandler)
		r.Post("/import/excel", app.importExcelHandler)
		r.Get("/export/snapshot", app.exportSnapshotHandler)
		r.Post("/import/snapshot", app.importSnapshotHandler)
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	if app.syncWorker != nil {
		if err := app.syncWorker.Start(); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.syncWorker != nil {
			app.syncWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing broker", "error", err)
			} else {
				app.logger.Info("broker closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
