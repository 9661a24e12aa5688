// Package server boots the application and runs the HTTP listener with
// graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aymanhs/souq/app/jobs"
	"github.com/aymanhs/souq/app/routes"
	"github.com/aymanhs/souq/config"
	"github.com/aymanhs/souq/pkg/cache"
	"github.com/aymanhs/souq/pkg/database"
	"github.com/aymanhs/souq/pkg/logger"
	"github.com/aymanhs/souq/pkg/metrics"
	"github.com/aymanhs/souq/pkg/middleware"
	"github.com/aymanhs/souq/pkg/queue"
	"github.com/aymanhs/souq/pkg/reqid"
	"github.com/aymanhs/souq/pkg/router"
	"github.com/aymanhs/souq/pkg/storage"
)

const (
	queueWorkers    = 4
	shutdownTimeout = 15 * time.Second
)

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("server: cache unavailable, running without it", "error", err)
	}

	storage.Connect()
	bootQueue()

	r := router.New()
	r.Use(
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		metrics.Middleware(),
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(200, time.Minute),
	)
	routes.RegisterAPI(r, database.DB)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	logger.Info("server: stopped")
	return nil
}

// bootQueue wires the queue driver, registers jobs and starts workers.
func bootQueue() {
	jobs.RegisterAll()

	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		logger.Info("queue: using redis driver")
	}
	queue.UseDB(database.DB)
	queue.StartWorkers(context.Background(), queueWorkers)
}
