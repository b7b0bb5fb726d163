package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"gymcore/internal/config"
	"gymcore/internal/db"
	"gymcore/internal/logger"
	"gymcore/internal/notify"
	"gymcore/internal/server"
)

// @title gymcore API
// @version 1.0
// @description Gym booking engine: private sessions, classes, trainer availability.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.InitWithLevel(cfg.LogLevel)
	logger.Info("Starting gymcore", "driver", cfg.DatabaseDriver, "timezone", cfg.GymTimezone)

	database, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var notifier notify.Publisher = notify.Discard{}
	if cfg.RedisAddr != "" {
		publisher := notify.NewRedisPublisher(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), cfg.NotifyQueue)
		defer publisher.Close()

		if err := publisher.Ping(ctx); err != nil {
			logger.Warn("Redis unreachable, notifications will be dropped until it recovers", "addr", cfg.RedisAddr, "error", err)
		}
		go reportQueueLength(ctx, publisher)
		notifier = publisher
	}

	srv, err := server.New(database, cfg, notifier)
	if err != nil {
		logger.Fatalf("Failed to build server: %v", err)
	}

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}

// reportQueueLength samples the notification backlog for the queue-length gauge.
func reportQueueLength(ctx context.Context, p *notify.RedisPublisher) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.QueueLength(ctx)
		}
	}
}
