package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/mohamedammar2729/Parking-System/docs"
	"github.com/mohamedammar2729/Parking-System/internal/config"
	"github.com/mohamedammar2729/Parking-System/internal/db"
	"github.com/mohamedammar2729/Parking-System/internal/logger"
	"github.com/mohamedammar2729/Parking-System/internal/realtime"
	"github.com/mohamedammar2729/Parking-System/internal/server"
)

// @title Parking System API
// @version 1.0
// @description Parking zone occupancy, ticketing and billing API.
// @host localhost:4000
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	logger.Init()
	logger.Info("Starting parking system")
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := realtime.NewHub()
	var publisher realtime.Publisher = hub
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		bridge := realtime.NewBridge(hub, rdb)
		go bridge.Run(ctx)
		publisher = bridge
		logger.Info("Realtime redis bridge enabled", "addr", cfg.RedisAddr)
	}

	srv := server.New(database, cfg, hub, publisher)

	if err := srv.Bootstrap(ctx); err != nil {
		logger.Fatalf("Failed to bootstrap: %v", err)
	}
	logger.Info("Tariff snapshot loaded and zone ledger seeded")

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
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
