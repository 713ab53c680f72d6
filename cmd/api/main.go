package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipe-api/backend/config"
	"github.com/pageza/recipe-api/backend/internal/database"
	"github.com/pageza/recipe-api/backend/internal/server"
	"github.com/pageza/recipe-api/backend/internal/storage"
	"github.com/pageza/recipe-api/backend/pkg/logging"
)

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	disk, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			// The API works without redis; only rate limiting is lost.
			slog.Warn("Redis unavailable, rate limiting disabled", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	return server.New(cfg, db, disk, redisClient).Start(ctx)
}
