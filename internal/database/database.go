package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/recipe-api/backend/config"
)

// New opens the database selected by cfg.DBDriver and applies pool settings.
func New(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		slog.Info("Connecting to database", "driver", cfg.DBDriver, "host", cfg.DBHost, "port", cfg.DBPort, "user", cfg.DBUser)
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		slog.Info("Connecting to database", "driver", cfg.DBDriver, "path", cfg.SQLitePath)
		dialector = sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on")
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	logLevel := logger.Silent
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting database handle: %w", err)
	}
	if cfg.DBDriver == "sqlite" {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := HealthCheck(context.Background(), db); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	slog.Info("Successfully connected to database")
	return db, nil
}

// HealthCheck checks if the database is accessible
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
