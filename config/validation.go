package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" {
			add("DB_HOST", "is required for postgres")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "is required for postgres")
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for sqlite")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	switch cfg.Storage.Driver {
	case StorageLocal:
		if cfg.Storage.MediaRoot == "" {
			add("MEDIA_ROOT", "is required for local storage")
		}
	case StorageS3:
		if cfg.Storage.S3Bucket == "" {
			add("S3_BUCKET_NAME", "is required for s3 storage")
		}
	default:
		add("STORAGE_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.Storage.Driver))
	}

	if cfg.JWTExpiry <= 0 {
		add("JWT_EXPIRY", "must be positive")
	}
	if cfg.RecipeCreateLimit < 0 {
		add("RECIPE_CREATE_LIMIT", "must not be negative")
	}

	if cfg.Environment.RequiresSecrets() {
		if cfg.JWTSecret == "" || cfg.JWTSecret == DefaultJWTSecret {
			add("JWT_SECRET", fmt.Sprintf("must be set in %s", cfg.Environment))
		}
		if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
			add("DB_PASSWORD", fmt.Sprintf("must be set in %s", cfg.Environment))
		}
	}
	if cfg.Environment == Production && cfg.DBDriver != "postgres" {
		add("DB_DRIVER", "production requires postgres")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
