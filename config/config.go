package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "dev-insecure-jwt-secret"

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration; rate limiting is disabled when RedisURL and RedisHost are empty
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string
	JWTExpiry time.Duration

	// Recipe creation limit per user per hour
	RecipeCreateLimit int

	Storage StorageConfig
}

// LoadConfig creates a new Config from environment variables, falling back
// to Docker secrets for sensitive values and to development defaults.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{
		Environment: env,
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		ServerHost:  getEnv("SERVER_HOST", "0.0.0.0"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getSecret("DB_USER", "db_user", "postgres"),
		DBPassword: getSecret("DB_PASSWORD", "db_password", ""),
		DBName:     getEnv("DB_NAME", "recipes"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "recipes.db"),

		RedisURL:      getSecret("REDIS_URL", "redis_url", ""),
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getSecret("REDIS_PASSWORD", "redis_password", ""),

		JWTSecret: getSecret("JWT_SECRET", "jwt_secret", DefaultJWTSecret),

		Storage: loadStorageConfig(),
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RecipeCreateLimit, err = getInt("RECIPE_CREATE_LIMIT", 60); err != nil {
		return nil, err
	}
	if cfg.JWTExpiry, err = time.ParseDuration(getEnv("JWT_EXPIRY", "24h")); err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether a redis server is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getSecret prefers the environment variable, then the Docker secret file.
func getSecret(envKey, secretName, fallback string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	if value := readSecret(secretName); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
