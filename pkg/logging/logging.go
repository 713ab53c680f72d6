// Package logging configures colored structured logging with tint.
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures the default logger at the level given by LOG_LEVEL.
func Setup() {
	SetupWithLevel(LevelFromEnv())
}

// SetupWithLevel configures the default logger at the given level.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(New(os.Stderr, level))
}

// New returns a tint-backed logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		AddSource:  level == slog.LevelDebug,
	}))
}

// LevelFromEnv parses LOG_LEVEL, defaulting to info.
func LevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
