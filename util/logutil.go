package util

import (
	"log/slog"
	"os"
	"strings"
)

// InitSlog configures slog based on LOG_LEVEL environment variable.
// Supported levels: debug, info, warn, error. debug forces the debug level.
func InitSlog(debug bool) {
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok && !debug {
		return
	}

	level := parseLevel(logLevel)
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level: level,
	}
	handler := slog.NewTextHandler(os.Stderr, opts)
	slog.SetDefault(slog.New(handler))
}

func parseLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
