package app

import (
	"log/slog"
	"os"
	"strings"

	"github.com/autoposts/titlegen-backend/internal/config"
)

// NewLogger builds the application *slog.Logger from LogConfig and installs
// it as the process default.
//
// Format "json" is the production output; anything else falls back to the
// text handler with source locations for development. Level accepts debug,
// info, warn, error (case-insensitive) and defaults to info. Both handlers
// write to os.Stderr.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: !strings.EqualFold(cfg.Format, "json"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
