package app

import (
	"log/slog"
	"os"
	"strings"

	"github.com/lingobeats/lingobeats-backend/internal/config"
)

// NewLogger creates a *slog.Logger from LogConfig and installs it as the
// process default via slog.SetDefault.
//
// Format "json" produces structured JSON output (production); anything else
// produces human-readable text output with source locations (development).
// Level is debug/info/warn/error, case-insensitive, defaulting to info.
// Output goes to os.Stderr.
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
