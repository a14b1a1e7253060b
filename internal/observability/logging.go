// Package observability constructs the structured logger shared by the
// framework components.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/config"
)

// NewLogger builds a slog.Logger from the logging configuration, writing to w.
// A nil writer defaults to stderr. Unknown levels and formats fall back to
// info/json rather than failing startup.
func NewLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps a config level string to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
