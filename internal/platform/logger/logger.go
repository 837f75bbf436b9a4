// Package logger carries a structured slog logger through a context.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type contextKey struct{}

var loggerKey = contextKey{}

// Options configures a logger built by New.
type Options struct {
	// Level is the minimum level logged. Verbose forces Debug.
	Level slog.Level
	// Verbose enables debug logging.
	Verbose bool
	// JSON selects the JSON handler instead of the text handler.
	JSON bool
}

// New creates a structured logger writing to w.
// Diagnostics go to w so command output on stdout stays clean.
func New(w io.Writer, opts Options) *slog.Logger {
	level := opts.Level
	if opts.Verbose {
		level = slog.LevelDebug
	}

	hopts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, hopts)
	} else {
		handler = slog.NewTextHandler(w, hopts)
	}

	return slog.New(handler)
}

// ParseLevel converts a level name such as "debug" or "warn" to a slog.Level.
// An empty name means Info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", name)
	}
}

// WithContext returns a new context with the given logger attached.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger from the context.
// If no logger is found, it returns the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
