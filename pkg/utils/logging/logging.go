package logging

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

var (
	mu            sync.RWMutex
	defaultLogger = slog.Default()
)

// Default returns the process-wide logger
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger
func SetDefault(logger *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

type ctxLoggerKey struct{}

// With embeds a logger into the context
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From extracts the logger from the context, falling back to Default
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}

// Quiet replaces the default logger with one that discards everything.
// Intended for tests.
func Quiet() {
	SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
