// Package ctxlog passes a *slog.Logger through context.Context so every
// layer logs with the attributes the caller configured.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is unexported to keep this context key from colliding with keys of
// other packages.
type key struct{}

var loggerKey = key{}

// WithLogger returns a child context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from ctx, falling back to the process-wide
// default so library code and tests never need a prepared context.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
