// Package log carries a request-scoped slog.Logger through context. HTTP
// middleware and the refresh job attach fields once with With; everything
// below them logs through Ctx and falls back to a JSON default logger
// outside a request.
package log

import (
	"context"
	"log/slog"
	"os"
)

var (
	defaultLogLevel slog.LevelVar
	defaultLogger   = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     &defaultLogLevel,
	}))
)

func init() {
	defaultLogLevel.Set(slog.LevelInfo)
}

type contextKey struct{}

var loggerKey = contextKey{}

// Ctx returns the logger stored in ctx, or the process-wide default when
// none was attached.
func Ctx(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return defaultLogger
}

// With returns a child context carrying logger; later Ctx calls below it
// pick up the attached fields.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// SetDefaultLogLevel adjusts the level of the fallback logger.
func SetDefaultLogLevel(level slog.Level) {
	defaultLogLevel.Set(level)
}
