package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	if l == nil {
		// ALLOW-PANIC: storing a nil logger is a programming error
		panic("logger cannot be nil")
	}
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger stored in ctx, or nil.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	l, _ := ctx.Value(contextKey{}).(*slog.Logger)
	return l
}

// FromContextOrDefault returns the logger stored in ctx, or fallback.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l := FromContext(ctx); l != nil {
		return l
	}
	return fallback
}
