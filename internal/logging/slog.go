package logging

import (
	"context"
	"log/slog"
)

// SlogLogger adapts a *slog.Logger to the Logger interface. The zero
// value is not usable; construct it with NewSlogLogger.
type SlogLogger struct {
	sl *slog.Logger
}

// NewSlogLogger wraps l. A nil l falls back to slog.Default().
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{sl: l}
}

func (g *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	g.sl.DebugContext(ctx, msg, args...)
}

func (g *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	g.sl.InfoContext(ctx, msg, args...)
}

func (g *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	g.sl.WarnContext(ctx, msg, args...)
}

func (g *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	g.sl.ErrorContext(ctx, msg, args...)
}

// With returns a child logger carrying the given key-value pairs on
// every record.
func (g *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{sl: g.sl.With(args...)}
}
