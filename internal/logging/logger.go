// Package logging is the structured logger used by the portal server. The
// Logger interface keeps call sites independent of log/slog.
package logging

import "context"

// Logger takes a message followed by alternating keys and values:
//
//	l.Info(ctx, "http request", "method", m, "status", code)
//
// The context is passed through to the handler so request-scoped values
// can be attached.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child that adds args to every record.
	With(args ...any) Logger
}
