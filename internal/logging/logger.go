// Package logging is the structured logger handed to every itemkeeper
// component. The server runs it over slog's JSON handler; tests use Nop.
package logging

import "context"

// Logger writes leveled records with alternating key/value attributes:
//
//	logger.Info(ctx, "http request", "method", r.Method, "status", rw.statusCode)
type Logger interface {
	// Debug is for per-call detail such as gRPC health checks.
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn marks degraded but recoverable states, e.g. a failed database ping.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With scopes a logger to a component, as in With("module", "http_server").
	With(args ...any) Logger
}
