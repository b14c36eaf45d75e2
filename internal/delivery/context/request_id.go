// Package context carries per-trigger values, the request ID and a logger
// bound to it, from HTTP handlers, Pub/Sub pushes and cron ticks down into
// the use cases.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type key int

const (
	requestIDKey key = iota
	loggerKey
)

// HeaderXRequestID is read from and echoed back on every HTTP response.
const HeaderXRequestID = "X-Request-Id"

// echoRequestIDKey is the echo.Context slot used by response metadata
const echoRequestIDKey = "request_id"

// Scope binds requestID to ctx together with a child of base tagged with it.
// An empty requestID gets a fresh UUID.
func Scope(ctx context.Context, base *slog.Logger, requestID string) (context.Context, *slog.Logger) {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := base.With(slog.String("request_id", requestID))

	ctx = context.WithValue(ctx, requestIDKey, requestID)
	ctx = context.WithValue(ctx, loggerKey, logger)

	return ctx, logger
}

// RequestID returns the request ID stored on c, or a fresh one when the
// request never passed the request ID middleware.
func RequestID(c echo.Context) string {
	if id, ok := c.Get(echoRequestIDKey).(string); ok && id != "" {
		return id
	}

	return uuid.NewString()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoRequestIDKey, requestID)
}

// RequestIDFrom returns "" when ctx has no request ID.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

// WithLogger replaces the scoped logger, e.g. to add run-level fields.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Logger returns the scoped logger, falling back to fallback.
func Logger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}
