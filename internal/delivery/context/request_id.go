// Package context carries request-scoped values (request id, logger, client) between
// echo handlers, use cases and background invoice delivery.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyLogger    ContextKey = "logger"

	// HeaderXRequestID is echoed back on every response and forwarded on invoice pushes.
	HeaderXRequestID = "X-Request-Id"
)

func valueOf[T any](ctx context.Context, key ContextKey) (T, bool) {
	v, ok := ctx.Value(key).(T)

	return v, ok
}

// GetRequestID returns the id set by the request id middleware, or a fresh one
// when the handler runs outside it.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns "" when no request id was attached.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := valueOf[string](ctx, KeyRequestID)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger returns nil when no request-scoped logger was attached.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := valueOf[*slog.Logger](ctx, KeyLogger)

	return logger
}

func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// Detach copies the request id, logger and client of ctx onto a fresh background
// context. Work that outlives the HTTP request (inline invoice delivery) uses it so
// a finished request does not cancel the delivery.
func Detach(ctx context.Context, fallback *slog.Logger) context.Context {
	detached := WithLogger(context.Background(), GetLoggerOrDefault(ctx, fallback))
	if requestID := GetRequestIDFromContext(ctx); requestID != "" {
		detached = WithRequestID(detached, requestID)
	}
	if client := GetClientIDFromContext(ctx); !client.IsZero() {
		detached = WithClientID(detached, client)
	}

	return detached
}
