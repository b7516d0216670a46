package context

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyClientID is the key for storing the authenticated storefront client.
const KeyClientID ContextKey = "client_id"

// SetClientID stores the client in echo.Context and in the request context.
func SetClientID(c echo.Context, client entity.ClientID) {
	c.Set(string(KeyClientID), client)
	c.SetRequest(c.Request().WithContext(WithClientID(c.Request().Context(), client)))
}

// GetClientID extracts the client set by the client token middleware.
func GetClientID(c echo.Context) (entity.ClientID, bool) {
	client, ok := c.Get(string(KeyClientID)).(entity.ClientID)

	return client, ok && !client.IsZero()
}

// WithClientID returns a new context carrying the client.
func WithClientID(ctx context.Context, client entity.ClientID) context.Context {
	return context.WithValue(ctx, KeyClientID, client)
}

// GetClientIDFromContext extracts the client from standard context.Context.
func GetClientIDFromContext(ctx context.Context) entity.ClientID {
	if client, ok := ctx.Value(KeyClientID).(entity.ClientID); ok {
		return client
	}

	return ""
}
