package middleware

import (
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// ClientTokenMiddleware resolves the storefront client from its bearer token.
type ClientTokenMiddleware struct {
	tokenSvc service.TokenService
}

// NewClientTokenMiddleware is the constructor for ClientTokenMiddleware.
func NewClientTokenMiddleware(tokenSvc service.TokenService) *ClientTokenMiddleware {
	return &ClientTokenMiddleware{tokenSvc: tokenSvc}
}

// Authenticate rejects requests without a valid client token.
func (m *ClientTokenMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrInvalidClientToken.WithDetails("authorization header is missing")
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || token == "" {
			return domainerrors.ErrInvalidClientToken.WithDetails("must be a Bearer token")
		}

		client, err := m.tokenSvc.ValidateClientToken(token)
		if err != nil {
			return err
		}

		deliverycontext.SetClientID(c, client)

		return next(c)
	}
}
