package handler

import (
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// bind decodes the request into req and runs the struct validator.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request")
	}

	return c.Validate(req)
}

// clientOf returns the client resolved by the client token middleware.
func clientOf(c echo.Context) (entity.ClientID, error) {
	client, ok := deliverycontext.GetClientID(c)
	if !ok {
		return "", domainerrors.ErrInvalidClientToken
	}

	return client, nil
}
