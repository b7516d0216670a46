// Package response renders the JSON envelope shared by every API endpoint.
package response

import (
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Error *domainerrors.ErrorInfo `json:"error"`
	Meta  *MetaInfo               `json:"meta"`
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID     string                `json:"request_id"`
	Notifications []entity.Notification `json:"notifications,omitempty"`
}

func meta(c echo.Context, notices []entity.Notification) *MetaInfo {
	return &MetaInfo{
		RequestID:     deliverycontext.GetRequestID(c),
		Notifications: notices,
	}
}

// Success returns a successful response along with the client's pending notices
func Success(c echo.Context, statusCode int, data any, notices []entity.Notification) error {
	return c.JSON(statusCode, SuccessResponse{
		Data: data,
		Meta: meta(c, notices),
	})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, info *domainerrors.ErrorInfo, notices []entity.Notification) error {
	// Details never leave the process for server errors or authentication failures
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		info = &domainerrors.ErrorInfo{Code: info.Code, Message: info.Message}
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: info,
		Meta:  meta(c, notices),
	})
}

// AppError renders an AppError from the catalog
func AppError(c echo.Context, err domainerrors.AppError, notices []entity.Notification) error {
	return Error(c, err.HTTPCode(), domainerrors.Notice(err), notices)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, notices []entity.Notification) error {
	return AppError(c, domainerrors.ErrInternalError, notices)
}
