package middleware

import (
	"log/slog"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
	feed   usecase.NotificationUsecase
}

// ErrorMiddlewareParams holds dependencies for ErrorMiddleware, injected by Fx
type ErrorMiddlewareParams struct {
	fx.In

	Logger        *slog.Logger
	Notifications usecase.NotificationUsecase `optional:"true"`
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(params ErrorMiddlewareParams) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: params.Logger,
		feed:   params.Notifications,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
	notices := m.drain(c)

	if appErr, ok := domainerrors.AsAppError(err); ok {
		switch appErr.Kind() {
		case domainerrors.KindInternal, domainerrors.KindCollaborator:
			logger.Error("Request failed",
				slog.String("code", appErr.ErrorCode()),
				slog.Any("error", err),
				slog.String("path", c.Request().URL.Path),
			)
		default:
			logger.Debug("Request rejected",
				slog.String("code", appErr.ErrorCode()),
				slog.String("details", appErr.Details()),
			)
		}

		_ = response.AppError(c, appErr, notices)

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := "An error occurred"
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		_ = response.Error(c, httpErr.Code, &domainerrors.ErrorInfo{Code: "HTTP_ERROR", Message: message}, notices)

		return
	}

	// Unknown errors are logged but never exposed to the client
	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.InternalServerError(c, notices)
}

func (m *ErrorMiddleware) drain(c echo.Context) []entity.Notification {
	if m.feed == nil {
		return nil
	}

	client, ok := deliverycontext.GetClientID(c)
	if !ok {
		return nil
	}

	return m.feed.Drain(client)
}
