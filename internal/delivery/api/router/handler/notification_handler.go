package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// NotificationHandler drains the per-client notice feed.
type NotificationHandler struct {
	feed usecase.NotificationUsecase
}

// NewNotificationHandler is the constructor for NotificationHandler, injected by Fx.
func NewNotificationHandler(feed usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// Drain returns every pending notice, oldest first, and forgets them.
func (h *NotificationHandler) Drain(c echo.Context) error {
	client, err := clientOf(c)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, h.feed.Drain(client), nil)
}
