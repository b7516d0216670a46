package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ClientHandler issues client tokens. A client owns its own cart, accounts and session.
type ClientHandler struct {
	tokens service.TokenService
	logger *slog.Logger
}

// NewClientHandler is the constructor for ClientHandler, injected by Fx.
func NewClientHandler(tokens service.TokenService, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{tokens: tokens, logger: logger}
}

type clientView struct {
	ClientID entity.ClientID `json:"clientId"`
	Token    string          `json:"token"`
}

// CreateClient starts a new client namespace and returns its bearer token.
func (h *ClientHandler) CreateClient(c echo.Context) error {
	client := entity.NewClientID()

	token, err := h.tokens.IssueClientToken(client)
	if err != nil {
		return errors.WithStack(err)
	}

	deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Info("Client created",
		slog.String("client_id", client.String()),
	)

	return response.Success(c, http.StatusCreated, clientView{ClientID: client, Token: token}, nil)
}
