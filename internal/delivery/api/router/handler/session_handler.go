package handler

import (
	"net/http"

	"storefront/config"
	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SessionHandler exposes registration, login and logout for the calling client.
type SessionHandler struct {
	session usecase.SessionUsecase
	feed    usecase.NotificationUsecase
	present presenter
}

// SessionHandlerParams holds dependencies for SessionHandler, injected by Fx.
type SessionHandlerParams struct {
	fx.In

	Session       usecase.SessionUsecase
	Notifications usecase.NotificationUsecase
	Config        *config.Config
}

// NewSessionHandler is the constructor for SessionHandler.
func NewSessionHandler(params SessionHandlerParams) *SessionHandler {
	return &SessionHandler{
		session: params.Session,
		feed:    params.Notifications,
		present: newPresenter(params.Config),
	}
}

type registerRequest struct {
	FirstName       string `json:"firstName" validate:"max=100"`
	LastName        string `json:"lastName" validate:"max=100"`
	Email           string `json:"email" validate:"max=254"`
	Password        string `json:"password" validate:"max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"max=72"`
	Phone           string `json:"phone" validate:"max=32"`
	City            string `json:"city" validate:"max=100"`
	Address         string `json:"address" validate:"max=255"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=72"`
}

type sessionView struct {
	LoggedIn bool      `json:"loggedIn"`
	User     *userView `json:"user"`
}

// Register creates an account and logs it in.
func (h *SessionHandler) Register(c echo.Context) error {
	client, err := clientOf(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.session.Register(c.Request().Context(), client, &usecase.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
		City:            req.City,
		Address:         req.Address,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, sessionView{LoggedIn: true, User: h.present.user(user)}, h.feed.Drain(client))
}

// Login switches the current user.
func (h *SessionHandler) Login(c echo.Context) error {
	client, err := clientOf(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.session.Login(c.Request().Context(), client, &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, sessionView{LoggedIn: true, User: h.present.user(user)}, h.feed.Drain(client))
}

// Logout clears the current user.
func (h *SessionHandler) Logout(c echo.Context) error {
	client, err := clientOf(c)
	if err != nil {
		return err
	}

	if err := h.session.Logout(c.Request().Context(), client); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, sessionView{}, h.feed.Drain(client))
}

// CurrentUser returns the logged in user, if any.
func (h *SessionHandler) CurrentUser(c echo.Context) error {
	client, err := clientOf(c)
	if err != nil {
		return err
	}

	user, err := h.session.CurrentUser(c.Request().Context(), client)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, sessionView{LoggedIn: user != nil, User: h.present.user(user)}, h.feed.Drain(client))
}
