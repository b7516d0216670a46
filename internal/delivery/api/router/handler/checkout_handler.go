package handler

import (
	"context"
	"net/http"

	"storefront/config"
	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CheckoutHandler drives the checkout state machine of the calling client.
type CheckoutHandler struct {
	checkout usecase.CheckoutUsecase
	feed     usecase.NotificationUsecase
	present  presenter
}

// CheckoutHandlerParams holds dependencies for CheckoutHandler, injected by Fx.
type CheckoutHandlerParams struct {
	fx.In

	Checkout      usecase.CheckoutUsecase
	Notifications usecase.NotificationUsecase
	Config        *config.Config
}

// NewCheckoutHandler is the constructor for CheckoutHandler.
func NewCheckoutHandler(params CheckoutHandlerParams) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: params.Checkout,
		feed:     params.Notifications,
		present:  newPresenter(params.Config),
	}
}

type cardRequest struct {
	Number      string `json:"number" validate:"max=32"`
	CVV         string `json:"cvv" validate:"max=8"`
	ExpiryMonth string `json:"expiryMonth" validate:"max=4"`
	ExpiryYear  string `json:"expiryYear" validate:"max=8"`
}

type paymentRequest struct {
	Method string       `json:"method" validate:"max=16"`
	Card   *cardRequest `json:"card"`
}

func (r *paymentRequest) details() *entity.PaymentDetails {
	details := &entity.PaymentDetails{Method: entity.PaymentMethod(r.Method)}
	if r.Card != nil {
		details.Card = &entity.CardDetails{
			Number:      r.Card.Number,
			CVV:         r.Card.CVV,
			ExpiryMonth: r.Card.ExpiryMonth,
			ExpiryYear:  r.Card.ExpiryYear,
		}
	}

	return details
}

type stepFunc func(c echo.Context, client entity.ClientID) (*usecase.CheckoutStatus, error)

func (h *CheckoutHandler) step(c echo.Context, run stepFunc) error {
	client, err := clientOf(c)
	if err != nil {
		return err
	}

	status, err := run(c, client)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, h.present.checkout(status), h.feed.Drain(client))
}

// Status returns the current checkout state and cart.
func (h *CheckoutHandler) Status(c echo.Context) error {
	return h.step(c, func(c echo.Context, client entity.ClientID) (*usecase.CheckoutStatus, error) {
		return h.checkout.Status(c.Request().Context(), client)
	})
}

// Begin enters cart review.
func (h *CheckoutHandler) Begin(c echo.Context) error {
	return h.step(c, func(c echo.Context, client entity.ClientID) (*usecase.CheckoutStatus, error) {
		return h.checkout.Begin(c.Request().Context(), client)
	})
}

// ProceedToPayment moves from cart review to payment selection.
func (h *CheckoutHandler) ProceedToPayment(c echo.Context) error {
	return h.step(c, func(c echo.Context, client entity.ClientID) (*usecase.CheckoutStatus, error) {
		return h.checkout.ProceedToPayment(c.Request().Context(), client)
	})
}

// Cancel abandons the checkout.
func (h *CheckoutHandler) Cancel(c echo.Context) error {
	return h.step(c, func(c echo.Context, client entity.ClientID) (*usecase.CheckoutStatus, error) {
		return h.checkout.Cancel(c.Request().Context(), client)
	})
}

// SubmitPayment validates the payment and places the order.
func (h *CheckoutHandler) SubmitPayment(c echo.Context) error {
	return h.pay(c, h.checkout.SubmitPayment)
}

// Checkout runs the whole flow in one request.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	return h.pay(c, h.checkout.Checkout)
}

type payFunc func(ctx context.Context, client entity.ClientID, details *entity.PaymentDetails) (*usecase.CheckoutOutput, error)

func (h *CheckoutHandler) pay(c echo.Context, run payFunc) error {
	client, err := clientOf(c)
	if err != nil {
		return err
	}

	var req paymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	output, err := run(c.Request().Context(), client, req.details())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, h.present.checkoutResult(output), h.feed.Drain(client))
}
