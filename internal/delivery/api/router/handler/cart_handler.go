package handler

import (
	"net/http"

	"storefront/config"
	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandler exposes the cart ledger of the calling client.
type CartHandler struct {
	cart    usecase.CartUsecase
	feed    usecase.NotificationUsecase
	present presenter
}

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	Cart          usecase.CartUsecase
	Notifications usecase.NotificationUsecase
	Config        *config.Config
}

// NewCartHandler is the constructor for CartHandler.
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cart:    params.Cart,
		feed:    params.Notifications,
		present: newPresenter(params.Config),
	}
}

type addItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"max=999"`
}

type removeItemRequest struct {
	ProductID int64 `param:"productId" validate:"gt=0"`
}

func (h *CartHandler) respond(c echo.Context, client entity.ClientID, cart *entity.Cart) error {
	return response.Success(c, http.StatusOK, h.present.cart(cart), h.feed.Drain(client))
}

// GetCart returns the cart with its total.
func (h *CartHandler) GetCart(c echo.Context) error {
	client, err := clientOf(c)
	if err != nil {
		return err
	}

	cart, err := h.cart.GetCart(c.Request().Context(), client)
	if err != nil {
		return err
	}

	return h.respond(c, client, cart)
}

// AddItem adds a product, merging into an existing line. A missing quantity means one.
func (h *CartHandler) AddItem(c echo.Context) error {
	client, err := clientOf(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cart, err := h.cart.AddItem(c.Request().Context(), client, usecase.AddToCartInput{
		ProductID: entity.ProductID(req.ProductID),
		Quantity:  req.Quantity,
	})
	if err != nil {
		return err
	}

	return h.respond(c, client, cart)
}

// RemoveItem deletes a product's line. Removing an absent product is a no-op.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	client, err := clientOf(c)
	if err != nil {
		return err
	}

	var req removeItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cart, err := h.cart.RemoveItem(c.Request().Context(), client, entity.ProductID(req.ProductID))
	if err != nil {
		return err
	}

	return h.respond(c, client, cart)
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	client, err := clientOf(c)
	if err != nil {
		return err
	}

	if err := h.cart.ClearCart(c.Request().Context(), client); err != nil {
		return err
	}

	return h.respond(c, client, entity.NewCart())
}
