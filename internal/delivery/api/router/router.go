// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ClientHandler         *handler.ClientHandler
	CatalogHandler        *handler.CatalogHandler
	CartHandler           *handler.CartHandler
	SessionHandler        *handler.SessionHandler
	CheckoutHandler       *handler.CheckoutHandler
	NotificationHandler   *handler.NotificationHandler
	ClientTokenMiddleware *middleware.ClientTokenMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	clientHandler         *handler.ClientHandler
	catalogHandler        *handler.CatalogHandler
	cartHandler           *handler.CartHandler
	sessionHandler        *handler.SessionHandler
	checkoutHandler       *handler.CheckoutHandler
	notificationHandler   *handler.NotificationHandler
	clientTokenMiddleware *middleware.ClientTokenMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		clientHandler:         params.ClientHandler,
		catalogHandler:        params.CatalogHandler,
		cartHandler:           params.CartHandler,
		sessionHandler:        params.SessionHandler,
		checkoutHandler:       params.CheckoutHandler,
		notificationHandler:   params.NotificationHandler,
		clientTokenMiddleware: params.ClientTokenMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")

	// Public routes
	apiV1.POST("/clients", r.clientHandler.CreateClient)

	catalogGroup := apiV1.Group("/catalog")
	{
		catalogGroup.GET("/products", r.catalogHandler.ListProducts)
		catalogGroup.GET("/products/:id", r.catalogHandler.GetProduct)
		catalogGroup.GET("/categories", r.catalogHandler.ListCategories)
	}

	// Everything below belongs to one client
	clientGroup := apiV1.Group("")
	clientGroup.Use(r.clientTokenMiddleware.Authenticate)

	cartGroup := clientGroup.Group("/cart")
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.DELETE("/items/:productId", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
	}

	sessionGroup := clientGroup.Group("/session")
	{
		sessionGroup.GET("", r.sessionHandler.CurrentUser)
		sessionGroup.POST("/register", r.sessionHandler.Register)
		sessionGroup.POST("/login", r.sessionHandler.Login)
		sessionGroup.POST("/logout", r.sessionHandler.Logout)
	}

	checkoutGroup := clientGroup.Group("/checkout")
	{
		checkoutGroup.GET("", r.checkoutHandler.Status)
		checkoutGroup.POST("", r.checkoutHandler.Checkout)
		checkoutGroup.POST("/begin", r.checkoutHandler.Begin)
		checkoutGroup.POST("/payment", r.checkoutHandler.ProceedToPayment)
		checkoutGroup.POST("/submit", r.checkoutHandler.SubmitPayment)
		checkoutGroup.POST("/cancel", r.checkoutHandler.Cancel)
	}

	clientGroup.GET("/notifications", r.notificationHandler.Drain)
}
