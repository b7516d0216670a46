package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"storefront/config"
	apimiddleware "storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/catalog"
	"storefront/internal/infra/kvstore"
	"storefront/internal/infra/qrcode"
	"storefront/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.InvoiceEvent
}

func (p *recordingPublisher) PublishInvoiceEvent(_ context.Context, event *service.InvoiceEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta struct {
		RequestID     string `json:"request_id"`
		Notifications []struct {
			Level string `json:"level"`
			Code  string `json:"code"`
		} `json:"notifications"`
	} `json:"meta"`
}

type apiHarness struct {
	t         *testing.T
	e         *echo.Echo
	publisher *recordingPublisher
	token     string
}

func newHarness(t *testing.T) *apiHarness {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Client = "test-client-secret"
	cfg.Auth = &config.AuthConfig{BcryptCost: 4}
	cfg.Storefront = &config.StorefrontConfig{
		Name:           "Test Store",
		OperatorEmail:  "operator@example.com",
		InvoiceSubject: "Your invoice",
		Currency:       config.CurrencyConfig{Code: "USD", Symbol: "$", Rate: 1},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := kvstore.NewMemoryStore()
	feed := impl.NewNotificationService()
	publisher := &recordingPublisher{}

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	catalogUC := impl.NewCatalogService(catalog.NewStaticCatalog())
	locks := impl.NewClientLocks()
	cartUC := impl.NewCartService(impl.CartServiceParams{
		CartRepo:      kvstore.NewCartRepository(store),
		Catalog:       catalogUC,
		Notifications: feed,
		Logger:        logger,
		Locks:         locks,
	})
	sessionUC := impl.NewSessionService(impl.SessionServiceParams{
		AccountRepo:   kvstore.NewAccountRepository(store),
		SessionRepo:   kvstore.NewSessionRepository(store),
		Hasher:        auth.NewBcryptHasher(cfg),
		Notifications: feed,
		Logger:        logger,
		Locks:         locks,
	})
	checkoutUC := impl.NewCheckoutService(impl.CheckoutServiceParams{
		Cart:          cartUC,
		Session:       sessionUC,
		Publisher:     publisher,
		QRCode:        qrcode.New(cfg),
		Notifications: feed,
		Config:        cfg,
		Logger:        logger,
		Locks:         locks,
	})

	e := NewEcho(ServerParams{
		Cfg:             cfg,
		Logger:          logger,
		ErrorMiddleware: apimiddleware.NewErrorMiddleware(apimiddleware.ErrorMiddlewareParams{Logger: logger, Notifications: feed}),
		RouterParams: router.RouterParams{
			ClientHandler:  handler.NewClientHandler(tokens, logger),
			CatalogHandler: handler.NewCatalogHandler(catalogUC, cfg),
			CartHandler: handler.NewCartHandler(handler.CartHandlerParams{
				Cart: cartUC, Notifications: feed, Config: cfg,
			}),
			SessionHandler: handler.NewSessionHandler(handler.SessionHandlerParams{
				Session: sessionUC, Notifications: feed, Config: cfg,
			}),
			CheckoutHandler: handler.NewCheckoutHandler(handler.CheckoutHandlerParams{
				Checkout: checkoutUC, Notifications: feed, Config: cfg,
			}),
			NotificationHandler:   handler.NewNotificationHandler(feed),
			ClientTokenMiddleware: apimiddleware.NewClientTokenMiddleware(tokens),
		},
	})

	h := &apiHarness{t: t, e: e, publisher: publisher}

	rec, env := h.do(http.MethodPost, "/api/v1/clients", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var client struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &client))
	h.token = client.Token

	return h
}

func (h *apiHarness) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	h.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if h.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+h.token)
	}

	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get(echo.HeaderContentType) != "" && rec.Body.Len() > 0 {
		require.NoError(h.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, env
}

func errorCode(env envelope) string {
	if env.Error == nil {
		return ""
	}

	return env.Error.Code
}

func noticeCodes(env envelope) []string {
	codes := make([]string, 0, len(env.Meta.Notifications))
	for _, n := range env.Meta.Notifications {
		codes = append(codes, n.Code)
	}

	return codes
}

func TestAPI_Health(t *testing.T) {
	h := newHarness(t)

	rec, _ := h.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_ClientTokenRequired(t *testing.T) {
	h := newHarness(t)
	h.token = ""

	rec, env := h.do(http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CLIENT_TOKEN", errorCode(env))

	h.token = "not-a-token"
	rec, _ = h.do(http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_CatalogFilters(t *testing.T) {
	h := newHarness(t)

	rec, env := h.do(http.MethodGet, "/api/v1/catalog/products?category=motors", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []struct {
		ID       int64  `json:"id"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, "motors", p.Category)
	}

	rec, env = h.do(http.MethodGet, "/api/v1/catalog/products?category=toys", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(env))

	rec, env = h.do(http.MethodGet, "/api/v1/catalog/products/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errorCode(env))
}

func TestAPI_CartMutationsCarryNotices(t *testing.T) {
	h := newHarness(t)

	rec, env := h.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"productId": 1, "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"CART_ITEM_ADDED"}, noticeCodes(env))

	var cart struct {
		ItemCount int    `json:"itemCount"`
		Total     string `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, "25.00", cart.Total)

	rec, env = h.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"productId": 1, "quantity": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_QUANTITY", errorCode(env))
	assert.Equal(t, []string{"INVALID_QUANTITY"}, noticeCodes(env))

	rec, env = h.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"productId": 1, "quantity": 5000})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(env))

	rec, _ = h.do(http.MethodDelete, "/api/v1/cart/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Removing again is a no-op
	rec, env = h.do(http.MethodDelete, "/api/v1/cart/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 0, cart.ItemCount)
}

func TestAPI_EmptyCartCheckout(t *testing.T) {
	h := newHarness(t)

	rec, env := h.do(http.MethodPost, "/api/v1/checkout/begin", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "EMPTY_CART", errorCode(env))
}

func TestAPI_CardCheckoutFlow(t *testing.T) {
	h := newHarness(t)

	h.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"productId": 2})

	rec, _ := h.do(http.MethodPost, "/api/v1/checkout/begin", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = h.do(http.MethodPost, "/api/v1/checkout/payment", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	badCard := map[string]any{
		"method": "card",
		"card":   map[string]string{"number": "123", "cvv": "123", "expiryMonth": "12", "expiryYear": "2030"},
	}
	rec, env := h.do(http.MethodPost, "/api/v1/checkout/submit", badCard)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_CARD_NUMBER", errorCode(env))

	goodCard := map[string]any{
		"method": "card",
		"card":   map[string]string{"number": "4242424242424242", "cvv": "123", "expiryMonth": "12", "expiryYear": "2030"},
	}
	rec, env = h.do(http.MethodPost, "/api/v1/checkout/submit", goodCard)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		State            string `json:"state"`
		Confirmation     string `json:"confirmation"`
		InvoiceRequested bool   `json:"invoiceRequested"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "completed", result.State)
	assert.Contains(t, result.Confirmation, "7.99 $")
	assert.False(t, result.InvoiceRequested)
	assert.Empty(t, h.publisher.events)

	_, env = h.do(http.MethodGet, "/api/v1/cart", nil)
	var cart struct {
		ItemCount int `json:"itemCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 0, cart.ItemCount)
}

func TestAPI_CashOnDeliveryRequiresLogin(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"productId": 3, "quantity": 2})

	rec, env := h.do(http.MethodPost, "/api/v1/checkout", map[string]any{"method": "cod"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "LOGIN_REQUIRED", errorCode(env))

	rec, env = h.do(http.MethodPost, "/api/v1/session/register", map[string]any{
		"firstName":       "Layla",
		"lastName":        "Hassan",
		"email":           "layla@example.com",
		"password":        "s3cret",
		"confirmPassword": "s3cret",
		"phone":           "0123456789",
		"city":            "Cairo",
		"address":         "12 Tahrir St",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, noticeCodes(env), "REGISTERED")
	assert.NotContains(t, rec.Body.String(), "s3cret")

	rec, env = h.do(http.MethodPost, "/api/v1/checkout", map[string]any{"method": "cod"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, noticeCodes(env), "ORDER_CONFIRMED")

	require.Len(t, h.publisher.events, 1)
	event := h.publisher.events[0]
	assert.Equal(t, "layla@example.com", event.CustomerEmail)
	assert.Equal(t, "operator@example.com", event.OperatorEmail)
	assert.NotEmpty(t, event.OrderQRCode)
}

func TestAPI_DuplicateEmailAndBadLogin(t *testing.T) {
	h := newHarness(t)

	registration := map[string]any{
		"firstName": "Layla", "lastName": "Hassan", "email": "layla@example.com",
		"password": "s3cret", "confirmPassword": "s3cret", "phone": "0123456789",
		"city": "Cairo", "address": "12 Tahrir St",
	}
	rec, _ := h.do(http.MethodPost, "/api/v1/session/register", registration)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := h.do(http.MethodPost, "/api/v1/session/register", registration)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE_EMAIL", errorCode(env))

	rec, env = h.do(http.MethodPost, "/api/v1/session/login", map[string]any{"email": "layla@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(env))

	rec, _ = h.do(http.MethodPost, "/api/v1/session/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = h.do(http.MethodGet, "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"loggedIn":false,"user":null}`, string(env.Data))
}

func TestAPI_NotificationsDrain(t *testing.T) {
	h := newHarness(t)

	// Notices not returned inline stay queued until drained
	rec, _ := h.do(http.MethodGet, "/api/v1/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := h.do(http.MethodGet, "/api/v1/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}
