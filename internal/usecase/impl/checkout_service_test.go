package impl

import (
	"context"
	"strings"
	"sync"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckoutService_CardCheckout_EmptiesCart(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.cart.AddProduct(ctx, client, testSensor, 2)
	require.NoError(t, err)

	out, err := f.checkout.Checkout(ctx, client, validCard())

	require.NoError(t, err)
	assert.Equal(t, entity.CheckoutCompleted, out.State)
	assert.False(t, out.InvoiceRequested)
	assert.Contains(t, out.Confirmation, "Payment completed successfully")
	assert.Equal(t, 2, out.Order.ItemCount)
	assert.Equal(t, "25.00", out.Order.Total.StringFixed(2))

	cart, err := f.cart.GetCart(ctx, client)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.True(t, f.state.carts[client].IsEmpty())
	f.publisher.AssertNotCalled(t, "PublishInvoiceEvent", mock.Anything, mock.Anything)
}

// addingSession adds a product to the cart while checkout is looking up the customer.
type addingSession struct {
	usecase.SessionUsecase
	cart    usecase.CartUsecase
	product entity.Product
}

func (s addingSession) CurrentUser(ctx context.Context, client entity.ClientID) (*entity.UserAccount, error) {
	if _, err := s.cart.AddProduct(ctx, client, s.product, 1); err != nil {
		return nil, err
	}

	return nil, nil
}

func TestCheckoutService_CommitKeepsItemsAddedAfterPricing(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.cart.AddProduct(ctx, client, testSensor, 1)
	require.NoError(t, err)

	checkout := NewCheckoutService(CheckoutServiceParams{
		Cart:          f.cart,
		Session:       addingSession{SessionUsecase: f.session, cart: f.cart, product: testServo},
		Publisher:     f.publisher,
		Notifications: f.notifications,
		Config:        newTestConfig(),
		Logger:        newDiscardLogger(),
		Locks:         f.locks,
	})

	out, err := checkout.Checkout(ctx, client, validCard())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Order.ItemCount)

	cart, err := f.cart.GetCart(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Quantity(testServo.ID))
	assert.Equal(t, 0, cart.Quantity(testSensor.ID))
}

func TestCheckoutService_ConcurrentAddsAreNeverLost(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.cart.AddProduct(ctx, client, testSensor, 1)
	require.NoError(t, err)

	const adds = 50
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range adds {
			_, addErr := f.cart.AddProduct(ctx, client, testServo, 1)
			assert.NoError(t, addErr)
		}
	}()

	ordered := 0
	for range 20 {
		out, checkoutErr := f.checkout.Checkout(ctx, client, validCard())
		if checkoutErr == nil {
			ordered += out.Order.ItemCount
		}
	}
	wg.Wait()

	cart, err := f.cart.GetCart(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, adds+1, ordered+cart.ItemCount())
}

func TestCheckoutService_CardValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(card *entity.CardDetails)
		want   error
	}{
		{"short number", func(c *entity.CardDetails) { c.Number = "123" }, domainerrors.ErrInvalidCardNumber},
		{"number with spaces", func(c *entity.CardDetails) { c.Number = "4111 1111 1111 1111" }, domainerrors.ErrInvalidCardNumber},
		{"short cvv", func(c *entity.CardDetails) { c.CVV = "12" }, domainerrors.ErrInvalidCVV},
		{"long cvv", func(c *entity.CardDetails) { c.CVV = "12345" }, domainerrors.ErrInvalidCVV},
		{"missing month", func(c *entity.CardDetails) { c.ExpiryMonth = "" }, domainerrors.ErrMissingExpiry},
		{"missing year", func(c *entity.CardDetails) { c.ExpiryYear = " " }, domainerrors.ErrMissingExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(newMemoryState())
			ctx := context.Background()
			client := entity.NewClientID()

			_, err := f.cart.AddProduct(ctx, client, testDisplay, 1)
			require.NoError(t, err)

			details := validCard()
			tt.mutate(details.Card)

			out, err := f.checkout.Checkout(ctx, client, details)

			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			status, err := f.checkout.Status(ctx, client)
			require.NoError(t, err)
			assert.Equal(t, entity.CheckoutSelectingPayment, status.State)
			assert.Equal(t, 1, status.Cart.Quantity(testDisplay.ID))
		})
	}
}

func TestCheckoutService_RetryAfterValidationFailure(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.cart.AddProduct(ctx, client, testServo, 1)
	require.NoError(t, err)
	_, err = f.checkout.Begin(ctx, client)
	require.NoError(t, err)
	_, err = f.checkout.ProceedToPayment(ctx, client)
	require.NoError(t, err)

	bad := validCard()
	bad.Card.Number = "123"
	_, err = f.checkout.SubmitPayment(ctx, client, bad)
	require.Error(t, err)

	out, err := f.checkout.SubmitPayment(ctx, client, validCard())
	require.NoError(t, err)
	assert.Equal(t, entity.CheckoutCompleted, out.State)
}

func TestCheckoutService_EmptyCartAlwaysFails(t *testing.T) {
	methods := []*entity.PaymentDetails{
		validCard(),
		{Method: entity.PaymentMethodCashOnDelivery},
		{Method: "bitcoin"},
		nil,
	}

	for _, details := range methods {
		f := newFixture(newMemoryState())
		ctx := context.Background()
		client := entity.NewClientID()

		_, err := f.checkout.Checkout(ctx, client, details)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrEmptyCart))

		_, err = f.checkout.SubmitPayment(ctx, client, details)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrEmptyCart))

		status, err := f.checkout.Status(ctx, client)
		require.NoError(t, err)
		assert.Equal(t, entity.CheckoutIdle, status.State)
	}
}

func TestCheckoutService_UnsupportedMethod(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.cart.AddProduct(ctx, client, testServo, 1)
	require.NoError(t, err)

	_, err = f.checkout.Checkout(ctx, client, &entity.PaymentDetails{Method: "bitcoin"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnsupportedPaymentMethod))
}

func TestCheckoutService_CashOnDeliveryRequiresLogin(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.cart.AddProduct(ctx, client, testServo, 1)
	require.NoError(t, err)

	_, err = f.checkout.Checkout(ctx, client, &entity.PaymentDetails{Method: entity.PaymentMethodCashOnDelivery})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrLoginRequired))

	cart, err := f.cart.GetCart(ctx, client)
	require.NoError(t, err)
	assert.False(t, cart.IsEmpty())
}

func TestCheckoutService_CashOnDelivery_PublishesInvoice(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.session.Register(ctx, client, validRegistration())
	require.NoError(t, err)
	_, err = f.cart.AddProduct(ctx, client, testSensor, 1)
	require.NoError(t, err)

	var published *service.InvoiceEvent
	f.publisher.On("PublishInvoiceEvent", mock.Anything, mock.AnythingOfType("*service.InvoiceEvent")).
		Run(func(args mock.Arguments) {
			published = args.Get(1).(*service.InvoiceEvent)
		}).
		Return(nil).
		Once()

	out, err := f.checkout.Checkout(ctx, client, &entity.PaymentDetails{Method: entity.PaymentMethodCashOnDelivery})

	require.NoError(t, err)
	assert.True(t, out.InvoiceRequested)
	assert.Contains(t, out.Confirmation, "12 Tahrir St, Cairo")
	f.publisher.AssertExpectations(t)

	require.NotNil(t, published)
	assert.Equal(t, "layla@example.com", published.CustomerEmail)
	assert.Equal(t, "Layla Hassan", published.CustomerName)
	assert.Equal(t, "operator@example.com", published.OperatorEmail)
	assert.Equal(t, out.Order.ID.String(), published.OrderID)
	assert.Equal(t, client.String(), published.ClientID)
	assert.NotEmpty(t, published.OrderQRCode)
	assert.True(t, strings.Contains(published.Content, "BME280 Environmental Sensor"))
	assert.True(t, strings.Contains(published.Content, "12.50 $"))
}

func TestCheckoutService_InvoiceFailureDoesNotRollBack(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.session.Register(ctx, client, validRegistration())
	require.NoError(t, err)
	_, err = f.cart.AddProduct(ctx, client, testDisplay, 3)
	require.NoError(t, err)
	f.notifications.Drain(client)

	f.publisher.On("PublishInvoiceEvent", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	out, err := f.checkout.Checkout(ctx, client, validCard())

	require.NoError(t, err)
	assert.Equal(t, entity.CheckoutCompleted, out.State)
	assert.False(t, out.InvoiceRequested)

	cart, err := f.cart.GetCart(ctx, client)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	codes := make([]string, 0)
	for _, n := range f.notifications.Drain(client) {
		codes = append(codes, n.Code)
	}
	assert.Contains(t, codes, "ORDER_CONFIRMED")
	assert.Contains(t, codes, "INVOICE_DELIVERY_FAILED")
}

func TestCheckoutService_StepOrder(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.cart.AddProduct(ctx, client, testSensor, 1)
	require.NoError(t, err)

	_, err = f.checkout.ProceedToPayment(ctx, client)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCheckoutState))

	_, err = f.checkout.SubmitPayment(ctx, client, validCard())
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCheckoutState))

	status, err := f.checkout.Begin(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, entity.CheckoutReviewingCart, status.State)

	status, err = f.checkout.Cancel(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, entity.CheckoutIdle, status.State)
	assert.False(t, status.Cart.IsEmpty())
}

func TestCheckoutService_BeginAfterCompletedRestarts(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.cart.AddProduct(ctx, client, testSensor, 1)
	require.NoError(t, err)
	_, err = f.checkout.Checkout(ctx, client, validCard())
	require.NoError(t, err)

	_, err = f.checkout.Begin(ctx, client)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmptyCart))

	status, err := f.checkout.Status(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, entity.CheckoutIdle, status.State)

	_, err = f.cart.AddProduct(ctx, client, testServo, 1)
	require.NoError(t, err)
	status, err = f.checkout.Begin(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, entity.CheckoutReviewingCart, status.State)
}
