package impl

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	cart      usecase.CartUsecase
	session   usecase.SessionUsecase
	publisher service.EventPublisher
	qrcode    service.QRCodeService
	notices   notifier
	logger    *slog.Logger
	now       func() time.Time

	storeName      string
	operatorEmail  string
	invoiceSubject string
	currency       entity.Currency

	locks  *ClientLocks
	mu     sync.Mutex
	states map[entity.ClientID]entity.CheckoutState
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	Cart          usecase.CartUsecase
	Session       usecase.SessionUsecase
	Publisher     service.EventPublisher
	QRCode        service.QRCodeService `optional:"true"`
	Notifications usecase.NotificationUsecase
	Config        *config.Config
	Logger        *slog.Logger
	Locks         *ClientLocks `optional:"true"`
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	srv := &checkoutService{
		cart:      params.Cart,
		session:   params.Session,
		publisher: params.Publisher,
		qrcode:    params.QRCode,
		notices:   notifier{feed: params.Notifications},
		logger:    params.Logger,
		now:       time.Now,
		currency:  entity.BaseCurrency(),
		locks:     locksOrNew(params.Locks),
		states:    make(map[entity.ClientID]entity.CheckoutState),
	}

	if params.Config != nil && params.Config.Storefront != nil {
		sf := params.Config.Storefront
		srv.storeName = sf.Name
		srv.operatorEmail = sf.OperatorEmail
		srv.invoiceSubject = sf.InvoiceSubject
		srv.currency = entity.Currency{
			Code:   sf.Currency.Code,
			Symbol: sf.Currency.Symbol,
			Rate:   decimal.NewFromFloat(sf.Currency.Rate),
		}
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *checkoutService) state(client entity.ClientID) entity.CheckoutState {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if st, ok := srv.states[client]; ok {
		return st
	}

	return entity.CheckoutIdle
}

func (srv *checkoutService) setState(client entity.ClientID, st entity.CheckoutState) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.states[client] = st
}

// Status returns the current step and cart.
func (srv *checkoutService) Status(ctx context.Context, client entity.ClientID) (*usecase.CheckoutStatus, error) {
	ctx, unlock := srv.locks.lock(ctx, client)
	defer unlock()

	return srv.status(ctx, client)
}

func (srv *checkoutService) status(ctx context.Context, client entity.ClientID) (*usecase.CheckoutStatus, error) {
	cart, err := srv.cart.GetCart(ctx, client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	return &usecase.CheckoutStatus{State: srv.state(client), Cart: cart}, nil
}

// Begin enters ReviewingCart. It may be called from any step; a completed checkout starts over.
func (srv *checkoutService) Begin(ctx context.Context, client entity.ClientID) (*usecase.CheckoutStatus, error) {
	ctx, unlock := srv.locks.lock(ctx, client)
	defer unlock()

	return srv.begin(ctx, client)
}

func (srv *checkoutService) begin(ctx context.Context, client entity.ClientID) (*usecase.CheckoutStatus, error) {
	if srv.state(client).IsTerminal() {
		srv.setState(client, entity.CheckoutIdle)
	}

	cart, err := srv.cart.GetCart(ctx, client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	if cart.IsEmpty() {
		srv.notices.failure(client, domainerrors.ErrEmptyCart)

		return nil, errors.WithStack(domainerrors.ErrEmptyCart)
	}

	srv.setState(client, entity.CheckoutReviewingCart)

	return &usecase.CheckoutStatus{State: entity.CheckoutReviewingCart, Cart: cart}, nil
}

// ProceedToPayment moves from ReviewingCart to SelectingPayment.
func (srv *checkoutService) ProceedToPayment(ctx context.Context, client entity.ClientID) (*usecase.CheckoutStatus, error) {
	ctx, unlock := srv.locks.lock(ctx, client)
	defer unlock()

	return srv.proceedToPayment(ctx, client)
}

func (srv *checkoutService) proceedToPayment(ctx context.Context, client entity.ClientID) (*usecase.CheckoutStatus, error) {
	cart, err := srv.cart.GetCart(ctx, client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	if cart.IsEmpty() {
		srv.setState(client, entity.CheckoutIdle)
		srv.notices.failure(client, domainerrors.ErrEmptyCart)

		return nil, errors.WithStack(domainerrors.ErrEmptyCart)
	}

	if current := srv.state(client); current != entity.CheckoutReviewingCart {
		err := domainerrors.ErrInvalidCheckoutState.WithDetails(fmt.Sprintf("cannot select payment while %s", current))
		srv.notices.failure(client, err)

		return nil, errors.WithStack(err)
	}

	srv.setState(client, entity.CheckoutSelectingPayment)

	return &usecase.CheckoutStatus{State: entity.CheckoutSelectingPayment, Cart: cart}, nil
}

// Cancel abandons the checkout and returns to Idle. The cart is kept.
func (srv *checkoutService) Cancel(ctx context.Context, client entity.ClientID) (*usecase.CheckoutStatus, error) {
	ctx, unlock := srv.locks.lock(ctx, client)
	defer unlock()

	srv.setState(client, entity.CheckoutIdle)

	return srv.status(ctx, client)
}

// SubmitPayment validates the payment and, on success, commits the order.
func (srv *checkoutService) SubmitPayment(ctx context.Context, client entity.ClientID, details *entity.PaymentDetails) (*usecase.CheckoutOutput, error) {
	ctx, unlock := srv.locks.lock(ctx, client)
	defer unlock()

	return srv.submitPayment(ctx, client, details)
}

// Checkout walks Begin, ProceedToPayment and SubmitPayment in one call.
func (srv *checkoutService) Checkout(ctx context.Context, client entity.ClientID, details *entity.PaymentDetails) (*usecase.CheckoutOutput, error) {
	ctx, unlock := srv.locks.lock(ctx, client)
	defer unlock()

	if _, err := srv.begin(ctx, client); err != nil {
		return nil, err
	}
	if _, err := srv.proceedToPayment(ctx, client); err != nil {
		return nil, err
	}

	return srv.submitPayment(ctx, client, details)
}

func (srv *checkoutService) submitPayment(ctx context.Context, client entity.ClientID, details *entity.PaymentDetails) (*usecase.CheckoutOutput, error) {
	logger := srv.log(ctx)

	cart, err := srv.cart.GetCart(ctx, client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	// An empty cart wins over every other check, whatever the method.
	if cart.IsEmpty() {
		srv.setState(client, entity.CheckoutIdle)
		srv.notices.failure(client, domainerrors.ErrEmptyCart)

		return nil, errors.WithStack(domainerrors.ErrEmptyCart)
	}

	if current := srv.state(client); current != entity.CheckoutSelectingPayment {
		err := domainerrors.ErrInvalidCheckoutState.WithDetails(fmt.Sprintf("cannot submit payment while %s", current))
		srv.notices.failure(client, err)

		return nil, errors.WithStack(err)
	}

	srv.setState(client, entity.CheckoutValidatingPayment)

	if err := validatePayment(details); err != nil {
		return nil, srv.rejectPayment(ctx, client, err)
	}

	customer, err := srv.session.CurrentUser(ctx, client)
	if err != nil {
		srv.setState(client, entity.CheckoutSelectingPayment)

		return nil, errors.Wrap(err, "failed to load current user")
	}

	if details.Method == entity.PaymentMethodCashOnDelivery && customer == nil {
		return nil, srv.rejectPayment(ctx, client, domainerrors.ErrLoginRequired)
	}

	order := entity.NewOrder(client, cart, details.Method, customer, srv.now())

	// Taking the ordered lines off the cart commits the order.
	if err := srv.cart.RemoveLines(ctx, client, order.Lines); err != nil {
		srv.setState(client, entity.CheckoutSelectingPayment)

		return nil, errors.Wrap(err, "failed to commit order lines")
	}

	srv.setState(client, entity.CheckoutCompleted)

	confirmation := srv.confirmation(order)
	logger.Info("Checkout completed",
		slog.String("client_id", client.String()),
		slog.String("order_id", order.ID.String()),
		slog.String("payment_method", order.PaymentMethod.String()),
		slog.String("total", order.Total.StringFixed(2)),
	)
	srv.notices.success(client, "ORDER_CONFIRMED", confirmation)

	output := &usecase.CheckoutOutput{
		State:        entity.CheckoutCompleted,
		Order:        order,
		Confirmation: confirmation,
	}

	if customer != nil {
		output.InvoiceRequested = srv.requestInvoice(ctx, order)
	}

	return output, nil
}

// rejectPayment returns the machine to SelectingPayment so the client can retry.
func (srv *checkoutService) rejectPayment(ctx context.Context, client entity.ClientID, cause error) error {
	srv.setState(client, entity.CheckoutSelectingPayment)
	srv.log(ctx).Info("Payment rejected", slog.String("client_id", client.String()), slog.Any("error", cause))
	srv.notices.failure(client, cause)

	return errors.WithStack(cause)
}

func (srv *checkoutService) confirmation(order *entity.Order) string {
	total := srv.currency.Format(order.Total)
	if order.PaymentMethod == entity.PaymentMethodCashOnDelivery {
		return fmt.Sprintf("Order confirmed. Please pay %s on delivery to %s", total, order.Customer.ShippingDestination())
	}

	return fmt.Sprintf("Payment completed successfully. %s charged to your card", total)
}

// requestInvoice hands the invoice to the publisher after the order was committed.
// Failures are reported and never undo the order.
func (srv *checkoutService) requestInvoice(ctx context.Context, order *entity.Order) bool {
	logger := srv.log(ctx).With(slog.String("order_id", order.ID.String()))

	event, err := srv.buildInvoiceEvent(ctx, order)
	if err == nil {
		err = srv.publisher.PublishInvoiceEvent(ctx, event)
	}

	if err != nil {
		logger.Error("Failed to request invoice delivery", slog.Any("error", err))
		srv.notices.failure(order.ClientID, domainerrors.ErrInvoiceDeliveryFailed)

		return false
	}

	logger.Debug("Invoice delivery requested", slog.String("customer_email", event.CustomerEmail))

	return true
}

func (srv *checkoutService) buildInvoiceEvent(ctx context.Context, order *entity.Order) (*service.InvoiceEvent, error) {
	var qrPNG []byte
	if srv.qrcode != nil {
		png, err := srv.qrcode.GenerateOrderQR(order.ID)
		if err != nil {
			// The invoice is still useful without the code.
			srv.log(ctx).Warn("Failed to generate order QR code", slog.Any("error", err))
		} else {
			qrPNG = png
		}
	}

	content, err := renderInvoice(srv.storeName, order, srv.currency, qrPNG)
	if err != nil {
		return nil, err
	}

	event := &service.InvoiceEvent{
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:       order.ID.String(),
		ClientID:      order.ClientID.String(),
		CustomerEmail: order.Customer.Email,
		CustomerName:  order.Customer.DisplayName(),
		OperatorEmail: srv.operatorEmail,
		Subject:       srv.invoiceSubject,
		Content:       content,
	}
	if len(qrPNG) > 0 {
		event.OrderQRCode = base64.StdEncoding.EncodeToString(qrPNG)
	}

	return event, nil
}
