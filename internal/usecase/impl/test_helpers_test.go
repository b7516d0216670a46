package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Storefront: &config.StorefrontConfig{
			Name:           "Test Store",
			OperatorEmail:  "operator@example.com",
			InvoiceSubject: "Your invoice",
			Currency:       config.CurrencyConfig{Code: "USD", Symbol: "$", Rate: 1},
		},
	}
}

var (
	testSensor = entity.Product{
		ID: 1, Title: "BME280 Environmental Sensor", Price: decimal.NewFromFloat(12.5),
		Category: entity.CategorySensors, Rating: 4.7,
	}
	testDisplay = entity.Product{
		ID: 2, Title: "OLED Display 0.96\"", Price: decimal.NewFromFloat(7.99),
		Category: entity.CategoryDisplays, Rating: 4.3,
	}
	testServo = entity.Product{
		ID: 3, Title: "SG90 Micro Servo", Price: decimal.NewFromFloat(4.5),
		Category: entity.CategoryMotors, Rating: 4.5,
	}
)

// productTable is a fixed ProductRepository.
type productTable []entity.Product

func (t productTable) All() []entity.Product {
	out := make([]entity.Product, len(t))
	copy(out, t)

	return out
}

func (t productTable) FindByID(id entity.ProductID) (entity.Product, bool) {
	for _, p := range t {
		if p.ID == id {
			return p, true
		}
	}

	return entity.Product{}, false
}

func newTestProducts() productTable {
	return productTable{testSensor, testDisplay, testServo}
}

// memoryState is a shared in-memory backing for the fake repositories, so a
// second service instance can restore what a first one persisted.
type memoryState struct {
	mu       sync.Mutex
	carts    map[entity.ClientID]*entity.Cart
	accounts map[entity.ClientID][]entity.UserAccount
	sessions map[entity.ClientID]*entity.UserAccount
	saveErr  error
	saves    int
}

func newMemoryState() *memoryState {
	return &memoryState{
		carts:    make(map[entity.ClientID]*entity.Cart),
		accounts: make(map[entity.ClientID][]entity.UserAccount),
		sessions: make(map[entity.ClientID]*entity.UserAccount),
	}
}

type fakeCartRepo struct{ state *memoryState }

func (r fakeCartRepo) Load(_ context.Context, client entity.ClientID) (*entity.Cart, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	if cart, ok := r.state.carts[client]; ok {
		return cart.Clone(), nil
	}

	return entity.NewCart(), nil
}

func (r fakeCartRepo) Save(_ context.Context, client entity.ClientID, cart *entity.Cart) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	if r.state.saveErr != nil {
		return r.state.saveErr
	}
	r.state.saves++
	r.state.carts[client] = cart.Clone()

	return nil
}

type fakeAccountRepo struct{ state *memoryState }

func (r fakeAccountRepo) List(_ context.Context, client entity.ClientID) ([]entity.UserAccount, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	return append([]entity.UserAccount(nil), r.state.accounts[client]...), nil
}

func (r fakeAccountRepo) Save(_ context.Context, client entity.ClientID, accounts []entity.UserAccount) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	if r.state.saveErr != nil {
		return r.state.saveErr
	}
	r.state.accounts[client] = append([]entity.UserAccount(nil), accounts...)

	return nil
}

type fakeSessionRepo struct{ state *memoryState }

func (r fakeSessionRepo) Load(_ context.Context, client entity.ClientID) (*entity.UserAccount, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	if user := r.state.sessions[client]; user != nil {
		clone := *user

		return &clone, nil
	}

	return nil, nil
}

func (r fakeSessionRepo) Save(_ context.Context, client entity.ClientID, user *entity.UserAccount) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	if r.state.saveErr != nil {
		return r.state.saveErr
	}
	clone := *user
	r.state.sessions[client] = &clone

	return nil
}

func (r fakeSessionRepo) Clear(_ context.Context, client entity.ClientID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	delete(r.state.sessions, client)

	return nil
}

// plainHasher marks passwords without the bcrypt cost.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

// mockPublisher is a testify mock of service.EventPublisher.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishInvoiceEvent(ctx context.Context, event *service.InvoiceEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return nil
}

// mockSender is a testify mock of service.InvoiceSender.
type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendInvoice(ctx context.Context, msg *service.InvoiceMessage) error {
	args := m.Called(ctx, msg)

	return args.Error(0)
}

// stubQRCode returns a fixed payload.
type stubQRCode struct{}

func (stubQRCode) GenerateOrderQR(_ uuid.UUID) ([]byte, error) { return []byte("png"), nil }

func (stubQRCode) ParseOrderQR(_ string) (uuid.UUID, error) { return uuid.Nil, nil }

// fixture wires real services over the fake repositories.
type fixture struct {
	state         *memoryState
	locks         *ClientLocks
	notifications usecase.NotificationUsecase
	catalog       usecase.CatalogUsecase
	cart          usecase.CartUsecase
	session       usecase.SessionUsecase
	publisher     *mockPublisher
	checkout      usecase.CheckoutUsecase
}

func newFixture(state *memoryState) *fixture {
	logger := newDiscardLogger()
	locks := NewClientLocks()
	f := &fixture{
		state:         state,
		locks:         locks,
		notifications: NewNotificationService(),
		catalog:       NewCatalogService(newTestProducts()),
		publisher:     &mockPublisher{},
	}
	f.cart = NewCartService(CartServiceParams{
		CartRepo:      fakeCartRepo{state: state},
		Catalog:       f.catalog,
		Notifications: f.notifications,
		Logger:        logger,
		Locks:         locks,
	})
	f.session = NewSessionService(SessionServiceParams{
		AccountRepo:   fakeAccountRepo{state: state},
		SessionRepo:   fakeSessionRepo{state: state},
		Hasher:        plainHasher{},
		Notifications: f.notifications,
		Logger:        logger,
		Locks:         locks,
	})
	f.checkout = NewCheckoutService(CheckoutServiceParams{
		Cart:          f.cart,
		Session:       f.session,
		Publisher:     f.publisher,
		QRCode:        stubQRCode{},
		Notifications: f.notifications,
		Config:        newTestConfig(),
		Logger:        logger,
		Locks:         locks,
	})

	return f
}

func validRegistration() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		FirstName:       "Layla",
		LastName:        "Hassan",
		Email:           "layla@example.com",
		Password:        "s3cret",
		ConfirmPassword: "s3cret",
		Phone:           "0123456789",
		City:            "Cairo",
		Address:         "12 Tahrir St",
	}
}

func validCard() *entity.PaymentDetails {
	return &entity.PaymentDetails{
		Method: entity.PaymentMethodCard,
		Card: &entity.CardDetails{
			Number:      "4111111111111111",
			CVV:         "123",
			ExpiryMonth: "12",
			ExpiryYear:  "2030",
		},
	}
}
