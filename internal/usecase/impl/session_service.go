package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	accountRepo repository.AccountRepository
	sessionRepo repository.SessionRepository
	hasher      service.PasswordHasher
	notices     notifier
	logger      *slog.Logger

	locks *ClientLocks
	mu    sync.Mutex
	// current holds the restored session pointer per client; a present nil value means "logged out".
	current map[entity.ClientID]*entity.UserAccount
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	AccountRepo   repository.AccountRepository
	SessionRepo   repository.SessionRepository
	Hasher        service.PasswordHasher
	Notifications usecase.NotificationUsecase
	Logger        *slog.Logger
	Locks         *ClientLocks `optional:"true"`
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		accountRepo: params.AccountRepo,
		sessionRepo: params.SessionRepo,
		hasher:      params.Hasher,
		notices:     notifier{feed: params.Notifications},
		logger:      params.Logger,
		locks:       locksOrNew(params.Locks),
		current:     make(map[entity.ClientID]*entity.UserAccount),
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the form, appends the account to the client's account table and logs it in.
func (srv *sessionService) Register(ctx context.Context, client entity.ClientID, input *usecase.RegisterInput) (*entity.UserAccount, error) {
	if err := validateRegistration(input); err != nil {
		srv.log(ctx).Info("Registration rejected", slog.String("client_id", client.String()), slog.Any("error", err))
		srv.notices.failure(client, err)

		return nil, errors.WithStack(err)
	}

	ctx, unlock := srv.locks.lock(ctx, client)
	defer unlock()

	email := entity.NormalizeEmail(input.Email)

	accounts, err := srv.accountRepo.List(ctx, client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load account table")
	}

	for _, acc := range accounts {
		if entity.NormalizeEmail(acc.Email) == email {
			srv.log(ctx).Info("Registration rejected, email taken", slog.String("client_id", client.String()), slog.String("email", email))
			srv.notices.failure(client, domainerrors.ErrDuplicateEmail)

			return nil, errors.WithStack(domainerrors.ErrDuplicateEmail)
		}
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	account := entity.UserAccount{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     email,
		Password:  hashedPassword,
		Phone:     strings.TrimSpace(input.Phone),
		City:      strings.TrimSpace(input.City),
		Address:   strings.TrimSpace(input.Address),
	}

	if err := srv.accountRepo.Save(ctx, client, append(accounts, account)); err != nil {
		srv.notices.failure(client, err)

		return nil, errors.Wrap(err, "failed to persist account table")
	}

	if err := srv.setCurrent(ctx, client, &account); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Registration completed", slog.String("client_id", client.String()), slog.String("email", email))
	srv.notices.success(client, "REGISTERED", "Welcome, "+account.DisplayName())

	return account.Public(), nil
}

// Login sets the current user when an account matches both email and password.
func (srv *sessionService) Login(ctx context.Context, client entity.ClientID, input *usecase.LoginInput) (*entity.UserAccount, error) {
	if err := validateLogin(input); err != nil {
		srv.notices.failure(client, err)

		return nil, errors.WithStack(err)
	}

	ctx, unlock := srv.locks.lock(ctx, client)
	defer unlock()

	accounts, err := srv.accountRepo.List(ctx, client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load account table")
	}

	email := entity.NormalizeEmail(input.Email)
	for i := range accounts {
		acc := accounts[i]
		if entity.NormalizeEmail(acc.Email) != email || !srv.hasher.Check(input.Password, acc.Password) {
			continue
		}

		if err := srv.setCurrent(ctx, client, &acc); err != nil {
			return nil, err
		}

		srv.log(ctx).Info("Login succeeded", slog.String("client_id", client.String()), slog.String("email", email))
		srv.notices.success(client, "LOGGED_IN", "Welcome back, "+acc.DisplayName())

		return acc.Public(), nil
	}

	srv.log(ctx).Warn("Login failed", slog.String("client_id", client.String()), slog.String("email", email))
	srv.notices.failure(client, domainerrors.ErrInvalidCredentials)

	return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
}

// Logout clears the current user and its persisted record. Logging out twice is fine.
func (srv *sessionService) Logout(ctx context.Context, client entity.ClientID) error {
	ctx, unlock := srv.locks.lock(ctx, client)
	defer unlock()

	if err := srv.sessionRepo.Clear(ctx, client); err != nil {
		srv.notices.failure(client, err)

		return errors.Wrap(err, "failed to clear session")
	}

	srv.mu.Lock()
	srv.current[client] = nil
	srv.mu.Unlock()

	srv.notices.success(client, "LOGGED_OUT", "You have been logged out")

	return nil
}

// CurrentUser returns the logged-in user or nil.
func (srv *sessionService) CurrentUser(ctx context.Context, client entity.ClientID) (*entity.UserAccount, error) {
	ctx, unlock := srv.locks.lock(ctx, client)
	defer unlock()

	srv.mu.Lock()
	user, restored := srv.current[client]
	srv.mu.Unlock()

	if !restored {
		var err error
		user, err = srv.sessionRepo.Load(ctx, client)
		if err != nil {
			return nil, errors.Wrap(err, "failed to restore session")
		}

		srv.mu.Lock()
		srv.current[client] = user
		srv.mu.Unlock()
	}

	return user.Public(), nil
}

// setCurrent persists the session pointer first and then updates memory.
// The caller must hold the client lock.
func (srv *sessionService) setCurrent(ctx context.Context, client entity.ClientID, account *entity.UserAccount) error {
	if err := srv.sessionRepo.Save(ctx, client, account); err != nil {
		srv.notices.failure(client, err)

		return errors.Wrap(err, "failed to persist session")
	}

	srv.mu.Lock()
	srv.current[client] = account
	srv.mu.Unlock()

	return nil
}
