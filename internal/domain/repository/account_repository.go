package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// AccountRepository persists the registered account table of a client under the "users" key.
type AccountRepository interface {
	// List returns every registered account in registration order.
	List(ctx context.Context, client entity.ClientID) ([]entity.UserAccount, error)

	// Save replaces the account table.
	Save(ctx context.Context, client entity.ClientID, accounts []entity.UserAccount) error
}

// SessionRepository persists the current-user pointer of a client under the "currentUser" key.
type SessionRepository interface {
	// Load returns the current user, or nil when nobody is logged in.
	Load(ctx context.Context, client entity.ClientID) (*entity.UserAccount, error)

	// Save records user as the current user.
	Save(ctx context.Context, client entity.ClientID, user *entity.UserAccount) error

	// Clear removes the persisted current user. Clearing an empty session is not an error.
	Clear(ctx context.Context, client entity.ClientID) error
}
