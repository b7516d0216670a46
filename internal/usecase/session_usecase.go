package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the registration form.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	City            string
	Address         string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// SessionUsecase owns the registered accounts and the current-user pointer of a client.
type SessionUsecase interface {
	Register(ctx context.Context, client entity.ClientID, input *RegisterInput) (*entity.UserAccount, error)
	Login(ctx context.Context, client entity.ClientID, input *LoginInput) (*entity.UserAccount, error)
	Logout(ctx context.Context, client entity.ClientID) error
	CurrentUser(ctx context.Context, client entity.ClientID) (*entity.UserAccount, error)
}
