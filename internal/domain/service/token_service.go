package service

import (
	"github.com/golang-jwt/jwt/v5"

	"storefront/internal/domain/entity"
)

// ClientClaims defines the custom claims of a client token.
type ClientClaims struct {
	ClientID entity.ClientID `json:"cid"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the signed tokens that identify a storefront client.
type TokenService interface {
	// IssueClientToken creates a signed token for client.
	IssueClientToken(client entity.ClientID) (string, error)

	// ValidateClientToken verifies the token and returns the client it identifies.
	ValidateClientToken(token string) (entity.ClientID, error)
}
