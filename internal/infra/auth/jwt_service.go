package auth

import (
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const clientTokenIssuer = "storefront"

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte
	ttl    time.Duration // Zero issues tokens without expiry.
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Client == "" {
		return nil, errors.New("client token secret must be provided")
	}

	var ttl time.Duration
	if cfg.Auth != nil {
		ttl = cfg.Auth.ClientTokenTTL
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Client),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// IssueClientToken signs an HS256 token carrying the client ID.
func (s *jwtService) IssueClientToken(client entity.ClientID) (string, error) {
	now := s.now()
	claims := service.ClientClaims{
		ClientID: client,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   clientTokenIssuer,
			Subject:  client.String(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign client token")
	}

	return signed, nil
}

// ValidateClientToken verifies signature, issuer and expiry and returns the client.
func (s *jwtService) ValidateClientToken(tokenString string) (entity.ClientID, error) {
	claims := &service.ClientClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	},
		jwt.WithIssuer(clientTokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return "", errors.Wrap(domainerrors.ErrInvalidClientToken, "parse client token")
	}

	if claims.ClientID.IsZero() {
		return "", errors.WithStack(domainerrors.ErrInvalidClientToken.WithDetails("token carries no client"))
	}

	return claims.ClientID, nil
}
