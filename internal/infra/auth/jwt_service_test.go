package auth

import (
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig(ttl time.Duration) *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{ClientTokenTTL: ttl}}
	cfg.SecretKey.Client = "test_client_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig(time.Hour))
	require.NoError(t, err)

	client := entity.NewClientID()
	token, err := svc.IssueClientToken(client)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := svc.ValidateClientToken(token)
	require.NoError(t, err)
	assert.Equal(t, client, got)
}

func TestJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})

	assert.Error(t, err)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig(0))
	require.NoError(t, err)

	other := newTestJWTConfig(0)
	other.SecretKey.Client = "another_secret"
	otherSvc, err := NewJWTService(other)
	require.NoError(t, err)

	token, err := otherSvc.IssueClientToken(entity.NewClientID())
	require.NoError(t, err)

	_, err = svc.ValidateClientToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidClientToken))
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig(time.Minute))
	require.NoError(t, err)

	impl := svc.(*jwtService)
	issuedAt := time.Now().Add(-time.Hour)
	impl.now = func() time.Time { return issuedAt }
	token, err := svc.IssueClientToken(entity.NewClientID())
	require.NoError(t, err)

	impl.now = time.Now
	_, err = svc.ValidateClientToken(token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidClientToken))
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig(0))
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"cid": "abc", "iss": "storefront"})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateClientToken(unsigned)
	assert.Error(t, err)
}

func TestJWTService_WithoutTTLHasNoExpiry(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig(0))
	require.NoError(t, err)

	token, err := svc.IssueClientToken(entity.NewClientID())
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	require.NoError(t, err)
	_, hasExp := parsed.Claims.(jwt.MapClaims)["exp"]
	assert.False(t, hasExp)
}
