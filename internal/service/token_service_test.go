package service

import (
	"testing"
	"time"

	"receipt-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService_RoundTrip(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "receipt-ledger")
	userID := uuid.New()

	token, expiresAt, err := svc.Generate(userID, domain.RoleMerchant)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleMerchant, claims.Role)
}

func TestJWTTokenService_Expired(t *testing.T) {
	svc := NewJWTTokenService("test-secret", -time.Minute, "receipt-ledger")

	token, _, err := svc.Generate(uuid.New(), domain.RoleConsumer)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_WrongSecret(t *testing.T) {
	issuer := NewJWTTokenService("secret-a", time.Hour, "receipt-ledger")
	verifier := NewJWTTokenService("secret-b", time.Hour, "receipt-ledger")

	token, _, err := issuer.Generate(uuid.New(), domain.RoleConsumer)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_Garbage(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "receipt-ledger")

	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)
}
