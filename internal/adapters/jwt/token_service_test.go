package token_adapter

import (
	"context"
	"marketplace-service/internal/core/domain"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser() *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		Email:    "seller@example.com",
		Name:     "Seller",
		UserType: domain.UserTypeSeller,
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	user := newTestUser()
	token, err := svc.GenerateToken(context.Background(), user, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, domain.UserTypeSeller, claims.UserType)
}

func TestTokenService_Expired(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	token, err := svc.GenerateToken(context.Background(), newTestUser(), time.Minute)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_WrongSecret(t *testing.T) {
	signer, _ := NewTokenService("secret-a")
	verifier, _ := NewTokenService("secret-b")

	token, err := signer.GenerateToken(context.Background(), newTestUser(), time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	svc, _ := NewTokenService("test-secret")

	claims := jwt.MapClaims{"user_id": uuid.New().String(), "iss": issuer}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_Garbage(t *testing.T) {
	svc, _ := NewTokenService("test-secret")
	_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestNewTokenService_EmptyKey(t *testing.T) {
	_, err := NewTokenService("")
	assert.Error(t, err)
}
