package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, accessTTL, refreshTTL time.Duration) TokenService {
	t.Helper()
	svc, err := NewTokenService(accessTTL, refreshTTL, "test-issuer", "test-audience",
		"test-secret-key-that-is-long-enough", nil, "test:")
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService(time.Hour, 24*time.Hour, "iss", "aud", "", nil, "")
	require.Error(t, err)
}

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := newTestTokenService(t, time.Hour, 24*time.Hour)
	ctx := context.Background()

	accessToken, refreshToken, err := svc.GenerateTokens(42)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	accessClaims, err := svc.ValidateToken(ctx, accessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), accessClaims.UserID)
	assert.Equal(t, "access", accessClaims.TokenType)
	assert.NotEmpty(t, accessClaims.TokenID)

	refreshClaims, err := svc.ValidateToken(ctx, refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
	assert.NotEqual(t, accessClaims.TokenID, refreshClaims.TokenID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t, time.Hour, 24*time.Hour)

	_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuing := newTestTokenService(t, time.Hour, 24*time.Hour)
	validating, err := NewTokenService(time.Hour, 24*time.Hour, "test-issuer", "test-audience",
		"a-completely-different-secret-key", nil, "test:")
	require.NoError(t, err)

	accessToken, _, err := issuing.GenerateTokens(7)
	require.NoError(t, err)

	_, err = validating.ValidateToken(context.Background(), accessToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute, 24*time.Hour)

	accessToken, _, err := svc.GenerateTokens(7)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), accessToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokenRotatesPair(t *testing.T) {
	svc := newTestTokenService(t, time.Hour, 24*time.Hour)
	ctx := context.Background()

	_, refreshToken, err := svc.GenerateTokens(42)
	require.NoError(t, err)

	newAccess, newRefresh, err := svc.RefreshToken(ctx, refreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
	require.NotEmpty(t, newRefresh)

	claims, err := svc.ValidateToken(ctx, newAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := newTestTokenService(t, time.Hour, 24*time.Hour)

	accessToken, _, err := svc.GenerateTokens(42)
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), accessToken)
	require.Error(t, err)
}

func TestRevocationWithoutRedisIsNoop(t *testing.T) {
	svc := newTestTokenService(t, time.Hour, 24*time.Hour)
	ctx := context.Background()

	accessToken, _, err := svc.GenerateTokens(42)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(ctx, accessToken))
	assert.False(t, svc.IsTokenRevoked(ctx, accessToken))
}
