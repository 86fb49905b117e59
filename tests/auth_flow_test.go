// Package tests contains integration tests for authentication flows
package tests

import (
	"testing"
	"time"

	"github.com/markforge/backend/app/dto"
	"github.com/markforge/backend/app/services"
	businessflow "github.com/markforge/backend/business_flow"
	"github.com/markforge/backend/config"
	"github.com/markforge/backend/repository"
	testingutil "github.com/markforge/backend/testing"
	"github.com/markforge/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFlow(t *testing.T, testDB *testingutil.TestDB) businessflow.AuthFlow {
	t.Helper()

	userRepo := repository.NewUserRepository(testDB.DB)
	sessionRepo := repository.NewSessionRepository(testDB.DB)
	auditRepo := repository.NewAuditLogRepository(testDB.DB)

	tokenService, err := services.NewTokenService(1*time.Hour, 24*time.Hour,
		"test-issuer", "test-audience", "test-secret-key-that-is-long-enough", nil, "test:")
	require.NoError(t, err)

	return businessflow.NewAuthFlow(
		userRepo,
		sessionRepo,
		auditRepo,
		tokenService,
		config.SecurityConfig{BcryptCost: 4},
		config.JWTConfig{AccessTokenTTL: 1 * time.Hour, RefreshTokenTTL: 24 * time.Hour},
		testDB.DB,
	)
}

func testMetadata() *businessflow.ClientMetadata {
	return businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")
}

func TestAuthFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		authFlow := newAuthFlow(t, testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("SuccessfulSignup", func(t *testing.T) {
			resp, err := authFlow.Signup(ctx, &dto.SignupRequest{
				Email:     "new.user@example.com",
				Password:  "TestPass123!",
				FirstName: "New",
				LastName:  "User",
			}, testMetadata())
			require.NoError(t, err)
			require.NotNil(t, resp)

			assert.Equal(t, "new.user@example.com", resp.User.Email)
			assert.NotEmpty(t, resp.User.UUID)
			assert.True(t, utils.IsTrue(resp.User.IsActive))
			assert.NotEmpty(t, resp.Session.AccessToken)
			assert.NotEmpty(t, resp.Session.RefreshToken)
			assert.Equal(t, "Bearer", resp.Session.TokenType)
		})

		t.Run("SignupDuplicateEmail", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = authFlow.Signup(ctx, &dto.SignupRequest{
				Email:     user.Email,
				Password:  "TestPass123!",
				FirstName: "Other",
				LastName:  "User",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsEmailAlreadyExists(err))
		})

		t.Run("SuccessfulLogin", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			resp, err := authFlow.Login(ctx, &dto.LoginRequest{
				Email:    user.Email,
				Password: "TestPass123!",
			}, testMetadata())
			require.NoError(t, err)
			require.NotNil(t, resp)

			assert.Equal(t, user.ID, resp.User.ID)
			assert.NotEmpty(t, resp.Session.AccessToken)
			assert.Greater(t, resp.Session.ExpiresIn, 0)
		})

		t.Run("LoginUnknownEmail", func(t *testing.T) {
			_, err := authFlow.Login(ctx, &dto.LoginRequest{
				Email:    "nobody@example.com",
				Password: "TestPass123!",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsUserNotFound(err))
		})

		t.Run("LoginWrongPassword", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = authFlow.Login(ctx, &dto.LoginRequest{
				Email:    user.Email,
				Password: "WrongPass123!",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsIncorrectPassword(err))
		})

		t.Run("RefreshTokenRotatesSession", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			loginResp, err := authFlow.Login(ctx, &dto.LoginRequest{
				Email:    user.Email,
				Password: "TestPass123!",
			}, testMetadata())
			require.NoError(t, err)

			refreshResp, err := authFlow.RefreshToken(ctx, &dto.RefreshTokenRequest{
				RefreshToken: loginResp.Session.RefreshToken,
			}, testMetadata())
			require.NoError(t, err)
			assert.NotEmpty(t, refreshResp.Session.AccessToken)
			assert.NotEqual(t, loginResp.Session.RefreshToken, refreshResp.Session.RefreshToken)

			// The rotated-out session no longer refreshes
			_, err = authFlow.RefreshToken(ctx, &dto.RefreshTokenRequest{
				RefreshToken: loginResp.Session.RefreshToken,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsSessionNotFound(err))
		})

		t.Run("RefreshTokenUnknown", func(t *testing.T) {
			_, err := authFlow.RefreshToken(ctx, &dto.RefreshTokenRequest{
				RefreshToken: "does-not-exist",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsSessionNotFound(err))
		})

		t.Run("LogoutExpiresSessions", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			loginResp, err := authFlow.Login(ctx, &dto.LoginRequest{
				Email:    user.Email,
				Password: "TestPass123!",
			}, testMetadata())
			require.NoError(t, err)

			_, err = authFlow.Logout(ctx, &dto.LogoutRequest{
				UserID:      user.ID,
				AccessToken: loginResp.Session.AccessToken,
			}, testMetadata())
			require.NoError(t, err)

			_, err = authFlow.RefreshToken(ctx, &dto.RefreshTokenRequest{
				RefreshToken: loginResp.Session.RefreshToken,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsSessionNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}
