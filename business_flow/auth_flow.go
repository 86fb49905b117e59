// Package businessflow contains the core business logic and use cases for authentication workflows
package businessflow

import (
	"context"
	"fmt"

	"github.com/markforge/backend/app/dto"
	"github.com/markforge/backend/app/services"
	"github.com/markforge/backend/config"
	"github.com/markforge/backend/models"
	"github.com/markforge/backend/repository"
	"github.com/markforge/backend/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthFlow handles the authentication business logic
type AuthFlow interface {
	Signup(ctx context.Context, req *dto.SignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, req *dto.LogoutRequest, metadata *ClientMetadata) (*dto.LogoutResponse, error)
}

// AuthFlowImpl implements the authentication business flow
type AuthFlowImpl struct {
	userRepo       repository.UserRepository
	sessionRepo    repository.SessionRepository
	auditRepo      repository.AuditLogRepository
	tokenService   services.TokenService
	securityConfig config.SecurityConfig
	jwtConfig      config.JWTConfig
	db             *gorm.DB
}

// NewAuthFlow creates a new authentication flow instance
func NewAuthFlow(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
	securityConfig config.SecurityConfig,
	jwtConfig config.JWTConfig,
	db *gorm.DB,
) AuthFlow {
	return &AuthFlowImpl{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		auditRepo:      auditRepo,
		tokenService:   tokenService,
		securityConfig: securityConfig,
		jwtConfig:      jwtConfig,
		db:             db,
	}
}

// Signup handles the complete account creation process
func (s *AuthFlowImpl) Signup(ctx context.Context, req *dto.SignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error) {
	existing, err := s.userRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to check existing email", err)
	}
	if existing != nil {
		return nil, NewBusinessError("EMAIL_ALREADY_EXISTS", "Email already exists", ErrEmailAlreadyExists)
	}

	cost := s.securityConfig.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return nil, NewBusinessError("PASSWORD_HASH_FAILED", "Failed to hash password", err)
	}

	var user *models.User
	var session *models.Session

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		user = &models.User{
			Email:        req.Email,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			PasswordHash: string(hash),
			IsActive:     utils.ToPtr(true),
		}
		if err := s.userRepo.Save(txCtx, user); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrEmailAlreadyExists
			}
			return err
		}

		session, err = s.createSession(txCtx, user, metadata)
		return err
	})

	if err != nil {
		errMsg := fmt.Sprintf("Signup failed: %s", err.Error())
		_ = s.createAuditLog(ctx, nil, models.AuditActionSignup, errMsg, false, &errMsg, metadata)

		if IsEmailAlreadyExists(err) {
			return nil, NewBusinessError("EMAIL_ALREADY_EXISTS", "Email already exists", err)
		}
		return nil, NewBusinessError("SIGNUP_FAILED", "Signup failed", err)
	}

	msg := fmt.Sprintf("Account created: %s", user.UUID.String())
	_ = s.createAuditLog(ctx, user, models.AuditActionSignup, msg, true, nil, metadata)

	return &dto.SignupResponse{
		Message: "Account created successfully",
		User:    ToAuthUserDTO(*user),
		Session: ToSessionDTO(*session),
	}, nil
}

// Login handles the password authentication process
func (s *AuthFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	user, err := s.userRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup user", err)
	}
	if user == nil {
		_ = s.createAuditLog(ctx, nil, models.AuditActionLoginFailed, "Login failed: unknown email", false, nil, metadata)
		return nil, NewBusinessError("INVALID_CREDENTIALS", "Invalid email or password", ErrUserNotFound)
	}
	if !utils.IsTrue(user.IsActive) {
		return nil, NewBusinessError("ACCOUNT_INACTIVE", "Account is inactive", ErrAccountInactive)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		errMsg := "Login failed: incorrect password"
		_ = s.createAuditLog(ctx, user, models.AuditActionLoginFailed, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("INVALID_CREDENTIALS", "Invalid email or password", ErrIncorrectPassword)
	}

	var session *models.Session
	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		session, err = s.createSession(txCtx, user, metadata)
		if err != nil {
			return err
		}
		return s.userRepo.UpdateLastLogin(txCtx, user.ID)
	})
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}

	msg := fmt.Sprintf("Login succeeded: %s", user.UUID.String())
	_ = s.createAuditLog(ctx, user, models.AuditActionLogin, msg, true, nil, metadata)

	return &dto.LoginResponse{
		Message: "Login successful",
		User:    ToAuthUserDTO(*user),
		Session: ToSessionDTO(*session),
	}, nil
}

// RefreshToken rotates a token pair using a valid refresh token
func (s *AuthFlowImpl) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.RefreshTokenResponse, error) {
	stored, err := s.sessionRepo.ByRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("SESSION_LOOKUP_FAILED", "Failed to lookup session", err)
	}
	if stored == nil || !utils.IsTrue(stored.IsActive) {
		return nil, NewBusinessError("SESSION_NOT_FOUND", "Session not found", ErrSessionNotFound)
	}
	if stored.IsExpired() {
		return nil, NewBusinessError("SESSION_EXPIRED", "Session has expired", ErrSessionExpired)
	}

	user, err := s.userRepo.ByID(ctx, stored.UserID)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup user", err)
	}
	if user == nil || !utils.IsTrue(user.IsActive) {
		return nil, NewBusinessError("ACCOUNT_INACTIVE", "Account is inactive", ErrAccountInactive)
	}

	accessToken, refreshToken, err := s.tokenService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Failed to refresh tokens", err)
	}

	var session *models.Session
	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.sessionRepo.ExpireSession(txCtx, stored.ID); err != nil {
			return err
		}
		session = s.newSessionModel(user.ID, accessToken, refreshToken, metadata)
		return s.sessionRepo.Save(txCtx, session)
	})
	if err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Failed to rotate session", err)
	}

	return &dto.RefreshTokenResponse{
		Message: "Tokens refreshed successfully",
		Session: ToSessionDTO(*session),
	}, nil
}

// Logout revokes the caller's access token and expires all active sessions
func (s *AuthFlowImpl) Logout(ctx context.Context, req *dto.LogoutRequest, metadata *ClientMetadata) (*dto.LogoutResponse, error) {
	if req.AccessToken != "" {
		if err := s.tokenService.RevokeToken(ctx, req.AccessToken); err != nil {
			return nil, NewBusinessError("LOGOUT_FAILED", "Failed to revoke token", err)
		}
	}

	if err := s.sessionRepo.ExpireAllUserSessions(ctx, req.UserID); err != nil {
		return nil, NewBusinessError("LOGOUT_FAILED", "Failed to expire sessions", err)
	}

	return &dto.LogoutResponse{Message: "Logged out successfully"}, nil
}

// createSession issues a token pair and persists the session row
func (s *AuthFlowImpl) createSession(ctx context.Context, user *models.User, metadata *ClientMetadata) (*models.Session, error) {
	accessToken, refreshToken, err := s.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, err
	}

	session := s.newSessionModel(user.ID, accessToken, refreshToken, metadata)
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *AuthFlowImpl) newSessionModel(userID uint, accessToken, refreshToken string, metadata *ClientMetadata) *models.Session {
	ipAddress := ""
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	return &models.Session{
		UserID:       userID,
		SessionToken: accessToken,
		RefreshToken: refreshToken,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
		IsActive:     utils.ToPtr(true),
		ExpiresAt:    utils.UTCNowAdd(s.jwtConfig.AccessTokenTTL),
		CreatedAt:    utils.UTCNow(),
	}
}

func (s *AuthFlowImpl) createAuditLog(ctx context.Context, user *models.User, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) error {
	var userID *uint
	if user != nil {
		userID = &user.ID
	}
	return writeAuditLog(ctx, s.auditRepo, userID, action, description, success, errorMsg, metadata)
}
