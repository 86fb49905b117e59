package dto

// SignupRequest represents the request to create a new account
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
}

// LoginRequest represents the request to authenticate
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest represents the request to rotate a token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest represents the request to end the current session
type LogoutRequest struct {
	UserID      uint   `json:"-"`
	AccessToken string `json:"-"`
}

// AuthUserDTO represents the user payload in authentication responses
type AuthUserDTO struct {
	ID        uint   `json:"id"`
	UUID      string `json:"uuid"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  *bool  `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// SessionDTO represents the issued token pair in authentication responses
type SessionDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	CreatedAt    string `json:"created_at"`
}

// SignupResponse represents the response to a successful signup
type SignupResponse struct {
	Message string      `json:"message"`
	User    AuthUserDTO `json:"user"`
	Session SessionDTO  `json:"session"`
}

// LoginResponse represents the response to a successful login
type LoginResponse struct {
	Message string      `json:"message"`
	User    AuthUserDTO `json:"user"`
	Session SessionDTO  `json:"session"`
}

// RefreshTokenResponse represents the response to a successful token refresh
type RefreshTokenResponse struct {
	Message string     `json:"message"`
	Session SessionDTO `json:"session"`
}

// LogoutResponse represents the response to a successful logout
type LogoutResponse struct {
	Message string `json:"message"`
}
