package utils

import (
	"time"
)

// ContextKey is the type for request-scoped context values
type ContextKey string

// Request-scoped context keys
const (
	RequestIDKey  ContextKey = "request_id"
	UserAgentKey  ContextKey = "user_agent"
	IPAddressKey  ContextKey = "ip_address"
	EndpointKey   ContextKey = "endpoint"
	TimeoutKey    ContextKey = "timeout"
	CancelFuncKey ContextKey = "cancel_func"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Resource quota defaults; overridable via config
const (
	// DefaultMaxAudiencesPerUser caps the audiences one user may hold
	DefaultMaxAudiencesPerUser = 20

	// DefaultMaxCampaignsPerUser caps the campaigns one user may hold
	DefaultMaxCampaignsPerUser = 50
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
