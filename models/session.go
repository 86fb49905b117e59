package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session tracks one issued token pair for a user
type Session struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UUID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_sessions_uuid" json:"uuid"`
	UserID         uint       `gorm:"not null;index:idx_sessions_user_id" json:"user_id"`
	SessionToken   string     `gorm:"size:512;not null;uniqueIndex:uk_sessions_token" json:"session_token"`
	RefreshToken   string     `gorm:"size:512;not null;uniqueIndex:uk_sessions_refresh" json:"refresh_token"`
	IPAddress      string     `gorm:"size:45" json:"ip_address"`
	UserAgent      string     `gorm:"size:512" json:"user_agent"`
	IsActive       *bool      `gorm:"not null;default:true" json:"is_active"`
	ExpiresAt      time.Time  `gorm:"not null;index:idx_sessions_expires_at" json:"expires_at"`
	CreatedAt      time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`

	// Relations
	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

// TableName returns the table name for the model
func (Session) TableName() string {
	return "sessions"
}

// BeforeCreate is called before creating a new record
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == uuid.Nil {
		s.UUID = uuid.New()
	}
	return nil
}

// IsExpired checks if the session has passed its expiry
func (s *Session) IsExpired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}

// SessionFilter represents filter criteria for sessions
type SessionFilter struct {
	ID           *uint      `json:"id,omitempty"`
	UUID         *uuid.UUID `json:"uuid,omitempty"`
	UserID       *uint      `json:"user_id,omitempty"`
	SessionToken *string    `json:"session_token,omitempty"`
	RefreshToken *string    `json:"refresh_token,omitempty"`
	IsActive     *bool      `json:"is_active,omitempty"`
}
