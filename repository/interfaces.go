// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/markforge/backend/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// UserRepository defines operations for users
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByUUID(ctx context.Context, uuid string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID uint) error
}

// BrandGuideRepository defines operations for brand guides
type BrandGuideRepository interface {
	Repository[models.BrandGuide, models.BrandGuideFilter]
	ByUserID(ctx context.Context, userID uint) (*models.BrandGuide, error)
	ByUUID(ctx context.Context, uuid string) (*models.BrandGuide, error)
	Update(ctx context.Context, guide *models.BrandGuide) error
}

// AudienceRepository defines operations for audiences
type AudienceRepository interface {
	Repository[models.Audience, models.AudienceFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Audience, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Audience, error)
	CountByUser(ctx context.Context, userID uint) (int, error)
	Update(ctx context.Context, audience *models.Audience) error
}

// CampaignRepository defines operations for campaigns
type CampaignRepository interface {
	Repository[models.Campaign, models.CampaignFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Campaign, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Campaign, error)
	CountByUser(ctx context.Context, userID uint) (int, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	UpdateStatus(ctx context.Context, id uint, status models.CampaignStatus) error
}

// AssetRepository defines operations for assets
type AssetRepository interface {
	Repository[models.Asset, models.AssetFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Asset, error)
	ListByCampaign(ctx context.Context, campaignID uint) ([]*models.Asset, error)
	Update(ctx context.Context, asset *models.Asset) error
	UpdateWithVersionCheck(ctx context.Context, asset *models.Asset) error
	DeleteByCampaign(ctx context.Context, campaignID uint) error
}

// SessionRepository defines operations for sessions
type SessionRepository interface {
	Repository[models.Session, models.SessionFilter]
	BySessionToken(ctx context.Context, token string) (*models.Session, error)
	ByRefreshToken(ctx context.Context, token string) (*models.Session, error)
	ExpireSession(ctx context.Context, sessionID uint) error
	ExpireAllUserSessions(ctx context.Context, userID uint) error
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.AuditLog, error)
}
