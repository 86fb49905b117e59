package repository

import (
	"context"

	"github.com/markforge/backend/models"
	"github.com/markforge/backend/utils"
	"gorm.io/gorm"
)

// SessionRepositoryImpl implements the SessionRepository interface
type SessionRepositoryImpl struct {
	*BaseRepository[models.Session, models.SessionFilter]
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &SessionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Session, models.SessionFilter](db),
	}
}

// BySessionToken retrieves a session by its access token
func (r *SessionRepositoryImpl) BySessionToken(ctx context.Context, token string) (*models.Session, error) {
	filter := models.SessionFilter{SessionToken: &token}
	sessions, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return sessions[0], nil
}

// ByRefreshToken retrieves a session by its refresh token
func (r *SessionRepositoryImpl) ByRefreshToken(ctx context.Context, token string) (*models.Session, error) {
	filter := models.SessionFilter{RefreshToken: &token}
	sessions, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return sessions[0], nil
}

// ExpireSession deactivates a single session
func (r *SessionRepositoryImpl) ExpireSession(ctx context.Context, sessionID uint) error {
	db := r.getDB(ctx)
	return db.Model(&models.Session{}).
		Where("id = ?", sessionID).
		Updates(map[string]any{
			"is_active":  false,
			"expires_at": utils.UTCNow(),
		}).Error
}

// ExpireAllUserSessions deactivates every active session of a user
func (r *SessionRepositoryImpl) ExpireAllUserSessions(ctx context.Context, userID uint) error {
	db := r.getDB(ctx)
	return db.Model(&models.Session{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Updates(map[string]any{
			"is_active":  false,
			"expires_at": utils.UTCNow(),
		}).Error
}

// ByFilter retrieves sessions based on filter criteria
func (r *SessionRepositoryImpl) ByFilter(ctx context.Context, filter models.SessionFilter, orderBy string, limit, offset int) ([]*models.Session, error) {
	db := r.getDB(ctx)

	var sessions []*models.Session
	query := r.applyFilter(db, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// Count returns the number of sessions matching the filter
func (r *SessionRepositoryImpl) Count(ctx context.Context, filter models.SessionFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := r.applyFilter(db.Model(&models.Session{}), filter).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any session matching the filter exists
func (r *SessionRepositoryImpl) Exists(ctx context.Context, filter models.SessionFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *SessionRepositoryImpl) applyFilter(db *gorm.DB, filter models.SessionFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.SessionToken != nil {
		db = db.Where("session_token = ?", *filter.SessionToken)
	}
	if filter.RefreshToken != nil {
		db = db.Where("refresh_token = ?", *filter.RefreshToken)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}

	return db
}
