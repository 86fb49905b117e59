package repository

import (
	"context"

	"github.com/markforge/backend/models"
	"github.com/markforge/backend/utils"
	"gorm.io/gorm"
)

// AudienceRepositoryImpl implements the AudienceRepository interface
type AudienceRepositoryImpl struct {
	*BaseRepository[models.Audience, models.AudienceFilter]
}

// NewAudienceRepository creates a new audience repository
func NewAudienceRepository(db *gorm.DB) AudienceRepository {
	return &AudienceRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Audience, models.AudienceFilter](db),
	}
}

// ByUUID retrieves an audience by UUID
func (r *AudienceRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Audience, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.AudienceFilter{UUID: &parsedUUID}
	audiences, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(audiences) == 0 {
		return nil, nil
	}
	return audiences[0], nil
}

// ListByUser retrieves the user's audiences with pagination
func (r *AudienceRepositoryImpl) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Audience, error) {
	filter := models.AudienceFilter{UserID: &userID}
	return r.ByFilter(ctx, filter, "created_at ASC", limit, offset)
}

// CountByUser counts audiences by user ID
func (r *AudienceRepositoryImpl) CountByUser(ctx context.Context, userID uint) (int, error) {
	filter := models.AudienceFilter{UserID: &userID}
	count, err := r.Count(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Update saves the full audience record
func (r *AudienceRepositoryImpl) Update(ctx context.Context, audience *models.Audience) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	audience.UpdatedAt = utils.UTCNowPtr()
	err = db.Save(audience).Error
	if err != nil {
		return err
	}

	return nil
}

// ByFilter retrieves audiences based on filter criteria
func (r *AudienceRepositoryImpl) ByFilter(ctx context.Context, filter models.AudienceFilter, orderBy string, limit, offset int) ([]*models.Audience, error) {
	db := r.getDB(ctx)

	var audiences []*models.Audience
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

	err := query.Find(&audiences).Error
	if err != nil {
		return nil, err
	}

	return audiences, nil
}

// Count returns the number of audiences matching the filter
func (r *AudienceRepositoryImpl) Count(ctx context.Context, filter models.AudienceFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := r.applyFilter(db.Model(&models.Audience{}), filter).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any audience matching the filter exists
func (r *AudienceRepositoryImpl) Exists(ctx context.Context, filter models.AudienceFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *AudienceRepositoryImpl) applyFilter(db *gorm.DB, filter models.AudienceFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.Name != nil {
		db = db.Where("name = ?", *filter.Name)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Level != nil {
		db = db.Where("propensity = ?", *filter.Level)
	}

	return db
}
