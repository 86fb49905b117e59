package repository

import (
	"context"

	"github.com/markforge/backend/models"
	"github.com/markforge/backend/utils"
	"gorm.io/gorm"
)

// BrandGuideRepositoryImpl implements the BrandGuideRepository interface
type BrandGuideRepositoryImpl struct {
	*BaseRepository[models.BrandGuide, models.BrandGuideFilter]
}

// NewBrandGuideRepository creates a new brand guide repository
func NewBrandGuideRepository(db *gorm.DB) BrandGuideRepository {
	return &BrandGuideRepositoryImpl{
		BaseRepository: NewBaseRepository[models.BrandGuide, models.BrandGuideFilter](db),
	}
}

// ByUserID retrieves the user's brand guide (one per user)
func (r *BrandGuideRepositoryImpl) ByUserID(ctx context.Context, userID uint) (*models.BrandGuide, error) {
	filter := models.BrandGuideFilter{UserID: &userID}
	guides, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(guides) == 0 {
		return nil, nil
	}
	return guides[0], nil
}

// ByUUID retrieves a brand guide by UUID
func (r *BrandGuideRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.BrandGuide, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.BrandGuideFilter{UUID: &parsedUUID}
	guides, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(guides) == 0 {
		return nil, nil
	}
	return guides[0], nil
}

// Update saves the full guide record
func (r *BrandGuideRepositoryImpl) Update(ctx context.Context, guide *models.BrandGuide) error {
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

	guide.UpdatedAt = utils.UTCNowPtr()
	err = db.Save(guide).Error
	if err != nil {
		return err
	}

	return nil
}

// ByFilter retrieves brand guides based on filter criteria
func (r *BrandGuideRepositoryImpl) ByFilter(ctx context.Context, filter models.BrandGuideFilter, orderBy string, limit, offset int) ([]*models.BrandGuide, error) {
	db := r.getDB(ctx)

	var guides []*models.BrandGuide
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

	err := query.Find(&guides).Error
	if err != nil {
		return nil, err
	}

	return guides, nil
}

// Count returns the number of brand guides matching the filter
func (r *BrandGuideRepositoryImpl) Count(ctx context.Context, filter models.BrandGuideFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := r.applyFilter(db.Model(&models.BrandGuide{}), filter).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any brand guide matching the filter exists
func (r *BrandGuideRepositoryImpl) Exists(ctx context.Context, filter models.BrandGuideFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *BrandGuideRepositoryImpl) applyFilter(db *gorm.DB, filter models.BrandGuideFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}

	return db
}
