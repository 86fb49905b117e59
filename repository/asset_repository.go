package repository

import (
	"context"

	"github.com/markforge/backend/models"
	"github.com/markforge/backend/utils"
	"gorm.io/gorm"
)

// AssetRepositoryImpl implements the AssetRepository interface
type AssetRepositoryImpl struct {
	*BaseRepository[models.Asset, models.AssetFilter]
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &AssetRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Asset, models.AssetFilter](db),
	}
}

// ByUUID retrieves an asset by UUID
func (r *AssetRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Asset, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.AssetFilter{UUID: &parsedUUID}
	assets, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, nil
	}
	return assets[0], nil
}

// ListByCampaign retrieves all assets of a campaign in creation order
func (r *AssetRepositoryImpl) ListByCampaign(ctx context.Context, campaignID uint) ([]*models.Asset, error) {
	filter := models.AssetFilter{CampaignID: &campaignID}
	return r.ByFilter(ctx, filter, "id ASC", 0, 0)
}

// Update saves the full asset record without a lock check
func (r *AssetRepositoryImpl) Update(ctx context.Context, asset *models.Asset) error {
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

	asset.UpdatedAt = utils.UTCNowPtr()
	err = db.Save(asset).Error
	if err != nil {
		return err
	}

	return nil
}

// UpdateWithVersionCheck persists the asset only if its lock_version column
// still matches the value it was read with, then increments it. A stale write
// returns ErrStaleVersion so concurrent regenerations cannot silently clobber
// each other's version lists.
func (r *AssetRepositoryImpl) UpdateWithVersionCheck(ctx context.Context, asset *models.Asset) error {
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

	readVersion := asset.LockVersion
	asset.LockVersion = readVersion + 1
	asset.UpdatedAt = utils.UTCNowPtr()

	res := db.Model(&models.Asset{}).
		Where("id = ? AND lock_version = ?", asset.ID, readVersion).
		Updates(map[string]any{
			"name":              asset.Name,
			"generation_prompt": asset.GenerationPrompt,
			"versions":          asset.Versions,
			"lock_version":      asset.LockVersion,
			"updated_at":        asset.UpdatedAt,
		})
	if res.Error != nil {
		err = res.Error
		return err
	}
	if res.RowsAffected == 0 {
		err = ErrStaleVersion
		return err
	}

	return nil
}

// DeleteByCampaign removes all assets of a campaign (cascade on campaign delete)
func (r *AssetRepositoryImpl) DeleteByCampaign(ctx context.Context, campaignID uint) error {
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

	err = db.Where("campaign_id = ?", campaignID).Delete(&models.Asset{}).Error
	if err != nil {
		return err
	}

	return nil
}

// ByFilter retrieves assets based on filter criteria
func (r *AssetRepositoryImpl) ByFilter(ctx context.Context, filter models.AssetFilter, orderBy string, limit, offset int) ([]*models.Asset, error) {
	db := r.getDB(ctx)

	var assets []*models.Asset
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

	err := query.Find(&assets).Error
	if err != nil {
		return nil, err
	}

	return assets, nil
}

// Count returns the number of assets matching the filter
func (r *AssetRepositoryImpl) Count(ctx context.Context, filter models.AssetFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := r.applyFilter(db.Model(&models.Asset{}), filter).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any asset matching the filter exists
func (r *AssetRepositoryImpl) Exists(ctx context.Context, filter models.AssetFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *AssetRepositoryImpl) applyFilter(db *gorm.DB, filter models.AssetFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.CampaignID != nil {
		db = db.Where("campaign_id = ?", *filter.CampaignID)
	}
	if filter.AudienceID != nil {
		db = db.Where("audience_id = ?", *filter.AudienceID)
	}
	if filter.ChannelType != nil {
		db = db.Where("channel_type = ?", *filter.ChannelType)
	}

	return db
}
