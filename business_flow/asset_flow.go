// Package businessflow contains the core business logic and use cases for asset workflows
package businessflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/markforge/backend/app/dto"
	"github.com/markforge/backend/models"
	"github.com/markforge/backend/repository"
	"github.com/markforge/backend/utils"
	"gorm.io/gorm"
)

// AssetFlow handles the asset review business logic
type AssetFlow interface {
	ListAssets(ctx context.Context, req *dto.ListAssetsRequest) (*dto.ListAssetsResponse, error)
	GetAsset(ctx context.Context, req *dto.GetAssetRequest) (*dto.AssetResponse, error)
	UpdateAsset(ctx context.Context, req *dto.UpdateAssetRequest, metadata *ClientMetadata) (*dto.AssetResponse, error)
	UpdateVersion(ctx context.Context, req *dto.UpdateVersionRequest, metadata *ClientMetadata) (*dto.UpdateVersionResponse, error)
	ApproveVersion(ctx context.Context, req *dto.ApproveVersionRequest, metadata *ClientMetadata) (*dto.ApproveVersionResponse, error)
}

// AssetFlowImpl implements the asset business flow
type AssetFlowImpl struct {
	assetRepo    repository.AssetRepository
	campaignRepo repository.CampaignRepository
	audienceRepo repository.AudienceRepository
	auditRepo    repository.AuditLogRepository
	db           *gorm.DB
}

// NewAssetFlow creates a new asset flow instance
func NewAssetFlow(
	assetRepo repository.AssetRepository,
	campaignRepo repository.CampaignRepository,
	audienceRepo repository.AudienceRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) AssetFlow {
	return &AssetFlowImpl{
		assetRepo:    assetRepo,
		campaignRepo: campaignRepo,
		audienceRepo: audienceRepo,
		auditRepo:    auditRepo,
		db:           db,
	}
}

// ListAssets returns every asset of one of the user's campaigns
func (s *AssetFlowImpl) ListAssets(ctx context.Context, req *dto.ListAssetsRequest) (*dto.ListAssetsResponse, error) {
	campaign, err := s.campaignRepo.ByUUID(ctx, req.CampaignUUID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil || campaign.UserID != req.UserID {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	assets, err := s.assetRepo.ListByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, NewBusinessError("ASSET_LIST_FAILED", "Failed to list assets", err)
	}

	items := make([]dto.AssetDTO, 0, len(assets))
	for _, a := range assets {
		items = append(items, ToAssetDTO(*a, campaign.UUID.String(), s.audienceUUID(ctx, a.AudienceID)))
	}

	return &dto.ListAssetsResponse{
		Message: "Assets retrieved successfully",
		Assets:  items,
	}, nil
}

// GetAsset returns one asset; ownership runs through the parent campaign
func (s *AssetFlowImpl) GetAsset(ctx context.Context, req *dto.GetAssetRequest) (*dto.AssetResponse, error) {
	asset, campaign, err := s.getOwnedAsset(ctx, req.UUID, req.UserID)
	if err != nil {
		return nil, err
	}

	return &dto.AssetResponse{
		Message: "Asset retrieved successfully",
		Asset:   ToAssetDTO(*asset, campaign.UUID.String(), s.audienceUUID(ctx, asset.AudienceID)),
	}, nil
}

// UpdateAsset renames an asset
func (s *AssetFlowImpl) UpdateAsset(ctx context.Context, req *dto.UpdateAssetRequest, metadata *ClientMetadata) (*dto.AssetResponse, error) {
	asset, campaign, err := s.getOwnedAsset(ctx, req.UUID, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}

	if err := s.assetRepo.UpdateWithVersionCheck(ctx, asset); err != nil {
		if repository.IsStaleVersion(err) {
			return nil, NewBusinessError("CONCURRENT_UPDATE", "Asset was modified concurrently", ErrConcurrentUpdate)
		}
		return nil, NewBusinessError("ASSET_UPDATE_FAILED", "Asset update failed", err)
	}

	msg := fmt.Sprintf("Asset updated: %s", asset.UUID.String())
	_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionAssetEdited, msg, true, nil, metadata)

	return &dto.AssetResponse{
		Message: "Asset updated successfully",
		Asset:   ToAssetDTO(*asset, campaign.UUID.String(), s.audienceUUID(ctx, asset.AudienceID)),
	}, nil
}

// UpdateVersion applies field-level edits to one version. Edits must match
// the asset's channel shape: email fields on an email asset, meta ad fields
// on a meta_ads asset. Any edit moves the version to "edited" unless the
// request carries an explicit status.
func (s *AssetFlowImpl) UpdateVersion(ctx context.Context, req *dto.UpdateVersionRequest, metadata *ClientMetadata) (*dto.UpdateVersionResponse, error) {
	asset, _, err := s.getOwnedAsset(ctx, req.AssetUUID, req.UserID)
	if err != nil {
		return nil, err
	}

	version, err := s.findVersion(asset, req.VersionID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && (asset.ChannelType != models.ChannelEmail || version.Content.Email == nil) {
		return nil, NewBusinessError("CONTENT_SHAPE_MISMATCH", "Email edits do not match the asset's channel", ErrContentShapeMismatch)
	}
	if req.MetaAd != nil && (asset.ChannelType != models.ChannelMetaAds || version.Content.MetaAd == nil) {
		return nil, NewBusinessError("CONTENT_SHAPE_MISMATCH", "Meta ad edits do not match the asset's channel", ErrContentShapeMismatch)
	}

	edited := false
	if req.VersionName != nil {
		version.VersionName = *req.VersionName
		edited = true
	}
	if req.Email != nil {
		applyEmailEdits(version.Content.Email, req.Email)
		edited = true
	}
	if req.MetaAd != nil {
		applyMetaAdEdits(version.Content.MetaAd, req.MetaAd)
		edited = true
	}

	if edited {
		version.Status = models.VersionStatusEdited
		version.EditedAt = utils.ToPtr(utils.UTCNow())
	}
	if req.Status != nil {
		version.Status = models.VersionStatus(*req.Status)
	}

	if err := s.assetRepo.UpdateWithVersionCheck(ctx, asset); err != nil {
		if repository.IsStaleVersion(err) {
			return nil, NewBusinessError("CONCURRENT_UPDATE", "Asset was modified concurrently", ErrConcurrentUpdate)
		}
		return nil, NewBusinessError("ASSET_UPDATE_FAILED", "Version update failed", err)
	}

	msg := fmt.Sprintf("Asset version edited: %s/%s", asset.UUID.String(), version.ID.String())
	_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionAssetEdited, msg, true, nil, metadata)

	return &dto.UpdateVersionResponse{
		Message: "Version updated successfully",
		Version: ToAssetVersionDTO(*version),
	}, nil
}

// ApproveVersion marks one version approved
func (s *AssetFlowImpl) ApproveVersion(ctx context.Context, req *dto.ApproveVersionRequest, metadata *ClientMetadata) (*dto.ApproveVersionResponse, error) {
	asset, _, err := s.getOwnedAsset(ctx, req.AssetUUID, req.UserID)
	if err != nil {
		return nil, err
	}

	version, err := s.findVersion(asset, req.VersionID)
	if err != nil {
		return nil, err
	}

	version.Status = models.VersionStatusApproved

	if err := s.assetRepo.UpdateWithVersionCheck(ctx, asset); err != nil {
		if repository.IsStaleVersion(err) {
			return nil, NewBusinessError("CONCURRENT_UPDATE", "Asset was modified concurrently", ErrConcurrentUpdate)
		}
		return nil, NewBusinessError("ASSET_UPDATE_FAILED", "Version approval failed", err)
	}

	msg := fmt.Sprintf("Asset version approved: %s/%s", asset.UUID.String(), version.ID.String())
	_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionVersionApproved, msg, true, nil, metadata)

	return &dto.ApproveVersionResponse{
		Message:         "Version approved successfully",
		Version:         ToAssetVersionDTO(*version),
		IsFullyApproved: asset.IsFullyApproved(),
	}, nil
}

func applyEmailEdits(content *models.EmailContent, edits *dto.EmailContentUpdateDTO) {
	if edits.SubjectLine != nil {
		content.SubjectLine = *edits.SubjectLine
	}
	if edits.Preheader != nil {
		content.Preheader = *edits.Preheader
	}
	if edits.Headline != nil {
		content.Headline = *edits.Headline
	}
	if edits.BodyCopy != nil {
		content.BodyCopy = *edits.BodyCopy
	}
	if edits.CTAText != nil {
		content.CTAText = *edits.CTAText
	}
}

func applyMetaAdEdits(content *models.MetaAdContent, edits *dto.MetaAdContentUpdateDTO) {
	if edits.PrimaryText != nil {
		content.PrimaryText = *edits.PrimaryText
	}
	if edits.Headline != nil {
		content.Headline = *edits.Headline
	}
	if edits.Description != nil {
		content.Description = *edits.Description
	}
	if edits.CTAButton != nil {
		content.CTAButton = *edits.CTAButton
	}
}

// findVersion resolves a version by id inside an asset
func (s *AssetFlowImpl) findVersion(asset *models.Asset, versionID string) (*models.AssetVersion, error) {
	id, err := uuid.Parse(versionID)
	if err != nil {
		return nil, NewBusinessError("VERSION_NOT_FOUND", "Version not found", ErrVersionNotFound)
	}
	version := asset.VersionByID(id)
	if version == nil {
		return nil, NewBusinessError("VERSION_NOT_FOUND", "Version not found", ErrVersionNotFound)
	}
	return version, nil
}

func (s *AssetFlowImpl) audienceUUID(ctx context.Context, audienceID uint) string {
	audience, err := s.audienceRepo.ByID(ctx, audienceID)
	if err != nil || audience == nil {
		return ""
	}
	return audience.UUID.String()
}

// getOwnedAsset resolves an asset by UUID; ownership runs through the
// parent campaign
func (s *AssetFlowImpl) getOwnedAsset(ctx context.Context, uuid string, userID uint) (*models.Asset, *models.Campaign, error) {
	asset, err := s.assetRepo.ByUUID(ctx, uuid)
	if err != nil {
		return nil, nil, NewBusinessError("ASSET_LOOKUP_FAILED", "Failed to lookup asset", err)
	}
	if asset == nil {
		return nil, nil, NewBusinessError("ASSET_NOT_FOUND", "Asset not found", ErrAssetNotFound)
	}

	campaign, err := s.campaignRepo.ByID(ctx, asset.CampaignID)
	if err != nil {
		return nil, nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil || campaign.UserID != userID {
		return nil, nil, NewBusinessError("ASSET_NOT_FOUND", "Asset not found", ErrAssetNotFound)
	}

	return asset, campaign, nil
}
