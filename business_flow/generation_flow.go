// Package businessflow contains the core business logic and use cases for content generation workflows
package businessflow

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/markforge/backend/app/dto"
	"github.com/markforge/backend/app/services"
	"github.com/markforge/backend/config"
	"github.com/markforge/backend/models"
	"github.com/markforge/backend/repository"
	"github.com/markforge/backend/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	generationAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "markforge_generation_attempts_total",
		Help: "Content generation calls by channel and strategy",
	}, []string{"channel", "strategy"})

	generationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "markforge_generation_failures_total",
		Help: "Failed content generation calls by channel and strategy",
	}, []string{"channel", "strategy"})

	versionsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "markforge_versions_generated_total",
		Help: "Successfully generated asset versions by channel",
	}, []string{"channel"})
)

// GenerationFlow handles bulk campaign generation and per-asset regeneration
type GenerationFlow interface {
	GenerateCampaignAssets(ctx context.Context, req *dto.GenerateCampaignRequest, metadata *ClientMetadata) (*dto.GenerateCampaignResponse, error)
	RegenerateAsset(ctx context.Context, req *dto.RegenerateAssetRequest, metadata *ClientMetadata) (*dto.AssetResponse, error)
}

// GenerationFlowImpl implements the generation business flow
type GenerationFlowImpl struct {
	campaignRepo     repository.CampaignRepository
	audienceRepo     repository.AudienceRepository
	guideRepo        repository.BrandGuideRepository
	assetRepo        repository.AssetRepository
	auditRepo        repository.AuditLogRepository
	generator        services.ContentGenerator
	generationConfig config.GenerationConfig
	logger           *log.Logger
	db               *gorm.DB
}

// NewGenerationFlow creates a new generation flow instance
func NewGenerationFlow(
	campaignRepo repository.CampaignRepository,
	audienceRepo repository.AudienceRepository,
	guideRepo repository.BrandGuideRepository,
	assetRepo repository.AssetRepository,
	auditRepo repository.AuditLogRepository,
	generator services.ContentGenerator,
	generationConfig config.GenerationConfig,
	logger *log.Logger,
	db *gorm.DB,
) GenerationFlow {
	if logger == nil {
		logger = log.Default()
	}
	return &GenerationFlowImpl{
		campaignRepo:     campaignRepo,
		audienceRepo:     audienceRepo,
		guideRepo:        guideRepo,
		assetRepo:        assetRepo,
		auditRepo:        auditRepo,
		generator:        generator,
		generationConfig: generationConfig,
		logger:           logger,
		db:               db,
	}
}

// GenerateCampaignAssets runs the bulk pipeline: one asset per
// (segment, enabled channel) pair, with one version per default strategy.
// Individual generation failures are logged and skipped; the run keeps going.
func (s *GenerationFlowImpl) GenerateCampaignAssets(ctx context.Context, req *dto.GenerateCampaignRequest, metadata *ClientMetadata) (*dto.GenerateCampaignResponse, error) {
	campaign, err := s.getOwnedCampaign(ctx, req.UUID, req.UserID)
	if err != nil {
		return nil, err
	}

	// All preconditions are checked before the first external call
	if len(campaign.Spec.Segments) == 0 {
		return nil, NewBusinessError("NO_SEGMENTS_CONFIGURED", "Campaign has no segments", ErrNoSegmentsConfigured)
	}
	enabledChannels := campaign.Spec.EnabledChannels()
	if len(enabledChannels) == 0 {
		return nil, NewBusinessError("NO_ENABLED_CHANNELS", "Campaign has no enabled channels", ErrNoEnabledChannels)
	}

	guide, err := s.guideRepo.ByID(ctx, campaign.BrandGuideID)
	if err != nil {
		return nil, NewBusinessError("BRAND_GUIDE_LOOKUP_FAILED", "Failed to lookup brand guide", err)
	}
	if guide == nil {
		return nil, NewBusinessError("BRAND_GUIDE_REQUIRED", "Campaign's brand guide no longer exists", ErrBrandGuideRequired)
	}

	audienceUUIDs := make(map[uint]string)
	var created []*models.Asset

	// Segments iterate in declared order; a deleted audience skips its
	// segment rather than failing the run
	for _, segment := range campaign.Spec.Segments {
		audience, err := s.audienceRepo.ByID(ctx, segment.AudienceID)
		if err != nil {
			return nil, NewBusinessError("AUDIENCE_LOOKUP_FAILED", "Failed to lookup audience", err)
		}
		if audience == nil {
			s.logger.Printf("generation: campaign %s segment references missing audience %d, skipping",
				campaign.UUID, segment.AudienceID)
			continue
		}
		audienceUUIDs[audience.ID] = audience.UUID.String()

		for _, channel := range enabledChannels {
			asset := s.buildAsset(ctx, campaign, guide, audience, channel, segment.Instructions, metadata)
			if asset == nil {
				continue
			}
			if err := s.assetRepo.Save(ctx, asset); err != nil {
				return nil, NewBusinessError("ASSET_SAVE_FAILED", "Failed to persist generated asset", err)
			}
			created = append(created, asset)
		}
	}

	newStatus := campaign.Status
	flipStatus := campaign.Status == models.CampaignStatusDraft
	if s.generationConfig.RequireAssetForStatus && len(created) == 0 {
		flipStatus = false
	}
	if flipStatus {
		if err := s.campaignRepo.UpdateStatus(ctx, campaign.ID, models.CampaignStatusGenerated); err != nil {
			return nil, NewBusinessError("CAMPAIGN_STATUS_UPDATE_FAILED", "Failed to update campaign status", err)
		}
		newStatus = models.CampaignStatusGenerated
	}

	msg := fmt.Sprintf("Campaign generated: %s (%d of %d assets)",
		campaign.UUID.String(), len(created), campaign.ExpectedAssetCount())
	_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionCampaignGenerated, msg, true, nil, metadata)

	assetDTOs := make([]dto.AssetDTO, 0, len(created))
	for _, a := range created {
		assetDTOs = append(assetDTOs, ToAssetDTO(*a, campaign.UUID.String(), audienceUUIDs[a.AudienceID]))
	}

	return &dto.GenerateCampaignResponse{
		Message:        "Campaign generation completed",
		Status:         string(newStatus),
		ExpectedAssets: campaign.ExpectedAssetCount(),
		CreatedAssets:  len(created),
		Assets:         assetDTOs,
	}, nil
}

// buildAsset generates the default strategy versions for one
// (audience, channel) pair. Returns nil when every strategy failed: assets
// with zero versions are never persisted.
func (s *GenerationFlowImpl) buildAsset(ctx context.Context, campaign *models.Campaign, guide *models.BrandGuide, audience *models.Audience, channel models.CampaignChannel, instructions string, metadata *ClientMetadata) *models.Asset {
	asset := &models.Asset{
		CampaignID:  campaign.ID,
		AudienceID:  audience.ID,
		ChannelType: channel.Type,
		AssetType:   channel.Type.AssetTypeFor(),
		Name:        fmt.Sprintf("%s - %s", audience.Name, channel.Type.DisplaySuffix()),
		Versions:    models.AssetVersions{},
	}

	for _, strategy := range models.DefaultStrategies {
		generationAttempts.WithLabelValues(string(channel.Type), string(strategy)).Inc()

		result, err := s.generator.GenerateVersion(ctx, services.GenerationRequest{
			BrandGuide:   guide,
			Campaign:     campaign,
			Audience:     audience,
			Channel:      channel.Type,
			Strategy:     strategy,
			Instructions: instructions,
		})
		if err != nil {
			generationFailures.WithLabelValues(string(channel.Type), string(strategy)).Inc()
			s.logger.Printf("generation: campaign %s audience %s channel %s strategy %s failed: %v",
				campaign.UUID, audience.UUID, channel.Type, strategy, err)
			errMsg := fmt.Sprintf("Generation failed for %s/%s: %s", channel.Type, strategy, err.Error())
			_ = writeAuditLog(ctx, s.auditRepo, &campaign.UserID, models.AuditActionGenerationFailed, errMsg, false, &errMsg, metadata)
			continue
		}

		versionsGenerated.WithLabelValues(string(channel.Type)).Inc()
		asset.Versions = append(asset.Versions, models.AssetVersion{
			ID:          uuid.New(),
			VersionName: strategy.Label(),
			Strategy:    strategy,
			Content:     result.Content,
			Status:      models.VersionStatusGenerated,
			GeneratedAt: utils.UTCNow(),
		})
		asset.GenerationPrompt = result.Prompt
	}

	if len(asset.Versions) == 0 {
		return nil
	}
	return asset
}

// RegenerateAsset appends one new version to an existing asset. Unlike the
// bulk pipeline, a generation failure here is reported to the caller.
func (s *GenerationFlowImpl) RegenerateAsset(ctx context.Context, req *dto.RegenerateAssetRequest, metadata *ClientMetadata) (*dto.AssetResponse, error) {
	asset, campaign, err := s.getOwnedAsset(ctx, req.UUID, req.UserID)
	if err != nil {
		return nil, err
	}

	guide, err := s.guideRepo.ByID(ctx, campaign.BrandGuideID)
	if err != nil {
		return nil, NewBusinessError("BRAND_GUIDE_LOOKUP_FAILED", "Failed to lookup brand guide", err)
	}
	if guide == nil {
		return nil, NewBusinessError("BRAND_GUIDE_REQUIRED", "Campaign's brand guide no longer exists", ErrBrandGuideRequired)
	}

	audience, err := s.audienceRepo.ByID(ctx, asset.AudienceID)
	if err != nil {
		return nil, NewBusinessError("AUDIENCE_LOOKUP_FAILED", "Failed to lookup audience", err)
	}
	if audience == nil {
		return nil, NewBusinessError("AUDIENCE_NOT_FOUND", "Asset's audience no longer exists", ErrAudienceNotFound)
	}

	strategy := models.StrategyConversion
	if req.Strategy != nil {
		strategy = models.Strategy(*req.Strategy)
	}
	instructions := ""
	if req.Instructions != nil {
		instructions = *req.Instructions
	}

	generationAttempts.WithLabelValues(string(asset.ChannelType), string(strategy)).Inc()

	result, err := s.generator.GenerateVersion(ctx, services.GenerationRequest{
		BrandGuide:   guide,
		Campaign:     campaign,
		Audience:     audience,
		Channel:      asset.ChannelType,
		Strategy:     strategy,
		Instructions: instructions,
	})
	if err != nil {
		generationFailures.WithLabelValues(string(asset.ChannelType), string(strategy)).Inc()
		errMsg := fmt.Sprintf("Regeneration failed for asset %s: %s", asset.UUID.String(), err.Error())
		_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionRegenerationFailed, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("GENERATION_FAILED", "Content generation failed", err)
	}

	versionsGenerated.WithLabelValues(string(asset.ChannelType)).Inc()

	version := models.AssetVersion{
		ID:          uuid.New(),
		VersionName: fmt.Sprintf("%s (Regenerated)", strategy.Label()),
		Strategy:    strategy,
		Content:     result.Content,
		Status:      models.VersionStatusGenerated,
		GeneratedAt: utils.UTCNow(),
	}

	// Append drops the oldest version once the cap is reached
	asset.Versions = asset.Versions.Append(version)
	asset.GenerationPrompt = result.Prompt

	if err := s.assetRepo.UpdateWithVersionCheck(ctx, asset); err != nil {
		if repository.IsStaleVersion(err) {
			return nil, NewBusinessError("CONCURRENT_UPDATE", "Asset was modified concurrently", ErrConcurrentUpdate)
		}
		return nil, NewBusinessError("ASSET_SAVE_FAILED", "Failed to persist regenerated asset", err)
	}

	msg := fmt.Sprintf("Asset regenerated: %s (%s)", asset.UUID.String(), strategy)
	_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionAssetRegenerated, msg, true, nil, metadata)

	audienceUUID := ""
	if audience != nil {
		audienceUUID = audience.UUID.String()
	}

	return &dto.AssetResponse{
		Message: "Asset regenerated successfully",
		Asset:   ToAssetDTO(*asset, campaign.UUID.String(), audienceUUID),
	}, nil
}

// getOwnedCampaign resolves a campaign by UUID and checks ownership
func (s *GenerationFlowImpl) getOwnedCampaign(ctx context.Context, uuid string, userID uint) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.ByUUID(ctx, uuid)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil || campaign.UserID != userID {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}
	return campaign, nil
}

// getOwnedAsset resolves an asset by UUID; ownership runs through the
// parent campaign
func (s *GenerationFlowImpl) getOwnedAsset(ctx context.Context, uuid string, userID uint) (*models.Asset, *models.Campaign, error) {
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
