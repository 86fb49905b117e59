// Package businessflow contains the core business logic and use cases for campaign workflows
package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/markforge/backend/app/dto"
	"github.com/markforge/backend/config"
	"github.com/markforge/backend/models"
	"github.com/markforge/backend/repository"
	"github.com/markforge/backend/utils"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// CampaignFlow handles the campaign business logic
type CampaignFlow interface {
	CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest, metadata *ClientMetadata) (*dto.CampaignResponse, error)
	GetCampaign(ctx context.Context, req *dto.GetCampaignRequest) (*dto.CampaignResponse, error)
	UpdateCampaign(ctx context.Context, req *dto.UpdateCampaignRequest, metadata *ClientMetadata) (*dto.CampaignResponse, error)
	DeleteCampaign(ctx context.Context, req *dto.GetCampaignRequest, metadata *ClientMetadata) (*dto.DeleteCampaignResponse, error)
	ListCampaigns(ctx context.Context, req *dto.ListCampaignsRequest) (*dto.ListCampaignsResponse, error)
	ApproveCampaign(ctx context.Context, req *dto.ChangeCampaignStatusRequest, metadata *ClientMetadata) (*dto.ChangeCampaignStatusResponse, error)
	ArchiveCampaign(ctx context.Context, req *dto.ChangeCampaignStatusRequest, metadata *ClientMetadata) (*dto.ChangeCampaignStatusResponse, error)
	ExportCampaign(ctx context.Context, req *dto.ExportCampaignRequest, metadata *ClientMetadata) (*dto.ExportCampaignResponse, error)
	ExportCampaignXLSX(ctx context.Context, req *dto.ExportCampaignRequest, metadata *ClientMetadata) ([]byte, string, error)
}

// CampaignFlowImpl implements the campaign business flow
type CampaignFlowImpl struct {
	campaignRepo     repository.CampaignRepository
	audienceRepo     repository.AudienceRepository
	guideRepo        repository.BrandGuideRepository
	assetRepo        repository.AssetRepository
	auditRepo        repository.AuditLogRepository
	generationConfig config.GenerationConfig
	db               *gorm.DB
}

// NewCampaignFlow creates a new campaign flow instance
func NewCampaignFlow(
	campaignRepo repository.CampaignRepository,
	audienceRepo repository.AudienceRepository,
	guideRepo repository.BrandGuideRepository,
	assetRepo repository.AssetRepository,
	auditRepo repository.AuditLogRepository,
	generationConfig config.GenerationConfig,
	db *gorm.DB,
) CampaignFlow {
	return &CampaignFlowImpl{
		campaignRepo:     campaignRepo,
		audienceRepo:     audienceRepo,
		guideRepo:        guideRepo,
		assetRepo:        assetRepo,
		auditRepo:        auditRepo,
		generationConfig: generationConfig,
		db:               db,
	}
}

// CreateCampaign creates a new campaign referencing the user's current brand
// guide. The reference is set once and survives later guide edits.
func (s *CampaignFlowImpl) CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest, metadata *ClientMetadata) (*dto.CampaignResponse, error) {
	count, err := s.campaignRepo.CountByUser(ctx, req.UserID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_COUNT_FAILED", "Failed to count campaigns", err)
	}
	if count >= s.generationConfig.MaxCampaignsPerUser {
		return nil, NewBusinessError("CAMPAIGN_LIMIT_EXCEEDED", "Campaign limit exceeded", ErrCampaignLimitExceeded)
	}

	guide, err := s.guideRepo.ByUserID(ctx, req.UserID)
	if err != nil {
		return nil, NewBusinessError("BRAND_GUIDE_LOOKUP_FAILED", "Failed to lookup brand guide", err)
	}
	if guide == nil {
		return nil, NewBusinessError("BRAND_GUIDE_REQUIRED", "A brand guide is required before creating campaigns", ErrBrandGuideRequired)
	}

	segments, err := s.resolveSegments(ctx, req.UserID, req.Segments)
	if err != nil {
		return nil, err
	}

	channels, err := buildChannels(req.Channels)
	if err != nil {
		return nil, err
	}

	if err := validateDates(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		UserID:       req.UserID,
		BrandGuideID: guide.ID,
		Name:         req.Name,
		Status:       models.CampaignStatusDraft,
		Spec: models.CampaignSpec{
			Objective:    req.Objective,
			Description:  req.Description,
			Segments:     segments,
			Channels:     channels,
			KeyMessages:  req.KeyMessages,
			CallToAction: req.CallToAction,
			Urgency:      models.UrgencyLevel(req.Urgency),
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
		},
	}

	if err := s.campaignRepo.Save(ctx, campaign); err != nil {
		errMsg := fmt.Sprintf("Campaign creation failed: %s", err.Error())
		_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionCampaignCreated, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("CAMPAIGN_CREATION_FAILED", "Campaign creation failed", err)
	}

	msg := fmt.Sprintf("Campaign created: %s", campaign.UUID.String())
	_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionCampaignCreated, msg, true, nil, metadata)

	audiences, _ := s.loadSegmentAudiences(ctx, campaign)
	return &dto.CampaignResponse{
		Message:  "Campaign created successfully",
		Campaign: ToCampaignDTO(*campaign, audiences),
	}, nil
}

// GetCampaign returns one of the user's campaigns by UUID
func (s *CampaignFlowImpl) GetCampaign(ctx context.Context, req *dto.GetCampaignRequest) (*dto.CampaignResponse, error) {
	campaign, err := s.getOwnedCampaign(ctx, req.UUID, req.UserID)
	if err != nil {
		return nil, err
	}

	audiences, _ := s.loadSegmentAudiences(ctx, campaign)
	return &dto.CampaignResponse{
		Message:  "Campaign retrieved successfully",
		Campaign: ToCampaignDTO(*campaign, audiences),
	}, nil
}

// UpdateCampaign applies the non-nil fields of the request to the campaign.
// Archived and approved campaigns are immutable.
func (s *CampaignFlowImpl) UpdateCampaign(ctx context.Context, req *dto.UpdateCampaignRequest, metadata *ClientMetadata) (*dto.CampaignResponse, error) {
	campaign, err := s.getOwnedCampaign(ctx, req.UUID, req.UserID)
	if err != nil {
		return nil, err
	}
	if !campaign.IsEditable() {
		return nil, NewBusinessError("CAMPAIGN_NOT_EDITABLE", "Campaign cannot be modified in current status", ErrCampaignNotEditable)
	}

	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Objective != nil {
		campaign.Spec.Objective = *req.Objective
	}
	if req.Description != nil {
		campaign.Spec.Description = *req.Description
	}
	if req.Segments != nil {
		segments, err := s.resolveSegments(ctx, req.UserID, *req.Segments)
		if err != nil {
			return nil, err
		}
		campaign.Spec.Segments = segments
	}
	if req.Channels != nil {
		channels, err := buildChannels(*req.Channels)
		if err != nil {
			return nil, err
		}
		campaign.Spec.Channels = channels
	}
	if req.KeyMessages != nil {
		campaign.Spec.KeyMessages = *req.KeyMessages
	}
	if req.CallToAction != nil {
		campaign.Spec.CallToAction = *req.CallToAction
	}
	if req.Urgency != nil {
		campaign.Spec.Urgency = models.UrgencyLevel(*req.Urgency)
	}
	if req.StartDate != nil {
		campaign.Spec.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		campaign.Spec.EndDate = req.EndDate
	}

	if err := validateDates(campaign.Spec.StartDate, campaign.Spec.EndDate); err != nil {
		return nil, err
	}

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		errMsg := fmt.Sprintf("Campaign update failed: %s", err.Error())
		_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionCampaignUpdated, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("CAMPAIGN_UPDATE_FAILED", "Campaign update failed", err)
	}

	msg := fmt.Sprintf("Campaign updated: %s", campaign.UUID.String())
	_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionCampaignUpdated, msg, true, nil, metadata)

	audiences, _ := s.loadSegmentAudiences(ctx, campaign)
	return &dto.CampaignResponse{
		Message:  "Campaign updated successfully",
		Campaign: ToCampaignDTO(*campaign, audiences),
	}, nil
}

// DeleteCampaign removes the campaign and all of its assets
func (s *CampaignFlowImpl) DeleteCampaign(ctx context.Context, req *dto.GetCampaignRequest, metadata *ClientMetadata) (*dto.DeleteCampaignResponse, error) {
	campaign, err := s.getOwnedCampaign(ctx, req.UUID, req.UserID)
	if err != nil {
		return nil, err
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.assetRepo.DeleteByCampaign(txCtx, campaign.ID); err != nil {
			return err
		}
		return s.campaignRepo.Delete(txCtx, campaign.ID)
	})
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_DELETE_FAILED", "Campaign deletion failed", err)
	}

	msg := fmt.Sprintf("Campaign deleted: %s", campaign.UUID.String())
	_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionCampaignDeleted, msg, true, nil, metadata)

	return &dto.DeleteCampaignResponse{
		Message:       "Campaign deleted successfully",
		DeletedAssets: true,
	}, nil
}

// ListCampaigns returns the user's campaigns with filters and pagination
func (s *CampaignFlowImpl) ListCampaigns(ctx context.Context, req *dto.ListCampaignsRequest) (*dto.ListCampaignsResponse, error) {
	page := req.Page
	if page < 1 {
		return nil, NewBusinessError("INVALID_PAGE", "Invalid page", ErrInvalidPage)
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		return nil, NewBusinessError("INVALID_PAGE_SIZE", "Invalid page size", ErrInvalidPageSize)
	}

	filter := models.CampaignFilter{UserID: &req.UserID}
	if req.Status != nil {
		status := models.CampaignStatus(*req.Status)
		filter.Status = &status
	}
	if req.Search != nil {
		filter.Name = req.Search
	}

	campaigns, err := s.campaignRepo.ByFilter(ctx, filter, "created_at DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LIST_FAILED", "Failed to list campaigns", err)
	}

	total, err := s.campaignRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_COUNT_FAILED", "Failed to count campaigns", err)
	}

	items := make([]dto.CampaignDTO, 0, len(campaigns))
	for _, c := range campaigns {
		audiences, _ := s.loadSegmentAudiences(ctx, c)
		items = append(items, ToCampaignDTO(*c, audiences))
	}

	return &dto.ListCampaignsResponse{
		Message:   "Campaigns retrieved successfully",
		Campaigns: items,
		Pagination: dto.PaginationDTO{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	}, nil
}

// ApproveCampaign transitions a generated campaign to approved
func (s *CampaignFlowImpl) ApproveCampaign(ctx context.Context, req *dto.ChangeCampaignStatusRequest, metadata *ClientMetadata) (*dto.ChangeCampaignStatusResponse, error) {
	return s.transitionStatus(ctx, req, models.CampaignStatusApproved, metadata)
}

// ArchiveCampaign transitions a generated or approved campaign to archived
func (s *CampaignFlowImpl) ArchiveCampaign(ctx context.Context, req *dto.ChangeCampaignStatusRequest, metadata *ClientMetadata) (*dto.ChangeCampaignStatusResponse, error) {
	return s.transitionStatus(ctx, req, models.CampaignStatusArchived, metadata)
}

func (s *CampaignFlowImpl) transitionStatus(ctx context.Context, req *dto.ChangeCampaignStatusRequest, target models.CampaignStatus, metadata *ClientMetadata) (*dto.ChangeCampaignStatusResponse, error) {
	campaign, err := s.getOwnedCampaign(ctx, req.UUID, req.UserID)
	if err != nil {
		return nil, err
	}

	if !campaign.CanTransitionTo(target) {
		return nil, NewBusinessError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot transition from %s to %s", campaign.Status, target), ErrInvalidStatusTransition)
	}

	if err := s.campaignRepo.UpdateStatus(ctx, campaign.ID, target); err != nil {
		return nil, NewBusinessError("CAMPAIGN_STATUS_UPDATE_FAILED", "Failed to update campaign status", err)
	}

	msg := fmt.Sprintf("Campaign %s transitioned to %s", campaign.UUID.String(), target)
	_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionCampaignUpdated, msg, true, nil, metadata)

	return &dto.ChangeCampaignStatusResponse{
		Message: fmt.Sprintf("Campaign %s successfully", target),
		Status:  string(target),
	}, nil
}

// ExportCampaign builds the JSON export document: the campaign plus every
// asset with all of its versions
func (s *CampaignFlowImpl) ExportCampaign(ctx context.Context, req *dto.ExportCampaignRequest, metadata *ClientMetadata) (*dto.ExportCampaignResponse, error) {
	campaign, assets, audiences, err := s.loadExportData(ctx, req)
	if err != nil {
		return nil, err
	}

	audienceUUIDs := make(map[uint]string, len(audiences))
	for id, a := range audiences {
		audienceUUIDs[id] = a.UUID.String()
	}

	assetDTOs := make([]dto.AssetDTO, 0, len(assets))
	for _, a := range assets {
		assetDTOs = append(assetDTOs, ToAssetDTO(*a, campaign.UUID.String(), audienceUUIDs[a.AudienceID]))
	}

	msg := fmt.Sprintf("Campaign exported: %s (json)", campaign.UUID.String())
	_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionCampaignExported, msg, true, nil, metadata)

	return &dto.ExportCampaignResponse{
		Campaign:   ToCampaignDTO(*campaign, audiences),
		Assets:     assetDTOs,
		ExportedAt: utils.UTCNow().Format(time.RFC3339),
	}, nil
}

// ExportCampaignXLSX renders the export document as a spreadsheet: one
// summary sheet plus one row per (asset, version)
func (s *CampaignFlowImpl) ExportCampaignXLSX(ctx context.Context, req *dto.ExportCampaignRequest, metadata *ClientMetadata) ([]byte, string, error) {
	campaign, assets, audiences, err := s.loadExportData(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const summary = "Campaign"
	const content = "Assets"

	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, "", NewBusinessError("EXPORT_FAILED", "Failed to build spreadsheet", err)
	}
	if _, err := f.NewSheet(content); err != nil {
		return nil, "", NewBusinessError("EXPORT_FAILED", "Failed to build spreadsheet", err)
	}

	summaryRows := [][]any{
		{"Name", campaign.Name},
		{"Status", string(campaign.Status)},
		{"Objective", campaign.Spec.Objective},
		{"Call to action", campaign.Spec.CallToAction},
		{"Urgency", string(campaign.Spec.Urgency)},
		{"Expected assets", campaign.ExpectedAssetCount()},
		{"Exported at", utils.UTCNow().Format(time.RFC3339)},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return nil, "", NewBusinessError("EXPORT_FAILED", "Failed to build spreadsheet", err)
		}
	}

	header := []any{"Asset", "Channel", "Audience", "Version", "Strategy", "Status", "Headline", "Body / Primary Text", "CTA"}
	if err := f.SetSheetRow(content, "A1", &header); err != nil {
		return nil, "", NewBusinessError("EXPORT_FAILED", "Failed to build spreadsheet", err)
	}

	rowIdx := 2
	for _, asset := range assets {
		audienceName := ""
		if a, ok := audiences[asset.AudienceID]; ok {
			audienceName = a.Name
		}
		for _, v := range asset.Versions {
			headline, body, cta := flattenVersionContent(v.Content)
			row := []any{
				asset.Name,
				string(asset.ChannelType),
				audienceName,
				v.VersionName,
				string(v.Strategy),
				string(v.Status),
				headline,
				body,
				cta,
			}
			cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
			if err := f.SetSheetRow(content, cell, &row); err != nil {
				return nil, "", NewBusinessError("EXPORT_FAILED", "Failed to build spreadsheet", err)
			}
			rowIdx++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", NewBusinessError("EXPORT_FAILED", "Failed to write spreadsheet", err)
	}

	msg := fmt.Sprintf("Campaign exported: %s (xlsx)", campaign.UUID.String())
	_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionCampaignExported, msg, true, nil, metadata)

	filename := fmt.Sprintf("campaign-%s.xlsx", campaign.UUID.String())
	return buf.Bytes(), filename, nil
}

func flattenVersionContent(c models.VersionContent) (headline, body, cta string) {
	if c.Email != nil {
		return c.Email.Headline, c.Email.BodyCopy, c.Email.CTAText
	}
	if c.MetaAd != nil {
		return c.MetaAd.Headline, c.MetaAd.PrimaryText, c.MetaAd.CTAButton
	}
	return "", "", ""
}

func (s *CampaignFlowImpl) loadExportData(ctx context.Context, req *dto.ExportCampaignRequest) (*models.Campaign, []*models.Asset, map[uint]*models.Audience, error) {
	campaign, err := s.getOwnedCampaign(ctx, req.UUID, req.UserID)
	if err != nil {
		return nil, nil, nil, err
	}

	assets, err := s.assetRepo.ListByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, nil, nil, NewBusinessError("ASSET_LIST_FAILED", "Failed to list campaign assets", err)
	}

	audiences, err := s.loadSegmentAudiences(ctx, campaign)
	if err != nil {
		return nil, nil, nil, NewBusinessError("AUDIENCE_LOOKUP_FAILED", "Failed to resolve audiences", err)
	}

	// Assets may reference audiences no longer in the spec
	for _, a := range assets {
		if _, ok := audiences[a.AudienceID]; !ok {
			aud, err := s.audienceRepo.ByID(ctx, a.AudienceID)
			if err == nil && aud != nil {
				audiences[a.AudienceID] = aud
			}
		}
	}

	orderAssetsForExport(campaign, assets)

	return campaign, assets, audiences, nil
}

// orderAssetsForExport sorts assets into the campaign's declared
// (segment, channel) order, then id, so row insertion order never shows
// through in the export document. Assets whose audience or channel has left
// the campaign sort last.
func orderAssetsForExport(campaign *models.Campaign, assets []*models.Asset) {
	segRank := make(map[uint]int, len(campaign.Spec.Segments))
	for i, seg := range campaign.Spec.Segments {
		segRank[seg.AudienceID] = i + 1
	}
	chRank := make(map[models.ChannelType]int, len(campaign.Spec.Channels))
	for i, ch := range campaign.Spec.Channels {
		chRank[ch.Type] = i + 1
	}
	rank := func(r, n int) int {
		if r == 0 {
			return n + 1
		}
		return r
	}

	sort.SliceStable(assets, func(i, j int) bool {
		a, b := assets[i], assets[j]
		as, bs := rank(segRank[a.AudienceID], len(segRank)), rank(segRank[b.AudienceID], len(segRank))
		if as != bs {
			return as < bs
		}
		ac, bc := rank(chRank[a.ChannelType], len(chRank)), rank(chRank[b.ChannelType], len(chRank))
		if ac != bc {
			return ac < bc
		}
		return a.ID < b.ID
	})
}

// resolveSegments maps audience UUIDs to internal IDs, rejecting references
// to audiences the caller does not own
func (s *CampaignFlowImpl) resolveSegments(ctx context.Context, userID uint, segments []dto.CampaignSegmentDTO) ([]models.CampaignSegment, error) {
	if len(segments) > models.MaxCampaignSegments {
		return nil, NewBusinessError("TOO_MANY_SEGMENTS", "Too many segments", ErrTooManySegments)
	}

	seen := make(map[uint]bool, len(segments))
	out := make([]models.CampaignSegment, 0, len(segments))
	for _, seg := range segments {
		audience, err := s.audienceRepo.ByUUID(ctx, seg.AudienceUUID)
		if err != nil {
			return nil, NewBusinessError("AUDIENCE_LOOKUP_FAILED", "Failed to lookup audience", err)
		}
		if audience == nil || audience.UserID != userID {
			return nil, NewBusinessError("FOREIGN_AUDIENCE_REFERENCE",
				"Segment references an audience not owned by the user", ErrForeignAudienceReference)
		}
		if seen[audience.ID] {
			return nil, NewBusinessError("DUPLICATE_SEGMENT_AUDIENCE", "Duplicate audience in segments", ErrDuplicateSegmentAudience)
		}
		seen[audience.ID] = true
		out = append(out, models.CampaignSegment{
			AudienceID:   audience.ID,
			Instructions: seg.Instructions,
		})
	}

	return out, nil
}

func buildChannels(channels []dto.CampaignChannelDTO) ([]models.CampaignChannel, error) {
	if len(channels) > models.MaxCampaignChannels {
		return nil, NewBusinessError("TOO_MANY_CHANNELS", "Too many channels", ErrTooManyChannels)
	}

	seen := make(map[models.ChannelType]bool, len(channels))
	out := make([]models.CampaignChannel, 0, len(channels))
	for _, ch := range channels {
		channelType := models.ChannelType(ch.Type)
		if seen[channelType] {
			return nil, NewBusinessError("DUPLICATE_CHANNEL_TYPE", "Duplicate channel type", ErrDuplicateChannelType)
		}
		seen[channelType] = true
		out = append(out, models.CampaignChannel{
			Type:    channelType,
			Enabled: ch.Enabled,
			Purpose: ch.Purpose,
		})
	}

	return out, nil
}

func validateDates(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return NewBusinessError("INVALID_DATE_RANGE", "Start date cannot be after end date", ErrStartDateAfterEndDate)
	}
	return nil
}

// loadSegmentAudiences resolves the audiences referenced by the campaign's
// segments. Missing audiences are simply absent from the map.
func (s *CampaignFlowImpl) loadSegmentAudiences(ctx context.Context, campaign *models.Campaign) (map[uint]*models.Audience, error) {
	out := make(map[uint]*models.Audience, len(campaign.Spec.Segments))
	for _, seg := range campaign.Spec.Segments {
		audience, err := s.audienceRepo.ByID(ctx, seg.AudienceID)
		if err != nil {
			return out, err
		}
		if audience != nil {
			out[seg.AudienceID] = audience
		}
	}
	return out, nil
}

// getOwnedCampaign resolves a campaign by UUID and checks ownership
func (s *CampaignFlowImpl) getOwnedCampaign(ctx context.Context, uuid string, userID uint) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.ByUUID(ctx, uuid)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}
	if campaign.UserID != userID {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}
	return campaign, nil
}
