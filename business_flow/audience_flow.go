// Package businessflow contains the core business logic and use cases for audience workflows
package businessflow

import (
	"context"
	"fmt"

	"github.com/markforge/backend/app/dto"
	"github.com/markforge/backend/config"
	"github.com/markforge/backend/models"
	"github.com/markforge/backend/repository"
	"gorm.io/gorm"
)

// AudienceFlow handles the audience business logic
type AudienceFlow interface {
	CreateAudience(ctx context.Context, req *dto.CreateAudienceRequest, metadata *ClientMetadata) (*dto.AudienceResponse, error)
	GetAudience(ctx context.Context, uuid string, userID uint) (*dto.AudienceResponse, error)
	UpdateAudience(ctx context.Context, req *dto.UpdateAudienceRequest, metadata *ClientMetadata) (*dto.AudienceResponse, error)
	DeleteAudience(ctx context.Context, uuid string, userID uint, metadata *ClientMetadata) (*dto.DeleteAudienceResponse, error)
	ListAudiences(ctx context.Context, req *dto.ListAudiencesRequest) (*dto.ListAudiencesResponse, error)
}

// AudienceFlowImpl implements the audience business flow
type AudienceFlowImpl struct {
	audienceRepo     repository.AudienceRepository
	auditRepo        repository.AuditLogRepository
	generationConfig config.GenerationConfig
	db               *gorm.DB
}

// NewAudienceFlow creates a new audience flow instance
func NewAudienceFlow(
	audienceRepo repository.AudienceRepository,
	auditRepo repository.AuditLogRepository,
	generationConfig config.GenerationConfig,
	db *gorm.DB,
) AudienceFlow {
	return &AudienceFlowImpl{
		audienceRepo:     audienceRepo,
		auditRepo:        auditRepo,
		generationConfig: generationConfig,
		db:               db,
	}
}

// CreateAudience creates a new audience, enforcing the per-user count cap and
// per-user name uniqueness
func (s *AudienceFlowImpl) CreateAudience(ctx context.Context, req *dto.CreateAudienceRequest, metadata *ClientMetadata) (*dto.AudienceResponse, error) {
	count, err := s.audienceRepo.CountByUser(ctx, req.UserID)
	if err != nil {
		return nil, NewBusinessError("AUDIENCE_COUNT_FAILED", "Failed to count audiences", err)
	}
	if count >= s.generationConfig.MaxAudiencesPerUser {
		return nil, NewBusinessError("AUDIENCE_LIMIT_EXCEEDED", "Audience limit exceeded", ErrAudienceLimitExceeded)
	}

	taken, err := s.audienceRepo.Exists(ctx, models.AudienceFilter{UserID: &req.UserID, Name: &req.Name})
	if err != nil {
		return nil, NewBusinessError("AUDIENCE_LOOKUP_FAILED", "Failed to check audience name", err)
	}
	if taken {
		return nil, NewBusinessError("AUDIENCE_NAME_TAKEN", "Audience name already in use", ErrAudienceNameTaken)
	}

	audience := &models.Audience{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		Demographics: models.Demographics{
			AgeRange:    req.Demographics.AgeRange,
			IncomeRange: req.Demographics.IncomeRange,
			Locations:   req.Demographics.Locations,
			Other:       req.Demographics.Other,
		},
		Propensity:    models.PropensityLevel(req.Propensity),
		Interests:     req.Interests,
		PainPoints:    req.PainPoints,
		PreferredTone: req.PreferredTone,
		KeyMotivators: req.KeyMotivators,
		EstimatedSize: req.EstimatedSize,
		IsActive:      req.IsActive,
	}

	if err := s.audienceRepo.Save(ctx, audience); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, NewBusinessError("AUDIENCE_NAME_TAKEN", "Audience name already in use", ErrAudienceNameTaken)
		}
		errMsg := fmt.Sprintf("Audience creation failed: %s", err.Error())
		_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionAudienceCreated, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("AUDIENCE_CREATION_FAILED", "Audience creation failed", err)
	}

	msg := fmt.Sprintf("Audience created: %s", audience.UUID.String())
	_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionAudienceCreated, msg, true, nil, metadata)

	return &dto.AudienceResponse{
		Message:  "Audience created successfully",
		Audience: ToAudienceDTO(*audience),
	}, nil
}

// GetAudience returns one of the user's audiences by UUID
func (s *AudienceFlowImpl) GetAudience(ctx context.Context, uuid string, userID uint) (*dto.AudienceResponse, error) {
	audience, err := s.getOwnedAudience(ctx, uuid, userID)
	if err != nil {
		return nil, err
	}

	return &dto.AudienceResponse{
		Message:  "Audience retrieved successfully",
		Audience: ToAudienceDTO(*audience),
	}, nil
}

// UpdateAudience applies the non-nil fields of the request to the audience
func (s *AudienceFlowImpl) UpdateAudience(ctx context.Context, req *dto.UpdateAudienceRequest, metadata *ClientMetadata) (*dto.AudienceResponse, error) {
	audience, err := s.getOwnedAudience(ctx, req.UUID, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != audience.Name {
		taken, err := s.audienceRepo.Exists(ctx, models.AudienceFilter{UserID: &req.UserID, Name: req.Name})
		if err != nil {
			return nil, NewBusinessError("AUDIENCE_LOOKUP_FAILED", "Failed to check audience name", err)
		}
		if taken {
			return nil, NewBusinessError("AUDIENCE_NAME_TAKEN", "Audience name already in use", ErrAudienceNameTaken)
		}
		audience.Name = *req.Name
	}
	if req.Description != nil {
		audience.Description = *req.Description
	}
	if req.Demographics != nil {
		audience.Demographics = models.Demographics{
			AgeRange:    req.Demographics.AgeRange,
			IncomeRange: req.Demographics.IncomeRange,
			Locations:   req.Demographics.Locations,
			Other:       req.Demographics.Other,
		}
	}
	if req.Propensity != nil {
		audience.Propensity = models.PropensityLevel(*req.Propensity)
	}
	if req.Interests != nil {
		audience.Interests = *req.Interests
	}
	if req.PainPoints != nil {
		audience.PainPoints = *req.PainPoints
	}
	if req.PreferredTone != nil {
		audience.PreferredTone = *req.PreferredTone
	}
	if req.KeyMotivators != nil {
		audience.KeyMotivators = *req.KeyMotivators
	}
	if req.EstimatedSize != nil {
		audience.EstimatedSize = req.EstimatedSize
	}
	if req.IsActive != nil {
		audience.IsActive = req.IsActive
	}

	if err := s.audienceRepo.Update(ctx, audience); err != nil {
		errMsg := fmt.Sprintf("Audience update failed: %s", err.Error())
		_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionAudienceUpdated, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("AUDIENCE_UPDATE_FAILED", "Audience update failed", err)
	}

	msg := fmt.Sprintf("Audience updated: %s", audience.UUID.String())
	_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionAudienceUpdated, msg, true, nil, metadata)

	return &dto.AudienceResponse{
		Message:  "Audience updated successfully",
		Audience: ToAudienceDTO(*audience),
	}, nil
}

// DeleteAudience removes one of the user's audiences. Campaign segments that
// reference it are skipped at generation time rather than cleaned up here.
func (s *AudienceFlowImpl) DeleteAudience(ctx context.Context, uuid string, userID uint, metadata *ClientMetadata) (*dto.DeleteAudienceResponse, error) {
	audience, err := s.getOwnedAudience(ctx, uuid, userID)
	if err != nil {
		return nil, err
	}

	if err := s.audienceRepo.Delete(ctx, audience.ID); err != nil {
		return nil, NewBusinessError("AUDIENCE_DELETE_FAILED", "Audience deletion failed", err)
	}

	msg := fmt.Sprintf("Audience deleted: %s", audience.UUID.String())
	_ = writeAuditLog(ctx, s.auditRepo, &userID, models.AuditActionAudienceDeleted, msg, true, nil, metadata)

	return &dto.DeleteAudienceResponse{Message: "Audience deleted successfully"}, nil
}

// ListAudiences returns the user's audiences with pagination
func (s *AudienceFlowImpl) ListAudiences(ctx context.Context, req *dto.ListAudiencesRequest) (*dto.ListAudiencesResponse, error) {
	page := req.Page
	if page < 1 {
		return nil, NewBusinessError("INVALID_PAGE", "Invalid page", ErrInvalidPage)
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		return nil, NewBusinessError("INVALID_PAGE_SIZE", "Invalid page size", ErrInvalidPageSize)
	}

	audiences, err := s.audienceRepo.ListByUser(ctx, req.UserID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("AUDIENCE_LIST_FAILED", "Failed to list audiences", err)
	}

	total, err := s.audienceRepo.Count(ctx, models.AudienceFilter{UserID: &req.UserID})
	if err != nil {
		return nil, NewBusinessError("AUDIENCE_COUNT_FAILED", "Failed to count audiences", err)
	}

	items := make([]dto.AudienceDTO, 0, len(audiences))
	for _, a := range audiences {
		items = append(items, ToAudienceDTO(*a))
	}

	return &dto.ListAudiencesResponse{
		Message:   "Audiences retrieved successfully",
		Audiences: items,
		Pagination: dto.PaginationDTO{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	}, nil
}

// getOwnedAudience resolves an audience by UUID and checks ownership
func (s *AudienceFlowImpl) getOwnedAudience(ctx context.Context, uuid string, userID uint) (*models.Audience, error) {
	audience, err := s.audienceRepo.ByUUID(ctx, uuid)
	if err != nil {
		return nil, NewBusinessError("AUDIENCE_LOOKUP_FAILED", "Failed to lookup audience", err)
	}
	if audience == nil {
		return nil, NewBusinessError("AUDIENCE_NOT_FOUND", "Audience not found", ErrAudienceNotFound)
	}
	if audience.UserID != userID {
		// Cross-tenant probes read as not-found, not forbidden
		return nil, NewBusinessError("AUDIENCE_NOT_FOUND", "Audience not found", ErrAudienceNotFound)
	}
	return audience, nil
}
