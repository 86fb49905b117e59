// Package businessflow contains the core business logic and use cases for brand guide workflows
package businessflow

import (
	"context"
	"fmt"

	"github.com/markforge/backend/app/dto"
	"github.com/markforge/backend/models"
	"github.com/markforge/backend/repository"
	"gorm.io/gorm"
)

// BrandGuideFlow handles the brand guide business logic
type BrandGuideFlow interface {
	CreateBrandGuide(ctx context.Context, req *dto.CreateBrandGuideRequest, metadata *ClientMetadata) (*dto.BrandGuideResponse, error)
	GetBrandGuide(ctx context.Context, userID uint) (*dto.BrandGuideResponse, error)
	UpdateBrandGuide(ctx context.Context, req *dto.UpdateBrandGuideRequest, metadata *ClientMetadata) (*dto.BrandGuideResponse, error)
	DeleteBrandGuide(ctx context.Context, userID uint, metadata *ClientMetadata) (*dto.DeleteBrandGuideResponse, error)
}

// BrandGuideFlowImpl implements the brand guide business flow
type BrandGuideFlowImpl struct {
	guideRepo repository.BrandGuideRepository
	auditRepo repository.AuditLogRepository
	db        *gorm.DB
}

// NewBrandGuideFlow creates a new brand guide flow instance
func NewBrandGuideFlow(
	guideRepo repository.BrandGuideRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) BrandGuideFlow {
	return &BrandGuideFlowImpl{
		guideRepo: guideRepo,
		auditRepo: auditRepo,
		db:        db,
	}
}

// CreateBrandGuide creates the user's single brand guide. A second guide for
// the same user is rejected.
func (s *BrandGuideFlowImpl) CreateBrandGuide(ctx context.Context, req *dto.CreateBrandGuideRequest, metadata *ClientMetadata) (*dto.BrandGuideResponse, error) {
	existing, err := s.guideRepo.ByUserID(ctx, req.UserID)
	if err != nil {
		return nil, NewBusinessError("BRAND_GUIDE_LOOKUP_FAILED", "Failed to lookup brand guide", err)
	}
	if existing != nil {
		return nil, NewBusinessError("BRAND_GUIDE_ALREADY_EXISTS", "Brand guide already exists", ErrBrandGuideAlreadyExists)
	}

	guide := &models.BrandGuide{
		UserID:            req.UserID,
		CompanyName:       req.CompanyName,
		Industry:          req.Industry,
		VoiceAttributes:   req.VoiceAttributes,
		ToneGuidelines:    req.ToneGuidelines,
		ValueProposition:  req.ValueProposition,
		KeyMessages:       req.KeyMessages,
		PhrasesToAvoid:    req.PhrasesToAvoid,
		PrimaryColors:     req.PrimaryColors,
		TargetAudience:    req.TargetAudience,
		CompetitorContext: req.CompetitorContext,
	}

	if err := s.guideRepo.Save(ctx, guide); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, NewBusinessError("BRAND_GUIDE_ALREADY_EXISTS", "Brand guide already exists", ErrBrandGuideAlreadyExists)
		}
		errMsg := fmt.Sprintf("Brand guide creation failed: %s", err.Error())
		_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionBrandGuideCreated, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("BRAND_GUIDE_CREATION_FAILED", "Brand guide creation failed", err)
	}

	msg := fmt.Sprintf("Brand guide created: %s", guide.UUID.String())
	_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionBrandGuideCreated, msg, true, nil, metadata)

	return &dto.BrandGuideResponse{
		Message:    "Brand guide created successfully",
		BrandGuide: ToBrandGuideDTO(*guide),
	}, nil
}

// GetBrandGuide returns the user's brand guide
func (s *BrandGuideFlowImpl) GetBrandGuide(ctx context.Context, userID uint) (*dto.BrandGuideResponse, error) {
	guide, err := s.guideRepo.ByUserID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("BRAND_GUIDE_LOOKUP_FAILED", "Failed to lookup brand guide", err)
	}
	if guide == nil {
		return nil, NewBusinessError("BRAND_GUIDE_NOT_FOUND", "Brand guide not found", ErrBrandGuideNotFound)
	}

	return &dto.BrandGuideResponse{
		Message:    "Brand guide retrieved successfully",
		BrandGuide: ToBrandGuideDTO(*guide),
	}, nil
}

// UpdateBrandGuide applies the non-nil fields of the request to the guide
func (s *BrandGuideFlowImpl) UpdateBrandGuide(ctx context.Context, req *dto.UpdateBrandGuideRequest, metadata *ClientMetadata) (*dto.BrandGuideResponse, error) {
	guide, err := s.guideRepo.ByUserID(ctx, req.UserID)
	if err != nil {
		return nil, NewBusinessError("BRAND_GUIDE_LOOKUP_FAILED", "Failed to lookup brand guide", err)
	}
	if guide == nil {
		return nil, NewBusinessError("BRAND_GUIDE_NOT_FOUND", "Brand guide not found", ErrBrandGuideNotFound)
	}

	if req.CompanyName != nil {
		guide.CompanyName = *req.CompanyName
	}
	if req.Industry != nil {
		guide.Industry = *req.Industry
	}
	if req.VoiceAttributes != nil {
		guide.VoiceAttributes = *req.VoiceAttributes
	}
	if req.ToneGuidelines != nil {
		guide.ToneGuidelines = *req.ToneGuidelines
	}
	if req.ValueProposition != nil {
		guide.ValueProposition = *req.ValueProposition
	}
	if req.KeyMessages != nil {
		guide.KeyMessages = *req.KeyMessages
	}
	if req.PhrasesToAvoid != nil {
		guide.PhrasesToAvoid = *req.PhrasesToAvoid
	}
	if req.PrimaryColors != nil {
		guide.PrimaryColors = *req.PrimaryColors
	}
	if req.TargetAudience != nil {
		guide.TargetAudience = *req.TargetAudience
	}
	if req.CompetitorContext != nil {
		guide.CompetitorContext = *req.CompetitorContext
	}

	if err := s.guideRepo.Update(ctx, guide); err != nil {
		errMsg := fmt.Sprintf("Brand guide update failed: %s", err.Error())
		_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionBrandGuideUpdated, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("BRAND_GUIDE_UPDATE_FAILED", "Brand guide update failed", err)
	}

	msg := fmt.Sprintf("Brand guide updated: %s", guide.UUID.String())
	_ = writeAuditLog(ctx, s.auditRepo, &req.UserID, models.AuditActionBrandGuideUpdated, msg, true, nil, metadata)

	return &dto.BrandGuideResponse{
		Message:    "Brand guide updated successfully",
		BrandGuide: ToBrandGuideDTO(*guide),
	}, nil
}

// DeleteBrandGuide removes the user's brand guide. Existing campaigns keep
// their snapshot reference.
func (s *BrandGuideFlowImpl) DeleteBrandGuide(ctx context.Context, userID uint, metadata *ClientMetadata) (*dto.DeleteBrandGuideResponse, error) {
	guide, err := s.guideRepo.ByUserID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("BRAND_GUIDE_LOOKUP_FAILED", "Failed to lookup brand guide", err)
	}
	if guide == nil {
		return nil, NewBusinessError("BRAND_GUIDE_NOT_FOUND", "Brand guide not found", ErrBrandGuideNotFound)
	}

	if err := s.guideRepo.Delete(ctx, guide.ID); err != nil {
		return nil, NewBusinessError("BRAND_GUIDE_DELETE_FAILED", "Brand guide deletion failed", err)
	}

	msg := fmt.Sprintf("Brand guide deleted: %s", guide.UUID.String())
	_ = writeAuditLog(ctx, s.auditRepo, &userID, models.AuditActionBrandGuideDeleted, msg, true, nil, metadata)

	return &dto.DeleteBrandGuideResponse{Message: "Brand guide deleted successfully"}, nil
}
