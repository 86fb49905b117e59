// Package businessflow contains the business logic for the application.
package businessflow

import (
	"context"
	"time"

	"github.com/markforge/backend/app/dto"
	"github.com/markforge/backend/models"
	"github.com/markforge/backend/repository"
	"github.com/markforge/backend/utils"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for audit logging and session tracking
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	SessionID  string            `json:"session_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// SetSessionID sets the session ID
func (cm *ClientMetadata) SetSessionID(sessionID string) {
	cm.SessionID = sessionID
}

// writeAuditLog records one user-attributed action. Audit failures are not
// allowed to fail the operation they describe, so callers ignore the error.
func writeAuditLog(ctx context.Context, auditRepo repository.AuditLogRepository, userID *uint, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) error {
	ipAddress := ""
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		Description:  description,
		Success:      success,
		ErrorMessage: errorMsg,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
	}

	if requestID, ok := ctx.Value(utils.RequestIDKey).(string); ok {
		audit.RequestID = requestID
	}

	return auditRepo.Save(ctx, audit)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// ToAuthUserDTO converts a user model to AuthUserDTO for authentication responses
func ToAuthUserDTO(user models.User) dto.AuthUserDTO {
	return dto.AuthUserDTO{
		ID:        user.ID,
		UUID:      user.UUID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// ToSessionDTO converts a session model to SessionDTO
func ToSessionDTO(session models.Session) dto.SessionDTO {
	return dto.SessionDTO{
		AccessToken:  session.SessionToken,
		RefreshToken: session.RefreshToken,
		ExpiresIn:    int(time.Until(session.ExpiresAt).Seconds()),
		TokenType:    "Bearer",
		CreatedAt:    session.CreatedAt.Format(time.RFC3339),
	}
}

// ToBrandGuideDTO converts a brand guide model to its response DTO
func ToBrandGuideDTO(guide models.BrandGuide) dto.BrandGuideDTO {
	return dto.BrandGuideDTO{
		UUID:              guide.UUID.String(),
		CompanyName:       guide.CompanyName,
		Industry:          guide.Industry,
		VoiceAttributes:   guide.VoiceAttributes,
		ToneGuidelines:    guide.ToneGuidelines,
		ValueProposition:  guide.ValueProposition,
		KeyMessages:       guide.KeyMessages,
		PhrasesToAvoid:    guide.PhrasesToAvoid,
		PrimaryColors:     guide.PrimaryColors,
		TargetAudience:    guide.TargetAudience,
		CompetitorContext: guide.CompetitorContext,
		CreatedAt:         guide.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         formatTimePtr(guide.UpdatedAt),
	}
}

// ToAudienceDTO converts an audience model to its response DTO
func ToAudienceDTO(audience models.Audience) dto.AudienceDTO {
	return dto.AudienceDTO{
		UUID:        audience.UUID.String(),
		Name:        audience.Name,
		Description: audience.Description,
		Demographics: dto.DemographicsDTO{
			AgeRange:    audience.Demographics.AgeRange,
			IncomeRange: audience.Demographics.IncomeRange,
			Locations:   audience.Demographics.Locations,
			Other:       audience.Demographics.Other,
		},
		Propensity:    string(audience.Propensity),
		Interests:     audience.Interests,
		PainPoints:    audience.PainPoints,
		PreferredTone: audience.PreferredTone,
		KeyMotivators: audience.KeyMotivators,
		EstimatedSize: audience.EstimatedSize,
		IsActive:      audience.IsActive,
		CreatedAt:     audience.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     formatTimePtr(audience.UpdatedAt),
	}
}

// ToCampaignDTO converts a campaign model to its response DTO. The audiences
// map (keyed by audience ID) resolves segment references; unresolvable
// segments keep their instructions with a blank audience.
func ToCampaignDTO(campaign models.Campaign, audiences map[uint]*models.Audience) dto.CampaignDTO {
	segments := make([]dto.CampaignSegmentInfoDTO, 0, len(campaign.Spec.Segments))
	for _, seg := range campaign.Spec.Segments {
		info := dto.CampaignSegmentInfoDTO{Instructions: seg.Instructions}
		if aud, ok := audiences[seg.AudienceID]; ok && aud != nil {
			info.AudienceUUID = aud.UUID.String()
			info.AudienceName = aud.Name
		}
		segments = append(segments, info)
	}

	channels := make([]dto.CampaignChannelDTO, 0, len(campaign.Spec.Channels))
	for _, ch := range campaign.Spec.Channels {
		channels = append(channels, dto.CampaignChannelDTO{
			Type:    string(ch.Type),
			Enabled: ch.Enabled,
			Purpose: ch.Purpose,
		})
	}

	return dto.CampaignDTO{
		UUID:               campaign.UUID.String(),
		Name:               campaign.Name,
		Status:             string(campaign.Status),
		Objective:          campaign.Spec.Objective,
		Description:        campaign.Spec.Description,
		Segments:           segments,
		Channels:           channels,
		KeyMessages:        campaign.Spec.KeyMessages,
		CallToAction:       campaign.Spec.CallToAction,
		Urgency:            string(campaign.Spec.Urgency),
		StartDate:          campaign.Spec.StartDate,
		EndDate:            campaign.Spec.EndDate,
		ExpectedAssetCount: campaign.ExpectedAssetCount(),
		CreatedAt:          campaign.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          formatTimePtr(campaign.UpdatedAt),
	}
}

// ToAssetVersionDTO converts an asset version to its response DTO
func ToAssetVersionDTO(version models.AssetVersion) dto.AssetVersionDTO {
	content := dto.VersionContentDTO{}
	if version.Content.Email != nil {
		content.Email = &dto.EmailContentDTO{
			SubjectLine: version.Content.Email.SubjectLine,
			Preheader:   version.Content.Email.Preheader,
			Headline:    version.Content.Email.Headline,
			BodyCopy:    version.Content.Email.BodyCopy,
			CTAText:     version.Content.Email.CTAText,
		}
	}
	if version.Content.MetaAd != nil {
		content.MetaAd = &dto.MetaAdContentDTO{
			PrimaryText: version.Content.MetaAd.PrimaryText,
			Headline:    version.Content.MetaAd.Headline,
			Description: version.Content.MetaAd.Description,
			CTAButton:   version.Content.MetaAd.CTAButton,
		}
	}

	return dto.AssetVersionDTO{
		ID:          version.ID.String(),
		VersionName: version.VersionName,
		Strategy:    string(version.Strategy),
		Content:     content,
		Status:      string(version.Status),
		GeneratedAt: version.GeneratedAt.Format(time.RFC3339),
		EditedAt:    formatTimePtr(version.EditedAt),
	}
}

// ToAssetDTO converts an asset model to its response DTO. campaignUUID and
// audienceUUID are resolved by the caller; either may be empty.
func ToAssetDTO(asset models.Asset, campaignUUID, audienceUUID string) dto.AssetDTO {
	versions := make([]dto.AssetVersionDTO, 0, len(asset.Versions))
	for _, v := range asset.Versions {
		versions = append(versions, ToAssetVersionDTO(v))
	}

	return dto.AssetDTO{
		UUID:             asset.UUID.String(),
		CampaignUUID:     campaignUUID,
		AudienceUUID:     audienceUUID,
		ChannelType:      string(asset.ChannelType),
		AssetType:        string(asset.AssetType),
		Name:             asset.Name,
		GenerationPrompt: asset.GenerationPrompt,
		Versions:         versions,
		IsFullyApproved:  asset.IsFullyApproved(),
		CreatedAt:        asset.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        formatTimePtr(asset.UpdatedAt),
	}
}
