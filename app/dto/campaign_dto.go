package dto

import (
	"time"
)

// CampaignSegmentDTO pairs one of the caller's audiences with optional
// segment-specific generation instructions
type CampaignSegmentDTO struct {
	AudienceUUID string `json:"audience_uuid" validate:"required,uuid4"`
	Instructions string `json:"instructions,omitempty" validate:"omitempty,max=2000"`
}

// CampaignChannelDTO describes one delivery medium selected for the campaign
type CampaignChannelDTO struct {
	Type    string `json:"type" validate:"required,oneof=email meta_ads"`
	Enabled bool   `json:"enabled"`
	Purpose string `json:"purpose,omitempty" validate:"omitempty,max=500"`
}

// CreateCampaignRequest represents the request to create a new campaign
type CreateCampaignRequest struct {
	UserID       uint                 `json:"-"`
	Name         string               `json:"name" validate:"required,min=1,max=255"`
	Objective    string               `json:"objective,omitempty" validate:"omitempty,max=1000"`
	Description  string               `json:"description,omitempty" validate:"omitempty,max=2000"`
	Segments     []CampaignSegmentDTO `json:"segments,omitempty" validate:"omitempty,max=5,dive"`
	Channels     []CampaignChannelDTO `json:"channels,omitempty" validate:"omitempty,max=2,dive"`
	KeyMessages  []string             `json:"key_messages,omitempty" validate:"omitempty,max=20,dive,max=500"`
	CallToAction string               `json:"call_to_action,omitempty" validate:"omitempty,max=255"`
	Urgency      string               `json:"urgency,omitempty" validate:"omitempty,oneof=low medium high"`
	StartDate    *time.Time           `json:"start_date,omitempty"`
	EndDate      *time.Time           `json:"end_date,omitempty"`
}

// UpdateCampaignRequest represents the request to update an existing campaign.
// Nil fields keep their current value.
type UpdateCampaignRequest struct {
	UUID         string                `json:"-"`
	UserID       uint                  `json:"-"`
	Name         *string               `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Objective    *string               `json:"objective,omitempty" validate:"omitempty,max=1000"`
	Description  *string               `json:"description,omitempty" validate:"omitempty,max=2000"`
	Segments     *[]CampaignSegmentDTO `json:"segments,omitempty" validate:"omitempty,max=5,dive"`
	Channels     *[]CampaignChannelDTO `json:"channels,omitempty" validate:"omitempty,max=2,dive"`
	KeyMessages  *[]string             `json:"key_messages,omitempty"`
	CallToAction *string               `json:"call_to_action,omitempty" validate:"omitempty,max=255"`
	Urgency      *string               `json:"urgency,omitempty" validate:"omitempty,oneof=low medium high"`
	StartDate    *time.Time            `json:"start_date,omitempty"`
	EndDate      *time.Time            `json:"end_date,omitempty"`
}

// CampaignSegmentInfoDTO is a segment in responses, with the audience resolved
type CampaignSegmentInfoDTO struct {
	AudienceUUID string `json:"audience_uuid"`
	AudienceName string `json:"audience_name,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// CampaignDTO represents a campaign in responses
type CampaignDTO struct {
	UUID               string                   `json:"uuid"`
	Name               string                   `json:"name"`
	Status             string                   `json:"status"`
	Objective          string                   `json:"objective,omitempty"`
	Description        string                   `json:"description,omitempty"`
	Segments           []CampaignSegmentInfoDTO `json:"segments,omitempty"`
	Channels           []CampaignChannelDTO     `json:"channels,omitempty"`
	KeyMessages        []string                 `json:"key_messages,omitempty"`
	CallToAction       string                   `json:"call_to_action,omitempty"`
	Urgency            string                   `json:"urgency,omitempty"`
	StartDate          *time.Time               `json:"start_date,omitempty"`
	EndDate            *time.Time               `json:"end_date,omitempty"`
	ExpectedAssetCount int                      `json:"expected_asset_count"`
	CreatedAt          string                   `json:"created_at"`
	UpdatedAt          *string                  `json:"updated_at,omitempty"`
}

// CampaignResponse wraps a campaign with an operation message
type CampaignResponse struct {
	Message  string      `json:"message"`
	Campaign CampaignDTO `json:"campaign"`
}

// GetCampaignRequest represents the request to get an existing campaign
type GetCampaignRequest struct {
	UUID   string `json:"-"`
	UserID uint   `json:"-"`
}

// DeleteCampaignResponse represents the response to a campaign deletion
type DeleteCampaignResponse struct {
	Message       string `json:"message"`
	DeletedAssets bool   `json:"deleted_assets"`
}

// ChangeCampaignStatusRequest represents an approve or archive request
type ChangeCampaignStatusRequest struct {
	UUID   string `json:"-"`
	UserID uint   `json:"-"`
}

// ChangeCampaignStatusResponse represents the response to a status change
type ChangeCampaignStatusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ListCampaignsRequest represents the request to list the user's campaigns
type ListCampaignsRequest struct {
	UserID   uint    `json:"-"`
	Page     int     `json:"-"`
	PageSize int     `json:"-"`
	Status   *string `json:"-"`
	Search   *string `json:"-"`
}

// ListCampaignsResponse represents the paginated campaign list
type ListCampaignsResponse struct {
	Message    string        `json:"message"`
	Campaigns  []CampaignDTO `json:"campaigns"`
	Pagination PaginationDTO `json:"pagination"`
}

// GenerateCampaignRequest represents the request to run bulk asset generation
type GenerateCampaignRequest struct {
	UUID   string `json:"-"`
	UserID uint   `json:"-"`
}

// GenerateCampaignResponse represents the outcome of a bulk generation run
type GenerateCampaignResponse struct {
	Message        string     `json:"message"`
	Status         string     `json:"status"`
	ExpectedAssets int        `json:"expected_assets"`
	CreatedAssets  int        `json:"created_assets"`
	Assets         []AssetDTO `json:"assets"`
}

// ExportCampaignRequest represents the request to export a campaign
type ExportCampaignRequest struct {
	UUID   string `json:"-"`
	UserID uint   `json:"-"`
	Format string `json:"-"`
}

// ExportCampaignResponse is the JSON export document: the campaign plus every
// asset with all of its versions
type ExportCampaignResponse struct {
	Campaign   CampaignDTO `json:"campaign"`
	Assets     []AssetDTO  `json:"assets"`
	ExportedAt string      `json:"exported_at"`
}
