package dto

// EmailContentDTO is the generated content for an email asset version
type EmailContentDTO struct {
	SubjectLine string `json:"subject_line"`
	Preheader   string `json:"preheader"`
	Headline    string `json:"headline"`
	BodyCopy    string `json:"body_copy"`
	CTAText     string `json:"cta_text"`
}

// MetaAdContentDTO is the generated content for a meta-ad asset version
type MetaAdContentDTO struct {
	PrimaryText string `json:"primary_text"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	CTAButton   string `json:"cta_button"`
}

// VersionContentDTO carries exactly one content shape, keyed by channel
type VersionContentDTO struct {
	Email  *EmailContentDTO  `json:"email,omitempty"`
	MetaAd *MetaAdContentDTO `json:"meta_ad,omitempty"`
}

// AssetVersionDTO represents one version of an asset in responses
type AssetVersionDTO struct {
	ID          string            `json:"id"`
	VersionName string            `json:"version_name"`
	Strategy    string            `json:"strategy"`
	Content     VersionContentDTO `json:"content"`
	Status      string            `json:"status"`
	GeneratedAt string            `json:"generated_at"`
	EditedAt    *string           `json:"edited_at,omitempty"`
}

// AssetDTO represents an asset in responses
type AssetDTO struct {
	UUID             string            `json:"uuid"`
	CampaignUUID     string            `json:"campaign_uuid,omitempty"`
	AudienceUUID     string            `json:"audience_uuid,omitempty"`
	ChannelType      string            `json:"channel_type"`
	AssetType        string            `json:"asset_type"`
	Name             string            `json:"name"`
	GenerationPrompt string            `json:"generation_prompt,omitempty"`
	Versions         []AssetVersionDTO `json:"versions"`
	IsFullyApproved  bool              `json:"is_fully_approved"`
	CreatedAt        string            `json:"created_at"`
	UpdatedAt        *string           `json:"updated_at,omitempty"`
}

// ListAssetsRequest represents the request to list a campaign's assets
type ListAssetsRequest struct {
	CampaignUUID string `json:"-"`
	UserID       uint   `json:"-"`
}

// ListAssetsResponse represents a campaign's asset list
type ListAssetsResponse struct {
	Message string     `json:"message"`
	Assets  []AssetDTO `json:"assets"`
}

// GetAssetRequest represents the request to fetch one asset
type GetAssetRequest struct {
	UUID   string `json:"-"`
	UserID uint   `json:"-"`
}

// AssetResponse wraps an asset with an operation message
type AssetResponse struct {
	Message string   `json:"message"`
	Asset   AssetDTO `json:"asset"`
}

// UpdateAssetRequest represents the request to rename an asset
type UpdateAssetRequest struct {
	UUID   string  `json:"-"`
	UserID uint    `json:"-"`
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
}

// RegenerateAssetRequest represents the request to produce one more version
type RegenerateAssetRequest struct {
	UUID         string  `json:"-"`
	UserID       uint    `json:"-"`
	Instructions *string `json:"instructions,omitempty" validate:"omitempty,max=2000"`
	Strategy     *string `json:"strategy,omitempty" validate:"omitempty,oneof=conversion awareness urgency emotional"`
}

// EmailContentUpdateDTO holds field-level edits to email content.
// Nil fields keep their current value.
type EmailContentUpdateDTO struct {
	SubjectLine *string `json:"subject_line,omitempty" validate:"omitempty,max=255"`
	Preheader   *string `json:"preheader,omitempty" validate:"omitempty,max=255"`
	Headline    *string `json:"headline,omitempty" validate:"omitempty,max=255"`
	BodyCopy    *string `json:"body_copy,omitempty" validate:"omitempty,max=10000"`
	CTAText     *string `json:"cta_text,omitempty" validate:"omitempty,max=100"`
}

// MetaAdContentUpdateDTO holds field-level edits to meta-ad content.
// Nil fields keep their current value.
type MetaAdContentUpdateDTO struct {
	PrimaryText *string `json:"primary_text,omitempty" validate:"omitempty,max=1000"`
	Headline    *string `json:"headline,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
	CTAButton   *string `json:"cta_button,omitempty" validate:"omitempty,max=100"`
}

// UpdateVersionRequest represents the request to edit one asset version.
// Any edit moves the version to "edited" unless an explicit status is given.
type UpdateVersionRequest struct {
	AssetUUID   string                  `json:"-"`
	VersionID   string                  `json:"-"`
	UserID      uint                    `json:"-"`
	VersionName *string                 `json:"version_name,omitempty" validate:"omitempty,min=1,max=255"`
	Status      *string                 `json:"status,omitempty" validate:"omitempty,oneof=pending generated edited approved"`
	Email       *EmailContentUpdateDTO  `json:"email,omitempty"`
	MetaAd      *MetaAdContentUpdateDTO `json:"meta_ad,omitempty"`
}

// UpdateVersionResponse represents the response to a version edit
type UpdateVersionResponse struct {
	Message string          `json:"message"`
	Version AssetVersionDTO `json:"version"`
}

// ApproveVersionRequest represents the request to approve one asset version
type ApproveVersionRequest struct {
	AssetUUID string `json:"-"`
	VersionID string `json:"-"`
	UserID    uint   `json:"-"`
}

// ApproveVersionResponse represents the response to a version approval
type ApproveVersionResponse struct {
	Message         string          `json:"message"`
	Version         AssetVersionDTO `json:"version"`
	IsFullyApproved bool            `json:"is_fully_approved"`
}
