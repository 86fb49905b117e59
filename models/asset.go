package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssetType identifies the artifact shape produced for a channel
type AssetType string

const (
	AssetTypeHeroEmail     AssetType = "hero_email"
	AssetTypeSingleImageAd AssetType = "single_image_ad"
)

// Valid checks if the asset type is valid
func (t AssetType) Valid() bool {
	return t == AssetTypeHeroEmail || t == AssetTypeSingleImageAd
}

// Strategy represents a messaging angle that flavors one generated version
type Strategy string

const (
	StrategyConversion Strategy = "conversion"
	StrategyAwareness  Strategy = "awareness"
	StrategyUrgency    Strategy = "urgency"
	StrategyEmotional  Strategy = "emotional"
)

// Valid checks if the strategy is valid
func (s Strategy) Valid() bool {
	switch s {
	case StrategyConversion, StrategyAwareness, StrategyUrgency, StrategyEmotional:
		return true
	default:
		return false
	}
}

// Label returns the human-readable version name for the strategy
func (s Strategy) Label() string {
	switch s {
	case StrategyConversion:
		return "Conversion Focus"
	case StrategyAwareness:
		return "Awareness Focus"
	case StrategyUrgency:
		return "Urgency Focus"
	case StrategyEmotional:
		return "Emotional Focus"
	default:
		return "Untitled"
	}
}

// DefaultStrategies is the ordered strategy pair used by bulk generation
var DefaultStrategies = []Strategy{StrategyConversion, StrategyAwareness}

// VersionStatus represents the lifecycle state of one asset version
type VersionStatus string

const (
	VersionStatusPending   VersionStatus = "pending"
	VersionStatusGenerated VersionStatus = "generated"
	VersionStatusEdited    VersionStatus = "edited"
	VersionStatusApproved  VersionStatus = "approved"
)

// Valid checks if the version status is valid
func (s VersionStatus) Valid() bool {
	switch s {
	case VersionStatusPending, VersionStatusGenerated, VersionStatusEdited, VersionStatusApproved:
		return true
	default:
		return false
	}
}

// EmailContent is the content shape generated for the email channel
type EmailContent struct {
	SubjectLine string `json:"subject_line"`
	Preheader   string `json:"preheader"`
	Headline    string `json:"headline"`
	BodyCopy    string `json:"body_copy"`
	CTAText     string `json:"cta_text"`
}

// MetaAdContent is the content shape generated for the meta_ads channel
type MetaAdContent struct {
	PrimaryText string `json:"primary_text"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	CTAButton   string `json:"cta_button"`
}

// VersionContent is a tagged union keyed by the asset's channel type.
// Exactly one side is set.
type VersionContent struct {
	Email  *EmailContent  `json:"email,omitempty"`
	MetaAd *MetaAdContent `json:"meta_ad,omitempty"`
}

// AssetVersion is one strategy-flavored content candidate within an asset
type AssetVersion struct {
	ID          uuid.UUID      `json:"id"`
	VersionName string         `json:"version_name"`
	Strategy    Strategy       `json:"strategy"`
	Content     VersionContent `json:"content"`
	Status      VersionStatus  `json:"status"`
	GeneratedAt time.Time      `json:"generated_at"`
	EditedAt    *time.Time     `json:"edited_at,omitempty"`
}

// MaxAssetVersions caps the retained versions per asset; older versions are
// dropped front-first when a regeneration would exceed it.
const MaxAssetVersions = 3

// AssetVersions is the ordered jsonb-backed version list of an asset
type AssetVersions []AssetVersion

// Value implements the driver.Valuer interface for AssetVersions
func (v AssetVersions) Value() (driver.Value, error) {
	if v == nil {
		return json.Marshal([]AssetVersion{})
	}
	return json.Marshal(v)
}

// Scan implements the sql.Scanner interface for AssetVersions
func (v *AssetVersions) Scan(value any) error {
	if value == nil {
		*v = nil
		return nil
	}

	var bytes []byte
	switch val := value.(type) {
	case []byte:
		bytes = val
	case string:
		bytes = []byte(val)
	default:
		return fmt.Errorf("cannot scan %T into AssetVersions", value)
	}

	return json.Unmarshal(bytes, v)
}

// Append adds a version and truncates to the newest MaxAssetVersions entries,
// dropping from the front (insertion order).
func (v AssetVersions) Append(version AssetVersion) AssetVersions {
	out := append(v, version)
	if len(out) > MaxAssetVersions {
		out = out[len(out)-MaxAssetVersions:]
	}
	return out
}

// Asset is one generated artifact for a (campaign, audience, channel) triple.
// Assets are created only by the generation pipeline and cascade-deleted with
// their campaign.
type Asset struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	UUID             uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:uk_assets_uuid" json:"uuid"`
	CampaignID       uint          `gorm:"not null;index:idx_assets_campaign_id" json:"campaign_id"`
	AudienceID       uint          `gorm:"not null;index:idx_assets_audience_id" json:"audience_id"`
	ChannelType      ChannelType   `gorm:"type:varchar(20);not null" json:"channel_type"`
	AssetType        AssetType     `gorm:"type:varchar(30);not null" json:"asset_type"`
	Name             string        `gorm:"size:255;not null" json:"name"`
	GenerationPrompt string        `gorm:"type:text" json:"generation_prompt"`
	Versions         AssetVersions `gorm:"type:jsonb;not null" json:"versions"`
	LockVersion      int64         `gorm:"not null;default:0" json:"lock_version"`
	CreatedAt        time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt        *time.Time    `json:"updated_at,omitempty"`

	// Relations
	Campaign *Campaign `gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE" json:"campaign,omitempty"`
	Audience *Audience `gorm:"foreignKey:AudienceID;references:ID" json:"audience,omitempty"`
}

// TableName returns the table name for the model
func (Asset) TableName() string {
	return "assets"
}

// BeforeCreate is called before creating a new record
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	return nil
}

// LatestVersion returns the most recently appended version, or nil.
// Computed on read.
func (a *Asset) LatestVersion() *AssetVersion {
	if len(a.Versions) == 0 {
		return nil
	}
	return &a.Versions[len(a.Versions)-1]
}

// VersionByID returns the version with the given id, or nil
func (a *Asset) VersionByID(id uuid.UUID) *AssetVersion {
	for i := range a.Versions {
		if a.Versions[i].ID == id {
			return &a.Versions[i]
		}
	}
	return nil
}

// IsFullyApproved reports whether every version is approved. Computed on read.
func (a *Asset) IsFullyApproved() bool {
	if len(a.Versions) == 0 {
		return false
	}
	for _, v := range a.Versions {
		if v.Status != VersionStatusApproved {
			return false
		}
	}
	return true
}

// AssetFilter represents filter criteria for assets
type AssetFilter struct {
	ID          *uint        `json:"id,omitempty"`
	UUID        *uuid.UUID   `json:"uuid,omitempty"`
	CampaignID  *uint        `json:"campaign_id,omitempty"`
	AudienceID  *uint        `json:"audience_id,omitempty"`
	ChannelType *ChannelType `json:"channel_type,omitempty"`
}
