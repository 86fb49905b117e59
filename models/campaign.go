package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CampaignStatus represents the status of a campaign
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusGenerated CampaignStatus = "generated"
	CampaignStatusApproved  CampaignStatus = "approved"
	CampaignStatusArchived  CampaignStatus = "archived"
)

// String returns the string representation of the status
func (s CampaignStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusGenerated,
		CampaignStatusApproved, CampaignStatusArchived:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for CampaignStatus
func (s *CampaignStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = CampaignStatus(v)
	case []byte:
		*s = CampaignStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CampaignStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for CampaignStatus
func (s CampaignStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid CampaignStatus: %s", s)
	}
	return string(s), nil
}

// UrgencyLevel represents how time-sensitive the campaign messaging should be
type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyHigh   UrgencyLevel = "high"
)

// Valid checks if the urgency level is valid
func (u UrgencyLevel) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	default:
		return false
	}
}

// ChannelType represents the delivery medium of a campaign channel
type ChannelType string

const (
	ChannelEmail   ChannelType = "email"
	ChannelMetaAds ChannelType = "meta_ads"
)

// Valid checks if the channel type is valid
func (t ChannelType) Valid() bool {
	return t == ChannelEmail || t == ChannelMetaAds
}

// AssetTypeFor derives the asset type produced for this channel
func (t ChannelType) AssetTypeFor() AssetType {
	if t == ChannelEmail {
		return AssetTypeHeroEmail
	}
	return AssetTypeSingleImageAd
}

// DisplaySuffix returns the human-readable suffix used in derived asset names
func (t ChannelType) DisplaySuffix() string {
	if t == ChannelEmail {
		return "Email"
	}
	return "Meta Ad"
}

// CampaignSegment pairs a campaign with one of the owner's audiences
type CampaignSegment struct {
	AudienceID   uint   `json:"audience_id"`
	Instructions string `json:"instructions,omitempty"`
}

// CampaignChannel describes one delivery medium selected for the campaign
type CampaignChannel struct {
	Type    ChannelType `json:"type"`
	Enabled bool        `json:"enabled"`
	Purpose string      `json:"purpose,omitempty"`
}

// Limits on the generation fan-out
const (
	MaxCampaignSegments = 5
	MaxCampaignChannels = 2
)

// CampaignSpec represents the JSON specification for a campaign
type CampaignSpec struct {
	Objective    string            `json:"objective,omitempty"`
	Description  string            `json:"description,omitempty"`
	Segments     []CampaignSegment `json:"segments,omitempty"`
	Channels     []CampaignChannel `json:"channels,omitempty"`
	KeyMessages  []string          `json:"key_messages,omitempty"`
	CallToAction string            `json:"call_to_action,omitempty"`
	Urgency      UrgencyLevel      `json:"urgency,omitempty"`
	StartDate    *time.Time        `json:"start_date,omitempty"`
	EndDate      *time.Time        `json:"end_date,omitempty"`
}

// Value implements the driver.Valuer interface for CampaignSpec
func (s CampaignSpec) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface for CampaignSpec
func (s *CampaignSpec) Scan(value any) error {
	if value == nil {
		*s = CampaignSpec{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into CampaignSpec", value)
	}

	return json.Unmarshal(bytes, s)
}

// EnabledChannels returns the enabled channels in declared order
func (s CampaignSpec) EnabledChannels() []CampaignChannel {
	var out []CampaignChannel
	for _, ch := range s.Channels {
		if ch.Enabled {
			out = append(out, ch)
		}
	}
	return out
}

// Campaign represents a generation request scope owned by a user.
// It references the brand guide that was current when it was created.
type Campaign struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UUID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uk_campaigns_uuid" json:"uuid"`
	UserID       uint           `gorm:"not null;index:idx_campaigns_user_id" json:"user_id"`
	BrandGuideID uint           `gorm:"not null" json:"brand_guide_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Status       CampaignStatus `gorm:"type:varchar(20);not null;default:'draft';index:idx_campaigns_status" json:"status"`
	Spec         CampaignSpec   `gorm:"type:jsonb;not null" json:"spec"`
	CreatedAt    time.Time      `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_campaigns_created_at" json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`

	// Relations
	User       *User       `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	BrandGuide *BrandGuide `gorm:"foreignKey:BrandGuideID;references:ID" json:"brand_guide,omitempty"`
	Assets     []Asset     `gorm:"foreignKey:CampaignID" json:"assets,omitempty"`
}

// TableName returns the table name for the model
func (Campaign) TableName() string {
	return "campaigns"
}

// BeforeCreate is called before creating a new record
func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CampaignStatusDraft
	}
	return nil
}

// CanTransitionTo checks if the campaign can transition to the given status
func (c *Campaign) CanTransitionTo(newStatus CampaignStatus) bool {
	switch c.Status {
	case CampaignStatusDraft:
		return newStatus == CampaignStatusGenerated
	case CampaignStatusGenerated:
		return newStatus == CampaignStatusApproved || newStatus == CampaignStatusArchived
	case CampaignStatusApproved:
		return newStatus == CampaignStatusArchived
	default:
		return false
	}
}

// IsEditable checks if the campaign spec can still be modified
func (c *Campaign) IsEditable() bool {
	return c.Status == CampaignStatusDraft || c.Status == CampaignStatusGenerated
}

// ExpectedAssetCount is segments x enabled channels. Computed on read.
func (c *Campaign) ExpectedAssetCount() int {
	return len(c.Spec.Segments) * len(c.Spec.EnabledChannels())
}

// ContextSummary flattens the campaign into the prompt-facing projection.
// Computed on read, never persisted.
func (c *Campaign) ContextSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Campaign: %s", c.Name)
	if c.Spec.Objective != "" {
		fmt.Fprintf(&b, "\nObjective: %s", c.Spec.Objective)
	}
	if c.Spec.Description != "" {
		fmt.Fprintf(&b, "\nDescription: %s", c.Spec.Description)
	}
	if len(c.Spec.KeyMessages) > 0 {
		fmt.Fprintf(&b, "\nKey messages: %s", strings.Join(c.Spec.KeyMessages, "; "))
	}
	if c.Spec.CallToAction != "" {
		fmt.Fprintf(&b, "\nCall to action: %s", c.Spec.CallToAction)
	}
	if c.Spec.Urgency != "" {
		fmt.Fprintf(&b, "\nUrgency level: %s", c.Spec.Urgency)
	}
	if c.Spec.StartDate != nil && c.Spec.EndDate != nil {
		fmt.Fprintf(&b, "\nRuns %s to %s",
			c.Spec.StartDate.Format("2006-01-02"), c.Spec.EndDate.Format("2006-01-02"))
	}
	return b.String()
}

// CampaignFilter represents filter criteria for campaigns
type CampaignFilter struct {
	ID            *uint           `json:"id,omitempty"`
	UUID          *uuid.UUID      `json:"uuid,omitempty"`
	UserID        *uint           `json:"user_id,omitempty"`
	Status        *CampaignStatus `json:"status,omitempty"`
	Name          *string         `json:"name,omitempty"`
	CreatedAfter  *time.Time      `json:"created_after,omitempty"`
	CreatedBefore *time.Time      `json:"created_before,omitempty"`
}
