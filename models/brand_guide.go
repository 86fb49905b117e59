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

// StringList is a jsonb-backed list of short strings
type StringList []string

// Value implements the driver.Valuer interface for StringList
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for StringList
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	return json.Unmarshal(bytes, l)
}

// BrandGuide holds the company identity used as generation context.
// Exactly one guide exists per user, enforced by a unique index on user_id.
type BrandGuide struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UUID              uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_brand_guides_uuid" json:"uuid"`
	UserID            uint       `gorm:"not null;uniqueIndex:uk_brand_guides_user_id" json:"user_id"`
	CompanyName       string     `gorm:"size:255;not null" json:"company_name"`
	Industry          string     `gorm:"size:255" json:"industry"`
	VoiceAttributes   StringList `gorm:"type:jsonb" json:"voice_attributes"`
	ToneGuidelines    string     `gorm:"type:text" json:"tone_guidelines"`
	ValueProposition  string     `gorm:"type:text" json:"value_proposition"`
	KeyMessages       StringList `gorm:"type:jsonb" json:"key_messages"`
	PhrasesToAvoid    StringList `gorm:"type:jsonb" json:"phrases_to_avoid"`
	PrimaryColors     StringList `gorm:"type:jsonb" json:"primary_colors"`
	TargetAudience    string     `gorm:"type:text" json:"target_audience"`
	CompetitorContext string     `gorm:"type:text" json:"competitor_context"`
	CreatedAt         time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`

	// Relations
	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

// TableName returns the table name for the model
func (BrandGuide) TableName() string {
	return "brand_guides"
}

// BeforeCreate is called before creating a new record
func (g *BrandGuide) BeforeCreate(tx *gorm.DB) error {
	if g.UUID == uuid.Nil {
		g.UUID = uuid.New()
	}
	return nil
}

// ContextSummary flattens the guide into the prompt-facing projection.
// Computed on read, never persisted.
func (g *BrandGuide) ContextSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s", g.CompanyName)
	if g.Industry != "" {
		fmt.Fprintf(&b, " (%s)", g.Industry)
	}
	if len(g.VoiceAttributes) > 0 {
		fmt.Fprintf(&b, "\nBrand voice: %s", strings.Join(g.VoiceAttributes, ", "))
	}
	if g.ToneGuidelines != "" {
		fmt.Fprintf(&b, "\nTone guidelines: %s", g.ToneGuidelines)
	}
	if g.ValueProposition != "" {
		fmt.Fprintf(&b, "\nValue proposition: %s", g.ValueProposition)
	}
	if len(g.KeyMessages) > 0 {
		fmt.Fprintf(&b, "\nKey messages: %s", strings.Join(g.KeyMessages, "; "))
	}
	if len(g.PhrasesToAvoid) > 0 {
		fmt.Fprintf(&b, "\nNever use these phrases: %s", strings.Join(g.PhrasesToAvoid, ", "))
	}
	if g.TargetAudience != "" {
		fmt.Fprintf(&b, "\nOverall target audience: %s", g.TargetAudience)
	}
	if g.CompetitorContext != "" {
		fmt.Fprintf(&b, "\nCompetitive context: %s", g.CompetitorContext)
	}
	return b.String()
}

// BrandGuideFilter represents filter criteria for brand guides
type BrandGuideFilter struct {
	ID     *uint      `json:"id,omitempty"`
	UUID   *uuid.UUID `json:"uuid,omitempty"`
	UserID *uint      `json:"user_id,omitempty"`
}
