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

// PropensityLevel represents how likely an audience is to convert
type PropensityLevel string

const (
	PropensityHigh   PropensityLevel = "high"
	PropensityMedium PropensityLevel = "medium"
	PropensityLow    PropensityLevel = "low"
)

// String returns the string representation of the level
func (p PropensityLevel) String() string {
	return string(p)
}

// Valid checks if the level is valid
func (p PropensityLevel) Valid() bool {
	switch p {
	case PropensityHigh, PropensityMedium, PropensityLow:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for PropensityLevel
func (p *PropensityLevel) Scan(value any) error {
	if value == nil {
		*p = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*p = PropensityLevel(v)
	case []byte:
		*p = PropensityLevel(string(v))
	default:
		return fmt.Errorf("cannot scan %T into PropensityLevel", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for PropensityLevel
func (p PropensityLevel) Value() (driver.Value, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid PropensityLevel: %s", p)
	}
	return string(p), nil
}

// Demographics describes the measurable traits of an audience segment
type Demographics struct {
	AgeRange    string   `json:"age_range,omitempty"`
	IncomeRange string   `json:"income_range,omitempty"`
	Locations   []string `json:"locations,omitempty"`
	Other       string   `json:"other,omitempty"`
}

// Value implements the driver.Valuer interface for Demographics
func (d Demographics) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface for Demographics
func (d *Demographics) Scan(value any) error {
	if value == nil {
		*d = Demographics{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Demographics", value)
	}

	return json.Unmarshal(bytes, d)
}

// Audience represents a targetable segment owned by a user.
// Names are unique per user; the total count per user is capped by config.
type Audience struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UUID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uk_audiences_uuid" json:"uuid"`
	UserID        uint            `gorm:"not null;index:idx_audiences_user_id;uniqueIndex:uk_audiences_user_name" json:"user_id"`
	Name          string          `gorm:"size:255;not null;uniqueIndex:uk_audiences_user_name" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Demographics  Demographics    `gorm:"type:jsonb" json:"demographics"`
	Propensity    PropensityLevel `gorm:"type:varchar(10);not null;default:'medium'" json:"propensity"`
	Interests     StringList      `gorm:"type:jsonb" json:"interests"`
	PainPoints    StringList      `gorm:"type:jsonb" json:"pain_points"`
	PreferredTone string          `gorm:"size:255" json:"preferred_tone"`
	KeyMotivators StringList      `gorm:"type:jsonb" json:"key_motivators"`
	EstimatedSize *int64          `json:"estimated_size,omitempty"`
	IsActive      *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`

	// Relations
	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

// TableName returns the table name for the model
func (Audience) TableName() string {
	return "audiences"
}

// BeforeCreate is called before creating a new record
func (a *Audience) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	if a.Propensity == "" {
		a.Propensity = PropensityMedium
	}
	return nil
}

// Summary flattens the audience into the prompt-facing projection.
// Computed on read, never persisted.
func (a *Audience) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Audience: %s", a.Name)
	if a.Description != "" {
		fmt.Fprintf(&b, " - %s", a.Description)
	}
	var demo []string
	if a.Demographics.AgeRange != "" {
		demo = append(demo, "age "+a.Demographics.AgeRange)
	}
	if a.Demographics.IncomeRange != "" {
		demo = append(demo, "income "+a.Demographics.IncomeRange)
	}
	if len(a.Demographics.Locations) > 0 {
		demo = append(demo, "located in "+strings.Join(a.Demographics.Locations, ", "))
	}
	if a.Demographics.Other != "" {
		demo = append(demo, a.Demographics.Other)
	}
	if len(demo) > 0 {
		fmt.Fprintf(&b, "\nDemographics: %s", strings.Join(demo, "; "))
	}
	fmt.Fprintf(&b, "\nPurchase propensity: %s", a.Propensity)
	if len(a.Interests) > 0 {
		fmt.Fprintf(&b, "\nInterests: %s", strings.Join(a.Interests, ", "))
	}
	if len(a.PainPoints) > 0 {
		fmt.Fprintf(&b, "\nPain points: %s", strings.Join(a.PainPoints, "; "))
	}
	if a.PreferredTone != "" {
		fmt.Fprintf(&b, "\nPreferred tone: %s", a.PreferredTone)
	}
	if len(a.KeyMotivators) > 0 {
		fmt.Fprintf(&b, "\nKey motivators: %s", strings.Join(a.KeyMotivators, ", "))
	}
	return b.String()
}

// AudienceFilter represents filter criteria for audiences
type AudienceFilter struct {
	ID       *uint            `json:"id,omitempty"`
	UUID     *uuid.UUID       `json:"uuid,omitempty"`
	UserID   *uint            `json:"user_id,omitempty"`
	Name     *string          `json:"name,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
	Level    *PropensityLevel `json:"level,omitempty"`
}
