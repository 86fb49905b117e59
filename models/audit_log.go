package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Audit action constants
const (
	AuditActionSignup             = "signup"
	AuditActionLogin              = "login"
	AuditActionLoginFailed        = "login_failed"
	AuditActionBrandGuideCreated  = "brand_guide_created"
	AuditActionBrandGuideUpdated  = "brand_guide_updated"
	AuditActionBrandGuideDeleted  = "brand_guide_deleted"
	AuditActionAudienceCreated    = "audience_created"
	AuditActionAudienceUpdated    = "audience_updated"
	AuditActionAudienceDeleted    = "audience_deleted"
	AuditActionCampaignCreated    = "campaign_created"
	AuditActionCampaignUpdated    = "campaign_updated"
	AuditActionCampaignDeleted    = "campaign_deleted"
	AuditActionCampaignGenerated  = "campaign_generated"
	AuditActionCampaignExported   = "campaign_exported"
	AuditActionAssetRegenerated   = "asset_regenerated"
	AuditActionAssetEdited        = "asset_edited"
	AuditActionVersionApproved    = "asset_version_approved"
	AuditActionGenerationFailed   = "generation_failed"
	AuditActionRegenerationFailed = "regeneration_failed"
)

// AuditLog records a user-attributed action for traceability
type AuditLog struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       *uint           `gorm:"index:idx_audit_logs_user_id" json:"user_id,omitempty"`
	Action       string          `gorm:"size:100;not null;index:idx_audit_logs_action" json:"action"`
	Description  string          `gorm:"type:text" json:"description"`
	Success      bool            `gorm:"not null" json:"success"`
	ErrorMessage *string         `gorm:"type:text" json:"error_message,omitempty"`
	IPAddress    string          `gorm:"size:45" json:"ip_address"`
	UserAgent    string          `gorm:"size:512" json:"user_agent"`
	RequestID    string          `gorm:"size:100" json:"request_id"`
	Metadata     json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_audit_logs_created_at" json:"created_at"`
}

// TableName returns the table name for the model
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate is called before creating a new record
func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	return nil
}

// AuditLogFilter represents filter criteria for audit logs
type AuditLogFilter struct {
	ID      *uint   `json:"id,omitempty"`
	UserID  *uint   `json:"user_id,omitempty"`
	Action  *string `json:"action,omitempty"`
	Success *bool   `json:"success,omitempty"`
}
