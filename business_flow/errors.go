// Package businessflow contains the core business logic and use cases for the application's workflows
package businessflow

import (
	"errors"
	"fmt"

	"github.com/markforge/backend/app/services"
)

// Business flow error constants
var (
	// User-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session has expired")

	// Brand guide errors
	ErrBrandGuideNotFound      = errors.New("brand guide not found")
	ErrBrandGuideAlreadyExists = errors.New("brand guide already exists for this user")

	// Audience errors
	ErrAudienceNotFound      = errors.New("audience not found")
	ErrAudienceAccessDenied  = errors.New("audience access denied")
	ErrAudienceNameTaken     = errors.New("audience name already in use")
	ErrAudienceLimitExceeded = errors.New("audience limit exceeded")

	// Campaign errors
	ErrCampaignNotFound          = errors.New("campaign not found")
	ErrCampaignAccessDenied      = errors.New("campaign access denied")
	ErrCampaignNotEditable       = errors.New("campaign cannot be modified in current status")
	ErrCampaignLimitExceeded     = errors.New("campaign limit exceeded")
	ErrInvalidStatusTransition   = errors.New("invalid campaign status transition")
	ErrTooManySegments           = errors.New("too many segments")
	ErrTooManyChannels           = errors.New("too many channels")
	ErrForeignAudienceReference  = errors.New("segment references an audience not owned by the user")
	ErrStartDateAfterEndDate     = errors.New("start date cannot be after end date")
	ErrNoSegmentsConfigured      = errors.New("campaign has no segments configured")
	ErrNoEnabledChannels         = errors.New("campaign has no enabled channels")
	ErrUnsupportedExportFormat   = errors.New("unsupported export format")
	ErrDuplicateChannelType      = errors.New("duplicate channel type")
	ErrDuplicateSegmentAudience  = errors.New("duplicate audience in segments")
	ErrCampaignNameRequired      = errors.New("campaign name is required")
	ErrBrandGuideRequired        = errors.New("a brand guide is required before creating campaigns")

	// Asset errors
	ErrAssetNotFound        = errors.New("asset not found")
	ErrAssetAccessDenied    = errors.New("asset access denied")
	ErrVersionNotFound      = errors.New("asset version not found")
	ErrContentShapeMismatch = errors.New("content edit does not match the asset's channel")
	ErrConcurrentUpdate     = errors.New("asset was modified concurrently, retry")

	// Generation errors. The adapter's sentinel is reused so a failed
	// generation matches across layers.
	ErrGenerationFailed = services.ErrGenerationFailed

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

func IsBrandGuideNotFound(err error) bool {
	return errors.Is(err, ErrBrandGuideNotFound)
}

func IsBrandGuideAlreadyExists(err error) bool {
	return errors.Is(err, ErrBrandGuideAlreadyExists)
}

func IsAudienceNotFound(err error) bool {
	return errors.Is(err, ErrAudienceNotFound)
}

func IsAudienceAccessDenied(err error) bool {
	return errors.Is(err, ErrAudienceAccessDenied)
}

func IsAudienceNameTaken(err error) bool {
	return errors.Is(err, ErrAudienceNameTaken)
}

func IsAudienceLimitExceeded(err error) bool {
	return errors.Is(err, ErrAudienceLimitExceeded)
}

func IsCampaignNotFound(err error) bool {
	return errors.Is(err, ErrCampaignNotFound)
}

func IsCampaignAccessDenied(err error) bool {
	return errors.Is(err, ErrCampaignAccessDenied)
}

func IsCampaignNotEditable(err error) bool {
	return errors.Is(err, ErrCampaignNotEditable)
}

func IsCampaignLimitExceeded(err error) bool {
	return errors.Is(err, ErrCampaignLimitExceeded)
}

func IsInvalidStatusTransition(err error) bool {
	return errors.Is(err, ErrInvalidStatusTransition)
}

func IsForeignAudienceReference(err error) bool {
	return errors.Is(err, ErrForeignAudienceReference)
}

func IsStartDateAfterEndDate(err error) bool {
	return errors.Is(err, ErrStartDateAfterEndDate)
}

func IsUnsupportedExportFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedExportFormat)
}

func IsAssetNotFound(err error) bool {
	return errors.Is(err, ErrAssetNotFound)
}

func IsAssetAccessDenied(err error) bool {
	return errors.Is(err, ErrAssetAccessDenied)
}

func IsVersionNotFound(err error) bool {
	return errors.Is(err, ErrVersionNotFound)
}

func IsContentShapeMismatch(err error) bool {
	return errors.Is(err, ErrContentShapeMismatch)
}

func IsConcurrentUpdate(err error) bool {
	return errors.Is(err, ErrConcurrentUpdate)
}

func IsGenerationFailed(err error) bool {
	return errors.Is(err, ErrGenerationFailed)
}

func IsTooManySegments(err error) bool {
	return errors.Is(err, ErrTooManySegments)
}

func IsTooManyChannels(err error) bool {
	return errors.Is(err, ErrTooManyChannels)
}

func IsDuplicateChannelType(err error) bool {
	return errors.Is(err, ErrDuplicateChannelType)
}

func IsDuplicateSegmentAudience(err error) bool {
	return errors.Is(err, ErrDuplicateSegmentAudience)
}

func IsNoSegmentsConfigured(err error) bool {
	return errors.Is(err, ErrNoSegmentsConfigured)
}

func IsNoEnabledChannels(err error) bool {
	return errors.Is(err, ErrNoEnabledChannels)
}

func IsBrandGuideRequired(err error) bool {
	return errors.Is(err, ErrBrandGuideRequired)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}
