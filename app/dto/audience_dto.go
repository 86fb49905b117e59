package dto

// DemographicsDTO describes the measurable traits of an audience segment
type DemographicsDTO struct {
	AgeRange    string   `json:"age_range,omitempty" validate:"omitempty,max=50"`
	IncomeRange string   `json:"income_range,omitempty" validate:"omitempty,max=50"`
	Locations   []string `json:"locations,omitempty" validate:"omitempty,max=20,dive,max=100"`
	Other       string   `json:"other,omitempty" validate:"omitempty,max=500"`
}

// CreateAudienceRequest represents the request to create a new audience
type CreateAudienceRequest struct {
	UserID        uint            `json:"-"`
	Name          string          `json:"name" validate:"required,min=1,max=255"`
	Description   string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Demographics  DemographicsDTO `json:"demographics,omitempty"`
	Propensity    string          `json:"propensity,omitempty" validate:"omitempty,oneof=high medium low"`
	Interests     []string        `json:"interests,omitempty" validate:"omitempty,max=30,dive,max=100"`
	PainPoints    []string        `json:"pain_points,omitempty" validate:"omitempty,max=30,dive,max=200"`
	PreferredTone string          `json:"preferred_tone,omitempty" validate:"omitempty,max=255"`
	KeyMotivators []string        `json:"key_motivators,omitempty" validate:"omitempty,max=30,dive,max=200"`
	EstimatedSize *int64          `json:"estimated_size,omitempty" validate:"omitempty,min=0"`
	IsActive      *bool           `json:"is_active,omitempty"`
}

// UpdateAudienceRequest represents the request to update an existing audience.
// Nil fields keep their current value.
type UpdateAudienceRequest struct {
	UUID          string           `json:"-"`
	UserID        uint             `json:"-"`
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description   *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Demographics  *DemographicsDTO `json:"demographics,omitempty"`
	Propensity    *string          `json:"propensity,omitempty" validate:"omitempty,oneof=high medium low"`
	Interests     *[]string        `json:"interests,omitempty"`
	PainPoints    *[]string        `json:"pain_points,omitempty"`
	PreferredTone *string          `json:"preferred_tone,omitempty" validate:"omitempty,max=255"`
	KeyMotivators *[]string        `json:"key_motivators,omitempty"`
	EstimatedSize *int64           `json:"estimated_size,omitempty" validate:"omitempty,min=0"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

// AudienceDTO represents an audience in responses
type AudienceDTO struct {
	UUID          string          `json:"uuid"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Demographics  DemographicsDTO `json:"demographics"`
	Propensity    string          `json:"propensity"`
	Interests     []string        `json:"interests,omitempty"`
	PainPoints    []string        `json:"pain_points,omitempty"`
	PreferredTone string          `json:"preferred_tone,omitempty"`
	KeyMotivators []string        `json:"key_motivators,omitempty"`
	EstimatedSize *int64          `json:"estimated_size,omitempty"`
	IsActive      *bool           `json:"is_active"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     *string         `json:"updated_at,omitempty"`
}

// AudienceResponse wraps an audience with an operation message
type AudienceResponse struct {
	Message  string      `json:"message"`
	Audience AudienceDTO `json:"audience"`
}

// ListAudiencesRequest represents the request to list the user's audiences
type ListAudiencesRequest struct {
	UserID   uint `json:"-"`
	Page     int  `json:"-"`
	PageSize int  `json:"-"`
}

// ListAudiencesResponse represents the paginated audience list
type ListAudiencesResponse struct {
	Message    string        `json:"message"`
	Audiences  []AudienceDTO `json:"audiences"`
	Pagination PaginationDTO `json:"pagination"`
}

// DeleteAudienceResponse represents the response to an audience deletion
type DeleteAudienceResponse struct {
	Message string `json:"message"`
}
