package dto

// CreateBrandGuideRequest represents the request to create the user's brand guide
type CreateBrandGuideRequest struct {
	UserID            uint     `json:"-"`
	CompanyName       string   `json:"company_name" validate:"required,min=1,max=255"`
	Industry          string   `json:"industry,omitempty" validate:"omitempty,max=255"`
	VoiceAttributes   []string `json:"voice_attributes,omitempty" validate:"omitempty,max=20,dive,max=100"`
	ToneGuidelines    string   `json:"tone_guidelines,omitempty" validate:"omitempty,max=2000"`
	ValueProposition  string   `json:"value_proposition,omitempty" validate:"omitempty,max=2000"`
	KeyMessages       []string `json:"key_messages,omitempty" validate:"omitempty,max=20,dive,max=500"`
	PhrasesToAvoid    []string `json:"phrases_to_avoid,omitempty" validate:"omitempty,max=50,dive,max=200"`
	PrimaryColors     []string `json:"primary_colors,omitempty" validate:"omitempty,max=10,dive,max=50"`
	TargetAudience    string   `json:"target_audience,omitempty" validate:"omitempty,max=2000"`
	CompetitorContext string   `json:"competitor_context,omitempty" validate:"omitempty,max=2000"`
}

// UpdateBrandGuideRequest represents the request to update the user's brand guide.
// Nil fields keep their current value.
type UpdateBrandGuideRequest struct {
	UserID            uint      `json:"-"`
	CompanyName       *string   `json:"company_name,omitempty" validate:"omitempty,min=1,max=255"`
	Industry          *string   `json:"industry,omitempty" validate:"omitempty,max=255"`
	VoiceAttributes   *[]string `json:"voice_attributes,omitempty"`
	ToneGuidelines    *string   `json:"tone_guidelines,omitempty" validate:"omitempty,max=2000"`
	ValueProposition  *string   `json:"value_proposition,omitempty" validate:"omitempty,max=2000"`
	KeyMessages       *[]string `json:"key_messages,omitempty"`
	PhrasesToAvoid    *[]string `json:"phrases_to_avoid,omitempty"`
	PrimaryColors     *[]string `json:"primary_colors,omitempty"`
	TargetAudience    *string   `json:"target_audience,omitempty" validate:"omitempty,max=2000"`
	CompetitorContext *string   `json:"competitor_context,omitempty" validate:"omitempty,max=2000"`
}

// BrandGuideDTO represents the brand guide in responses
type BrandGuideDTO struct {
	UUID              string   `json:"uuid"`
	CompanyName       string   `json:"company_name"`
	Industry          string   `json:"industry,omitempty"`
	VoiceAttributes   []string `json:"voice_attributes,omitempty"`
	ToneGuidelines    string   `json:"tone_guidelines,omitempty"`
	ValueProposition  string   `json:"value_proposition,omitempty"`
	KeyMessages       []string `json:"key_messages,omitempty"`
	PhrasesToAvoid    []string `json:"phrases_to_avoid,omitempty"`
	PrimaryColors     []string `json:"primary_colors,omitempty"`
	TargetAudience    string   `json:"target_audience,omitempty"`
	CompetitorContext string   `json:"competitor_context,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         *string  `json:"updated_at,omitempty"`
}

// BrandGuideResponse wraps a brand guide with an operation message
type BrandGuideResponse struct {
	Message    string        `json:"message"`
	BrandGuide BrandGuideDTO `json:"brand_guide"`
}

// DeleteBrandGuideResponse represents the response to a brand guide deletion
type DeleteBrandGuideResponse struct {
	Message string `json:"message"`
}
