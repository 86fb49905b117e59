// Package testing provides test utilities and database setup for testing the content generation backend
package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/markforge/backend/models"
	"github.com/markforge/backend/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestUser creates a test user with a unique email
func (tf *TestFixtures) CreateTestUser() (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        fmt.Sprintf("jane.doe.%d@example.com", rand.Intn(100000000)),
		FirstName:    "Jane",
		LastName:     "Doe",
		CompanyName:  utils.ToPtr("Acme Outdoor Gear"),
		PasswordHash: string(hashedPassword),
		IsActive:     utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}

	return user, nil
}

// CreateTestBrandGuide creates a populated brand guide for the given user
func (tf *TestFixtures) CreateTestBrandGuide(userID uint) (*models.BrandGuide, error) {
	guide := &models.BrandGuide{
		UserID:            userID,
		CompanyName:       "Acme Outdoor Gear",
		Industry:          "Outdoor Recreation",
		VoiceAttributes:   models.StringList{"adventurous", "trustworthy", "down-to-earth"},
		ToneGuidelines:    "Speak like an experienced trail guide, never like a salesperson.",
		ValueProposition:  "Durable gear tested on real expeditions, at honest prices.",
		KeyMessages:       models.StringList{"Built to outlast the trail", "Lifetime repair guarantee"},
		PhrasesToAvoid:    models.StringList{"cheap", "best in class"},
		PrimaryColors:     models.StringList{"#1B4332", "#F4A261"},
		TargetAudience:    "Weekend hikers and serious backpackers aged 25-45",
		CompetitorContext: "Positioned against premium brands on durability per dollar.",
	}

	if err := tf.DB.DB.Create(guide).Error; err != nil {
		return nil, fmt.Errorf("failed to create test brand guide: %w", err)
	}

	return guide, nil
}

// CreateTestAudience creates an audience owned by the given user.
// A random suffix keeps names unique within the per-user unique index.
func (tf *TestFixtures) CreateTestAudience(userID uint) (*models.Audience, error) {
	audience := &models.Audience{
		UserID:      userID,
		Name:        fmt.Sprintf("Weekend Hikers %d", rand.Intn(100000)),
		Description: "Casual hikers who hit local trails a few times a month",
		Demographics: models.Demographics{
			AgeRange:    "25-40",
			IncomeRange: "$50k-$90k",
			Locations:   []string{"Denver", "Portland"},
		},
		Propensity:    models.PropensityHigh,
		Interests:     models.StringList{"day hikes", "trail running"},
		PainPoints:    models.StringList{"gear that wears out after one season"},
		PreferredTone: "friendly and practical",
		KeyMotivators: models.StringList{"durability", "value for money"},
		EstimatedSize: utils.ToPtr(int64(12000)),
		IsActive:      utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(audience).Error; err != nil {
		return nil, fmt.Errorf("failed to create test audience: %w", err)
	}

	return audience, nil
}

// CreateTestCampaign creates a draft campaign targeting the given audiences
// over both channels
func (tf *TestFixtures) CreateTestCampaign(userID, brandGuideID uint, audienceIDs ...uint) (*models.Campaign, error) {
	segments := make([]models.CampaignSegment, 0, len(audienceIDs))
	for _, id := range audienceIDs {
		segments = append(segments, models.CampaignSegment{AudienceID: id})
	}

	campaign := &models.Campaign{
		UserID:       userID,
		BrandGuideID: brandGuideID,
		Name:         fmt.Sprintf("Spring Sale %d", rand.Intn(100000)),
		Status:       models.CampaignStatusDraft,
		Spec: models.CampaignSpec{
			Objective:   "Drive sales of the new trail pack line",
			Description: "Seasonal promotion for returning customers",
			Segments:    segments,
			Channels: []models.CampaignChannel{
				{Type: models.ChannelEmail, Enabled: true, Purpose: "announce the sale"},
				{Type: models.ChannelMetaAds, Enabled: true, Purpose: "retarget site visitors"},
			},
			KeyMessages:  []string{"20% off all packs", "Free returns through June"},
			CallToAction: "Shop the sale",
			Urgency:      models.UrgencyMedium,
			StartDate:    utils.ToPtr(utils.UTCNow()),
			EndDate:      utils.ToPtr(utils.UTCNowAdd(30 * 24 * time.Hour)),
		},
	}

	if err := tf.DB.DB.Create(campaign).Error; err != nil {
		return nil, fmt.Errorf("failed to create test campaign: %w", err)
	}

	return campaign, nil
}

// CreateTestAsset creates a generated email asset with a single version
func (tf *TestFixtures) CreateTestAsset(campaignID, audienceID uint) (*models.Asset, error) {
	version := models.AssetVersion{
		ID:          uuid.New(),
		VersionName: models.StrategyConversion.Label(),
		Strategy:    models.StrategyConversion,
		Content: models.VersionContent{
			Email: &models.EmailContent{
				SubjectLine: "The trail pack sale starts now",
				Preheader:   "20% off everything that carries your gear",
				Headline:    "Packs built for one more season than you expect",
				BodyCopy:    "Our spring sale covers the entire trail pack line.",
				CTAText:     "Shop the sale",
			},
		},
		Status:      models.VersionStatusGenerated,
		GeneratedAt: utils.UTCNow(),
	}

	asset := &models.Asset{
		CampaignID:       campaignID,
		AudienceID:       audienceID,
		ChannelType:      models.ChannelEmail,
		AssetType:        models.AssetTypeHeroEmail,
		Name:             "Weekend Hikers - Email",
		GenerationPrompt: "test prompt",
		Versions:         models.AssetVersions{version},
	}

	if err := tf.DB.DB.Create(asset).Error; err != nil {
		return nil, fmt.Errorf("failed to create test asset: %w", err)
	}

	return asset, nil
}

// CreateTestMetaAdAsset creates a generated meta ads asset with a single version
func (tf *TestFixtures) CreateTestMetaAdAsset(campaignID, audienceID uint) (*models.Asset, error) {
	version := models.AssetVersion{
		ID:          uuid.New(),
		VersionName: models.StrategyConversion.Label(),
		Strategy:    models.StrategyConversion,
		Content: models.VersionContent{
			MetaAd: &models.MetaAdContent{
				PrimaryText: "Gear that outlasts the trail. 20% off all packs this spring.",
				Headline:    "Spring Pack Sale",
				Description: "Free returns through June",
				CTAButton:   "Shop Now",
			},
		},
		Status:      models.VersionStatusGenerated,
		GeneratedAt: utils.UTCNow(),
	}

	asset := &models.Asset{
		CampaignID:       campaignID,
		AudienceID:       audienceID,
		ChannelType:      models.ChannelMetaAds,
		AssetType:        models.AssetTypeSingleImageAd,
		Name:             "Weekend Hikers - Meta Ad",
		GenerationPrompt: "test prompt",
		Versions:         models.AssetVersions{version},
	}

	if err := tf.DB.DB.Create(asset).Error; err != nil {
		return nil, fmt.Errorf("failed to create test asset: %w", err)
	}

	return asset, nil
}

// CreateTestAuditLog creates a test audit log entry
func (tf *TestFixtures) CreateTestAuditLog(userID *uint, action string, success bool) (*models.AuditLog, error) {
	audit := &models.AuditLog{
		UserID:      userID,
		Action:      action,
		Description: fmt.Sprintf("Test %s action", action),
		Success:     success,
		IPAddress:   "127.0.0.1",
		UserAgent:   "Test User Agent",
	}

	if !success {
		errorMessage := "Test failed action"
		audit.ErrorMessage = &errorMessage
	}

	if err := tf.DB.DB.Create(audit).Error; err != nil {
		return nil, fmt.Errorf("failed to create test audit log: %w", err)
	}

	return audit, nil
}
