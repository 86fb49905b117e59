package services

import (
	"testing"

	"github.com/markforge/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestRequest() GenerationRequest {
	return GenerationRequest{
		BrandGuide: &models.BrandGuide{
			CompanyName:     "Acme Outdoor Gear",
			Industry:        "Outdoor Recreation",
			VoiceAttributes: models.StringList{"adventurous", "trustworthy"},
			PhrasesToAvoid:  models.StringList{"cheap"},
		},
		Campaign: &models.Campaign{
			Name: "Spring Sale",
			Spec: models.CampaignSpec{
				Objective:    "Drive pack sales",
				CallToAction: "Shop the sale",
			},
		},
		Audience: &models.Audience{
			Name:       "Weekend Hikers",
			Propensity: models.PropensityHigh,
			Interests:  models.StringList{"day hikes"},
		},
		Channel:  models.ChannelEmail,
		Strategy: models.StrategyConversion,
	}
}

func TestBuildPromptEmail(t *testing.T) {
	prompt := BuildPrompt(buildTestRequest())

	assert.Contains(t, prompt, "BRAND:")
	assert.Contains(t, prompt, "Company: Acme Outdoor Gear (Outdoor Recreation)")
	assert.Contains(t, prompt, "Never use these phrases: cheap")
	assert.Contains(t, prompt, "CAMPAIGN:")
	assert.Contains(t, prompt, "Campaign: Spring Sale")
	assert.Contains(t, prompt, "TARGET AUDIENCE:")
	assert.Contains(t, prompt, "Audience: Weekend Hikers")
	assert.Contains(t, prompt, "STRATEGY: focus on driving immediate action")
	assert.Contains(t, prompt, `"subject_line"`)
	assert.Contains(t, prompt, `"cta_text"`)
	assert.NotContains(t, prompt, "ADDITIONAL INSTRUCTIONS")
}

func TestBuildPromptMetaAdsWithInstructions(t *testing.T) {
	req := buildTestRequest()
	req.Channel = models.ChannelMetaAds
	req.Strategy = models.StrategyAwareness
	req.Instructions = "Mention the lifetime repair guarantee"

	prompt := BuildPrompt(req)

	assert.Contains(t, prompt, "STRATEGY: focus on brand storytelling")
	assert.Contains(t, prompt, `"primary_text"`)
	assert.Contains(t, prompt, `"cta_button"`)
	assert.NotContains(t, prompt, `"subject_line"`)
	assert.Contains(t, prompt, "ADDITIONAL INSTRUCTIONS:\nMention the lifetime repair guarantee")
}

func TestBuildPromptSkipsMissingContext(t *testing.T) {
	req := GenerationRequest{Channel: models.ChannelEmail, Strategy: models.StrategyUrgency}
	prompt := BuildPrompt(req)

	assert.NotContains(t, prompt, "BRAND:")
	assert.NotContains(t, prompt, "CAMPAIGN:")
	assert.NotContains(t, prompt, "TARGET AUDIENCE:")
	assert.Contains(t, prompt, "STRATEGY: focus on scarcity")
}

func TestParseGeneratedContentEmail(t *testing.T) {
	reply := `Here is your copy:
{"subject_line":"Sale starts now","preheader":"20% off packs","headline":"Built for the trail","body_copy":"Our spring sale is live.","cta_text":"Shop now"}
Let me know if you need variations.`

	content, err := ParseGeneratedContent(reply, models.ChannelEmail)
	require.NoError(t, err)
	require.NotNil(t, content.Email)
	assert.Nil(t, content.MetaAd)
	assert.Equal(t, "Sale starts now", content.Email.SubjectLine)
	assert.Equal(t, "Shop now", content.Email.CTAText)
}

func TestParseGeneratedContentMetaAd(t *testing.T) {
	reply := `{"primary_text":"Gear that lasts","headline":"Spring Pack Sale","description":"Free returns","cta_button":"Shop Now"}`

	content, err := ParseGeneratedContent(reply, models.ChannelMetaAds)
	require.NoError(t, err)
	require.NotNil(t, content.MetaAd)
	assert.Nil(t, content.Email)
	assert.Equal(t, "Spring Pack Sale", content.MetaAd.Headline)
}

func TestParseGeneratedContentBracesInsideStrings(t *testing.T) {
	reply := `{"subject_line":"Use {code} at checkout","preheader":"","headline":"","body_copy":"Say \"hi\" {literally}","cta_text":"Go"}`

	content, err := ParseGeneratedContent(reply, models.ChannelEmail)
	require.NoError(t, err)
	require.NotNil(t, content.Email)
	assert.Equal(t, "Use {code} at checkout", content.Email.SubjectLine)
	assert.Equal(t, `Say "hi" {literally}`, content.Email.BodyCopy)
}

func TestParseGeneratedContentNoJSON(t *testing.T) {
	_, err := ParseGeneratedContent("Sorry, I cannot help with that.", models.ChannelEmail)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestParseGeneratedContentUnbalanced(t *testing.T) {
	_, err := ParseGeneratedContent(`{"subject_line":"never closed"`, models.ChannelEmail)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestParseGeneratedContentMalformedJSON(t *testing.T) {
	_, err := ParseGeneratedContent(`{"subject_line": }`, models.ChannelEmail)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestParseGeneratedContentUnsupportedChannel(t *testing.T) {
	_, err := ParseGeneratedContent(`{"a":"b"}`, models.ChannelType("sms"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}
