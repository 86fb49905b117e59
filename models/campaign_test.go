package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCampaignStatusTransitions(t *testing.T) {
	cases := []struct {
		from    CampaignStatus
		to      CampaignStatus
		allowed bool
	}{
		{CampaignStatusDraft, CampaignStatusGenerated, true},
		{CampaignStatusDraft, CampaignStatusApproved, false},
		{CampaignStatusDraft, CampaignStatusArchived, false},
		{CampaignStatusGenerated, CampaignStatusApproved, true},
		{CampaignStatusGenerated, CampaignStatusArchived, true},
		{CampaignStatusGenerated, CampaignStatusDraft, false},
		{CampaignStatusApproved, CampaignStatusArchived, true},
		{CampaignStatusApproved, CampaignStatusGenerated, false},
		{CampaignStatusArchived, CampaignStatusDraft, false},
		{CampaignStatusArchived, CampaignStatusGenerated, false},
		{CampaignStatusArchived, CampaignStatusApproved, false},
	}

	for _, tc := range cases {
		campaign := &Campaign{Status: tc.from}
		assert.Equal(t, tc.allowed, campaign.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestCampaignIsEditable(t *testing.T) {
	assert.True(t, (&Campaign{Status: CampaignStatusDraft}).IsEditable())
	assert.True(t, (&Campaign{Status: CampaignStatusGenerated}).IsEditable())
	assert.False(t, (&Campaign{Status: CampaignStatusApproved}).IsEditable())
	assert.False(t, (&Campaign{Status: CampaignStatusArchived}).IsEditable())
}

func TestExpectedAssetCount(t *testing.T) {
	campaign := &Campaign{
		Spec: CampaignSpec{
			Segments: []CampaignSegment{{AudienceID: 1}, {AudienceID: 2}, {AudienceID: 3}},
			Channels: []CampaignChannel{
				{Type: ChannelEmail, Enabled: true},
				{Type: ChannelMetaAds, Enabled: false},
			},
		},
	}
	assert.Equal(t, 3, campaign.ExpectedAssetCount())

	campaign.Spec.Channels[1].Enabled = true
	assert.Equal(t, 6, campaign.ExpectedAssetCount())

	campaign.Spec.Segments = nil
	assert.Equal(t, 0, campaign.ExpectedAssetCount())
}

func TestEnabledChannelsPreservesOrder(t *testing.T) {
	spec := CampaignSpec{
		Channels: []CampaignChannel{
			{Type: ChannelMetaAds, Enabled: true},
			{Type: ChannelEmail, Enabled: false},
		},
	}
	enabled := spec.EnabledChannels()
	assert.Len(t, enabled, 1)
	assert.Equal(t, ChannelMetaAds, enabled[0].Type)

	spec.Channels[1].Enabled = true
	enabled = spec.EnabledChannels()
	assert.Len(t, enabled, 2)
	assert.Equal(t, ChannelMetaAds, enabled[0].Type)
	assert.Equal(t, ChannelEmail, enabled[1].Type)
}

func TestChannelTypeDerivations(t *testing.T) {
	assert.Equal(t, AssetTypeHeroEmail, ChannelEmail.AssetTypeFor())
	assert.Equal(t, AssetTypeSingleImageAd, ChannelMetaAds.AssetTypeFor())
	assert.Equal(t, "Email", ChannelEmail.DisplaySuffix())
	assert.Equal(t, "Meta Ad", ChannelMetaAds.DisplaySuffix())
}

func TestCampaignContextSummary(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	campaign := &Campaign{
		Name: "Spring Sale",
		Spec: CampaignSpec{
			Objective:    "Drive pack sales",
			KeyMessages:  []string{"20% off", "Free returns"},
			CallToAction: "Shop now",
			Urgency:      UrgencyHigh,
			StartDate:    &start,
			EndDate:      &end,
		},
	}

	summary := campaign.ContextSummary()
	assert.True(t, strings.HasPrefix(summary, "Campaign: Spring Sale"))
	assert.Contains(t, summary, "Objective: Drive pack sales")
	assert.Contains(t, summary, "Key messages: 20% off; Free returns")
	assert.Contains(t, summary, "Call to action: Shop now")
	assert.Contains(t, summary, "Urgency level: high")
	assert.Contains(t, summary, "Runs 2026-03-01 to 2026-03-31")

	// Empty spec fields stay out of the summary
	bare := &Campaign{Name: "Bare"}
	assert.Equal(t, "Campaign: Bare", bare.ContextSummary())
}
