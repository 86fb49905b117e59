// Package tests contains integration tests for campaign flows
package tests

import (
	"fmt"
	"testing"
	"time"

	"github.com/markforge/backend/app/dto"
	businessflow "github.com/markforge/backend/business_flow"
	"github.com/markforge/backend/config"
	"github.com/markforge/backend/models"
	"github.com/markforge/backend/repository"
	testingutil "github.com/markforge/backend/testing"
	"github.com/markforge/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCampaignFlow(testDB *testingutil.TestDB, maxCampaigns int) businessflow.CampaignFlow {
	return businessflow.NewCampaignFlow(
		repository.NewCampaignRepository(testDB.DB),
		repository.NewAudienceRepository(testDB.DB),
		repository.NewBrandGuideRepository(testDB.DB),
		repository.NewAssetRepository(testDB.DB),
		repository.NewAuditLogRepository(testDB.DB),
		config.GenerationConfig{MaxAudiencesPerUser: 100, MaxCampaignsPerUser: maxCampaigns},
		testDB.DB,
	)
}

// seedCampaignOwner creates a user with a brand guide and n audiences
func seedCampaignOwner(t *testing.T, fixtures *testingutil.TestFixtures, n int) (*models.User, *models.BrandGuide, []*models.Audience) {
	t.Helper()

	user, err := fixtures.CreateTestUser()
	require.NoError(t, err)
	guide, err := fixtures.CreateTestBrandGuide(user.ID)
	require.NoError(t, err)

	audiences := make([]*models.Audience, 0, n)
	for i := 0; i < n; i++ {
		audience, err := fixtures.CreateTestAudience(user.ID)
		require.NoError(t, err)
		audiences = append(audiences, audience)
	}
	return user, guide, audiences
}

func TestCampaignFlowCreate(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		campaignFlow := newCampaignFlow(testDB, 50)
		ctx := testingutil.CreateTestContext()

		t.Run("SuccessfulCreate", func(t *testing.T) {
			user, _, audiences := seedCampaignOwner(t, fixtures, 2)

			resp, err := campaignFlow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
				UserID:    user.ID,
				Name:      "Spring Sale",
				Objective: "Drive pack sales",
				Segments: []dto.CampaignSegmentDTO{
					{AudienceUUID: audiences[0].UUID.String()},
					{AudienceUUID: audiences[1].UUID.String(), Instructions: "mention free returns"},
				},
				Channels: []dto.CampaignChannelDTO{
					{Type: "email", Enabled: true},
					{Type: "meta_ads", Enabled: true},
				},
				CallToAction: "Shop the sale",
				Urgency:      "medium",
			}, testMetadata())
			require.NoError(t, err)

			assert.Equal(t, "draft", resp.Campaign.Status)
			assert.Len(t, resp.Campaign.Segments, 2)
			assert.Len(t, resp.Campaign.Channels, 2)
			assert.Equal(t, 4, resp.Campaign.ExpectedAssetCount)
			assert.Equal(t, audiences[0].Name, resp.Campaign.Segments[0].AudienceName)
			assert.Equal(t, "mention free returns", resp.Campaign.Segments[1].Instructions)
		})

		t.Run("RequiresBrandGuide", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = campaignFlow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
				UserID: user.ID,
				Name:   "No Guide Yet",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsBrandGuideRequired(err))
		})

		t.Run("TooManySegments", func(t *testing.T) {
			user, _, audiences := seedCampaignOwner(t, fixtures, models.MaxCampaignSegments+1)

			segments := make([]dto.CampaignSegmentDTO, 0, len(audiences))
			for _, a := range audiences {
				segments = append(segments, dto.CampaignSegmentDTO{AudienceUUID: a.UUID.String()})
			}

			_, err := campaignFlow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
				UserID:   user.ID,
				Name:     "Too Wide",
				Segments: segments,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsTooManySegments(err))
		})

		t.Run("DuplicateSegmentAudience", func(t *testing.T) {
			user, _, audiences := seedCampaignOwner(t, fixtures, 1)

			_, err := campaignFlow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
				UserID: user.ID,
				Name:   "Duplicated Segment",
				Segments: []dto.CampaignSegmentDTO{
					{AudienceUUID: audiences[0].UUID.String()},
					{AudienceUUID: audiences[0].UUID.String()},
				},
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsDuplicateSegmentAudience(err))
		})

		t.Run("ForeignAudienceReference", func(t *testing.T) {
			user, _, _ := seedCampaignOwner(t, fixtures, 0)
			stranger, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			foreign, err := fixtures.CreateTestAudience(stranger.ID)
			require.NoError(t, err)

			_, err = campaignFlow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
				UserID: user.ID,
				Name:   "Borrowed Audience",
				Segments: []dto.CampaignSegmentDTO{
					{AudienceUUID: foreign.UUID.String()},
				},
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsForeignAudienceReference(err))
		})

		t.Run("DuplicateChannelType", func(t *testing.T) {
			user, _, _ := seedCampaignOwner(t, fixtures, 0)

			_, err := campaignFlow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
				UserID: user.ID,
				Name:   "Email Twice",
				Channels: []dto.CampaignChannelDTO{
					{Type: "email", Enabled: true},
					{Type: "email", Enabled: true},
				},
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsDuplicateChannelType(err))
		})

		t.Run("StartDateAfterEndDate", func(t *testing.T) {
			user, _, _ := seedCampaignOwner(t, fixtures, 0)
			start := utils.UTCNowAdd(48 * time.Hour)
			end := utils.UTCNow()

			_, err := campaignFlow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
				UserID:    user.ID,
				Name:      "Backwards Dates",
				StartDate: &start,
				EndDate:   &end,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsStartDateAfterEndDate(err))
		})

		t.Run("CampaignLimitEnforced", func(t *testing.T) {
			limitedFlow := newCampaignFlow(testDB, 1)
			user, _, _ := seedCampaignOwner(t, fixtures, 0)

			_, err := limitedFlow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
				UserID: user.ID,
				Name:   "First",
			}, testMetadata())
			require.NoError(t, err)

			_, err = limitedFlow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
				UserID: user.ID,
				Name:   "Second",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsCampaignLimitExceeded(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestCampaignFlowLifecycle(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		campaignFlow := newCampaignFlow(testDB, 50)
		campaignRepo := repository.NewCampaignRepository(testDB.DB)
		assetRepo := repository.NewAssetRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("CrossTenantReadIsNotFound", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)

			other, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = campaignFlow.GetCampaign(ctx, &dto.GetCampaignRequest{
				UUID: campaign.UUID.String(), UserID: other.ID,
			})
			require.Error(t, err)
			assert.True(t, businessflow.IsCampaignNotFound(err))
		})

		t.Run("UpdateDraft", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)

			resp, err := campaignFlow.UpdateCampaign(ctx, &dto.UpdateCampaignRequest{
				UUID:      campaign.UUID.String(),
				UserID:    user.ID,
				Name:      utils.ToPtr("Renamed Campaign"),
				Objective: utils.ToPtr("New objective"),
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "Renamed Campaign", resp.Campaign.Name)
			assert.Equal(t, "New objective", resp.Campaign.Objective)
			// Untouched spec fields survive
			assert.Equal(t, campaign.Spec.CallToAction, resp.Campaign.CallToAction)
		})

		t.Run("ApprovedCampaignNotEditable", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			require.NoError(t, campaignRepo.UpdateStatus(ctx, campaign.ID, models.CampaignStatusApproved))

			_, err = campaignFlow.UpdateCampaign(ctx, &dto.UpdateCampaignRequest{
				UUID:   campaign.UUID.String(),
				UserID: user.ID,
				Name:   utils.ToPtr("Should Fail"),
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsCampaignNotEditable(err))
		})

		t.Run("StatusTransitions", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)

			statusReq := &dto.ChangeCampaignStatusRequest{UUID: campaign.UUID.String(), UserID: user.ID}

			// Draft cannot be approved directly
			_, err = campaignFlow.ApproveCampaign(ctx, statusReq, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidStatusTransition(err))

			require.NoError(t, campaignRepo.UpdateStatus(ctx, campaign.ID, models.CampaignStatusGenerated))

			approveResp, err := campaignFlow.ApproveCampaign(ctx, statusReq, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "approved", approveResp.Status)

			archiveResp, err := campaignFlow.ArchiveCampaign(ctx, statusReq, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "archived", archiveResp.Status)

			// Archived is terminal
			_, err = campaignFlow.ApproveCampaign(ctx, statusReq, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidStatusTransition(err))
		})

		t.Run("DeleteRemovesAssets", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			resp, err := campaignFlow.DeleteCampaign(ctx, &dto.GetCampaignRequest{
				UUID: campaign.UUID.String(), UserID: user.ID,
			}, testMetadata())
			require.NoError(t, err)
			assert.True(t, resp.DeletedAssets)

			gone, err := assetRepo.ByUUID(ctx, asset.UUID.String())
			require.NoError(t, err)
			assert.Nil(t, gone)
		})

		t.Run("ListFiltersByStatus", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)

			for i := 0; i < 3; i++ {
				campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
				require.NoError(t, err)
				if i == 0 {
					require.NoError(t, campaignRepo.UpdateStatus(ctx, campaign.ID, models.CampaignStatusGenerated))
				}
			}

			all, err := campaignFlow.ListCampaigns(ctx, &dto.ListCampaignsRequest{
				UserID: user.ID, Page: 1, PageSize: 10,
			})
			require.NoError(t, err)
			assert.Len(t, all.Campaigns, 3)

			generated, err := campaignFlow.ListCampaigns(ctx, &dto.ListCampaignsRequest{
				UserID: user.ID, Page: 1, PageSize: 10, Status: utils.ToPtr("generated"),
			})
			require.NoError(t, err)
			assert.Len(t, generated.Campaigns, 1)

			_, err = campaignFlow.ListCampaigns(ctx, &dto.ListCampaignsRequest{
				UserID: user.ID, Page: 0, PageSize: 10,
			})
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidPage(err))
		})

		t.Run("ExportJSONIncludesAllVersions", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			_, err = fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)
			_, err = fixtures.CreateTestMetaAdAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			export, err := campaignFlow.ExportCampaign(ctx, &dto.ExportCampaignRequest{
				UUID: campaign.UUID.String(), UserID: user.ID, Format: "json",
			}, testMetadata())
			require.NoError(t, err)

			assert.Equal(t, campaign.UUID.String(), export.Campaign.UUID)
			assert.Len(t, export.Assets, 2)
			assert.NotEmpty(t, export.ExportedAt)
			for _, a := range export.Assets {
				assert.NotEmpty(t, a.Versions)
				assert.Equal(t, audiences[0].UUID.String(), a.AudienceUUID)
			}
		})

		t.Run("ExportOrderFollowsCampaignDefinition", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 2)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID, audiences[1].ID)
			require.NoError(t, err)

			// Insert rows in reverse of the declared (segment, channel) order
			_, err = fixtures.CreateTestMetaAdAsset(campaign.ID, audiences[1].ID)
			require.NoError(t, err)
			_, err = fixtures.CreateTestAsset(campaign.ID, audiences[1].ID)
			require.NoError(t, err)
			_, err = fixtures.CreateTestMetaAdAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)
			_, err = fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			export, err := campaignFlow.ExportCampaign(ctx, &dto.ExportCampaignRequest{
				UUID: campaign.UUID.String(), UserID: user.ID, Format: "json",
			}, testMetadata())
			require.NoError(t, err)
			require.Len(t, export.Assets, 4)

			assert.Equal(t, audiences[0].UUID.String(), export.Assets[0].AudienceUUID)
			assert.Equal(t, "email", export.Assets[0].ChannelType)
			assert.Equal(t, audiences[0].UUID.String(), export.Assets[1].AudienceUUID)
			assert.Equal(t, "meta_ads", export.Assets[1].ChannelType)
			assert.Equal(t, audiences[1].UUID.String(), export.Assets[2].AudienceUUID)
			assert.Equal(t, "email", export.Assets[2].ChannelType)
			assert.Equal(t, audiences[1].UUID.String(), export.Assets[3].AudienceUUID)
			assert.Equal(t, "meta_ads", export.Assets[3].ChannelType)
		})

		t.Run("ExportXLSXProducesWorkbook", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			_, err = fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			data, filename, err := campaignFlow.ExportCampaignXLSX(ctx, &dto.ExportCampaignRequest{
				UUID: campaign.UUID.String(), UserID: user.ID, Format: "xlsx",
			}, testMetadata())
			require.NoError(t, err)
			assert.NotEmpty(t, data)
			assert.Equal(t, fmt.Sprintf("campaign-%s.xlsx", campaign.UUID.String()), filename)
		})

		return nil
	})
	require.NoError(t, err)
}
