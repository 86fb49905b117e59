// Package tests contains integration tests for asset review flows
package tests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/markforge/backend/app/dto"
	businessflow "github.com/markforge/backend/business_flow"
	"github.com/markforge/backend/models"
	"github.com/markforge/backend/repository"
	testingutil "github.com/markforge/backend/testing"
	"github.com/markforge/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssetFlow(testDB *testingutil.TestDB) businessflow.AssetFlow {
	return businessflow.NewAssetFlow(
		repository.NewAssetRepository(testDB.DB),
		repository.NewCampaignRepository(testDB.DB),
		repository.NewAudienceRepository(testDB.DB),
		repository.NewAuditLogRepository(testDB.DB),
		testDB.DB,
	)
}

func TestAssetFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		assetFlow := newAssetFlow(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("ListAssetsByCampaign", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			_, err = fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)
			_, err = fixtures.CreateTestMetaAdAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			resp, err := assetFlow.ListAssets(ctx, &dto.ListAssetsRequest{
				CampaignUUID: campaign.UUID.String(), UserID: user.ID,
			})
			require.NoError(t, err)
			require.Len(t, resp.Assets, 2)
			assert.Equal(t, campaign.UUID.String(), resp.Assets[0].CampaignUUID)
			assert.Equal(t, audiences[0].UUID.String(), resp.Assets[0].AudienceUUID)
		})

		t.Run("ListAssetsForeignCampaign", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)

			other, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = assetFlow.ListAssets(ctx, &dto.ListAssetsRequest{
				CampaignUUID: campaign.UUID.String(), UserID: other.ID,
			})
			require.Error(t, err)
			assert.True(t, businessflow.IsCampaignNotFound(err))
		})

		t.Run("GetAsset", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			resp, err := assetFlow.GetAsset(ctx, &dto.GetAssetRequest{
				UUID: asset.UUID.String(), UserID: user.ID,
			})
			require.NoError(t, err)
			assert.Equal(t, asset.Name, resp.Asset.Name)
			assert.Equal(t, "email", resp.Asset.ChannelType)
			require.Len(t, resp.Asset.Versions, 1)
			require.NotNil(t, resp.Asset.Versions[0].Content.Email)
		})

		t.Run("CrossTenantGetIsNotFound", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			other, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = assetFlow.GetAsset(ctx, &dto.GetAssetRequest{
				UUID: asset.UUID.String(), UserID: other.ID,
			})
			require.Error(t, err)
			assert.True(t, businessflow.IsAssetNotFound(err))
		})

		t.Run("RenameAsset", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			resp, err := assetFlow.UpdateAsset(ctx, &dto.UpdateAssetRequest{
				UUID:   asset.UUID.String(),
				UserID: user.ID,
				Name:   utils.ToPtr("Spring Hero Email"),
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "Spring Hero Email", resp.Asset.Name)
		})

		t.Run("EditEmailVersion", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			resp, err := assetFlow.UpdateVersion(ctx, &dto.UpdateVersionRequest{
				AssetUUID: asset.UUID.String(),
				VersionID: asset.Versions[0].ID.String(),
				UserID:    user.ID,
				Email: &dto.EmailContentUpdateDTO{
					SubjectLine: utils.ToPtr("Last chance on trail packs"),
					CTAText:     utils.ToPtr("Grab yours"),
				},
			}, testMetadata())
			require.NoError(t, err)

			assert.Equal(t, "edited", resp.Version.Status)
			assert.NotNil(t, resp.Version.EditedAt)
			require.NotNil(t, resp.Version.Content.Email)
			assert.Equal(t, "Last chance on trail packs", resp.Version.Content.Email.SubjectLine)
			assert.Equal(t, "Grab yours", resp.Version.Content.Email.CTAText)
			// Untouched fields survive
			assert.Equal(t, asset.Versions[0].Content.Email.BodyCopy, resp.Version.Content.Email.BodyCopy)
		})

		t.Run("RenameVersionMarksEdited", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			resp, err := assetFlow.UpdateVersion(ctx, &dto.UpdateVersionRequest{
				AssetUUID:   asset.UUID.String(),
				VersionID:   asset.Versions[0].ID.String(),
				UserID:      user.ID,
				VersionName: utils.ToPtr("Preferred Draft"),
			}, testMetadata())
			require.NoError(t, err)

			assert.Equal(t, "Preferred Draft", resp.Version.VersionName)
			// A rename is a manual edit like any other
			assert.Equal(t, "edited", resp.Version.Status)
			assert.NotNil(t, resp.Version.EditedAt)
		})

		t.Run("ExplicitStatusOverridesEditedDefault", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			resp, err := assetFlow.UpdateVersion(ctx, &dto.UpdateVersionRequest{
				AssetUUID: asset.UUID.String(),
				VersionID: asset.Versions[0].ID.String(),
				UserID:    user.ID,
				Status:    utils.ToPtr("approved"),
				Email: &dto.EmailContentUpdateDTO{
					Headline: utils.ToPtr("Final headline"),
				},
			}, testMetadata())
			require.NoError(t, err)

			// The supplied status wins over the edited default
			assert.Equal(t, "approved", resp.Version.Status)
			assert.NotNil(t, resp.Version.EditedAt)
			assert.Equal(t, "Final headline", resp.Version.Content.Email.Headline)

			// A bare status change flips the status without touching EditedAt
			second, err := assetFlow.UpdateVersion(ctx, &dto.UpdateVersionRequest{
				AssetUUID: asset.UUID.String(),
				VersionID: asset.Versions[0].ID.String(),
				UserID:    user.ID,
				Status:    utils.ToPtr("generated"),
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "generated", second.Version.Status)
		})

		t.Run("MetaAdEditOnEmailAssetRejected", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			_, err = assetFlow.UpdateVersion(ctx, &dto.UpdateVersionRequest{
				AssetUUID: asset.UUID.String(),
				VersionID: asset.Versions[0].ID.String(),
				UserID:    user.ID,
				MetaAd: &dto.MetaAdContentUpdateDTO{
					Headline: utils.ToPtr("Wrong shape"),
				},
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsContentShapeMismatch(err))
		})

		t.Run("EditMetaAdVersion", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestMetaAdAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			resp, err := assetFlow.UpdateVersion(ctx, &dto.UpdateVersionRequest{
				AssetUUID: asset.UUID.String(),
				VersionID: asset.Versions[0].ID.String(),
				UserID:    user.ID,
				MetaAd: &dto.MetaAdContentUpdateDTO{
					PrimaryText: utils.ToPtr("New primary text"),
				},
			}, testMetadata())
			require.NoError(t, err)
			require.NotNil(t, resp.Version.Content.MetaAd)
			assert.Equal(t, "New primary text", resp.Version.Content.MetaAd.PrimaryText)
			assert.Equal(t, asset.Versions[0].Content.MetaAd.CTAButton, resp.Version.Content.MetaAd.CTAButton)
		})

		t.Run("UnknownVersionRejected", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			_, err = assetFlow.UpdateVersion(ctx, &dto.UpdateVersionRequest{
				AssetUUID: asset.UUID.String(),
				VersionID: uuid.NewString(),
				UserID:    user.ID,
				Email: &dto.EmailContentUpdateDTO{
					Headline: utils.ToPtr("Never applied"),
				},
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsVersionNotFound(err))

			// A malformed id resolves the same way
			_, err = assetFlow.UpdateVersion(ctx, &dto.UpdateVersionRequest{
				AssetUUID: asset.UUID.String(),
				VersionID: "not-a-uuid",
				UserID:    user.ID,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsVersionNotFound(err))
		})

		t.Run("ApproveVersion", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			resp, err := assetFlow.ApproveVersion(ctx, &dto.ApproveVersionRequest{
				AssetUUID: asset.UUID.String(),
				VersionID: asset.Versions[0].ID.String(),
				UserID:    user.ID,
			}, testMetadata())
			require.NoError(t, err)

			assert.Equal(t, "approved", resp.Version.Status)
			// The sole version is approved, so the asset is fully approved
			assert.True(t, resp.IsFullyApproved)

			reloaded, err := assetFlow.GetAsset(ctx, &dto.GetAssetRequest{
				UUID: asset.UUID.String(), UserID: user.ID,
			})
			require.NoError(t, err)
			assert.True(t, reloaded.Asset.IsFullyApproved)
		})

		t.Run("ApprovalIsPerVersion", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			// Give the asset a second, unapproved version
			assetRepo := repository.NewAssetRepository(testDB.DB)
			stored, err := assetRepo.ByUUID(ctx, asset.UUID.String())
			require.NoError(t, err)
			second := models.AssetVersion{
				ID:          uuid.New(),
				VersionName: models.StrategyAwareness.Label(),
				Strategy:    models.StrategyAwareness,
				Content:     stored.Versions[0].Content,
				Status:      models.VersionStatusGenerated,
				GeneratedAt: utils.UTCNow(),
			}
			stored.Versions = stored.Versions.Append(second)
			require.NoError(t, assetRepo.UpdateWithVersionCheck(ctx, stored))

			resp, err := assetFlow.ApproveVersion(ctx, &dto.ApproveVersionRequest{
				AssetUUID: asset.UUID.String(),
				VersionID: asset.Versions[0].ID.String(),
				UserID:    user.ID,
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "approved", resp.Version.Status)
			assert.False(t, resp.IsFullyApproved)
		})

		return nil
	})
	require.NoError(t, err)
}
