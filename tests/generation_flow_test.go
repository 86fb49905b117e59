// Package tests contains integration tests for the content generation pipeline
package tests

import (
	"context"
	"fmt"
	"testing"

	"github.com/markforge/backend/app/dto"
	"github.com/markforge/backend/app/services"
	businessflow "github.com/markforge/backend/business_flow"
	"github.com/markforge/backend/config"
	"github.com/markforge/backend/models"
	"github.com/markforge/backend/repository"
	testingutil "github.com/markforge/backend/testing"
	"github.com/markforge/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator implements services.ContentGenerator with a programmable
// per-call function, recording every request it receives
type stubGenerator struct {
	generate func(req services.GenerationRequest) (*services.GenerationResult, error)
	calls    []services.GenerationRequest
}

func (g *stubGenerator) GenerateVersion(_ context.Context, req services.GenerationRequest) (*services.GenerationResult, error) {
	g.calls = append(g.calls, req)
	if g.generate != nil {
		return g.generate(req)
	}
	return stubResult(req), nil
}

func stubResult(req services.GenerationRequest) *services.GenerationResult {
	content := models.VersionContent{}
	if req.Channel == models.ChannelEmail {
		content.Email = &models.EmailContent{
			SubjectLine: fmt.Sprintf("%s subject", req.Strategy),
			Headline:    "Stub headline",
			BodyCopy:    "Stub body",
			CTAText:     "Go",
		}
	} else {
		content.MetaAd = &models.MetaAdContent{
			PrimaryText: "Stub primary text",
			Headline:    fmt.Sprintf("%s headline", req.Strategy),
			CTAButton:   "Shop Now",
		}
	}
	return &services.GenerationResult{Content: content, Prompt: "stub prompt"}
}

func newGenerationFlow(testDB *testingutil.TestDB, generator services.ContentGenerator, cfg config.GenerationConfig) businessflow.GenerationFlow {
	return businessflow.NewGenerationFlow(
		repository.NewCampaignRepository(testDB.DB),
		repository.NewAudienceRepository(testDB.DB),
		repository.NewBrandGuideRepository(testDB.DB),
		repository.NewAssetRepository(testDB.DB),
		repository.NewAuditLogRepository(testDB.DB),
		generator,
		cfg,
		nil,
		testDB.DB,
	)
}

func TestGenerateCampaignAssets(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		campaignRepo := repository.NewCampaignRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("FullFanOut", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 2)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID, audiences[1].ID)
			require.NoError(t, err)

			generator := &stubGenerator{}
			flow := newGenerationFlow(testDB, generator, config.GenerationConfig{})

			resp, err := flow.GenerateCampaignAssets(ctx, &dto.GenerateCampaignRequest{
				UUID: campaign.UUID.String(), UserID: user.ID,
			}, testMetadata())
			require.NoError(t, err)

			// 2 segments x 2 channels, 2 default strategies each
			assert.Equal(t, 4, resp.ExpectedAssets)
			assert.Equal(t, 4, resp.CreatedAssets)
			assert.Len(t, resp.Assets, 4)
			assert.Len(t, generator.calls, 8)
			assert.Equal(t, "generated", resp.Status)

			for _, asset := range resp.Assets {
				assert.Len(t, asset.Versions, 2)
				assert.Equal(t, "Conversion Focus", asset.Versions[0].VersionName)
				assert.Equal(t, "Awareness Focus", asset.Versions[1].VersionName)
				assert.NotEmpty(t, asset.GenerationPrompt)
			}

			// Derived names pair the audience with the channel
			assert.Equal(t, fmt.Sprintf("%s - Email", audiences[0].Name), resp.Assets[0].Name)
			assert.Equal(t, fmt.Sprintf("%s - Meta Ad", audiences[0].Name), resp.Assets[1].Name)
		})

		t.Run("DisabledChannelSkipped", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			campaign.Spec.Channels[1].Enabled = false
			require.NoError(t, campaignRepo.Update(ctx, campaign))

			generator := &stubGenerator{}
			flow := newGenerationFlow(testDB, generator, config.GenerationConfig{})

			resp, err := flow.GenerateCampaignAssets(ctx, &dto.GenerateCampaignRequest{
				UUID: campaign.UUID.String(), UserID: user.ID,
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, 1, resp.CreatedAssets)
			assert.Equal(t, "email", resp.Assets[0].ChannelType)
		})

		t.Run("SingleStrategyFailureKeepsAsset", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)

			generator := &stubGenerator{
				generate: func(req services.GenerationRequest) (*services.GenerationResult, error) {
					if req.Strategy == models.StrategyAwareness {
						return nil, services.ErrGenerationFailed
					}
					return stubResult(req), nil
				},
			}
			flow := newGenerationFlow(testDB, generator, config.GenerationConfig{})

			resp, err := flow.GenerateCampaignAssets(ctx, &dto.GenerateCampaignRequest{
				UUID: campaign.UUID.String(), UserID: user.ID,
			}, testMetadata())
			require.NoError(t, err)

			// Both channels survive with the single successful version
			assert.Equal(t, 2, resp.CreatedAssets)
			for _, asset := range resp.Assets {
				require.Len(t, asset.Versions, 1)
				assert.Equal(t, "conversion", asset.Versions[0].Strategy)
			}
		})

		t.Run("TotalFailureStillFlipsStatus", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)

			generator := &stubGenerator{
				generate: func(services.GenerationRequest) (*services.GenerationResult, error) {
					return nil, services.ErrGenerationFailed
				},
			}
			flow := newGenerationFlow(testDB, generator, config.GenerationConfig{})

			resp, err := flow.GenerateCampaignAssets(ctx, &dto.GenerateCampaignRequest{
				UUID: campaign.UUID.String(), UserID: user.ID,
			}, testMetadata())
			require.NoError(t, err)

			// Zero-version assets are never persisted
			assert.Equal(t, 0, resp.CreatedAssets)
			assert.Empty(t, resp.Assets)
			assert.Equal(t, "generated", resp.Status)

			reloaded, err := campaignRepo.ByID(ctx, campaign.ID)
			require.NoError(t, err)
			assert.Equal(t, models.CampaignStatusGenerated, reloaded.Status)
		})

		t.Run("RequireAssetForStatusSuppressesFlip", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)

			generator := &stubGenerator{
				generate: func(services.GenerationRequest) (*services.GenerationResult, error) {
					return nil, services.ErrGenerationFailed
				},
			}
			flow := newGenerationFlow(testDB, generator, config.GenerationConfig{RequireAssetForStatus: true})

			resp, err := flow.GenerateCampaignAssets(ctx, &dto.GenerateCampaignRequest{
				UUID: campaign.UUID.String(), UserID: user.ID,
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "draft", resp.Status)

			reloaded, err := campaignRepo.ByID(ctx, campaign.ID)
			require.NoError(t, err)
			assert.Equal(t, models.CampaignStatusDraft, reloaded.Status)
		})

		t.Run("NoSegmentsRejected", func(t *testing.T) {
			user, guide, _ := seedCampaignOwner(t, fixtures, 0)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID)
			require.NoError(t, err)

			flow := newGenerationFlow(testDB, &stubGenerator{}, config.GenerationConfig{})

			_, err = flow.GenerateCampaignAssets(ctx, &dto.GenerateCampaignRequest{
				UUID: campaign.UUID.String(), UserID: user.ID,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsNoSegmentsConfigured(err))
		})

		t.Run("NoEnabledChannelsRejected", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			for i := range campaign.Spec.Channels {
				campaign.Spec.Channels[i].Enabled = false
			}
			require.NoError(t, campaignRepo.Update(ctx, campaign))

			flow := newGenerationFlow(testDB, &stubGenerator{}, config.GenerationConfig{})

			_, err = flow.GenerateCampaignAssets(ctx, &dto.GenerateCampaignRequest{
				UUID: campaign.UUID.String(), UserID: user.ID,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsNoEnabledChannels(err))
		})

		t.Run("MissingAudienceSkipsSegment", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 2)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID, audiences[1].ID)
			require.NoError(t, err)

			audienceRepo := repository.NewAudienceRepository(testDB.DB)
			require.NoError(t, audienceRepo.Delete(ctx, audiences[0].ID))

			generator := &stubGenerator{}
			flow := newGenerationFlow(testDB, generator, config.GenerationConfig{})

			resp, err := flow.GenerateCampaignAssets(ctx, &dto.GenerateCampaignRequest{
				UUID: campaign.UUID.String(), UserID: user.ID,
			}, testMetadata())
			require.NoError(t, err)

			// Only the surviving segment fans out
			assert.Equal(t, 2, resp.CreatedAssets)
			assert.Equal(t, 4, resp.ExpectedAssets)
		})

		t.Run("CrossTenantGenerateIsNotFound", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)

			other, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			flow := newGenerationFlow(testDB, &stubGenerator{}, config.GenerationConfig{})

			_, err = flow.GenerateCampaignAssets(ctx, &dto.GenerateCampaignRequest{
				UUID: campaign.UUID.String(), UserID: other.ID,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsCampaignNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestRegenerateAsset(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		assetRepo := repository.NewAssetRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("AppendsRegeneratedVersion", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			generator := &stubGenerator{}
			flow := newGenerationFlow(testDB, generator, config.GenerationConfig{})

			resp, err := flow.RegenerateAsset(ctx, &dto.RegenerateAssetRequest{
				UUID:         asset.UUID.String(),
				UserID:       user.ID,
				Strategy:     utils.ToPtr("urgency"),
				Instructions: utils.ToPtr("Lean into the sale deadline"),
			}, testMetadata())
			require.NoError(t, err)

			require.Len(t, resp.Asset.Versions, 2)
			assert.Equal(t, "Urgency Focus (Regenerated)", resp.Asset.Versions[1].VersionName)
			assert.Equal(t, "urgency", resp.Asset.Versions[1].Strategy)
			// The original version is untouched
			assert.Equal(t, "Conversion Focus", resp.Asset.Versions[0].VersionName)

			require.Len(t, generator.calls, 1)
			assert.Equal(t, models.StrategyUrgency, generator.calls[0].Strategy)
			assert.Equal(t, models.ChannelEmail, generator.calls[0].Channel)
			assert.Equal(t, "Lean into the sale deadline", generator.calls[0].Instructions)
		})

		t.Run("DefaultStrategyIsConversion", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			generator := &stubGenerator{}
			flow := newGenerationFlow(testDB, generator, config.GenerationConfig{})

			resp, err := flow.RegenerateAsset(ctx, &dto.RegenerateAssetRequest{
				UUID: asset.UUID.String(), UserID: user.ID,
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "Conversion Focus (Regenerated)", resp.Asset.Versions[1].VersionName)
		})

		t.Run("VersionCapDropsOldest", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			flow := newGenerationFlow(testDB, &stubGenerator{}, config.GenerationConfig{})

			regenerate := func() *dto.AssetResponse {
				resp, err := flow.RegenerateAsset(ctx, &dto.RegenerateAssetRequest{
					UUID: asset.UUID.String(), UserID: user.ID,
				}, testMetadata())
				require.NoError(t, err)
				return resp
			}

			second := regenerate()
			require.Len(t, second.Asset.Versions, 2)

			third := regenerate()
			require.Len(t, third.Asset.Versions, models.MaxAssetVersions)
			firstID := third.Asset.Versions[0].ID

			fourth := regenerate()
			require.Len(t, fourth.Asset.Versions, models.MaxAssetVersions)
			// The oldest version fell off the front
			assert.NotEqual(t, firstID, fourth.Asset.Versions[0].ID)
		})

		t.Run("FailurePropagates", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			generator := &stubGenerator{
				generate: func(services.GenerationRequest) (*services.GenerationResult, error) {
					return nil, fmt.Errorf("%w: upstream timeout", services.ErrGenerationFailed)
				},
			}
			flow := newGenerationFlow(testDB, generator, config.GenerationConfig{})

			_, err = flow.RegenerateAsset(ctx, &dto.RegenerateAssetRequest{
				UUID: asset.UUID.String(), UserID: user.ID,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsGenerationFailed(err))
			// The adapter sentinel survives the flow wrapping
			assert.ErrorIs(t, err, services.ErrGenerationFailed)

			// The asset keeps its original single version
			reloaded, err := assetRepo.ByUUID(ctx, asset.UUID.String())
			require.NoError(t, err)
			assert.Len(t, reloaded.Versions, 1)
		})

		t.Run("ConcurrentUpdateDetected", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			// The generator bumps the row out from under the flow while the
			// flow holds its stale copy
			generator := &stubGenerator{
				generate: func(req services.GenerationRequest) (*services.GenerationResult, error) {
					concurrent, err := assetRepo.ByUUID(ctx, asset.UUID.String())
					if err != nil {
						return nil, err
					}
					concurrent.Name = "Renamed Concurrently"
					if err := assetRepo.UpdateWithVersionCheck(ctx, concurrent); err != nil {
						return nil, err
					}
					return stubResult(req), nil
				},
			}
			flow := newGenerationFlow(testDB, generator, config.GenerationConfig{})

			_, err = flow.RegenerateAsset(ctx, &dto.RegenerateAssetRequest{
				UUID: asset.UUID.String(), UserID: user.ID,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsConcurrentUpdate(err))
		})

		t.Run("CrossTenantRegenerateIsNotFound", func(t *testing.T) {
			user, guide, audiences := seedCampaignOwner(t, fixtures, 1)
			campaign, err := fixtures.CreateTestCampaign(user.ID, guide.ID, audiences[0].ID)
			require.NoError(t, err)
			asset, err := fixtures.CreateTestAsset(campaign.ID, audiences[0].ID)
			require.NoError(t, err)

			other, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			flow := newGenerationFlow(testDB, &stubGenerator{}, config.GenerationConfig{})

			_, err = flow.RegenerateAsset(ctx, &dto.RegenerateAssetRequest{
				UUID: asset.UUID.String(), UserID: other.ID,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsAssetNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}
