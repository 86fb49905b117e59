// Package tests contains integration tests for audience flows
package tests

import (
	"fmt"
	"testing"

	"github.com/markforge/backend/app/dto"
	businessflow "github.com/markforge/backend/business_flow"
	"github.com/markforge/backend/config"
	"github.com/markforge/backend/repository"
	testingutil "github.com/markforge/backend/testing"
	"github.com/markforge/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAudienceFlow(testDB *testingutil.TestDB, maxAudiences int) businessflow.AudienceFlow {
	audienceRepo := repository.NewAudienceRepository(testDB.DB)
	auditRepo := repository.NewAuditLogRepository(testDB.DB)
	return businessflow.NewAudienceFlow(audienceRepo, auditRepo,
		config.GenerationConfig{MaxAudiencesPerUser: maxAudiences, MaxCampaignsPerUser: 100}, testDB.DB)
}

func TestAudienceFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		audienceFlow := newAudienceFlow(testDB, 20)
		ctx := testingutil.CreateTestContext()

		t.Run("CreateAndGet", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			created, err := audienceFlow.CreateAudience(ctx, &dto.CreateAudienceRequest{
				UserID:      user.ID,
				Name:        "Weekend Hikers",
				Description: "Casual local-trail hikers",
				Demographics: dto.DemographicsDTO{
					AgeRange:  "25-40",
					Locations: []string{"Denver"},
				},
				Propensity: "high",
				Interests:  []string{"day hikes"},
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "Weekend Hikers", created.Audience.Name)
			assert.Equal(t, "high", created.Audience.Propensity)

			fetched, err := audienceFlow.GetAudience(ctx, created.Audience.UUID, user.ID)
			require.NoError(t, err)
			assert.Equal(t, "25-40", fetched.Audience.Demographics.AgeRange)
		})

		t.Run("DefaultPropensityIsMedium", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			created, err := audienceFlow.CreateAudience(ctx, &dto.CreateAudienceRequest{
				UserID: user.ID,
				Name:   "No Propensity Given",
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "medium", created.Audience.Propensity)
		})

		t.Run("NameTakenWithinUser", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = audienceFlow.CreateAudience(ctx, &dto.CreateAudienceRequest{
				UserID: user.ID,
				Name:   "Duplicated Name",
			}, testMetadata())
			require.NoError(t, err)

			_, err = audienceFlow.CreateAudience(ctx, &dto.CreateAudienceRequest{
				UserID: user.ID,
				Name:   "Duplicated Name",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsAudienceNameTaken(err))

			// A different user can reuse the name
			other, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			_, err = audienceFlow.CreateAudience(ctx, &dto.CreateAudienceRequest{
				UserID: other.ID,
				Name:   "Duplicated Name",
			}, testMetadata())
			require.NoError(t, err)
		})

		t.Run("AudienceLimitEnforced", func(t *testing.T) {
			limitedFlow := newAudienceFlow(testDB, 2)

			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			for i := 0; i < 2; i++ {
				_, err = limitedFlow.CreateAudience(ctx, &dto.CreateAudienceRequest{
					UserID: user.ID,
					Name:   fmt.Sprintf("Audience %d", i),
				}, testMetadata())
				require.NoError(t, err)
			}

			_, err = limitedFlow.CreateAudience(ctx, &dto.CreateAudienceRequest{
				UserID: user.ID,
				Name:   "One Too Many",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsAudienceLimitExceeded(err))
		})

		t.Run("CrossTenantReadIsNotFound", func(t *testing.T) {
			owner, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			audience, err := fixtures.CreateTestAudience(owner.ID)
			require.NoError(t, err)

			other, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = audienceFlow.GetAudience(ctx, audience.UUID.String(), other.ID)
			require.Error(t, err)
			assert.True(t, businessflow.IsAudienceNotFound(err))
		})

		t.Run("PartialUpdate", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			audience, err := fixtures.CreateTestAudience(user.ID)
			require.NoError(t, err)

			updated, err := audienceFlow.UpdateAudience(ctx, &dto.UpdateAudienceRequest{
				UUID:        audience.UUID.String(),
				UserID:      user.ID,
				Description: utils.ToPtr("Updated description"),
				Propensity:  utils.ToPtr("low"),
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "Updated description", updated.Audience.Description)
			assert.Equal(t, "low", updated.Audience.Propensity)
			assert.Equal(t, audience.Name, updated.Audience.Name)
		})

		t.Run("DeleteAudience", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			audience, err := fixtures.CreateTestAudience(user.ID)
			require.NoError(t, err)

			_, err = audienceFlow.DeleteAudience(ctx, audience.UUID.String(), user.ID, testMetadata())
			require.NoError(t, err)

			_, err = audienceFlow.GetAudience(ctx, audience.UUID.String(), user.ID)
			require.Error(t, err)
			assert.True(t, businessflow.IsAudienceNotFound(err))
		})

		t.Run("ListPaginated", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			for i := 0; i < 5; i++ {
				_, err = fixtures.CreateTestAudience(user.ID)
				require.NoError(t, err)
			}

			page1, err := audienceFlow.ListAudiences(ctx, &dto.ListAudiencesRequest{
				UserID: user.ID, Page: 1, PageSize: 2,
			})
			require.NoError(t, err)
			assert.Len(t, page1.Audiences, 2)
			assert.Equal(t, int64(5), page1.Pagination.Total)

			page3, err := audienceFlow.ListAudiences(ctx, &dto.ListAudiencesRequest{
				UserID: user.ID, Page: 3, PageSize: 2,
			})
			require.NoError(t, err)
			assert.Len(t, page3.Audiences, 1)
		})

		return nil
	})
	require.NoError(t, err)
}
