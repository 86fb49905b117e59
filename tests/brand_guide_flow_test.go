// Package tests contains integration tests for brand guide flows
package tests

import (
	"testing"

	"github.com/markforge/backend/app/dto"
	businessflow "github.com/markforge/backend/business_flow"
	"github.com/markforge/backend/repository"
	testingutil "github.com/markforge/backend/testing"
	"github.com/markforge/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrandGuideFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		guideRepo := repository.NewBrandGuideRepository(testDB.DB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)
		guideFlow := businessflow.NewBrandGuideFlow(guideRepo, auditRepo, testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("CreateAndGet", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			created, err := guideFlow.CreateBrandGuide(ctx, &dto.CreateBrandGuideRequest{
				UserID:           user.ID,
				CompanyName:      "Acme Outdoor Gear",
				Industry:         "Outdoor Recreation",
				VoiceAttributes:  []string{"adventurous", "trustworthy"},
				ToneGuidelines:   "Speak like a trail guide",
				ValueProposition: "Durable gear at honest prices",
				KeyMessages:      []string{"Built to outlast the trail"},
				PhrasesToAvoid:   []string{"cheap"},
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "Acme Outdoor Gear", created.BrandGuide.CompanyName)
			assert.NotEmpty(t, created.BrandGuide.UUID)

			fetched, err := guideFlow.GetBrandGuide(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, created.BrandGuide.UUID, fetched.BrandGuide.UUID)
			assert.Equal(t, []string{"adventurous", "trustworthy"}, fetched.BrandGuide.VoiceAttributes)
		})

		t.Run("CreateSecondGuideRejected", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			_, err = fixtures.CreateTestBrandGuide(user.ID)
			require.NoError(t, err)

			_, err = guideFlow.CreateBrandGuide(ctx, &dto.CreateBrandGuideRequest{
				UserID:      user.ID,
				CompanyName: "Second Company",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsBrandGuideAlreadyExists(err))
		})

		t.Run("GetMissingGuide", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = guideFlow.GetBrandGuide(ctx, user.ID)
			require.Error(t, err)
			assert.True(t, businessflow.IsBrandGuideNotFound(err))
		})

		t.Run("PartialUpdateKeepsOtherFields", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			guide, err := fixtures.CreateTestBrandGuide(user.ID)
			require.NoError(t, err)

			updated, err := guideFlow.UpdateBrandGuide(ctx, &dto.UpdateBrandGuideRequest{
				UserID:         user.ID,
				ToneGuidelines: utils.ToPtr("New tone"),
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "New tone", updated.BrandGuide.ToneGuidelines)
			assert.Equal(t, guide.CompanyName, updated.BrandGuide.CompanyName)
			assert.NotNil(t, updated.BrandGuide.UpdatedAt)
		})

		t.Run("DeleteGuide", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			_, err = fixtures.CreateTestBrandGuide(user.ID)
			require.NoError(t, err)

			_, err = guideFlow.DeleteBrandGuide(ctx, user.ID, testMetadata())
			require.NoError(t, err)

			_, err = guideFlow.GetBrandGuide(ctx, user.ID)
			require.Error(t, err)
			assert.True(t, businessflow.IsBrandGuideNotFound(err))
		})

		t.Run("GuidesAreScopedPerUser", func(t *testing.T) {
			owner, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			_, err = fixtures.CreateTestBrandGuide(owner.ID)
			require.NoError(t, err)

			other, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = guideFlow.GetBrandGuide(ctx, other.ID)
			require.Error(t, err)
			assert.True(t, businessflow.IsBrandGuideNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}
