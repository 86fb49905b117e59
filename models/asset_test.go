package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVersion(name string, status VersionStatus) AssetVersion {
	return AssetVersion{
		ID:          uuid.New(),
		VersionName: name,
		Strategy:    StrategyConversion,
		Content:     VersionContent{Email: &EmailContent{Headline: name}},
		Status:      status,
		GeneratedAt: time.Now().UTC(),
	}
}

func TestAssetVersionsAppend(t *testing.T) {
	var versions AssetVersions

	versions = versions.Append(newVersion("first", VersionStatusGenerated))
	versions = versions.Append(newVersion("second", VersionStatusGenerated))
	require.Len(t, versions, 2)
	assert.Equal(t, "first", versions[0].VersionName)
	assert.Equal(t, "second", versions[1].VersionName)

	versions = versions.Append(newVersion("third", VersionStatusGenerated))
	require.Len(t, versions, MaxAssetVersions)

	// A fourth append drops the oldest entry
	versions = versions.Append(newVersion("fourth", VersionStatusGenerated))
	require.Len(t, versions, MaxAssetVersions)
	assert.Equal(t, "second", versions[0].VersionName)
	assert.Equal(t, "third", versions[1].VersionName)
	assert.Equal(t, "fourth", versions[2].VersionName)
}

func TestAssetLatestVersion(t *testing.T) {
	asset := &Asset{}
	assert.Nil(t, asset.LatestVersion())

	asset.Versions = AssetVersions{
		newVersion("first", VersionStatusGenerated),
		newVersion("second", VersionStatusGenerated),
	}
	latest := asset.LatestVersion()
	require.NotNil(t, latest)
	assert.Equal(t, "second", latest.VersionName)
}

func TestAssetVersionByID(t *testing.T) {
	first := newVersion("first", VersionStatusGenerated)
	second := newVersion("second", VersionStatusGenerated)
	asset := &Asset{Versions: AssetVersions{first, second}}

	found := asset.VersionByID(second.ID)
	require.NotNil(t, found)
	assert.Equal(t, "second", found.VersionName)

	assert.Nil(t, asset.VersionByID(uuid.New()))
}

func TestAssetIsFullyApproved(t *testing.T) {
	asset := &Asset{}
	assert.False(t, asset.IsFullyApproved(), "no versions means not approved")

	asset.Versions = AssetVersions{
		newVersion("first", VersionStatusApproved),
		newVersion("second", VersionStatusGenerated),
	}
	assert.False(t, asset.IsFullyApproved())

	asset.Versions[1].Status = VersionStatusApproved
	assert.True(t, asset.IsFullyApproved())
}

func TestStrategyLabel(t *testing.T) {
	assert.Equal(t, "Conversion Focus", StrategyConversion.Label())
	assert.Equal(t, "Awareness Focus", StrategyAwareness.Label())
	assert.Equal(t, "Urgency Focus", StrategyUrgency.Label())
	assert.Equal(t, "Emotional Focus", StrategyEmotional.Label())
	assert.Equal(t, "Untitled", Strategy("bogus").Label())
}

func TestDefaultStrategies(t *testing.T) {
	require.Len(t, DefaultStrategies, 2)
	assert.Equal(t, StrategyConversion, DefaultStrategies[0])
	assert.Equal(t, StrategyAwareness, DefaultStrategies[1])
}
