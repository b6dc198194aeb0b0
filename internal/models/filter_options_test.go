package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFilterOptions(t *testing.T) {
	f := DefaultFilterOptions()
	assert.Equal(t, SortByDate, f.SortBy)
	assert.Equal(t, SortDesc, f.SortOrder)
	assert.Empty(t, f.SearchQuery)
	assert.Zero(t, f.ActiveCount())
	for _, d := range Dimensions() {
		assert.NotNil(t, f.Selection(d), d)
		assert.Empty(t, f.Selection(d), d)
	}
}

func TestToggleValue(t *testing.T) {
	f := DefaultFilterOptions()

	f = f.ToggleValue(DimensionAngle, "Testimonial", true)
	f = f.ToggleValue(DimensionAngle, "Bildend", true)
	f = f.ToggleValue(DimensionAngle, "Testimonial", true)
	assert.Equal(t, []string{"Testimonial", "Bildend"}, f.Angles)

	f = f.ToggleValue(DimensionAngle, "Testimonial", false)
	assert.Equal(t, []string{"Bildend"}, f.Angles)
	assert.Equal(t, 1, f.ActiveCount())
}

func TestWithSelectionDoesNotAlias(t *testing.T) {
	base := DefaultFilterOptions().WithSelection(DimensionIndustry, []string{"B2B"})
	clone := base.Clone()
	clone.Industries[0] = "Shop"
	assert.Equal(t, "B2B", base.Industries[0])
}

func TestActiveCountIgnoresPlatforms(t *testing.T) {
	f := DefaultFilterOptions()
	f.Platforms = []Platform{PlatformMeta}
	f = f.WithSelection(DimensionIndustry, []string{"B2B", "Shop"})
	f = f.WithSelection(DimensionTargetGroup, []string{"HR"})
	assert.Equal(t, 3, f.ActiveCount())
}

func TestNormalizeFillsDefaults(t *testing.T) {
	f := FilterOptions{SearchQuery: "ai"}.Normalize()
	assert.Equal(t, SortByDate, f.SortBy)
	assert.Equal(t, SortDesc, f.SortOrder)
	assert.NotNil(t, f.Platforms)
	assert.NotNil(t, f.FunnelStages)
	assert.Equal(t, "ai", f.SearchQuery)
}

func TestDimensionTable(t *testing.T) {
	ad := SampleAds()[0]
	values := map[Dimension]string{
		DimensionIndustry:     "B2B",
		DimensionAngle:        "Problem/Lösung",
		DimensionCampaignGoal: "Lead-Generierung",
		DimensionAdFormat:     "Bild-Anzeige",
		DimensionFunnelStage:  "Aufmerksamkeit",
		DimensionTargetGroup:  "CMO",
	}
	require.Len(t, Dimensions(), len(values))
	for _, d := range Dimensions() {
		assert.Equal(t, values[d], d.Value(ad), d)
		assert.NotEmpty(t, d.Options(), d)
		assert.NotEmpty(t, d.Label(), d)
	}
}

func TestParseDimension(t *testing.T) {
	d, err := ParseDimension("funnel_stages")
	require.NoError(t, err)
	assert.Equal(t, DimensionFunnelStage, d)

	_, err = ParseDimension("platforms")
	assert.Error(t, err)
}

func TestPlatforms(t *testing.T) {
	for _, p := range Platforms() {
		assert.True(t, p.Valid())
		assert.True(t, strings.HasSuffix(p.Label(), "Ads"))
	}
	assert.False(t, Platform("tiktok-ads").Valid())
}

func TestDecodeAds(t *testing.T) {
	ads, err := DecodeAds(strings.NewReader(`[{"id":"x","title":"T","platform":"bing-ads","created_at":"2024-03-01T00:00:00Z"}]`))
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, PlatformBing, ads[0].Platform)
	assert.NotNil(t, ads[0].Tags)
	assert.Equal(t, 2024, ads[0].CreatedAt.Year())

	_, err = DecodeAds(strings.NewReader(`{`))
	assert.Error(t, err)
}
