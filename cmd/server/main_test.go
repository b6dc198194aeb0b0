package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/patrickwarner/adlibrary/internal/config"
	"github.com/patrickwarner/adlibrary/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAdsSkipsSampleIDsTakenBySeed(t *testing.T) {
	cfg := config.Config{
		SeedFile:      writeSeed(t, `[{"id":"3","title":"Seeded three"},{"id":"x","title":"Seeded x"}]`),
		SeedSampleAds: true,
	}

	ads, skipped, err := loadAds(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, skipped)
	assert.Len(t, ads, 1+len(models.SampleAds()))

	store := models.NewInMemoryAdStore(ads)
	assert.Equal(t, len(ads), store.Len())
	got, ok := store.Get("3")
	require.True(t, ok)
	assert.Equal(t, "Seeded three", got.Title)
}

func TestLoadAdsRejectsDuplicateSeedIDs(t *testing.T) {
	cfg := config.Config{SeedFile: writeSeed(t, `[{"id":"a"},{"id":"a"}]`)}

	_, _, err := loadAds(cfg)
	assert.Error(t, err)
}

func TestLoadAdsSamplesOnly(t *testing.T) {
	ads, skipped, err := loadAds(config.Config{SeedSampleAds: true})
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Len(t, ads, len(models.SampleAds()))
}
