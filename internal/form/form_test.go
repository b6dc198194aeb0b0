package form

import (
	"errors"
	"testing"
	"time"

	"github.com/patrickwarner/adlibrary/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAdder struct {
	drafts []models.Draft
}

func (r *recordingAdder) AddAd(d models.Draft) models.Ad {
	r.drafts = append(r.drafts, d)
	return models.Ad{ID: "new", Title: d.Title, Platform: d.Platform, Tags: d.Tags, CreatedAt: d.CreatedAt}
}

func completeFields() Fields {
	return Fields{
		Title:        "Spring Sale",
		Description:  "Up to 50% off",
		ImageURL:     "https://example.com/a.jpg",
		Platform:     "meta-ads",
		Industry:     "Shop",
		Angle:        "Saisonal/Trending",
		CampaignGoal: "Verkauf/Conversion",
		AdFormat:     "Bild-Anzeige",
		FunnelStage:  "Conversion",
		TargetGroup:  "CMO",
		Tags:         "sale, spring,,  fashion ",
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a, b,,c ", []string{"a", "b", "c"}},
		{"", []string{}},
		{" , ,", []string{}},
		{"x,x", []string{"x", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.in))
		})
	}
}

func TestCanSubmitRequiresEveryField(t *testing.T) {
	assert.True(t, completeFields().CanSubmit())

	blank := map[string]func(*Fields){
		"title":         func(f *Fields) { f.Title = "" },
		"description":   func(f *Fields) { f.Description = "  " },
		"platform":      func(f *Fields) { f.Platform = "" },
		"industry":      func(f *Fields) { f.Industry = "" },
		"angle":         func(f *Fields) { f.Angle = "" },
		"campaign_goal": func(f *Fields) { f.CampaignGoal = "" },
		"ad_format":     func(f *Fields) { f.AdFormat = "" },
		"funnel_stage":  func(f *Fields) { f.FunnelStage = "" },
		"target_group":  func(f *Fields) { f.TargetGroup = "" },
	}
	for name, fn := range blank {
		t.Run(name, func(t *testing.T) {
			f := completeFields()
			fn(&f)
			assert.False(t, f.CanSubmit())

			var verr *ValidationError
			require.True(t, errors.As(f.Validate(), &verr))
			assert.Equal(t, []string{name}, verr.Missing)
		})
	}
}

func TestOptionalFieldsDoNotGate(t *testing.T) {
	f := completeFields()
	f.ImageURL = ""
	f.Tags = ""
	f.BrandName = ""
	assert.True(t, f.CanSubmit())
	assert.NoError(t, f.Validate())
}

func TestValidateRejectsUnknownPlatform(t *testing.T) {
	f := completeFields()
	f.Platform = "myspace-ads"

	var verr *ValidationError
	require.True(t, errors.As(f.Validate(), &verr))
	assert.Equal(t, "myspace-ads", verr.InvalidPlatform)
	assert.Empty(t, verr.Missing)
	assert.Contains(t, verr.Error(), "unknown platform")
}

func TestDraft(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	d := completeFields().Draft(now)

	assert.Equal(t, models.PlatformMeta, d.Platform)
	assert.Equal(t, []string{"sale", "spring", "fashion"}, d.Tags)
	assert.Equal(t, time.UTC, d.CreatedAt.Location())
	assert.True(t, now.Equal(d.CreatedAt))
	assert.Nil(t, d.EngagementScore)
}

func TestSubmitAddsClosesAndResets(t *testing.T) {
	f := New()
	f.Show()
	require.NoError(t, f.SetUploadMethod(UploadURL))
	f.Fields = completeFields()

	adder := &recordingAdder{}
	ad, err := f.Submit(adder, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "new", ad.ID)
	require.Len(t, adder.drafts, 1)
	assert.Equal(t, "Spring Sale", adder.drafts[0].Title)
	assert.False(t, f.Open)
	assert.Equal(t, Fields{}, f.Fields)
	assert.Equal(t, UploadFile, f.UploadMethod)
}

func TestSubmitInvalidLeavesFormUntouched(t *testing.T) {
	f := New()
	f.Show()
	f.Fields = completeFields()
	f.Fields.Title = ""

	adder := &recordingAdder{}
	_, err := f.Submit(adder, time.Now())

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, adder.drafts)
	assert.True(t, f.Open)
	assert.Empty(t, f.Fields.Title)
	assert.Equal(t, "Up to 50% off", f.Fields.Description)
}

func TestSetUploadMethod(t *testing.T) {
	f := New()
	assert.Equal(t, UploadFile, f.UploadMethod)
	assert.NoError(t, f.SetUploadMethod(UploadURL))
	assert.Error(t, f.SetUploadMethod("camera"))
	assert.Equal(t, UploadURL, f.UploadMethod)
}
