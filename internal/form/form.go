// Package form implements the ad creation form: raw field input, the
// submit gate, and conversion into a models.Draft.
package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/patrickwarner/adlibrary/internal/models"
)

// UploadMethod selects how the image field is filled.
type UploadMethod string

const (
	UploadFile UploadMethod = "upload"
	UploadURL  UploadMethod = "url"
)

// Fields are the raw, unvalidated inputs of the form.
type Fields struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	ImageURL       string `json:"image_url"`
	Platform       string `json:"platform"`
	Industry       string `json:"industry"`
	Angle          string `json:"angle"`
	CampaignGoal   string `json:"campaign_goal"`
	AdFormat       string `json:"ad_format"`
	FunnelStage    string `json:"funnel_stage"`
	TargetGroup    string `json:"target_group"`
	BrandName      string `json:"brand_name"`
	CTAText        string `json:"cta_text"`
	TargetAudience string `json:"target_audience"`
	// Tags is a comma separated list.
	Tags string `json:"tags"`
}

// required lists the fields that gate submission, in form order.
func (f Fields) required() []struct{ name, value string } {
	return []struct{ name, value string }{
		{"title", f.Title},
		{"description", f.Description},
		{"platform", f.Platform},
		{"industry", f.Industry},
		{"angle", f.Angle},
		{"campaign_goal", f.CampaignGoal},
		{"ad_format", f.AdFormat},
		{"funnel_stage", f.FunnelStage},
		{"target_group", f.TargetGroup},
	}
}

// ValidationError lists why a form cannot be submitted.
type ValidationError struct {
	Missing         []string
	InvalidPlatform string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if e.InvalidPlatform != "" {
		parts = append(parts, fmt.Sprintf("unknown platform %q", e.InvalidPlatform))
	}
	return "invalid ad form: " + strings.Join(parts, "; ")
}

// Adder stores a new ad built from a draft.
type Adder interface {
	AddAd(draft models.Draft) models.Ad
}

// Form is the creation modal: its fields plus open and upload-method state.
type Form struct {
	Fields       Fields       `json:"fields"`
	Open         bool         `json:"open"`
	UploadMethod UploadMethod `json:"upload_method"`
}

// New returns a closed, empty form on the file upload tab.
func New() *Form {
	return &Form{UploadMethod: UploadFile}
}

// Show opens the form.
func (f *Form) Show() { f.Open = true }

// Close hides the form without clearing it.
func (f *Form) Close() { f.Open = false }

// SetUploadMethod switches between the file and URL tabs.
func (f *Form) SetUploadMethod(m UploadMethod) error {
	if m != UploadFile && m != UploadURL {
		return fmt.Errorf("unknown upload method %q", m)
	}
	f.UploadMethod = m
	return nil
}

// CanSubmit reports whether every required field is filled.
func (f *Form) CanSubmit() bool {
	return f.Fields.CanSubmit()
}

// CanSubmit reports whether every required field is filled.
func (f Fields) CanSubmit() bool {
	for _, r := range f.required() {
		if strings.TrimSpace(r.value) == "" {
			return false
		}
	}
	return true
}

// Validate returns a *ValidationError when the fields cannot be submitted.
func (f Fields) Validate() error {
	verr := &ValidationError{}
	for _, r := range f.required() {
		if strings.TrimSpace(r.value) == "" {
			verr.Missing = append(verr.Missing, r.name)
		}
	}
	if p := strings.TrimSpace(f.Platform); p != "" && !models.Platform(p).Valid() {
		verr.InvalidPlatform = p
	}
	if len(verr.Missing) > 0 || verr.InvalidPlatform != "" {
		return verr
	}
	return nil
}

// ParseTags splits a comma separated list, trimming entries and dropping
// empty ones. The result is never nil.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Draft converts the fields into a draft created at now.
func (f Fields) Draft(now time.Time) models.Draft {
	return models.Draft{
		Title:          f.Title,
		Description:    f.Description,
		ImageURL:       f.ImageURL,
		Platform:       models.Platform(strings.TrimSpace(f.Platform)),
		Industry:       f.Industry,
		Angle:          f.Angle,
		CampaignGoal:   f.CampaignGoal,
		AdFormat:       f.AdFormat,
		FunnelStage:    f.FunnelStage,
		TargetGroup:    f.TargetGroup,
		Tags:           ParseTags(f.Tags),
		CreatedAt:      now.UTC(),
		BrandName:      f.BrandName,
		CTAText:        f.CTAText,
		TargetAudience: f.TargetAudience,
	}
}

// Submit validates the form, hands the draft to adder, then closes and
// resets the form. On a validation error nothing changes.
func (f *Form) Submit(adder Adder, now time.Time) (models.Ad, error) {
	if err := f.Fields.Validate(); err != nil {
		return models.Ad{}, err
	}
	ad := adder.AddAd(f.Fields.Draft(now))
	f.Close()
	f.Reset()
	return ad, nil
}

// Reset clears every field and returns to the file upload tab.
func (f *Form) Reset() {
	f.Fields = Fields{}
	f.UploadMethod = UploadFile
}
