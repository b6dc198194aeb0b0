package logic

import "github.com/patrickwarner/adlibrary/internal/models"

// TraceStep records the ads still visible after a filter stage.
type TraceStep struct {
	Stage   string            `json:"stage"`
	AdIDs   []string          `json:"ad_ids"`
	Details map[string]string `json:"details,omitempty"`
}

// FilterTrace captures the ordered list of stages the filter engine ran.
type FilterTrace struct {
	Steps []TraceStep `json:"steps"`
}

// AddStep appends a trace entry for the given stage using the supplied ads.
func (t *FilterTrace) AddStep(stage string, ads []models.Ad) {
	t.AddStepWithDetails(stage, ads, nil)
}

// AddStepWithDetails appends a trace entry with additional details about filtering.
func (t *FilterTrace) AddStepWithDetails(stage string, ads []models.Ad, details map[string]string) {
	if t == nil {
		return
	}
	step := TraceStep{Stage: stage, AdIDs: make([]string, 0, len(ads)), Details: details}
	for _, a := range ads {
		step.AdIDs = append(step.AdIDs, a.ID)
	}
	t.Steps = append(t.Steps, step)
}
