package models

import "time"

// Platform identifies the advertising network an Ad was captured from.
type Platform string

const (
	PlatformGoogle    Platform = "google-ads"
	PlatformBing      Platform = "bing-ads"
	PlatformLinkedIn  Platform = "linkedin-ads"
	PlatformMeta      Platform = "meta-ads"
	PlatformPinterest Platform = "pinterest-ads"
)

var platformLabels = map[Platform]string{
	PlatformGoogle:    "Google Ads",
	PlatformBing:      "Bing Ads",
	PlatformLinkedIn:  "LinkedIn Ads",
	PlatformMeta:      "Meta Ads",
	PlatformPinterest: "Pinterest Ads",
}

// Platforms returns every known platform in tab order.
func Platforms() []Platform {
	return []Platform{PlatformGoogle, PlatformBing, PlatformLinkedIn, PlatformMeta, PlatformPinterest}
}

// Valid reports whether p is one of the enumerated platforms.
func (p Platform) Valid() bool {
	_, ok := platformLabels[p]
	return ok
}

// Label returns the display name of the platform, or the raw value when unknown.
func (p Platform) Label() string {
	if l, ok := platformLabels[p]; ok {
		return l
	}
	return string(p)
}

// Ad is a single advertising creative kept in the library.
// ID, CreatedAt and UserID are fixed at creation; IsBookmarked is the only
// field that changes afterwards.
type Ad struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// ImageURL is either a remote URL or an embedded data URI produced by an upload.
	ImageURL     string    `json:"image_url"`
	Platform     Platform  `json:"platform"`
	Industry     string    `json:"industry"`
	Angle        string    `json:"angle"`
	CampaignGoal string    `json:"campaign_goal"`
	AdFormat     string    `json:"ad_format"`
	FunnelStage  string    `json:"funnel_stage"`
	TargetGroup  string    `json:"target_group"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	UserID       string    `json:"user_id"`
	IsBookmarked bool      `json:"is_bookmarked"`

	// EngagementScore is conceptually 0-100; nil sorts as 0.
	EngagementScore *float64 `json:"engagement_score,omitempty"`
	BrandName       string   `json:"brand_name,omitempty"`
	CTAText         string   `json:"cta_text,omitempty"`
	TargetAudience  string   `json:"target_audience,omitempty"`
}

// Engagement returns the engagement score with absent scores treated as 0.
func (a Ad) Engagement() float64 {
	if a.EngagementScore == nil {
		return 0
	}
	return *a.EngagementScore
}

// Draft carries everything needed to create an Ad except the fields the
// store assigns (ID, UserID, IsBookmarked).
type Draft struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"image_url"`
	Platform        Platform  `json:"platform"`
	Industry        string    `json:"industry"`
	Angle           string    `json:"angle"`
	CampaignGoal    string    `json:"campaign_goal"`
	AdFormat        string    `json:"ad_format"`
	FunnelStage     string    `json:"funnel_stage"`
	TargetGroup     string    `json:"target_group"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"created_at"`
	EngagementScore *float64  `json:"engagement_score,omitempty"`
	BrandName       string    `json:"brand_name,omitempty"`
	CTAText         string    `json:"cta_text,omitempty"`
	TargetAudience  string    `json:"target_audience,omitempty"`
}

// clone returns a copy of the Ad that shares no mutable memory with a.
func (a Ad) clone() Ad {
	if a.Tags != nil {
		tags := make([]string, len(a.Tags))
		copy(tags, a.Tags)
		a.Tags = tags
	}
	if a.EngagementScore != nil {
		s := *a.EngagementScore
		a.EngagementScore = &s
	}
	return a
}
