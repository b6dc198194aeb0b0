package main

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/patrickwarner/adlibrary/internal/db"
	"github.com/patrickwarner/adlibrary/internal/form"
	"github.com/patrickwarner/adlibrary/internal/models"
	"github.com/patrickwarner/adlibrary/internal/session"
	"go.uber.org/zap"
)

type SearchAdsInput struct {
	Query         string   `json:"query,omitempty"`
	Platforms     []string `json:"platforms,omitempty"`
	Industries    []string `json:"industries,omitempty"`
	Angles        []string `json:"angles,omitempty"`
	CampaignGoals []string `json:"campaign_goals,omitempty"`
	AdFormats     []string `json:"ad_formats,omitempty"`
	FunnelStages  []string `json:"funnel_stages,omitempty"`
	TargetGroups  []string `json:"target_groups,omitempty"`
	SortBy        string   `json:"sort_by,omitempty"`
	SortOrder     string   `json:"sort_order,omitempty"`
}

func (in SearchAdsInput) filters() models.FilterOptions {
	f := models.FilterOptions{
		SearchQuery:   in.Query,
		Industries:    in.Industries,
		Angles:        in.Angles,
		CampaignGoals: in.CampaignGoals,
		AdFormats:     in.AdFormats,
		FunnelStages:  in.FunnelStages,
		TargetGroups:  in.TargetGroups,
		SortBy:        models.SortKey(in.SortBy),
		SortOrder:     models.SortOrder(in.SortOrder),
	}
	for _, p := range in.Platforms {
		f.Platforms = append(f.Platforms, models.Platform(p))
	}
	return f.Normalize()
}

// AdView is an ad as returned to MCP clients. Times are RFC 3339 strings.
type AdView struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	ImageURL        string   `json:"image_url"`
	Platform        string   `json:"platform"`
	Industry        string   `json:"industry"`
	Angle           string   `json:"angle"`
	CampaignGoal    string   `json:"campaign_goal"`
	AdFormat        string   `json:"ad_format"`
	FunnelStage     string   `json:"funnel_stage"`
	TargetGroup     string   `json:"target_group"`
	Tags            []string `json:"tags"`
	CreatedAt       string   `json:"created_at"`
	UserID          string   `json:"user_id"`
	IsBookmarked    bool     `json:"is_bookmarked"`
	EngagementScore float64  `json:"engagement_score"`
	BrandName       string   `json:"brand_name,omitempty"`
	CTAText         string   `json:"cta_text,omitempty"`
	TargetAudience  string   `json:"target_audience,omitempty"`
}

func newAdView(a models.Ad) AdView {
	return AdView{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		ImageURL:        a.ImageURL,
		Platform:        string(a.Platform),
		Industry:        a.Industry,
		Angle:           a.Angle,
		CampaignGoal:    a.CampaignGoal,
		AdFormat:        a.AdFormat,
		FunnelStage:     a.FunnelStage,
		TargetGroup:     a.TargetGroup,
		Tags:            a.Tags,
		CreatedAt:       a.CreatedAt.UTC().Format(time.RFC3339),
		UserID:          a.UserID,
		IsBookmarked:    a.IsBookmarked,
		EngagementScore: a.Engagement(),
		BrandName:       a.BrandName,
		CTAText:         a.CTAText,
		TargetAudience:  a.TargetAudience,
	}
}

type SearchAdsOutput struct {
	Ads   []AdView `json:"ads"`
	Count int      `json:"count"`
	Total int      `json:"total"`
}

type AdIDInput struct {
	ID string `json:"id"`
}

type AdOutput struct {
	Ad AdView `json:"ad"`
}

type BookmarkOutput struct {
	ID           string `json:"id"`
	IsBookmarked bool   `json:"is_bookmarked"`
}

type PlatformCountsInput struct{}

type PlatformCountsOutput struct {
	Counts map[string]int `json:"counts"`
}

// Publisher announces catalog mutations to other processes.
type Publisher interface {
	Publish(ctx context.Context, msg db.UpdateMessage) error
}

// CatalogServer exposes the ad library to MCP clients.
type CatalogServer struct {
	state     *session.State
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewCatalogServer(state *session.State, publisher Publisher, logger *zap.Logger) *CatalogServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogServer{state: state, publisher: publisher, logger: logger, now: time.Now}
}

func (s *CatalogServer) notify(ctx context.Context, action, id string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, db.UpdateMessage{Entity: "ad", Action: action, ID: id}); err != nil {
		s.logger.Warn("publish update", zap.String("action", action), zap.String("ad_id", id), zap.Error(err))
	}
}

// SearchAds replaces the session query and returns the visible ads.
func (s *CatalogServer) SearchAds(ctx context.Context, req *mcp.CallToolRequest, input SearchAdsInput) (*mcp.CallToolResult, SearchAdsOutput, error) {
	f := input.filters()
	if !f.SortBy.Valid() || !f.SortOrder.Valid() {
		return nil, SearchAdsOutput{}, fmt.Errorf("invalid sort %q %q", f.SortBy, f.SortOrder)
	}
	s.state.SetFilters(f)
	snap := s.state.Snapshot()
	s.logger.Info("search ads",
		zap.String("query", f.SearchQuery),
		zap.Int("visible", len(snap.Visible)),
		zap.Int("total", snap.Total))
	out := SearchAdsOutput{Ads: make([]AdView, 0, len(snap.Visible)), Count: len(snap.Visible), Total: snap.Total}
	for _, a := range snap.Visible {
		out.Ads = append(out.Ads, newAdView(a))
	}
	return nil, out, nil
}

func (s *CatalogServer) GetAd(ctx context.Context, req *mcp.CallToolRequest, input AdIDInput) (*mcp.CallToolResult, AdOutput, error) {
	ad, err := s.state.Ad(input.ID)
	if err != nil {
		return nil, AdOutput{}, fmt.Errorf("get ad %q: %w", input.ID, err)
	}
	return nil, AdOutput{Ad: newAdView(ad)}, nil
}

func (s *CatalogServer) ToggleBookmark(ctx context.Context, req *mcp.CallToolRequest, input AdIDInput) (*mcp.CallToolResult, BookmarkOutput, error) {
	ad, ok := s.state.ToggleBookmark(input.ID)
	if !ok {
		return nil, BookmarkOutput{}, fmt.Errorf("toggle bookmark %q: %w", input.ID, models.ErrNotFound)
	}
	s.notify(ctx, "bookmark", ad.ID)
	return nil, BookmarkOutput{ID: ad.ID, IsBookmarked: ad.IsBookmarked}, nil
}

// AddAd submits the creation form on behalf of the client.
func (s *CatalogServer) AddAd(ctx context.Context, req *mcp.CallToolRequest, input form.Fields) (*mcp.CallToolResult, AdOutput, error) {
	f := form.New()
	f.Fields = input
	ad, err := f.Submit(s.state, s.now())
	if err != nil {
		return nil, AdOutput{}, err
	}
	s.logger.Info("ad created", zap.String("ad_id", ad.ID), zap.String("platform", string(ad.Platform)))
	s.notify(ctx, "create", ad.ID)
	return nil, AdOutput{Ad: newAdView(ad)}, nil
}

func (s *CatalogServer) PlatformCounts(ctx context.Context, req *mcp.CallToolRequest, input PlatformCountsInput) (*mcp.CallToolResult, PlatformCountsOutput, error) {
	return nil, PlatformCountsOutput{Counts: s.state.PlatformCounts()}, nil
}

func stringProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc}
}

func stringListProp(desc string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": desc,
	}
}

func platformValues() []string {
	out := make([]string, 0, len(models.Platforms()))
	for _, p := range models.Platforms() {
		out = append(out, string(p))
	}
	return out
}

// Register adds the catalog tools to server.
func (s *CatalogServer) Register(server *mcp.Server) {
	searchProps := map[string]interface{}{
		"query": stringProp("Case-insensitive text matched against title, description, brand and tags"),
		"platforms": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string", "enum": platformValues()},
			"description": "Platforms to include (optional, all when empty)",
		},
		"sort_by": map[string]interface{}{
			"type":        "string",
			"enum":        []string{string(models.SortByDate), string(models.SortByEngagement), string(models.SortByRelevance)},
			"description": "Sort key (optional, defaults to date)",
		},
		"sort_order": map[string]interface{}{
			"type":        "string",
			"enum":        []string{string(models.SortAsc), string(models.SortDesc)},
			"description": "Sort order (optional, defaults to desc)",
		},
	}
	for _, d := range models.Dimensions() {
		searchProps[string(d)] = stringListProp(d.Label() + " to include (optional)")
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_ads",
		Description: "Filter and sort the ad library and return the matching ads",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": searchProps,
		},
	}, s.SearchAds)

	idSchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id": stringProp("Ad ID"),
		},
		"required": []string{"id"},
	}
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_ad",
		Description: "Fetch a single ad by ID",
		InputSchema: idSchema,
	}, s.GetAd)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "toggle_bookmark",
		Description: "Flip the bookmark flag of an ad",
		InputSchema: idSchema,
	}, s.ToggleBookmark)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_ad",
		Description: "Add an ad to the library",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"title":       stringProp("Ad headline"),
				"description": stringProp("Ad copy"),
				"image_url":   stringProp("Remote image URL or data URI (optional)"),
				"platform": map[string]interface{}{
					"type":        "string",
					"enum":        platformValues(),
					"description": "Advertising platform",
				},
				"industry":        stringProp("Industry"),
				"angle":           stringProp("Creative angle"),
				"campaign_goal":   stringProp("Campaign goal"),
				"ad_format":       stringProp("Ad format"),
				"funnel_stage":    stringProp("Funnel stage"),
				"target_group":    stringProp("Target group"),
				"brand_name":      stringProp("Brand name (optional)"),
				"cta_text":        stringProp("Call to action (optional)"),
				"target_audience": stringProp("Target audience (optional)"),
				"tags":            stringProp("Comma separated tags (optional)"),
			},
			"required": []string{"title", "description", "platform", "industry", "angle", "campaign_goal", "ad_format", "funnel_stage", "target_group"},
		},
	}, s.AddAd)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "platform_counts",
		Description: "Count ads per platform, plus the total under \"all\"",
		InputSchema: map[string]interface{}{"type": "object", "properties": map[string]interface{}{}},
	}, s.PlatformCounts)
}
