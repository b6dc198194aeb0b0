package api

import (
	"github.com/patrickwarner/adlibrary/internal/media"
	"github.com/patrickwarner/adlibrary/internal/models"
	"github.com/patrickwarner/adlibrary/internal/session"
)

// ViewMode selects how the collection is laid out by the client.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// adView is an ad as rendered in the grid or list.
type adView struct {
	models.Ad
	PlatformLabel string `json:"platform_label"`
	// ImageKind is "data" for embedded uploads, "url" for remote images and
	// "none" when the ad has no image.
	ImageKind string `json:"image_kind"`
}

func newAdView(a models.Ad) adView {
	kind := "url"
	switch {
	case a.ImageURL == "":
		kind = "none"
	case media.IsDataURI(a.ImageURL):
		kind = "data"
	}
	return adView{Ad: a, PlatformLabel: a.Platform.Label(), ImageKind: kind}
}

type emptyHint struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

var noAdsHint = emptyHint{
	Title:   "No ads found",
	Message: "Try adjusting your filters or search terms to find more ads. You can also add new ads to build your collection.",
}

type listResponse struct {
	View          ViewMode   `json:"view"`
	Ads           []adView   `json:"ads"`
	Count         int        `json:"count"`
	Total         int        `json:"total"`
	ActiveFilters int        `json:"active_filters"`
	Empty         bool       `json:"empty"`
	Hint          *emptyHint `json:"hint,omitempty"`
}

func newListResponse(view ViewMode, snap session.Snapshot) listResponse {
	out := listResponse{
		View:          view,
		Ads:           make([]adView, 0, len(snap.Visible)),
		Count:         len(snap.Visible),
		Total:         snap.Total,
		ActiveFilters: snap.Filters.ActiveCount(),
	}
	for _, a := range snap.Visible {
		out.Ads = append(out.Ads, newAdView(a))
	}
	if len(snap.Visible) == 0 {
		out.Empty = true
		hint := noAdsHint
		out.Hint = &hint
	}
	return out
}

// detailView is the single-ad modal.
type detailView struct {
	adView
	// CopyText is what the copy action puts on the clipboard.
	CopyText         string `json:"copy_text"`
	DownloadFilename string `json:"download_filename"`
	ImagePath        string `json:"image_path"`
	SharePath        string `json:"share_path"`
}

func newDetailView(a models.Ad) detailView {
	return detailView{
		adView:           newAdView(a),
		CopyText:         a.Description,
		DownloadFilename: media.DownloadFilename(a.Title),
		ImagePath:        "/api/ads/" + a.ID + "/image",
		SharePath:        "/api/ads/" + a.ID + "/share",
	}
}

type filtersResponse struct {
	Filters       models.FilterOptions `json:"filters"`
	VisibleCount  int                  `json:"visible_count"`
	ActiveFilters int                  `json:"active_filters"`
}

type platformTab struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

var platformIcons = map[string]string{
	session.AllPlatformsTab:          "🌐",
	string(models.PlatformGoogle):    "🔍",
	string(models.PlatformBing):      "🔎",
	string(models.PlatformLinkedIn):  "💼",
	string(models.PlatformMeta):      "📘",
	string(models.PlatformPinterest): "📌",
}

// activeTab is the tab highlighted for a platform selection: the first
// selected platform, or all when nothing is selected.
func activeTab(f models.FilterOptions) string {
	if len(f.Platforms) == 0 {
		return session.AllPlatformsTab
	}
	return string(f.Platforms[0])
}

func platformTabs(counts map[string]int, f models.FilterOptions) []platformTab {
	active := activeTab(f)
	tabs := []platformTab{{
		ID:     session.AllPlatformsTab,
		Name:   "Alle Plattformen",
		Icon:   platformIcons[session.AllPlatformsTab],
		Count:  counts[session.AllPlatformsTab],
		Active: active == session.AllPlatformsTab,
	}}
	for _, p := range models.Platforms() {
		tabs = append(tabs, platformTab{
			ID:     string(p),
			Name:   p.Label(),
			Icon:   platformIcons[string(p)],
			Count:  counts[string(p)],
			Active: active == string(p),
		})
	}
	return tabs
}

type choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var sortChoices = []choice{
	{Value: string(models.SortByDate), Label: "Datum"},
	{Value: string(models.SortByEngagement), Label: "Engagement"},
	{Value: string(models.SortByRelevance), Label: "Relevanz"},
}

var orderChoices = []choice{
	{Value: string(models.SortDesc), Label: "Neueste"},
	{Value: string(models.SortAsc), Label: "Älteste"},
}

type optionView struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

type dimensionView struct {
	Name    models.Dimension `json:"name"`
	Label   string           `json:"label"`
	Options []optionView     `json:"options"`
	// Count is the number of selected values, shown as the section badge.
	Count int `json:"count"`
}

type catalogResponse struct {
	SortBy        []choice             `json:"sort_by"`
	SortOrder     []choice             `json:"sort_order"`
	Dimensions    []dimensionView      `json:"dimensions"`
	Filters       models.FilterOptions `json:"filters"`
	ActiveFilters int                  `json:"active_filters"`
}

func newCatalog(f models.FilterOptions) catalogResponse {
	out := catalogResponse{
		SortBy:        sortChoices,
		SortOrder:     orderChoices,
		Filters:       f,
		ActiveFilters: f.ActiveCount(),
	}
	for _, d := range models.Dimensions() {
		selected := make(map[string]bool)
		for _, v := range f.Selection(d) {
			selected[v] = true
		}
		dv := dimensionView{Name: d, Label: d.Label(), Count: len(f.Selection(d))}
		for _, opt := range d.Options() {
			dv.Options = append(dv.Options, optionView{Value: opt, Selected: selected[opt]})
		}
		out.Dimensions = append(out.Dimensions, dv)
	}
	return out
}
