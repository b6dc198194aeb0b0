package filters

import (
	"slices"
	"strings"

	"github.com/patrickwarner/adlibrary/internal/models"
)

// FilterByPlatform returns ads whose platform is in platforms. An empty
// selection returns ads unchanged.
func FilterByPlatform(ads []models.Ad, platforms []models.Platform) []models.Ad {
	if len(platforms) == 0 {
		return ads
	}
	var out []models.Ad
	for _, a := range ads {
		if slices.Contains(platforms, a.Platform) {
			out = append(out, a)
		}
	}
	return out
}

// FilterByDimension returns ads whose value for d is in values. An empty
// selection returns ads unchanged.
func FilterByDimension(ads []models.Ad, d models.Dimension, values []string) []models.Ad {
	if len(values) == 0 {
		return ads
	}
	var out []models.Ad
	for _, a := range ads {
		if slices.Contains(values, d.Value(a)) {
			out = append(out, a)
		}
	}
	return out
}

// FilterBySearch returns ads matching query as a case-insensitive substring
// of the title, description, brand name or any tag.
func FilterBySearch(ads []models.Ad, query string) []models.Ad {
	if query == "" {
		return ads
	}
	q := strings.ToLower(query)
	var out []models.Ad
	for _, a := range ads {
		if matchesSearch(a, q) {
			out = append(out, a)
		}
	}
	return out
}

// Matches reports whether a passes every dimension and the search query of
// the given options.
func Matches(a models.Ad, query models.FilterOptions) bool {
	if len(query.Platforms) > 0 && !slices.Contains(query.Platforms, a.Platform) {
		return false
	}
	for _, d := range models.Dimensions() {
		sel := query.Selection(d)
		if len(sel) > 0 && !slices.Contains(sel, d.Value(a)) {
			return false
		}
	}
	if query.SearchQuery != "" && !matchesSearch(a, strings.ToLower(query.SearchQuery)) {
		return false
	}
	return true
}

// matchesSearch expects q to be lower-cased already.
func matchesSearch(a models.Ad, q string) bool {
	if containsFold(a.Title, q) || containsFold(a.Description, q) {
		return true
	}
	if a.BrandName != "" && containsFold(a.BrandName, q) {
		return true
	}
	for _, tag := range a.Tags {
		if containsFold(tag, q) {
			return true
		}
	}
	return false
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
