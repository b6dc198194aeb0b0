// Package filters turns the ad collection and a FilterOptions descriptor into
// the ordered list of visible ads.
package filters

import (
	"github.com/patrickwarner/adlibrary/internal/logic"
	"github.com/patrickwarner/adlibrary/internal/models"
)

// Apply returns the ads of collection that satisfy query, ordered by the
// query's sort key and direction. It never modifies collection.
//
// Filtering is a single pass over the collection: every non-empty dimension
// must contain the ad's value and, if set, the search query must match. The
// surviving ads keep their input order before the stable sort runs.
func Apply(collection []models.Ad, query models.FilterOptions) []models.Ad {
	out := make([]models.Ad, 0, len(collection))
	for _, a := range collection {
		if Matches(a, query) {
			out = append(out, a)
		}
	}
	Sort(out, query)
	return out
}

// ApplyWithTrace applies the same steps as Apply one filter at a time and
// records the ads surviving each stage in trace.
func ApplyWithTrace(collection []models.Ad, query models.FilterOptions, trace *logic.FilterTrace) []models.Ad {
	ads := append([]models.Ad(nil), collection...)
	trace.AddStep("input", ads)

	ads = FilterByPlatform(ads, query.Platforms)
	trace.AddStep("platforms", ads)
	for _, d := range models.Dimensions() {
		ads = FilterByDimension(ads, d, query.Selection(d))
		trace.AddStep(string(d), ads)
	}
	ads = FilterBySearch(ads, query.SearchQuery)
	trace.AddStepWithDetails("search", ads, map[string]string{"query": query.SearchQuery})

	out := make([]models.Ad, len(ads))
	copy(out, ads)
	Sort(out, query)
	trace.AddStepWithDetails("sort", out, map[string]string{
		"sort_by":    string(query.SortBy),
		"sort_order": string(query.SortOrder),
	})
	return out
}
