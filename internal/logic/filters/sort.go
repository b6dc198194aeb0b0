package filters

import (
	"cmp"
	"slices"
	"strings"

	"github.com/patrickwarner/adlibrary/internal/models"
)

// RelevanceScore weights a title match at 2 and a description match at 1.
// Brand and tag matches do not contribute.
func RelevanceScore(a models.Ad, query string) int {
	if query == "" {
		return 0
	}
	q := strings.ToLower(query)
	score := 0
	if containsFold(a.Title, q) {
		score += 2
	}
	if containsFold(a.Description, q) {
		score++
	}
	return score
}

// comparator returns the ascending comparison for the given options.
func comparator(query models.FilterOptions) func(a, b models.Ad) int {
	switch query.SortBy {
	case models.SortByEngagement:
		return byEngagement
	case models.SortByRelevance:
		if query.SearchQuery == "" {
			return byEngagement
		}
		q := query.SearchQuery
		return func(a, b models.Ad) int {
			return cmp.Compare(RelevanceScore(a, q), RelevanceScore(b, q))
		}
	default:
		// date, and anything unrecognised
		return byDate
	}
}

func byDate(a, b models.Ad) int {
	return a.CreatedAt.Compare(b.CreatedAt)
}

func byEngagement(a, b models.Ad) int {
	return cmp.Compare(a.Engagement(), b.Engagement())
}

// Sort orders ads in place with a stable sort. Ties keep their input order
// in both directions.
func Sort(ads []models.Ad, query models.FilterOptions) {
	less := comparator(query)
	if query.SortOrder == models.SortDesc {
		asc := less
		less = func(a, b models.Ad) int { return asc(b, a) }
	}
	slices.SortStableFunc(ads, less)
}
