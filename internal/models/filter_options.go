package models

// SortKey selects the comparator used to order the visible ads.
type SortKey string

const (
	SortByDate       SortKey = "date"
	SortByEngagement SortKey = "engagement"
	SortByRelevance  SortKey = "relevance"
)

// SortOrder selects ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Valid reports whether k is a known sort key. Unknown keys still sort, by date.
func (k SortKey) Valid() bool {
	switch k {
	case SortByDate, SortByEngagement, SortByRelevance:
		return true
	}
	return false
}

// Valid reports whether o is asc or desc.
func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

// FilterOptions is the query descriptor applied to the collection.
// An empty selection places no constraint on its dimension; values within a
// selection are ORed and non-empty dimensions are ANDed.
type FilterOptions struct {
	Platforms     []Platform `json:"platforms"`
	Industries    []string   `json:"industries"`
	Angles        []string   `json:"angles"`
	CampaignGoals []string   `json:"campaign_goals"`
	AdFormats     []string   `json:"ad_formats"`
	FunnelStages  []string   `json:"funnel_stages"`
	TargetGroups  []string   `json:"target_groups"`
	SearchQuery   string     `json:"search_query"`
	SortBy        SortKey    `json:"sort_by"`
	SortOrder     SortOrder  `json:"sort_order"`
}

// DefaultFilterOptions returns the initial query: nothing selected, newest first.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		Platforms:     []Platform{},
		Industries:    []string{},
		Angles:        []string{},
		CampaignGoals: []string{},
		AdFormats:     []string{},
		FunnelStages:  []string{},
		TargetGroups:  []string{},
		SortBy:        SortByDate,
		SortOrder:     SortDesc,
	}
}

// Normalize replaces nil selections with empty ones and fills a missing
// sort key or order with the defaults.
func (f FilterOptions) Normalize() FilterOptions {
	if f.Platforms == nil {
		f.Platforms = []Platform{}
	}
	for _, d := range Dimensions() {
		if f.Selection(d) == nil {
			f = f.WithSelection(d, []string{})
		}
	}
	if f.SortBy == "" {
		f.SortBy = SortByDate
	}
	if f.SortOrder == "" {
		f.SortOrder = SortDesc
	}
	return f
}

// Clone returns a deep copy of f.
func (f FilterOptions) Clone() FilterOptions {
	out := f
	out.Platforms = append([]Platform(nil), f.Platforms...)
	for _, d := range Dimensions() {
		out = out.WithSelection(d, append([]string(nil), f.Selection(d)...))
	}
	return out.Normalize()
}

// Selection returns the selected values for dimension d.
func (f FilterOptions) Selection(d Dimension) []string {
	def, ok := dimensionTable[d]
	if !ok {
		return nil
	}
	return *def.selection(&f)
}

// WithSelection returns a copy of f whose selection for d is values.
func (f FilterOptions) WithSelection(d Dimension, values []string) FilterOptions {
	def, ok := dimensionTable[d]
	if !ok {
		return f
	}
	*def.selection(&f) = values
	return f
}

// ToggleValue adds value to the selection of d when checked and removes
// every occurrence of it otherwise.
func (f FilterOptions) ToggleValue(d Dimension, value string, checked bool) FilterOptions {
	current := f.Selection(d)
	next := make([]string, 0, len(current)+1)
	present := false
	for _, v := range current {
		if v == value {
			present = true
			if !checked {
				continue
			}
		}
		next = append(next, v)
	}
	if checked && !present {
		next = append(next, value)
	}
	return f.WithSelection(d, next)
}

// ActiveCount is the number of selected category values. Platform tabs are
// not counted.
func (f FilterOptions) ActiveCount() int {
	n := 0
	for _, d := range Dimensions() {
		n += len(f.Selection(d))
	}
	return n
}
