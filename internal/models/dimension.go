package models

import "fmt"

// Dimension names one of the category attributes an Ad can be filtered by.
type Dimension string

const (
	DimensionIndustry     Dimension = "industries"
	DimensionAngle        Dimension = "angles"
	DimensionCampaignGoal Dimension = "campaign_goals"
	DimensionAdFormat     Dimension = "ad_formats"
	DimensionFunnelStage  Dimension = "funnel_stages"
	DimensionTargetGroup  Dimension = "target_groups"
)

// dimensionDef binds a Dimension to the fields it reads and writes.
type dimensionDef struct {
	label     string
	value     func(Ad) string
	selection func(*FilterOptions) *[]string
	options   []string
}

var dimensionOrder = []Dimension{
	DimensionIndustry,
	DimensionAngle,
	DimensionCampaignGoal,
	DimensionAdFormat,
	DimensionFunnelStage,
	DimensionTargetGroup,
}

var dimensionTable = map[Dimension]dimensionDef{
	DimensionIndustry: {
		label:     "Branchen",
		value:     func(a Ad) string { return a.Industry },
		selection: func(f *FilterOptions) *[]string { return &f.Industries },
		options:   []string{"B2B", "Shop"},
	},
	DimensionAngle: {
		label:     "Ansätze",
		value:     func(a Ad) string { return a.Angle },
		selection: func(f *FilterOptions) *[]string { return &f.Angles },
		options: []string{
			"Problem/Lösung", "Social Proof", "Dringlichkeit/Knappheit", "Emotionaler Appell",
			"Bildend", "Vergleich", "Testimonial", "Hinter den Kulissen",
			"Nutzergenerierte Inhalte", "Saisonal/Trending", "Feature-Highlight",
			"Markengeschichte", "Anleitung/Tutorial", "Vorher/Nachher", "Community",
		},
	},
	DimensionCampaignGoal: {
		label:     "Kampagnenziele",
		value:     func(a Ad) string { return a.CampaignGoal },
		selection: func(f *FilterOptions) *[]string { return &f.CampaignGoals },
		options: []string{
			"Markenbekanntheit", "Lead-Generierung", "Verkauf/Conversion", "Traffic",
			"Engagement", "App-Downloads", "Event-Promotion", "Retargeting",
			"Kundenbindung", "Produktlaunch", "Recruiting", "Lokale Bekanntheit",
		},
	},
	DimensionAdFormat: {
		label:     "Anzeigenformate",
		value:     func(a Ad) string { return a.AdFormat },
		selection: func(f *FilterOptions) *[]string { return &f.AdFormats },
		options:   []string{"Text-Anzeige", "Video", "Karussell", "Bild-Anzeige", "HTML 5", "Sponsored Message"},
	},
	DimensionFunnelStage: {
		label:     "Funnel-Stufen",
		value:     func(a Ad) string { return a.FunnelStage },
		selection: func(f *FilterOptions) *[]string { return &f.FunnelStages },
		options:   []string{"Aufmerksamkeit", "Überlegung", "Conversion", "Retargeting"},
	},
	DimensionTargetGroup: {
		label:     "Zielgruppen",
		value:     func(a Ad) string { return a.TargetGroup },
		selection: func(f *FilterOptions) *[]string { return &f.TargetGroups },
		options:   []string{"CMO", "HR", "IT"},
	},
}

// Dimensions returns the category dimensions in sidebar order.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensionOrder))
	copy(out, dimensionOrder)
	return out
}

// ParseDimension maps a dimension name to its Dimension.
func ParseDimension(name string) (Dimension, error) {
	d := Dimension(name)
	if _, ok := dimensionTable[d]; !ok {
		return "", fmt.Errorf("unknown dimension %q", name)
	}
	return d, nil
}

// Label returns the sidebar heading for d.
func (d Dimension) Label() string {
	if def, ok := dimensionTable[d]; ok {
		return def.label
	}
	return string(d)
}

// Options returns the values offered for d by the filter sidebar and the
// creation form.
func (d Dimension) Options() []string {
	def, ok := dimensionTable[d]
	if !ok {
		return nil
	}
	out := make([]string, len(def.options))
	copy(out, def.options)
	return out
}

// Value returns the field of a that d filters on.
func (d Dimension) Value(a Ad) string {
	if def, ok := dimensionTable[d]; ok {
		return def.value(a)
	}
	return ""
}
