package domain

import "math"

// SortKey selects the ordering of a result list
type SortKey string

const (
	SortBest    SortKey = "best"
	SortLowest  SortKey = "lowest"
	SortHighest SortKey = "highest"
)

// Valid reports whether the key is one of the known sort keys
func (k SortKey) Valid() bool {
	return k == SortBest || k == SortLowest || k == SortHighest
}

// FilterState holds the caller's filter selections. Empty selections impose
// no constraint. Within one list selection values are OR-combined; across
// selections every active predicate must hold.
type FilterState struct {
	Query         string   `json:"query,omitempty" form:"q"`
	PetTypes      []string `json:"petTypes,omitempty" form:"pet"`
	LifeStages    []string `json:"lifeStages,omitempty" form:"lifeStage"`
	FeedingStyles []string `json:"feedingStyles,omitempty" form:"feedingStyle"`
	Proteins      []string `json:"proteins,omitempty" form:"protein"`
	Brands        []string `json:"brands,omitempty" form:"brand"`
	PriceBands    []string `json:"priceBands,omitempty" form:"price"`

	Organic        bool `json:"organic,omitempty" form:"organic"`
	GrainFree      bool `json:"grainFree,omitempty" form:"grainFree"`
	Sustainable    bool `json:"sustainable,omitempty" form:"sustainable"`
	Premium        bool `json:"premium,omitempty" form:"premium"`
	Hypoallergenic bool `json:"hypoallergenic,omitempty" form:"hypoallergenic"`
	HumanGrade     bool `json:"humanGrade,omitempty" form:"humanGrade"`
	LocallySourced bool `json:"locallySourced,omitempty" form:"locallySourced"`
	Subscription   bool `json:"subscription,omitempty" form:"subscription"`
	Certified      bool `json:"certified,omitempty" form:"certified"`
	Packaging      bool `json:"packaging,omitempty" form:"packaging"`
}

// PriceBand returns the [min, max) price bounds of a budget bracket label
func PriceBand(label string) (lo, hi float64, ok bool) {
	switch label {
	case BudgetUnder25:
		return 0, 25, true
	case Budget25to40:
		return 25, 40, true
	case Budget40to60:
		return 40, 60, true
	case BudgetOver60:
		return 60, math.Inf(1), true
	default:
		return 0, 0, false
	}
}

// SearchRequest is a single search or results-page query
type SearchRequest struct {
	Filters FilterState  `json:"filters"`
	Sort    SortKey      `json:"sort,omitempty"`
	Profile *UserProfile `json:"profile,omitempty"`
	Limit   int          `json:"limit,omitempty"`
}
