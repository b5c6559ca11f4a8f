package domain

// Quiz sentinel values
const (
	AvoidNone    = "None"
	AvoidNotSure = "Not sure"
	BudgetFlex   = "Flexible"
)

// Budget brackets in ascending order
const (
	BudgetUnder25 = "<$25"
	Budget25to40  = "$25–$40"
	Budget40to60  = "$40–$60"
	BudgetOver60  = "$60+"
)

// BudgetScale is the ordered price-bracket scale used for distance comparisons
var BudgetScale = []string{BudgetUnder25, Budget25to40, Budget40to60, BudgetOver60}

// Sustainability priorities a user can declare in the quiz
const (
	PriorityLowFootprint = "Lower-footprint protein"
	PriorityPackaging    = "Recyclable/compostable packaging"
	PriorityCertified    = "Credible certifications"
	PriorityLocal        = "Made closer to me"
)

// UserProfile holds quiz answers. Every field is optional; empty values
// mean the question was skipped.
type UserProfile struct {
	Pet              string   `json:"pet,omitempty"`
	LifeStage        string   `json:"lifeStage,omitempty"`
	Weight           string   `json:"weight,omitempty"`
	FeedingStyle     string   `json:"feedingStyle,omitempty"`
	AvoidIngredients []string `json:"avoidIngredients,omitempty"`
	Budget           string   `json:"budget,omitempty"`
	Priorities       []string `json:"priorities,omitempty"`
	ZipCode          string   `json:"zipCode,omitempty"`
}

// HasPriority reports whether the product satisfies the given priority
func (e EcoFeatures) HasPriority(priority string) bool {
	switch priority {
	case PriorityLowFootprint:
		return e.LowFootprintProtein
	case PriorityPackaging:
		return e.RecyclablePackaging
	case PriorityCertified:
		return e.Certified
	case PriorityLocal:
		return e.LocalProduction
	default:
		return false
	}
}
