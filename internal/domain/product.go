package domain

import "slices"

// MatchLevel is the display classification of a scored product
type MatchLevel string

const (
	MatchLevelBest         MatchLevel = "best"
	MatchLevelGreat        MatchLevel = "great"
	MatchLevelGood         MatchLevel = "good"
	MatchLevelEcoFriendly  MatchLevel = "eco-friendly"
	MatchLevelBudget       MatchLevel = "budget"
	MatchLevelUnclassified MatchLevel = ""
)

// Rank returns the sort position of a level. Unknown levels sort last.
func (l MatchLevel) Rank() int {
	switch l {
	case MatchLevelBest:
		return 0
	case MatchLevelGreat:
		return 1
	case MatchLevelGood:
		return 2
	case MatchLevelEcoFriendly:
		return 3
	case MatchLevelBudget:
		return 4
	default:
		return 5
	}
}

// EcoFeatures are the independent sustainability flags of a product
type EcoFeatures struct {
	LowFootprintProtein bool `json:"lowFootprintProtein" yaml:"lowFootprintProtein"`
	RecyclablePackaging bool `json:"recyclablePackaging" yaml:"recyclablePackaging"`
	Certified           bool `json:"certified" yaml:"certified"`
	LocalProduction     bool `json:"localProduction" yaml:"localProduction"`
}

// Product is an immutable catalog record
type Product struct {
	ID               int         `json:"id" yaml:"id"`
	Brand            string      `json:"brand" yaml:"brand"`
	Name             string      `json:"name" yaml:"name"`
	Image            string      `json:"image,omitempty" yaml:"image"`
	Description      string      `json:"description,omitempty" yaml:"description"`
	PetType          []string    `json:"petType" yaml:"petType"`
	LifeStage        []string    `json:"lifeStage" yaml:"lifeStage"`
	WeightRange      []string    `json:"weightRange" yaml:"weightRange"`
	MainProteins     []string    `json:"mainProteins" yaml:"mainProteins"`
	AvoidIngredients []string    `json:"avoidIngredients" yaml:"avoidIngredients"`
	IsGrainFree      bool        `json:"isGrainFree" yaml:"isGrainFree"`
	IsOrganic        bool        `json:"isOrganic" yaml:"isOrganic"`
	EcoFeatures      EcoFeatures `json:"ecoFeatures" yaml:"ecoFeatures"`
	FeedingStyle     []string    `json:"feedingStyle" yaml:"feedingStyle"`
	BudgetRange      []string    `json:"budgetRange" yaml:"budgetRange"`
	Price            float64     `json:"price" yaml:"price"`
	PricePer1000kcal float64     `json:"pricePer1000kcal" yaml:"pricePer1000kcal"`
	Tags             []string    `json:"tags" yaml:"tags"`
	// PresetLevel is the level the catalog pre-flags the product with
	PresetLevel MatchLevel `json:"presetLevel,omitempty" yaml:"matchLevel"`
}

// Clone returns a deep copy so callers can never alias catalog slices
func (p Product) Clone() Product {
	p.PetType = slices.Clone(p.PetType)
	p.LifeStage = slices.Clone(p.LifeStage)
	p.WeightRange = slices.Clone(p.WeightRange)
	p.MainProteins = slices.Clone(p.MainProteins)
	p.AvoidIngredients = slices.Clone(p.AvoidIngredients)
	p.FeedingStyle = slices.Clone(p.FeedingStyle)
	p.BudgetRange = slices.Clone(p.BudgetRange)
	p.Tags = slices.Clone(p.Tags)
	return p
}

// ScoredProduct is a product annotated for one scoring pass.
// The derived fields are transient and never stored back into the catalog.
type ScoredProduct struct {
	Product
	MatchScore   int        `json:"matchScore"`
	MatchLevel   MatchLevel `json:"matchLevel"`
	QualityScore int        `json:"qualityScore"`
	Rating       float64    `json:"rating"`
}

// ScoreBreakdown holds the normalized 0-100 sub-score of every axis
type ScoreBreakdown struct {
	PetType          float64 `json:"petType"`
	LifeStage        float64 `json:"lifeStage"`
	WeightRange      float64 `json:"weightRange"`
	AvoidIngredients float64 `json:"avoidIngredients"`
	Budget           float64 `json:"budget"`
	EcoFeatures      float64 `json:"ecoFeatures"`
	FeedingStyle     float64 `json:"feedingStyle"`
	Total            int     `json:"total"`
}
