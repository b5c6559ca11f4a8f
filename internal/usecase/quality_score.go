package usecase

import (
	"math"
	"strings"

	"github.com/greentail/backend/internal/domain"
)

// Quality score points
const (
	pointsOrganic        = 20
	pointsGrainFree      = 15
	pointsCertified      = 10
	pointsCertifiedTag   = 5
	pointsRecyclable     = 10
	pointsLowFootprint   = 12
	pointsLocal          = 8
	pointsSustainableTag = 8
	pointsAffordable     = 8
	pointsGoodValue      = 8
	pointsGreatValue     = 4
	pointsPremiumTag     = 8
	pointsHighProteinTag = 6
	pointsHumanGradeTag  = 6
	pointsHypoallergenic = 5
	pointsLimitedTag     = 5
)

// Price cut-offs for the value points
const (
	affordablePrice   = 35.0
	goodValuePer1000  = 3.5
	greatValuePer1000 = 2.5
)

// Rating scale
const (
	ratingMax   = 5.0
	qualityBase = 100.0
)

// tagPoints lists the tag keywords that each add points, independently
var tagPoints = []struct {
	keyword string
	points  int
}{
	{"certified organic", pointsCertifiedTag},
	{"sustainable", pointsSustainableTag},
	{"premium", pointsPremiumTag},
	{"high protein", pointsHighProteinTag},
	{"human-grade", pointsHumanGradeTag},
	{"hypoallergenic", pointsHypoallergenic},
	{"limited ingredient", pointsLimitedTag},
}

// QualityScore accumulates attribute and tag points for a product,
// independent of any user profile
func QualityScore(product domain.Product) int {
	score := 0

	if product.IsOrganic {
		score += pointsOrganic
	}
	if product.IsGrainFree {
		score += pointsGrainFree
	}
	if product.EcoFeatures.Certified {
		score += pointsCertified
	}
	if product.EcoFeatures.RecyclablePackaging {
		score += pointsRecyclable
	}
	if product.EcoFeatures.LowFootprintProtein {
		score += pointsLowFootprint
	}
	if product.EcoFeatures.LocalProduction {
		score += pointsLocal
	}

	// A missing price decodes to zero and earns no value points
	if product.Price > 0 && product.Price <= affordablePrice {
		score += pointsAffordable
	}
	if product.PricePer1000kcal > 0 && product.PricePer1000kcal <= goodValuePer1000 {
		score += pointsGoodValue
	}
	if product.PricePer1000kcal > 0 && product.PricePer1000kcal <= greatValuePer1000 {
		score += pointsGreatValue
	}

	for _, tp := range tagPoints {
		if hasTag(product.Tags, tp.keyword) {
			score += tp.points
		}
	}

	return score
}

// ConvertTo5Point rescales a quality score to a rating in [0, 5],
// rounded to one decimal
func ConvertTo5Point(qualityScore int) float64 {
	rating := float64(qualityScore) / qualityBase * ratingMax
	rating = math.Max(0, math.Min(ratingMax, rating))
	return math.Round(rating*10) / 10
}

// hasTag reports whether any tag contains the keyword, case-insensitively
func hasTag(tags []string, keyword string) bool {
	keyword = strings.ToLower(keyword)
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), keyword) {
			return true
		}
	}
	return false
}
