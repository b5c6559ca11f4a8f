package usecase

import (
	"slices"

	"github.com/greentail/backend/internal/domain"
)

// Match level thresholds
const (
	thresholdBest  = 85
	thresholdGreat = 70
	thresholdEco   = 60
)

// budgetFriendlyMaxPrice is the price ceiling for the budget override
const budgetFriendlyMaxPrice = 25.0

// Classify maps a match score to a display level. The budget override is
// checked first, then the eco override, then the score thresholds.
// Scores below the good threshold still classify as good.
func Classify(score int, product domain.Product, profile *domain.UserProfile) domain.MatchLevel {
	if product.PresetLevel == domain.MatchLevelBudget && isBudgetFriendly(product, profile) {
		return domain.MatchLevelBudget
	}

	if score >= thresholdEco && hasStrongEcoFeatures(product, profile) {
		return domain.MatchLevelEcoFriendly
	}

	switch {
	case score >= thresholdBest:
		return domain.MatchLevelBest
	case score >= thresholdGreat:
		return domain.MatchLevelGreat
	default:
		return domain.MatchLevelGood
	}
}

// isBudgetFriendly reports whether the product suits the user's budget
func isBudgetFriendly(product domain.Product, profile *domain.UserProfile) bool {
	if profile == nil || profile.Budget == "" {
		return false
	}

	if profile.Budget == domain.BudgetUnder25 && slices.Contains(product.BudgetRange, domain.BudgetUnder25) {
		return true
	}

	return slices.Contains(product.BudgetRange, profile.Budget) && product.Price <= budgetFriendlyMaxPrice
}

// hasStrongEcoFeatures reports whether at least half (rounded up) of the
// user's declared priorities are met. No priorities means no eco framing.
func hasStrongEcoFeatures(product domain.Product, profile *domain.UserProfile) bool {
	if profile == nil || len(profile.Priorities) == 0 {
		return false
	}

	met := 0
	for _, p := range profile.Priorities {
		if product.EcoFeatures.HasPriority(p) {
			met++
		}
	}

	needed := (len(profile.Priorities) + 1) / 2
	return met >= needed
}
