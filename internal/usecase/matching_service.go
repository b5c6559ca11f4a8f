package usecase

import (
	"context"
	"math"
	"slices"

	"github.com/greentail/backend/internal/domain"
	"go.uber.org/zap"
)

// Axis weights for the profile match score
const (
	weightPetType          = 20.0
	weightLifeStage        = 15.0
	weightWeightRange      = 10.0
	weightAvoidIngredients = 25.0
	weightBudget           = 15.0
	weightEcoFeatures      = 10.0
	weightFeedingStyle     = 5.0
)

// Avoid-ingredient adjustments
const (
	penaltyMainProtein      = 50.0 // Avoided ingredient is a main protein
	penaltyListedIngredient = 30.0 // Avoided ingredient is listed by the product
	penaltyGrain            = 40.0 // Grain avoided and product is not grain-free
	creditAltProtein        = 20.0 // Common protein avoided, product uses an alternative
)

// Budget sub-scores
const (
	budgetExact   = 100.0
	budgetNearby  = 70.0
	budgetFarAway = 30.0
)

// Eco sub-score constants
const (
	ecoNeutral       = 50.0 // No priorities declared
	ecoPointsPerPrio = 25.0
)

// commonProteins can be offset by an alternative protein source
var commonProteins = []string{"Chicken", "Beef", "Fish"}

// alternativeProteins are the proteins that offset a common-protein avoidance
var alternativeProteins = []string{"Insect", "Lab-grown"}

// MatchingService scores catalog products against a quiz profile
type MatchingService struct {
	logger             *zap.Logger
	enableDebugLogging bool
}

// NewMatchingService creates a new matching service
func NewMatchingService(logger *zap.Logger, enableDebugLogging bool) *MatchingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchingService{
		logger:             logger,
		enableDebugLogging: enableDebugLogging,
	}
}

// Annotate scores and classifies every product for the profile.
// Products are copied; the input slice is never modified. With a nil
// profile the quality score stands in for the match score.
func (s *MatchingService) Annotate(ctx context.Context, products []domain.Product, profile *domain.UserProfile) ([]domain.ScoredProduct, error) {
	scored := make([]domain.ScoredProduct, 0, len(products))

	for _, product := range products {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sp := annotate(product, profile)

		if s.enableDebugLogging {
			s.logger.Debug("scored product",
				zap.Int("id", sp.ID),
				zap.String("name", sp.Name),
				zap.Int("match_score", sp.MatchScore),
				zap.String("match_level", string(sp.MatchLevel)),
				zap.Int("quality_score", sp.QualityScore),
			)
		}

		scored = append(scored, sp)
	}

	return scored, nil
}

// annotate builds the scored copy of one product
func annotate(product domain.Product, profile *domain.UserProfile) domain.ScoredProduct {
	quality := QualityScore(product)
	sp := domain.ScoredProduct{
		Product:      product.Clone(),
		QualityScore: quality,
		Rating:       ConvertTo5Point(quality),
	}

	if profile != nil {
		sp.MatchScore = Score(product, profile)
	} else {
		sp.MatchScore = min(quality, 100)
	}
	sp.MatchLevel = Classify(sp.MatchScore, product, profile)

	return sp
}

// Score computes the 0-100 profile match score of a product.
// A nil profile leaves every axis unsatisfied except the defaulted ones.
func Score(product domain.Product, profile *domain.UserProfile) int {
	return ScoreBreakdown(product, profile).Total
}

// ScoreBreakdown computes every normalized sub-score and the weighted total
func ScoreBreakdown(product domain.Product, profile *domain.UserProfile) domain.ScoreBreakdown {
	if profile == nil {
		profile = &domain.UserProfile{}
	}

	b := domain.ScoreBreakdown{
		PetType:          membershipScore(product.PetType, profile.Pet),
		LifeStage:        membershipScore(product.LifeStage, profile.LifeStage),
		WeightRange:      membershipScore(product.WeightRange, profile.Weight),
		AvoidIngredients: avoidIngredientScore(product, profile.AvoidIngredients),
		Budget:           budgetScore(product.BudgetRange, profile.Budget),
		EcoFeatures:      ecoScore(product.EcoFeatures, profile.Priorities),
		FeedingStyle:     membershipScore(product.FeedingStyle, profile.FeedingStyle),
	}

	total := b.PetType*weightPetType +
		b.LifeStage*weightLifeStage +
		b.WeightRange*weightWeightRange +
		b.AvoidIngredients*weightAvoidIngredients +
		b.Budget*weightBudget +
		b.EcoFeatures*weightEcoFeatures +
		b.FeedingStyle*weightFeedingStyle

	b.Total = int(math.Round(total / 100))
	return b
}

// membershipScore is 100 when value is one of the product's set, else 0
func membershipScore(set []string, value string) float64 {
	if value == "" {
		return 0
	}
	if slices.Contains(set, value) {
		return 100
	}
	return 0
}

// avoidIngredientScore starts at 100 and accumulates penalties and credits
// across every avoided ingredient. Only the lower bound is clamped.
func avoidIngredientScore(product domain.Product, avoid []string) float64 {
	if len(avoid) == 0 || (len(avoid) == 1 && avoid[0] == domain.AvoidNone) {
		return 100
	}

	altProtein := slices.ContainsFunc(product.MainProteins, func(p string) bool {
		return slices.Contains(alternativeProteins, p)
	})

	score := 100.0
	for _, ingredient := range avoid {
		if ingredient == domain.AvoidNone || ingredient == domain.AvoidNotSure {
			continue
		}
		if slices.Contains(product.MainProteins, ingredient) {
			score -= penaltyMainProtein
		}
		if slices.Contains(product.AvoidIngredients, ingredient) {
			score -= penaltyListedIngredient
		}
		if ingredient == "Grain" && !product.IsGrainFree {
			score -= penaltyGrain
		}
		if altProtein && slices.Contains(commonProteins, ingredient) {
			score += creditAltProtein
		}
	}

	return math.Max(score, 0)
}

// budgetScore compares the user's bracket with the product's bracket span
func budgetScore(productRange []string, budget string) float64 {
	if budget == "" || budget == domain.BudgetFlex {
		return budgetExact
	}
	if slices.Contains(productRange, budget) {
		return budgetExact
	}

	userIdx := slices.Index(domain.BudgetScale, budget)
	if userIdx < 0 {
		return budgetFarAway
	}

	lo, hi := -1, -1
	for _, r := range productRange {
		idx := slices.Index(domain.BudgetScale, r)
		if idx < 0 {
			continue
		}
		if lo < 0 || idx < lo {
			lo = idx
		}
		if idx > hi {
			hi = idx
		}
	}
	if lo < 0 {
		return budgetFarAway
	}

	var distance int
	switch {
	case userIdx < lo:
		distance = lo - userIdx
	case userIdx > hi:
		distance = userIdx - hi
	}
	if distance <= 1 {
		return budgetNearby
	}
	return budgetFarAway
}

// ecoScore is the share of declared priorities the product satisfies
func ecoScore(eco domain.EcoFeatures, priorities []string) float64 {
	if len(priorities) == 0 {
		return ecoNeutral
	}

	earned := 0.0
	for _, p := range priorities {
		if eco.HasPriority(p) {
			earned += ecoPointsPerPrio
		}
	}

	return earned / (ecoPointsPerPrio * float64(len(priorities))) * 100
}
