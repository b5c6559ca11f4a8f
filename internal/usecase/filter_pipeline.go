package usecase

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/greentail/backend/internal/domain"
)

// predicate is one independent filter condition
type predicate func(domain.Product) bool

// FilterPipeline narrows and orders the catalog for every page that lists products
type FilterPipeline struct {
	matcher      *MatchingService
	preprocessor *QueryPreprocessor
}

// NewFilterPipeline creates a pipeline over the given matcher and preprocessor
func NewFilterPipeline(matcher *MatchingService, preprocessor *QueryPreprocessor) *FilterPipeline {
	if matcher == nil {
		matcher = NewMatchingService(nil, false)
	}
	if preprocessor == nil {
		preprocessor = NewQueryPreprocessor(nil, false)
	}
	return &FilterPipeline{
		matcher:      matcher,
		preprocessor: preprocessor,
	}
}

// FilterAndSort filters the catalog, annotates the survivors for the profile
// and orders them by sortKey. An empty result is not an error.
func (p *FilterPipeline) FilterAndSort(
	ctx context.Context,
	catalog []domain.Product,
	filters domain.FilterState,
	sortKey domain.SortKey,
	profile *domain.UserProfile,
) ([]domain.ScoredProduct, error) {
	filters.Query = p.preprocessor.PreprocessQuery(filters.Query)

	matched := Filter(catalog, filters)

	scored, err := p.matcher.Annotate(ctx, matched, profile)
	if err != nil {
		return nil, err
	}

	Sort(scored, sortKey, profile != nil)
	return scored, nil
}

// Filter keeps the products satisfying every active predicate of every
// filter set. Applying sets one after another equals applying them together.
func Filter(products []domain.Product, filters ...domain.FilterState) []domain.Product {
	var preds []predicate
	for _, f := range filters {
		preds = append(preds, predicates(f)...)
	}

	result := make([]domain.Product, 0, len(products))
	for _, product := range products {
		if matchesAll(product, preds) {
			result = append(result, product)
		}
	}
	return result
}

func matchesAll(product domain.Product, preds []predicate) bool {
	for _, pred := range preds {
		if !pred(product) {
			return false
		}
	}
	return true
}

// predicates builds the active predicates of one filter set
func predicates(f domain.FilterState) []predicate {
	var preds []predicate

	if q := normalizeQuery(f.Query); q != "" {
		preds = append(preds, func(p domain.Product) bool {
			return strings.Contains(normalizeText(p.Name), q) ||
				strings.Contains(normalizeText(p.Brand), q) ||
				slices.ContainsFunc(p.Tags, func(tag string) bool {
					return strings.Contains(normalizeText(tag), q)
				})
		})
	}

	if len(f.PetTypes) > 0 {
		preds = append(preds, func(p domain.Product) bool { return anyOf(p.PetType, f.PetTypes) })
	}
	if len(f.LifeStages) > 0 {
		preds = append(preds, func(p domain.Product) bool { return anyOf(p.LifeStage, f.LifeStages) })
	}
	if len(f.FeedingStyles) > 0 {
		preds = append(preds, func(p domain.Product) bool { return anyOf(p.FeedingStyle, f.FeedingStyles) })
	}
	if len(f.Proteins) > 0 {
		preds = append(preds, func(p domain.Product) bool { return anyOf(p.MainProteins, f.Proteins) })
	}
	if len(f.Brands) > 0 {
		preds = append(preds, func(p domain.Product) bool { return anyOf([]string{p.Brand}, f.Brands) })
	}
	if len(f.PriceBands) > 0 {
		preds = append(preds, func(p domain.Product) bool { return inAnyPriceBand(p.Price, f.PriceBands) })
	}

	flags := []struct {
		active bool
		pred   predicate
	}{
		{f.Organic, func(p domain.Product) bool { return p.IsOrganic }},
		{f.GrainFree, func(p domain.Product) bool { return p.IsGrainFree }},
		{f.Sustainable, tagPredicate("sustainable")},
		{f.Premium, tagPredicate("premium")},
		{f.Hypoallergenic, tagPredicate("hypoallergenic")},
		{f.HumanGrade, tagPredicate("human-grade")},
		{f.LocallySourced, func(p domain.Product) bool {
			return p.EcoFeatures.LocalProduction || hasTag(p.Tags, "local")
		}},
		{f.Subscription, tagPredicate("subscription")},
		{f.Certified, func(p domain.Product) bool {
			return p.EcoFeatures.Certified || hasTag(p.Tags, "certified")
		}},
		{f.Packaging, func(p domain.Product) bool {
			return p.EcoFeatures.RecyclablePackaging || hasTag(p.Tags, "recyclable") || hasTag(p.Tags, "compostable")
		}},
	}
	for _, flag := range flags {
		if flag.active {
			preds = append(preds, flag.pred)
		}
	}

	return preds
}

func tagPredicate(keyword string) predicate {
	return func(p domain.Product) bool { return hasTag(p.Tags, keyword) }
}

// anyOf reports whether any selected value is in the product's set, ignoring case
func anyOf(set, selected []string) bool {
	for _, want := range selected {
		if slices.ContainsFunc(set, func(have string) bool { return strings.EqualFold(have, want) }) {
			return true
		}
	}
	return false
}

// inAnyPriceBand reports whether price falls in one of the bracket labels.
// Unknown labels match nothing.
func inAnyPriceBand(price float64, bands []string) bool {
	for _, band := range bands {
		lo, hi, ok := domain.PriceBand(band)
		if ok && price >= lo && price < hi {
			return true
		}
	}
	return false
}

// Sort orders scored products in place. Ties keep their incoming order.
//
// best: match level rank, then match score descending. Without a profile
// the quality score alone decides.
// lowest/highest: best-level products first, then price.
func Sort(scored []domain.ScoredProduct, key domain.SortKey, hasProfile bool) {
	switch key {
	case domain.SortLowest, domain.SortHighest:
		slices.SortStableFunc(scored, func(a, b domain.ScoredProduct) int {
			if c := cmp.Compare(bestPartition(a), bestPartition(b)); c != 0 {
				return c
			}
			if key == domain.SortHighest {
				return cmp.Compare(b.Price, a.Price)
			}
			return cmp.Compare(a.Price, b.Price)
		})
	default:
		if !hasProfile {
			slices.SortStableFunc(scored, func(a, b domain.ScoredProduct) int {
				return cmp.Compare(b.QualityScore, a.QualityScore)
			})
			return
		}
		slices.SortStableFunc(scored, func(a, b domain.ScoredProduct) int {
			if c := cmp.Compare(a.MatchLevel.Rank(), b.MatchLevel.Rank()); c != 0 {
				return c
			}
			return cmp.Compare(b.MatchScore, a.MatchScore)
		})
	}
}

func bestPartition(sp domain.ScoredProduct) int {
	if sp.MatchLevel == domain.MatchLevelBest {
		return 0
	}
	return 1
}
