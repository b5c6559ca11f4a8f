package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/greentail/backend/internal/domain"
	"go.uber.org/zap"
)

// Compare accepts between two and four products
const (
	minCompareItems = 2
	maxCompareItems = 4
)

// ScoringRecorder receives one observation per scoring pass
type ScoringRecorder interface {
	ObserveScoring(operation string, results int, duration time.Duration)
}

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	CacheTTL           time.Duration
	DefaultLimit       int
	EnableDebugLogging bool
}

// CatalogService is the single entry point every listing page goes through:
// search, quiz results, comparison and product detail
type CatalogService struct {
	catalog      domain.CatalogRepository
	cache        domain.CacheRepository
	pipeline     *FilterPipeline
	matcher      *MatchingService
	recorder     ScoringRecorder
	logger       *zap.Logger
	cacheTTL     time.Duration
	defaultLimit int
}

// NewCatalogService creates a new catalog service with dependencies.
// cache and recorder may be nil.
func NewCatalogService(
	catalog domain.CatalogRepository,
	cache domain.CacheRepository,
	recorder ScoringRecorder,
	logger *zap.Logger,
	config CatalogServiceConfig,
) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}

	matcher := NewMatchingService(logger, config.EnableDebugLogging)
	preprocessor := NewQueryPreprocessor(logger, config.EnableDebugLogging)

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	defaultLimit := config.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = 6
	}

	return &CatalogService{
		catalog:      catalog,
		cache:        cache,
		pipeline:     NewFilterPipeline(matcher, preprocessor),
		matcher:      matcher,
		recorder:     recorder,
		logger:       logger,
		cacheTTL:     cacheTTL,
		defaultLimit: defaultLimit,
	}
}

// Search filters and sorts the catalog for a search or results page.
// Flow: validate -> check cache -> load catalog -> filter/score/sort -> cache -> return
func (s *CatalogService) Search(ctx context.Context, request *domain.SearchRequest) ([]domain.ScoredProduct, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}
	if err := validateSearch(request); err != nil {
		return nil, err
	}

	start := time.Now()
	cacheKey := s.generateCacheKey(request)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		return cached, nil
	}

	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	results, err := s.pipeline.FilterAndSort(ctx, products, request.Filters, request.Sort, request.Profile)
	if err != nil {
		return nil, err
	}

	if request.Limit > 0 && len(results) > request.Limit {
		results = results[:request.Limit]
	}

	if err := s.setInCache(ctx, cacheKey, results); err != nil {
		s.logger.Warn("failed to cache search results", zap.String("key", cacheKey), zap.Error(err))
	}

	s.observe("search", len(results), start)
	return results, nil
}

// Recommend returns the best matches for a completed quiz, restricted to the
// profile's species when one was given
func (s *CatalogService) Recommend(ctx context.Context, profile *domain.UserProfile, limit int) ([]domain.ScoredProduct, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: quiz profile is required", domain.ErrInvalidRequest)
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}

	request := &domain.SearchRequest{
		Sort:    domain.SortBest,
		Profile: profile,
		Limit:   limit,
	}
	if profile.Pet != "" {
		request.Filters.PetTypes = []string{profile.Pet}
	}

	return s.Search(ctx, request)
}

// Compare returns the requested products in request order, annotated for the
// profile (or by quality score when profile is nil)
func (s *CatalogService) Compare(ctx context.Context, ids []int, profile *domain.UserProfile) ([]domain.ScoredProduct, error) {
	if len(ids) < minCompareItems || len(ids) > maxCompareItems {
		return nil, fmt.Errorf("%w: compare needs %d to %d products, got %d",
			domain.ErrInvalidRequest, minCompareItems, maxCompareItems, len(ids))
	}

	start := time.Now()
	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.catalog.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}

	results, err := s.matcher.Annotate(ctx, products, profile)
	if err != nil {
		return nil, err
	}

	s.observe("compare", len(results), start)
	return results, nil
}

// GetProduct returns a single annotated product for the detail view
func (s *CatalogService) GetProduct(ctx context.Context, id int, profile *domain.UserProfile) (*domain.ScoredProduct, error) {
	product, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	results, err := s.matcher.Annotate(ctx, []domain.Product{*product}, profile)
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

// validateSearch rejects unknown sort keys and price bands
func validateSearch(request *domain.SearchRequest) error {
	if request.Sort == "" {
		request.Sort = domain.SortBest
	}
	if !request.Sort.Valid() {
		return fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidRequest, request.Sort)
	}
	for _, band := range request.Filters.PriceBands {
		if _, _, ok := domain.PriceBand(band); !ok {
			return fmt.Errorf("%w: unknown price band %q", domain.ErrInvalidRequest, band)
		}
	}
	if request.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", domain.ErrInvalidRequest)
	}
	return nil
}

// generateCacheKey builds the cache key from the exact values that drive
// filtering and scoring. Only the query is normalized, the way the filter
// normalizes it, and only order-independent selections are sorted.
// Format: "search:{sort}:{limit}:{filters json}:{profile json}"
func (s *CatalogService) generateCacheKey(request *domain.SearchRequest) string {
	f := request.Filters
	f.Query = normalizeQuery(f.Query)
	f.PetTypes = sortedCopy(f.PetTypes)
	f.LifeStages = sortedCopy(f.LifeStages)
	f.FeedingStyles = sortedCopy(f.FeedingStyles)
	f.Proteins = sortedCopy(f.Proteins)
	f.Brands = sortedCopy(f.Brands)
	f.PriceBands = sortedCopy(f.PriceBands)

	profilePart := []byte("-")
	if request.Profile != nil {
		p := *request.Profile
		p.AvoidIngredients = sortedCopy(p.AvoidIngredients)
		p.Priorities = sortedCopy(p.Priorities)
		profilePart = mustMarshalKey(p)
	}

	return fmt.Sprintf("search:%s:%d:%s:%s", request.Sort, request.Limit, mustMarshalKey(f), profilePart)
}

// sortedCopy returns a sorted copy so the caller's slice keeps its order.
// Duplicates are kept because repeated avoid entries change the score.
func sortedCopy(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return sorted
}

// mustMarshalKey encodes a key component. The inputs hold only strings,
// string slices and bools, which always encode.
func mustMarshalKey(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("cache key: %v", err))
	}
	return data
}

// getFromCache retrieves search results from cache
func (s *CatalogService) getFromCache(ctx context.Context, key string) ([]domain.ScoredProduct, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var results []domain.ScoredProduct
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return results, nil
}

// setInCache stores search results in cache
func (s *CatalogService) setInCache(ctx context.Context, key string, results []domain.ScoredProduct) error {
	if s.cache == nil {
		return nil
	}

	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, data, s.cacheTTL)
}

func (s *CatalogService) observe(operation string, results int, start time.Time) {
	if s.recorder != nil {
		s.recorder.ObserveScoring(operation, results, time.Since(start))
	}
}
