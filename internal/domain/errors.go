package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product ID is not in the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCatalogUnavailable is returned when the catalog cannot be loaded or read
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
