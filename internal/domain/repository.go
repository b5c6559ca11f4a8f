package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogRepository supplies the read-only product catalog.
// Implementations must return copies so callers cannot mutate the catalog.
type CatalogRepository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (*Product, error)
}
