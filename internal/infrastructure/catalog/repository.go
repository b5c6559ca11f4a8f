package catalog

import (
	"context"
	"fmt"

	"github.com/greentail/backend/internal/domain"
)

// Repository is a read-only in-memory product catalog.
// It is loaded once and never mutated afterwards, so it needs no locking.
type Repository struct {
	products []domain.Product
	byID     map[int]int
}

// NewRepository validates the products and takes a private copy of them
func NewRepository(products []domain.Product) (*Repository, error) {
	repo := &Repository{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}

	for i, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("%w: product at index %d has no positive id", domain.ErrCatalogUnavailable, i)
		}
		if _, dup := repo.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %d", domain.ErrCatalogUnavailable, p.ID)
		}
		if p.Price < 0 || p.PricePer1000kcal < 0 {
			return nil, fmt.Errorf("%w: product %d has a negative price", domain.ErrCatalogUnavailable, p.ID)
		}

		repo.byID[p.ID] = len(repo.products)
		repo.products = append(repo.products, p.Clone())
	}

	return repo, nil
}

// List returns deep copies of every product in catalog order
func (r *Repository) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.Product, len(r.products))
	for i, p := range r.products {
		out[i] = p.Clone()
	}
	return out, nil
}

// Get returns a copy of one product
func (r *Repository) Get(ctx context.Context, id int) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}

	p := r.products[idx].Clone()
	return &p, nil
}

// Size returns the number of products in the catalog
func (r *Repository) Size() int {
	return len(r.products)
}
