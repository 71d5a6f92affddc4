package usecase

import (
	"context"

	"golang.org/x/sync/singleflight"

	domain "github.com/misbahulhassan/Aeroflux-Electric/internal/entity"
)

// Catalog serves the product browse surface. Concurrent browse requests
// collapse onto a single storage read via singleflight; filtering and
// sorting stay per-request.
type Catalog struct {
	products ProductRepo
	sfg      singleflight.Group
}

func NewCatalog(products ProductRepo) *Catalog {
	return &Catalog{products: products}
}

func (c *Catalog) Browse(ctx context.Context, query, category string, key domain.SortKey) ([]domain.Product, error) {
	all, err := c.listAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.DeriveView(all, query, category, key), nil
}

func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	all, err := c.listAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Categories(all), nil
}

func (c *Catalog) Get(ctx context.Context, id string) (*domain.Product, error) {
	return c.products.GetByID(ctx, id)
}

func (c *Catalog) listAll(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := c.sfg.Do("products", func() (any, error) {
		return c.products.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}
