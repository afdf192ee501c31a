// Package catalog serves the product listing. The storefront ships with a
// static catalog; when configured it prefers the remote products table and
// falls back to the static list if that table is empty or unreachable.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/storefront/core/ports"
)

var ErrProductNotFound = errors.New("catalog: product not found")

// Static is the built-in product list.
var Static = []entity.Product{
	{
		ID:          1,
		Name:        "SmartPhone X Pro",
		Price:       decimal.RequireFromString("899.99"),
		Description: "Latest smartphone with advanced AI camera",
		Image:       "/images/phone-1.jpg",
		Category:    "smartphones",
		Features:    []string{"5G", "128GB Storage", "Triple Camera"},
		InStock:     true,
		Rating:      4.5,
	},
	{
		ID:          2,
		Name:        "UltraBook Laptop",
		Price:       decimal.RequireFromString("1299.99"),
		Description: "Thin and light laptop for professionals",
		Image:       "/images/laptop-1.jpg",
		Category:    "laptops",
		Features:    []string{"Intel i7", "16GB RAM", "512GB SSD"},
		InStock:     true,
		Rating:      4.8,
	},
}

type Catalog struct {
	remote ports.ProductRepository // nil: static only
	static []entity.Product
}

// New returns a catalog backed by the static list. remote may be nil.
func New(remote ports.ProductRepository) *Catalog {
	return &Catalog{remote: remote, static: Static}
}

// List returns all products, optionally narrowed to one category
// (case-insensitive). An empty category returns everything.
func (c *Catalog) List(ctx context.Context, category string) []entity.Product {
	products := c.all(ctx)

	category = strings.TrimSpace(category)
	if category == "" {
		return products
	}

	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Get(ctx context.Context, id int64) (entity.Product, error) {
	for _, p := range c.all(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	return entity.Product{}, ErrProductNotFound
}

func (c *Catalog) all(ctx context.Context) []entity.Product {
	if c.remote == nil {
		return c.static
	}

	products, err := c.remote.ListProducts(ctx)
	if err != nil {
		slog.WarnContext(ctx, "remote catalog unavailable, using static products", "error", err)
		return c.static
	}
	if len(products) == 0 {
		return c.static
	}
	return products
}
