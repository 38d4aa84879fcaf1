package store

import (
	"context"
	"fmt"

	"github.com/pankajredekar/storefront/internal/models"
)

// ProductRevenue is a product with its aggregated revenue.
// LineCount is the number of orders_products rows, so an order that lists the
// product twice counts twice.
type ProductRevenue struct {
	Product      models.Product
	RevenueCents int64
	LineCount    int64
}

type revenueRow struct {
	ID           uint
	Name         string
	Path         string
	PriceCents   int64
	RevenueCents int64
	LineCount    int64
}

// ProductRevenues ranks ordered products by revenue, highest first.
//
// Revenue is the product's current price_cents summed over every
// orders_products row that references it; the price snapshot on the order is
// not consulted. Products that were never ordered have no join rows and are
// omitted. Ties are broken by product id so repeated calls agree.
func (s *Store) ProductRevenues(ctx context.Context, n int) ([]ProductRevenue, error) {
	if n <= 0 {
		return nil, fmt.Errorf("top products count must be positive, got %d: %w", n, ErrInvalidArgument)
	}

	var rows []revenueRow
	err := s.db.WithContext(ctx).
		Table("products").
		Select("products.id, products.name, products.path, products.price_cents, " +
			"SUM(products.price_cents) AS revenue_cents, COUNT(orders_products.id) AS line_count").
		Joins("JOIN orders_products ON orders_products.product_id = products.id").
		Group("products.id, products.name, products.path, products.price_cents").
		Order("revenue_cents DESC, products.id ASC").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank products by revenue: %w", err)
	}
	ranked := make([]ProductRevenue, len(rows))
	for i, r := range rows {
		ranked[i] = ProductRevenue{
			Product:      models.Product{ID: r.ID, Name: r.Name, Path: r.Path, PriceCents: r.PriceCents},
			RevenueCents: r.RevenueCents,
			LineCount:    r.LineCount,
		}
	}
	return ranked, nil
}

// TopRevenueProducts returns up to n products ordered by revenue
func (s *Store) TopRevenueProducts(ctx context.Context, n int) ([]models.Product, error) {
	rows, err := s.ProductRevenues(ctx, n)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, len(rows))
	for i, r := range rows {
		products[i] = r.Product
	}
	return products, nil
}
