package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/shop"
)

// Browse runs a shop query. A category given as a slug is matched by the
// category name products carry.
func (s *Service) Browse(_ context.Context, q domain.ShopQuery) domain.ShopPage {
	if q.Category != "" {
		if cat, err := s.catalog.CategoryBySlug(q.Category); err == nil {
			q.Category = cat.Name
		}
	}
	return shop.Query(s.catalog.Products(), q)
}

func (s *Service) ProductDetails(
	_ context.Context, slug string,
) (domain.ProductDetails, error) {
	const op = "Service.ProductDetails"

	p, err := s.catalog.ProductBySlug(slug)
	if err != nil {
		return domain.ProductDetails{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.ProductDetails{
		Product: p,
		Reviews: s.catalog.Reviews(p.ID),
		Related: s.catalog.Related(p),
	}, nil
}

func (s *Service) Categories(context.Context) []domain.Category {
	return s.catalog.Categories()
}

func (s *Service) Brands(context.Context) []string {
	return s.catalog.Brands()
}

func (s *Service) Featured(context.Context) []domain.Product {
	return s.catalog.Featured()
}

func (s *Service) FlashSale(context.Context) []domain.Product {
	return s.catalog.FlashSale(s.now())
}

func (s *Service) product(id string) (domain.Product, error) {
	p, err := s.catalog.ProductByID(id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Product{}, fmt.Errorf("product %q: %w", id, err)
	}
	return p, err
}
