// Package catalog holds the immutable product catalog and its lookups.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/niksmo/storefront/internal/core/domain"
)

const (
	featuredLimit  = 8
	flashSaleLimit = 4
	relatedLimit   = 4

	entryDescriptionLen = 100
)

var ErrDuplicate = errors.New("duplicate catalog record")

// Catalog is safe for concurrent use: nothing mutates it after New.
type Catalog struct {
	products   []domain.Product
	byID       map[string]int
	bySlug     map[string]int
	categories []domain.Category
	catBySlug  map[string]int
	reviews    map[string][]domain.Review
	brands     []string
}

func New(data domain.CatalogData) (*Catalog, error) {
	const op = "catalog.New"
	log := slog.With("op", op)

	c := &Catalog{
		products:   slices.Clone(data.Products),
		byID:       make(map[string]int, len(data.Products)),
		bySlug:     make(map[string]int, len(data.Products)),
		categories: slices.Clone(data.Categories),
		catBySlug:  make(map[string]int, len(data.Categories)),
		reviews:    make(map[string][]domain.Review),
	}

	var errs []error
	brands := make(map[string]struct{})
	for i, p := range c.products {
		if _, ok := c.byID[p.ID]; ok {
			errs = append(errs, fmt.Errorf("product id %q: %w", p.ID, ErrDuplicate))
		}
		if _, ok := c.bySlug[p.Slug]; ok {
			errs = append(errs, fmt.Errorf("product slug %q: %w", p.Slug, ErrDuplicate))
		}
		c.byID[p.ID] = i
		c.bySlug[p.Slug] = i
		brands[p.Brand] = struct{}{}

		if p.IsOnSale && !p.HasValidDiscount() {
			log.Warn(
				"product is on sale without a valid original price",
				"productID", p.ID,
			)
		}
	}

	for i, cat := range c.categories {
		if _, ok := c.catBySlug[cat.Slug]; ok {
			errs = append(errs, fmt.Errorf("category slug %q: %w", cat.Slug, ErrDuplicate))
		}
		c.catBySlug[cat.Slug] = i
	}

	for _, r := range data.Reviews {
		c.reviews[r.ProductID] = append(c.reviews[r.ProductID], r)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for b := range brands {
		c.brands = append(c.brands, b)
	}
	slices.Sort(c.brands)

	return c, nil
}

// Products returns the catalog products in their natural order.
func (c *Catalog) Products() []domain.Product {
	return slices.Clone(c.products)
}

func (c *Catalog) ProductByID(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return c.products[i], nil
}

func (c *Catalog) ProductBySlug(slug string) (domain.Product, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return c.products[i], nil
}

func (c *Catalog) Categories() []domain.Category {
	return slices.Clone(c.categories)
}

func (c *Catalog) CategoryBySlug(slug string) (domain.Category, error) {
	i, ok := c.catBySlug[slug]
	if !ok {
		return domain.Category{}, domain.ErrNotFound
	}
	return c.categories[i], nil
}

func (c *Catalog) Brands() []string {
	return slices.Clone(c.brands)
}

func (c *Catalog) Featured() []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if len(out) == featuredLimit {
			break
		}
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out
}

// FlashSale returns on-sale products whose sale is still running at now,
// the soonest ending first.
func (c *Catalog) FlashSale(now time.Time) []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if p.IsOnSale && p.SaleEndDate != nil && p.SaleEndDate.After(now) {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Product) int {
		return a.SaleEndDate.Compare(*b.SaleEndDate)
	})
	if len(out) > flashSaleLimit {
		out = out[:flashSaleLimit]
	}
	return out
}

func (c *Catalog) Related(p domain.Product) []domain.Product {
	var out []domain.Product
	for _, v := range c.products {
		if len(out) == relatedLimit {
			break
		}
		if v.ID != p.ID && v.Category == p.Category {
			out = append(out, v)
		}
	}
	return out
}

func (c *Catalog) Reviews(productID string) []domain.Review {
	return slices.Clone(c.reviews[productID])
}

// Entries returns every product trimmed down for a suggestion prompt.
func (c *Catalog) Entries() []domain.CatalogEntry {
	out := make([]domain.CatalogEntry, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, domain.CatalogEntry{
			Name:        p.Name,
			Slug:        p.Slug,
			Category:    p.Category,
			Brand:       p.Brand,
			Price:       p.Price,
			Description: trimDescription(p.Description),
		})
	}
	return out
}

func trimDescription(s string) string {
	if utf8.RuneCountInString(s) <= entryDescriptionLen {
		return s
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		if n == entryDescriptionLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	b.WriteString("...")
	return b.String()
}
