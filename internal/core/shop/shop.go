// Package shop derives the visible page of the catalog from a query.
package shop

import (
	"cmp"
	"slices"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const PageSize = 12

// Query filters, sorts and paginates products. The input is never
// modified. A page past the end yields no items. Zero page and zero max
// price mean the first page and no upper bound.
func Query(products []domain.Product, q domain.ShopQuery) domain.ShopPage {
	if q.Page < 1 {
		q.Page = 1
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, q) {
			filtered = append(filtered, p)
		}
	}

	sortProducts(filtered, q.Sort)

	total := len(filtered)
	page := domain.ShopPage{
		TotalCount: total,
		TotalPages: (total + PageSize - 1) / PageSize,
		Page:       q.Page,
		Items:      []domain.Product{},
	}

	// Compared before multiplying so a huge page cannot overflow.
	if q.Page > page.TotalPages {
		return page
	}
	start := (q.Page - 1) * PageSize
	end := min(start+PageSize, total)
	page.Items = filtered[start:end]
	return page
}

func matches(p domain.Product, q domain.ShopQuery) bool {
	if q.Search != "" && !matchesSearch(p, strings.ToLower(q.Search)) {
		return false
	}
	if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
		return false
	}
	if len(q.Brands) != 0 && !slices.ContainsFunc(q.Brands, func(b string) bool {
		return strings.EqualFold(b, p.Brand)
	}) {
		return false
	}
	if p.Price.LessThan(q.MinPrice) {
		return false
	}
	if !q.MaxPrice.IsZero() && p.Price.GreaterThan(q.MaxPrice) {
		return false
	}
	return p.Rating >= q.MinRating
}

func matchesSearch(p domain.Product, term string) bool {
	for _, field := range [...]string{p.Name, p.Description, p.Category, p.Brand} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func sortProducts(ps []domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortPriceAsc:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case domain.SortPriceDesc:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return b.Price.Cmp(a.Price)
		})
	case domain.SortRatingDesc:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case domain.SortNameAsc, domain.SortNameDesc:
		// Collator keeps internal buffers, so one per call.
		col := collate.New(language.English)
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			if key == domain.SortNameDesc {
				a, b = b, a
			}
			return col.CompareString(a.Name, b.Name)
		})
	case domain.SortNewest:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	default:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			if a.IsFeatured != b.IsFeatured {
				if a.IsFeatured {
					return -1
				}
				return 1
			}
			return cmp.Compare(b.Rating, a.Rating)
		})
	}
}
