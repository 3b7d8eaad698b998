// Package fixtures provides the built-in demo catalog.
package fixtures

import (
	"context"
	"fmt"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.CatalogLoader = (*Loader)(nil)

var catalogEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Loader serves the demo catalog. Flash sale end dates are relative to
// the moment the catalog is loaded.
type Loader struct {
	now func() time.Time
}

func New() Loader {
	return Loader{now: time.Now}
}

// NewAt returns a loader with a fixed clock.
func NewAt(now time.Time) Loader {
	return Loader{now: func() time.Time { return now }}
}

func (l Loader) LoadCatalog(ctx context.Context) (domain.CatalogData, error) {
	const op = "fixtures.LoadCatalog"

	if err := ctx.Err(); err != nil {
		return domain.CatalogData{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.CatalogData{
		Products:   products(l.now()),
		Categories: categories(),
		Reviews:    reviews(),
	}, nil
}

func categories() []domain.Category {
	return []domain.Category{
		{ID: "cat1", Name: "Electronics", Slug: "electronics", ImageURL: "https://picsum.photos/seed/electronics/300/200"},
		{ID: "cat2", Name: "Fashion", Slug: "fashion", ImageURL: "https://picsum.photos/seed/fashion/300/200"},
		{ID: "cat3", Name: "Home Goods", Slug: "home-goods", ImageURL: "https://picsum.photos/seed/home/300/200"},
		{ID: "cat4", Name: "Sports", Slug: "sports", ImageURL: "https://picsum.photos/seed/sports/300/200"},
		{ID: "cat5", Name: "Books", Slug: "books", ImageURL: "https://picsum.photos/seed/books/300/200"},
		{ID: "cat6", Name: "Beauty", Slug: "beauty", ImageURL: "https://picsum.photos/seed/beauty/300/200"},
	}
}

func reviews() []domain.Review {
	return []domain.Review{
		{ID: "rev1", ProductID: "prod1", UserName: "Alice", Rating: 5, Comment: "Amazing sound quality and noise cancellation!", Date: day(2024, time.May, 10)},
		{ID: "rev2", ProductID: "prod1", UserName: "Bob", Rating: 4, Comment: "Very comfortable, but the price is a bit high.", Date: day(2024, time.May, 12)},
		{ID: "rev3", ProductID: "prod7", UserName: "Charlie", Rating: 5, Comment: "Beautiful dress, perfect for summer!", Date: day(2024, time.June, 1)},
		{ID: "rev4", ProductID: "prod7", UserName: "Diana", Rating: 4, Comment: "Lovely print, but runs slightly large.", Date: day(2024, time.June, 5)},
		{ID: "rev5", ProductID: "prod17", UserName: "Ethan", Rating: 5, Comment: "Super lightweight and comfortable for long runs.", Date: day(2024, time.July, 15)},
		{ID: "rev6", ProductID: "prod17", UserName: "Fiona", Rating: 4, Comment: "Good value, great cushioning.", Date: day(2024, time.July, 18)},
	}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricePtr(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

func saleEnd(now time.Time, days int) *time.Time {
	t := now.Add(time.Duration(days) * 24 * time.Hour)
	return &t
}

// createdAt keeps the catalog order as the order of arrival.
func createdAt(i int) time.Time {
	return catalogEpoch.AddDate(0, 0, i)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
