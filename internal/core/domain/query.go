package domain

import "github.com/shopspring/decimal"

type SortKey string

const (
	SortFeatured   SortKey = "featured"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating-desc"
	SortNameAsc    SortKey = "name-asc"
	SortNameDesc   SortKey = "name-desc"
	SortNewest     SortKey = "newest"
)

// ParseSortKey returns the sort key for s, falling back to [SortFeatured]
// for unknown values.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortPriceAsc, SortPriceDesc, SortRatingDesc,
		SortNameAsc, SortNameDesc, SortNewest:
		return k
	}
	return SortFeatured
}

type ShopQuery struct {
	Page      int
	Sort      SortKey
	Category  string
	Brands    []string
	MinPrice  decimal.Decimal
	MaxPrice  decimal.Decimal
	MinRating float64
	Search    string
}

type ShopPage struct {
	Items      []Product
	TotalCount int
	TotalPages int
	Page       int
}

const (
	DefaultPage     = 1
	DefaultMaxPrice = 10000
)

// DefaultShopQuery returns the query of an unfiltered first page.
func DefaultShopQuery() ShopQuery {
	return ShopQuery{
		Page:     DefaultPage,
		Sort:     SortFeatured,
		MinPrice: decimal.Zero,
		MaxPrice: decimal.NewFromInt(DefaultMaxPrice),
	}
}
