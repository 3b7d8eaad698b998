package shop

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	paramPage      = "page"
	paramSort      = "sort"
	paramCategory  = "category"
	paramBrand     = "brand"
	paramMinPrice  = "minPrice"
	paramMaxPrice  = "maxPrice"
	paramMinRating = "rating"
	paramSearch    = "search"
)

// ParseQuery reads a query from URL parameters. Missing, malformed or
// zero numeric values take their defaults. The category is kept as given.
func ParseQuery(v url.Values) domain.ShopQuery {
	q := domain.DefaultShopQuery()

	if n, err := strconv.Atoi(v.Get(paramPage)); err == nil && n > 0 {
		q.Page = n
	}
	q.Sort = domain.ParseSortKey(v.Get(paramSort))
	q.Category = strings.TrimSpace(v.Get(paramCategory))

	for _, b := range v[paramBrand] {
		if b = strings.TrimSpace(b); b != "" {
			q.Brands = append(q.Brands, b)
		}
	}

	if d, ok := parseDecimal(v.Get(paramMinPrice)); ok {
		q.MinPrice = d
	}
	if d, ok := parseDecimal(v.Get(paramMaxPrice)); ok {
		q.MaxPrice = d
	}
	if f, err := strconv.ParseFloat(v.Get(paramMinRating), 64); err == nil && f > 0 {
		q.MinRating = f
	}

	q.Search = strings.TrimSpace(v.Get(paramSearch))
	return q
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsZero() {
		return decimal.Decimal{}, false
	}
	return d, true
}

// Values writes q back to URL parameters, leaving defaults out.
func Values(q domain.ShopQuery) url.Values {
	def := domain.DefaultShopQuery()
	v := make(url.Values)

	if q.Page > def.Page {
		v.Set(paramPage, strconv.Itoa(q.Page))
	}
	if q.Sort != "" && q.Sort != def.Sort {
		v.Set(paramSort, string(q.Sort))
	}
	if q.Category != "" {
		v.Set(paramCategory, q.Category)
	}
	for _, b := range q.Brands {
		v.Add(paramBrand, b)
	}
	if !q.MinPrice.IsZero() {
		v.Set(paramMinPrice, q.MinPrice.String())
	}
	if !q.MaxPrice.IsZero() && !q.MaxPrice.Equal(def.MaxPrice) {
		v.Set(paramMaxPrice, q.MaxPrice.String())
	}
	if q.MinRating > 0 {
		v.Set(paramMinRating, strconv.FormatFloat(q.MinRating, 'f', -1, 64))
	}
	if q.Search != "" {
		v.Set(paramSearch, q.Search)
	}
	return v
}
