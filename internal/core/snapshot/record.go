package snapshot

import (
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

type (
	productRecord struct {
		ID            string          `json:"id"`
		Slug          string          `json:"slug"`
		Name          string          `json:"name"`
		Description   string          `json:"description"`
		Price         float64         `json:"price"`
		OriginalPrice *float64        `json:"originalPrice,omitempty"`
		Category      string          `json:"category"`
		Brand         string          `json:"brand"`
		Rating        float64         `json:"rating"`
		ReviewsCount  int             `json:"reviewsCount"`
		StockStatus   string          `json:"stockStatus"`
		Images        []string        `json:"images"`
		Variants      *variantsRecord `json:"variants,omitempty"`
		IsFeatured    bool            `json:"isFeatured,omitempty"`
		IsOnSale      bool            `json:"isOnSale,omitempty"`
		SaleEndDate   *time.Time      `json:"saleEndDate,omitempty"`
		CreatedAt     time.Time       `json:"createdAt"`
	}

	variantsRecord struct {
		Colors []string `json:"colors,omitempty"`
		Sizes  []string `json:"sizes,omitempty"`
	}

	cartRecord struct {
		productRecord
		Quantity int `json:"quantity"`
	}

	// requiredFields carries the fields every element must have.
	requiredFields struct {
		ID       *string  `json:"id"`
		Quantity *float64 `json:"quantity"`
	}
)

func toRecord(p domain.Product) productRecord {
	r := productRecord{
		ID:           p.ID,
		Slug:         p.Slug,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price.InexactFloat64(),
		Category:     p.Category,
		Brand:        p.Brand,
		Rating:       p.Rating,
		ReviewsCount: p.ReviewsCount,
		StockStatus:  string(p.StockStatus),
		Images:       p.Images,
		IsFeatured:   p.IsFeatured,
		IsOnSale:     p.IsOnSale,
		SaleEndDate:  p.SaleEndDate,
		CreatedAt:    p.CreatedAt,
	}
	if p.OriginalPrice != nil {
		v := p.OriginalPrice.InexactFloat64()
		r.OriginalPrice = &v
	}
	if p.Variants != nil {
		r.Variants = &variantsRecord{
			Colors: p.Variants.Colors,
			Sizes:  p.Variants.Sizes,
		}
	}
	return r
}

func (r productRecord) toDomain() domain.Product {
	p := domain.Product{
		ID:           r.ID,
		Slug:         r.Slug,
		Name:         r.Name,
		Description:  r.Description,
		Price:        decimal.NewFromFloat(r.Price),
		Category:     r.Category,
		Brand:        r.Brand,
		Rating:       r.Rating,
		ReviewsCount: r.ReviewsCount,
		StockStatus:  domain.StockStatus(r.StockStatus),
		Images:       r.Images,
		IsFeatured:   r.IsFeatured,
		IsOnSale:     r.IsOnSale,
		SaleEndDate:  r.SaleEndDate,
		CreatedAt:    r.CreatedAt,
	}
	if r.OriginalPrice != nil {
		v := decimal.NewFromFloat(*r.OriginalPrice)
		p.OriginalPrice = &v
	}
	if r.Variants != nil {
		p.Variants = &domain.ProductVariants{
			Colors: r.Variants.Colors,
			Sizes:  r.Variants.Sizes,
		}
	}
	return p
}
