package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type StockStatus string

const (
	InStock    StockStatus = "In Stock"
	LowStock   StockStatus = "Low Stock"
	OutOfStock StockStatus = "Out of Stock"
)

func (s StockStatus) Valid() bool {
	switch s {
	case InStock, LowStock, OutOfStock:
		return true
	}
	return false
}

type (
	Product struct {
		ID            string
		Slug          string
		Name          string
		Description   string
		Price         decimal.Decimal
		OriginalPrice *decimal.Decimal
		Category      string
		Brand         string
		Rating        float64
		ReviewsCount  int
		StockStatus   StockStatus
		Images        []string
		Variants      *ProductVariants
		IsFeatured    bool
		IsOnSale      bool
		SaleEndDate   *time.Time
		CreatedAt     time.Time
	}

	ProductVariants struct {
		Colors []string
		Sizes  []string
	}
)

// HasValidDiscount reports whether the product carries an original price
// above its current price.
func (p Product) HasValidDiscount() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

type Category struct {
	ID       string
	Name     string
	Slug     string
	ImageURL string
}

type Review struct {
	ID        string
	ProductID string
	UserName  string
	Rating    int
	Comment   string
	Date      time.Time
}

// A CatalogData is the raw content a catalog is built from.
type CatalogData struct {
	Products   []Product
	Categories []Category
	Reviews    []Review
}

// A CatalogEntry is a product trimmed for prompt context.
type CatalogEntry struct {
	Name        string
	Slug        string
	Category    string
	Brand       string
	Price       decimal.Decimal
	Description string
}

type ProductDetails struct {
	Product Product
	Reviews []Review
	Related []Product
}
