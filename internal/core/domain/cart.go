package domain

import "github.com/shopspring/decimal"

// MaxQuantity bounds the quantity of a single line item.
const MaxQuantity = 9999

type CartLineItem struct {
	Product  Product
	Quantity int
}

func (i CartLineItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type CartSummary struct {
	Items []CartLineItem
	Count int
	Total decimal.Decimal
}

type WishlistSummary struct {
	Items []Product
	Count int
}
