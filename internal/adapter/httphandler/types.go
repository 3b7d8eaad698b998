package httphandler

import (
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

type (
	Product struct {
		ID            string           `json:"id"`
		Slug          string           `json:"slug"`
		Name          string           `json:"name"`
		Description   string           `json:"description"`
		Price         decimal.Decimal  `json:"price"`
		OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
		Category      string           `json:"category"`
		Brand         string           `json:"brand"`
		Rating        float64          `json:"rating"`
		ReviewsCount  int              `json:"reviews_count"`
		StockStatus   string           `json:"stock_status"`
		Images        []string         `json:"images"`
		Variants      *ProductVariants `json:"variants,omitempty"`
		IsFeatured    bool             `json:"is_featured"`
		IsOnSale      bool             `json:"is_on_sale"`
		SaleEndDate   *time.Time       `json:"sale_end_date,omitempty"`
		CreatedAt     time.Time        `json:"created_at"`
	}

	ProductVariants struct {
		Colors []string `json:"colors,omitempty"`
		Sizes  []string `json:"sizes,omitempty"`
	}

	Review struct {
		ID       string    `json:"id"`
		UserName string    `json:"user_name"`
		Rating   int       `json:"rating"`
		Comment  string    `json:"comment"`
		Date     time.Time `json:"date"`
	}

	Category struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Slug     string `json:"slug"`
		ImageURL string `json:"image_url"`
	}

	ProductDetails struct {
		Product Product   `json:"product"`
		Reviews []Review  `json:"reviews"`
		Related []Product `json:"related"`
	}

	ShopPage struct {
		Items      []Product `json:"items"`
		TotalCount int       `json:"total_count"`
		TotalPages int       `json:"total_pages"`
		Page       int       `json:"page"`
		Prev       string    `json:"prev,omitempty"`
		Next       string    `json:"next,omitempty"`
	}
)

type (
	CartItem struct {
		Product  Product         `json:"product"`
		Quantity int             `json:"quantity"`
		Subtotal decimal.Decimal `json:"subtotal"`
	}

	Cart struct {
		Items []CartItem      `json:"items"`
		Count int             `json:"count"`
		Total decimal.Decimal `json:"total"`
	}

	Wishlist struct {
		Items []Product `json:"items"`
		Count int       `json:"count"`
	}

	AddCartItem struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}

	UpdateCartItem struct {
		Quantity int `json:"quantity"`
	}

	AddWishlistItem struct {
		ProductID string `json:"product_id"`
	}
)

type (
	ShippingAddress struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		City    string `json:"city"`
		State   string `json:"state"`
		Zip     string `json:"zip"`
	}

	PaymentCard struct {
		Name   string `json:"name"`
		Number string `json:"number"`
		Expiry string `json:"expiry"`
		CVC    string `json:"cvc"`
	}

	Checkout struct {
		Shipping ShippingAddress `json:"shipping"`
		Payment  PaymentCard     `json:"payment"`
	}

	OrderItem struct {
		ProductID string          `json:"product_id"`
		Name      string          `json:"name"`
		Quantity  int             `json:"quantity"`
		Price     decimal.Decimal `json:"price"`
	}

	Order struct {
		ID       string          `json:"id"`
		Shipping ShippingAddress `json:"shipping"`
		Card     string          `json:"card"`
		Items    []OrderItem     `json:"items"`
		Total    decimal.Decimal `json:"total"`
		Status   string          `json:"status"`
		PlacedAt time.Time       `json:"placed_at"`
	}

	Notification struct {
		ID          string    `json:"id"`
		Kind        string    `json:"kind"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Destructive bool      `json:"destructive"`
		ProductID   string    `json:"product_id,omitempty"`
		At          time.Time `json:"at"`
	}
)

func toProduct(p domain.Product) Product {
	out := Product{
		ID:            p.ID,
		Slug:          p.Slug,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Category:      p.Category,
		Brand:         p.Brand,
		Rating:        p.Rating,
		ReviewsCount:  p.ReviewsCount,
		StockStatus:   string(p.StockStatus),
		Images:        p.Images,
		IsFeatured:    p.IsFeatured,
		IsOnSale:      p.IsOnSale,
		SaleEndDate:   p.SaleEndDate,
		CreatedAt:     p.CreatedAt,
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	if p.Variants != nil {
		out.Variants = &ProductVariants{
			Colors: p.Variants.Colors,
			Sizes:  p.Variants.Sizes,
		}
	}
	return out
}

func toProducts(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i := range ps {
		out[i] = toProduct(ps[i])
	}
	return out
}

func toCategories(cs []domain.Category) []Category {
	out := make([]Category, len(cs))
	for i, c := range cs {
		out[i] = Category{
			ID: c.ID, Name: c.Name, Slug: c.Slug, ImageURL: c.ImageURL,
		}
	}
	return out
}

func toProductDetails(d domain.ProductDetails) ProductDetails {
	reviews := make([]Review, len(d.Reviews))
	for i, r := range d.Reviews {
		reviews[i] = Review{
			ID:       r.ID,
			UserName: r.UserName,
			Rating:   r.Rating,
			Comment:  r.Comment,
			Date:     r.Date,
		}
	}
	return ProductDetails{
		Product: toProduct(d.Product),
		Reviews: reviews,
		Related: toProducts(d.Related),
	}
}

func toCart(s domain.CartSummary) Cart {
	items := make([]CartItem, len(s.Items))
	for i, it := range s.Items {
		items[i] = CartItem{
			Product:  toProduct(it.Product),
			Quantity: it.Quantity,
			Subtotal: it.Subtotal(),
		}
	}
	return Cart{Items: items, Count: s.Count, Total: s.Total}
}

func toWishlist(s domain.WishlistSummary) Wishlist {
	return Wishlist{Items: toProducts(s.Items), Count: s.Count}
}

func (c Checkout) toDomain() domain.CheckoutForm {
	return domain.CheckoutForm{
		Shipping: domain.ShippingAddress(c.Shipping),
		Payment:  domain.PaymentCard(c.Payment),
	}
}

func toOrder(o domain.Order) Order {
	items := make([]OrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItem(it)
	}
	return Order{
		ID:       o.ID,
		Shipping: ShippingAddress(o.Shipping),
		Card:     o.CardMasked,
		Items:    items,
		Total:    o.Total,
		Status:   string(o.Status),
		PlacedAt: o.PlacedAt,
	}
}

func toOrders(os []domain.Order) []Order {
	out := make([]Order, len(os))
	for i := range os {
		out[i] = toOrder(os[i])
	}
	return out
}

func toNotifications(ns []domain.Notification) []Notification {
	out := make([]Notification, len(ns))
	for i, n := range ns {
		out[i] = Notification{
			ID:          n.ID,
			Kind:        string(n.Kind),
			Title:       n.Title,
			Description: n.Description,
			Destructive: n.Destructive,
			ProductID:   n.ProductID,
			At:          n.At,
		}
	}
	return out
}
