package port

import (
	"context"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// A KVStore keeps opaque values by key.
//
// Get returns [domain.ErrNotFound] for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Load methods return no items and no error for a missing or corrupted
// snapshot, and [domain.ErrSnapshotUnavailable] when it cannot be read.
type CartSnapshots interface {
	LoadCart(ctx context.Context, key string) ([]domain.CartLineItem, error)
	SaveCart(ctx context.Context, key string, items []domain.CartLineItem) error
}

type WishlistSnapshots interface {
	LoadWishlist(ctx context.Context, key string) ([]domain.Product, error)
	SaveWishlist(ctx context.Context, key string, items []domain.Product) error
}

// Snapshots stores both collections of a session under separate keys.
type Snapshots interface {
	CartSnapshots
	WishlistSnapshots
	CartKey(sessionID string) string
	WishlistKey(sessionID string) string
}

type CatalogLoader interface {
	LoadCatalog(context.Context) (domain.CatalogData, error)
}

type Notifier interface {
	Notify(context.Context, domain.Notification) error
}

type NotificationFeed interface {
	Recent(ctx context.Context, sessionID string) ([]domain.Notification, error)
}

type ProductSuggester interface {
	SuggestProducts(
		context.Context, domain.SuggestionPrompt,
	) (domain.SuggestionResponse, error)
}

type NotificationsProcessor interface {
	runnerContextWg
	closer
}

type ShopBrowser interface {
	Browse(context.Context, domain.ShopQuery) domain.ShopPage
	ProductDetails(ctx context.Context, slug string) (domain.ProductDetails, error)
	Categories(context.Context) []domain.Category
	Brands(context.Context) []string
	Featured(context.Context) []domain.Product
	FlashSale(context.Context) []domain.Product
}

type CartManager interface {
	Cart(ctx context.Context, sessionID string) (domain.CartSummary, error)
	AddToCart(
		ctx context.Context, sessionID, productID string, quantity int,
	) (domain.CartSummary, error)
	RemoveFromCart(
		ctx context.Context, sessionID, productID string,
	) (domain.CartSummary, error)
	UpdateQuantity(
		ctx context.Context, sessionID, productID string, quantity int,
	) (domain.CartSummary, error)
	ClearCart(ctx context.Context, sessionID string) (domain.CartSummary, error)
}

type WishlistManager interface {
	Wishlist(ctx context.Context, sessionID string) (domain.WishlistSummary, error)
	AddToWishlist(
		ctx context.Context, sessionID, productID string,
	) (domain.WishlistSummary, error)
	RemoveFromWishlist(
		ctx context.Context, sessionID, productID string,
	) (domain.WishlistSummary, error)
}

type OrderPlacer interface {
	PlaceOrder(
		ctx context.Context, sessionID string, form domain.CheckoutForm,
	) (domain.Order, error)
	Orders(ctx context.Context, sessionID string) []domain.Order
}

type SuggestionFinder interface {
	Suggestions(ctx context.Context, slug string) ([]domain.Product, error)
}

type NotificationReader interface {
	Notifications(
		ctx context.Context, sessionID string,
	) ([]domain.Notification, error)
}
