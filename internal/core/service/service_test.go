package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/adapter/fixtures"
	"github.com/niksmo/storefront/internal/adapter/kvstore"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/internal/core/snapshot"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct {
	mock.Mock
}

func (n *MockNotifier) Notify(ctx context.Context, v domain.Notification) error {
	args := n.Called(ctx, v)
	return args.Error(0)
}

type MockSuggester struct {
	mock.Mock
}

func (s *MockSuggester) SuggestProducts(
	ctx context.Context, p domain.SuggestionPrompt,
) (domain.SuggestionResponse, error) {
	args := s.Called(ctx, p)
	return args.Get(0).(domain.SuggestionResponse), args.Error(1)
}

type MockFeed struct {
	mock.Mock
}

func (f *MockFeed) Recent(
	ctx context.Context, sessionID string,
) ([]domain.Notification, error) {
	args := f.Called(ctx, sessionID)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

var now = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

// flakyKV fails the next failures reads.
type flakyKV struct {
	*kvstore.Memory
	failures atomic.Int32
}

func (kv *flakyKV) Get(ctx context.Context, key string) ([]byte, error) {
	if kv.failures.Add(-1) >= 0 {
		return nil, errors.New("connection reset")
	}
	return kv.Memory.Get(ctx, key)
}

// blockingKV holds reads of one key until release is closed.
type blockingKV struct {
	*kvstore.Memory
	key     string
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newBlockingKV(key string) *blockingKV {
	return &blockingKV{
		Memory:  kvstore.NewMemory(),
		key:     key,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (kv *blockingKV) Get(ctx context.Context, key string) ([]byte, error) {
	if key == kv.key {
		kv.once.Do(func() { close(kv.entered) })
		<-kv.release
	}
	return kv.Memory.Get(ctx, key)
}

func newService(t *testing.T, opts ...service.Opt) (*service.Service, *MockNotifier) {
	t.Helper()
	return newServiceOn(t, kvstore.NewMemory(), opts...)
}

func newServiceOn(
	t *testing.T, kv port.KVStore, opts ...service.Opt,
) (*service.Service, *MockNotifier) {
	t.Helper()
	data, err := fixtures.NewAt(now).LoadCatalog(t.Context())
	require.NoError(t, err)
	c, err := catalog.New(data)
	require.NoError(t, err)

	n := new(MockNotifier)
	n.On("Notify", mock.Anything, mock.Anything).Return(nil)

	opts = append([]service.Opt{
		service.ClockOpt(func() time.Time { return now }),
		service.CheckoutDelayOpt(0),
	}, opts...)
	return service.New(c, snapshot.New(kv), n, opts...), n
}

func cartCount(t *testing.T, svc *service.Service, sessionID string) int {
	t.Helper()
	sum, err := svc.Cart(t.Context(), sessionID)
	require.NoError(t, err)
	return sum.Count
}

func validForm() domain.CheckoutForm {
	return domain.CheckoutForm{
		Shipping: domain.ShippingAddress{
			Name: "John Doe", Address: "123 Main St", City: "Anytown",
			State: "CA", Zip: "90210",
		},
		Payment: domain.PaymentCard{
			Name: "John M Doe", Number: "4242 4242 4242 4242",
			Expiry: "12/29", CVC: "123",
		},
	}
}

func slugs(ps []domain.Product) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p.Slug)
	}
	return out
}

func TestBrowse(t *testing.T) {
	t.Run("CategorySlug", func(t *testing.T) {
		svc, _ := newService(t)
		q := domain.DefaultShopQuery()
		q.Category = "home-goods"

		page := svc.Browse(t.Context(), q)
		assert.Equal(t, 4, page.TotalCount)
		for _, p := range page.Items {
			assert.Equal(t, "Home Goods", p.Category)
		}
	})

	t.Run("ProductDetails", func(t *testing.T) {
		svc, _ := newService(t)
		d, err := svc.ProductDetails(t.Context(), "running-shoes-lightweight")
		require.NoError(t, err)
		assert.Equal(t, "prod17", d.Product.ID)
		assert.Len(t, d.Reviews, 2)
		assert.Len(t, d.Related, 2)

		_, err = svc.ProductDetails(t.Context(), "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Collections", func(t *testing.T) {
		svc, _ := newService(t)
		assert.Len(t, svc.Featured(t.Context()), 5)
		assert.Len(t, svc.FlashSale(t.Context()), 3)
		assert.Len(t, svc.Categories(t.Context()), 6)
		assert.Len(t, svc.Brands(t.Context()), 20)
	})
}

func TestCart(t *testing.T) {
	t.Run("UnknownProduct", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.AddToCart(t.Context(), "s1", "nope", 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = svc.AddToWishlist(t.Context(), "s1", "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("SessionsAreIsolated", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.AddToCart(t.Context(), "s1", "prod1", 2)
		require.NoError(t, err)

		assert.Equal(t, 2, cartCount(t, svc, "s1"))
		assert.Zero(t, cartCount(t, svc, "s2"))
	})

	t.Run("Operations", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.AddToCart(t.Context(), "s1", "prod1", 1)
		require.NoError(t, err)
		_, err = svc.AddToCart(t.Context(), "s1", "prod18", 1)
		require.NoError(t, err)

		sum, err := svc.UpdateQuantity(t.Context(), "s1", "prod18", 3)
		require.NoError(t, err)
		assert.Equal(t, 4, sum.Count)
		assert.True(t, decimal.RequireFromString("294.96").Equal(sum.Total))

		sum, err = svc.RemoveFromCart(t.Context(), "s1", "prod1")
		require.NoError(t, err)
		assert.Equal(t, 3, sum.Count)

		sum, err = svc.ClearCart(t.Context(), "s1")
		require.NoError(t, err)
		assert.Zero(t, sum.Count)
	})

	t.Run("Wishlist", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.AddToWishlist(t.Context(), "s1", "prod2")
		require.NoError(t, err)
		w, err := svc.AddToWishlist(t.Context(), "s1", "prod2")
		require.NoError(t, err)
		assert.Equal(t, 1, w.Count)

		w, err = svc.RemoveFromWishlist(t.Context(), "s1", "prod2")
		require.NoError(t, err)
		assert.Zero(t, w.Count)
		w, err = svc.Wishlist(t.Context(), "s1")
		require.NoError(t, err)
		assert.Zero(t, w.Count)
	})
}

func TestSessions(t *testing.T) {
	t.Run("ReadFailureKeepsSnapshot", func(t *testing.T) {
		kv := &flakyKV{Memory: kvstore.NewMemory()}
		svc, _ := newServiceOn(t, kv)
		_, err := svc.AddToCart(t.Context(), "s1", "prod1", 1)
		require.NoError(t, err)

		kv.failures.Store(1)
		restarted, _ := newServiceOn(t, kv)
		_, err = restarted.Cart(t.Context(), "s1")
		require.ErrorIs(t, err, domain.ErrSnapshotUnavailable)

		sum, err := restarted.AddToCart(t.Context(), "s1", "prod2", 1)
		require.NoError(t, err)
		assert.Equal(t, 2, sum.Count)

		items, err := snapshot.New(kv).LoadCart(t.Context(), "s1:cartItems")
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("CancelledRequestStillRestores", func(t *testing.T) {
		kv := kvstore.NewMemory()
		svc, _ := newServiceOn(t, kv)
		_, err := svc.AddToCart(t.Context(), "s1", "prod1", 3)
		require.NoError(t, err)

		restarted, _ := newServiceOn(t, kv)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, _ = restarted.Cart(ctx, "s1")

		assert.Equal(t, 3, cartCount(t, restarted, "s1"))
	})

	t.Run("IdleSessionIsReloaded", func(t *testing.T) {
		kv := kvstore.NewMemory()
		clock := now
		svc, _ := newServiceOn(t, kv,
			service.ClockOpt(func() time.Time { return clock }),
			service.SessionIdleOpt(time.Minute),
		)
		_, err := svc.AddToCart(t.Context(), "s1", "prod1", 1)
		require.NoError(t, err)

		require.NoError(t, kv.Delete(t.Context(), "s1:cartItems"))
		clock = clock.Add(30 * time.Second)
		assert.Equal(t, 1, cartCount(t, svc, "s1"), "active session is kept")

		clock = clock.Add(2 * time.Minute)
		assert.Zero(t, cartCount(t, svc, "s1"), "idle session is restored from storage")
	})

	t.Run("SlowLoadDoesNotBlockOthers", func(t *testing.T) {
		kv := newBlockingKV("slow:cartItems")
		svc, _ := newServiceOn(t, kv)

		slowErr := make(chan error, 1)
		go func() {
			_, err := svc.Cart(t.Context(), "slow")
			slowErr <- err
		}()
		<-kv.entered

		fastErr := make(chan error, 1)
		go func() {
			_, err := svc.AddToCart(t.Context(), "fast", "prod1", 1)
			fastErr <- err
		}()
		select {
		case err := <-fastErr:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("other session waits for a slow load")
		}

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := svc.Cart(ctx, "slow")
		assert.ErrorIs(t, err, context.Canceled)

		close(kv.release)
		require.NoError(t, <-slowErr)
	})
}

func TestSuggestions(t *testing.T) {
	t.Run("Validated", func(t *testing.T) {
		sg := new(MockSuggester)
		svc, _ := newService(t, service.SuggesterOpt(sg), service.SuggestionLimitOpt(3))

		sg.On("SuggestProducts", mock.Anything, mock.MatchedBy(
			func(p domain.SuggestionPrompt) bool {
				return p.Request.ProductName == "Espresso Machine" &&
					p.Request.Limit == 3 && len(p.Available) == 20
			},
		)).Return(domain.SuggestionResponse{SuggestedProductSlugs: []string{
			"espresso-machine",
			"robot-vacuum-cleaner",
			"made-up-product",
			"robot-vacuum-cleaner",
			"memory-foam-pillow-set",
			"air-purifier-hepa-filter",
			"yoga-mat-eco-friendly",
		}}, nil)

		got, err := svc.Suggestions(t.Context(), "espresso-machine")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"robot-vacuum-cleaner",
			"memory-foam-pillow-set",
			"air-purifier-hepa-filter",
		}, slugs(got))
		sg.AssertExpectations(t)
	})

	t.Run("FailureDegrades", func(t *testing.T) {
		sg := new(MockSuggester)
		sg.On("SuggestProducts", mock.Anything, mock.Anything).
			Return(domain.SuggestionResponse{}, errors.New("model down"))
		svc, _ := newService(t, service.SuggesterOpt(sg))

		got, err := svc.Suggestions(t.Context(), "espresso-machine")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Disabled", func(t *testing.T) {
		svc, _ := newService(t)
		got, err := svc.Suggestions(t.Context(), "espresso-machine")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		svc, _ := newService(t, service.SuggesterOpt(new(MockSuggester)))
		_, err := svc.Suggestions(t.Context(), "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("CancelledDropsResult", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		sg := new(MockSuggester)
		sg.On("SuggestProducts", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return(domain.SuggestionResponse{
				SuggestedProductSlugs: []string{"robot-vacuum-cleaner"},
			}, nil)
		svc, _ := newService(t, service.SuggesterOpt(sg))

		got, err := svc.Suggestions(ctx, "espresso-machine")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, got)
	})
}

func TestPlaceOrder(t *testing.T) {
	t.Run("MissingFields", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.AddToCart(t.Context(), "s1", "prod1", 1)
		require.NoError(t, err)

		form := validForm()
		form.Shipping.City = " "
		form.Payment.CVC = ""
		_, err = svc.PlaceOrder(t.Context(), "s1", form)
		require.ErrorIs(t, err, domain.ErrInvalidCheckout)
		assert.ErrorContains(t, err, "shipping city, card cvc")
		assert.Equal(t, 1, cartCount(t, svc, "s1"))
	})

	t.Run("EmptyCart", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.PlaceOrder(t.Context(), "s1", validForm())
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("CancelledLeavesCart", func(t *testing.T) {
		svc, _ := newService(t, service.CheckoutDelayOpt(time.Hour))
		_, err := svc.AddToCart(t.Context(), "s1", "prod1", 2)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()
		_, err = svc.PlaceOrder(ctx, "s1", validForm())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 2, cartCount(t, svc, "s1"))
		assert.Empty(t, svc.Orders(t.Context(), "s1"))
	})

	t.Run("Success", func(t *testing.T) {
		svc, n := newService(t)
		_, err := svc.AddToCart(t.Context(), "s1", "prod1", 2)
		require.NoError(t, err)

		order, err := svc.PlaceOrder(t.Context(), "s1", validForm())
		require.NoError(t, err)
		assert.NotEmpty(t, order.ID)
		assert.Equal(t, "**** **** **** 4242", order.CardMasked)
		assert.Equal(t, domain.OrderProcessing, order.Status)
		assert.True(t, decimal.RequireFromString("499.98").Equal(order.Total))
		require.Len(t, order.Items, 1)
		assert.Equal(t, 2, order.Items[0].Quantity)

		assert.Zero(t, cartCount(t, svc, "s1"))

		last := n.Calls[len(n.Calls)-1].Arguments.Get(1).(domain.Notification)
		assert.Equal(t, domain.OrderPlaced, last.Kind)
		assert.Equal(t, "Order Placed Successfully!", last.Title)
	})

	t.Run("OrdersNewestFirst", func(t *testing.T) {
		svc, _ := newService(t)
		var ids []string
		for range 2 {
			_, err := svc.AddToCart(t.Context(), "s1", "prod2", 1)
			require.NoError(t, err)
			o, err := svc.PlaceOrder(t.Context(), "s1", validForm())
			require.NoError(t, err)
			ids = append(ids, o.ID)
		}

		orders := svc.Orders(t.Context(), "s1")
		require.Len(t, orders, 2)
		assert.Equal(t, ids[1], orders[0].ID)
		assert.Equal(t, ids[0], orders[1].ID)
	})
}

func TestNotifications(t *testing.T) {
	t.Run("NoFeed", func(t *testing.T) {
		svc, _ := newService(t)
		ns, err := svc.Notifications(t.Context(), "s1")
		require.NoError(t, err)
		assert.Empty(t, ns)
	})

	t.Run("Feed", func(t *testing.T) {
		feed := new(MockFeed)
		want := []domain.Notification{{ID: "n1", SessionID: "s1"}}
		feed.On("Recent", mock.Anything, "s1").Return(want, nil)
		svc, _ := newService(t, service.FeedOpt(feed))

		ns, err := svc.Notifications(t.Context(), "s1")
		require.NoError(t, err)
		assert.Equal(t, want, ns)
	})
}
