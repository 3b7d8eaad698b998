package cart_test

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/kvstore"
	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/domain"
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

func (n *MockNotifier) kinds() []domain.NotificationKind {
	var out []domain.NotificationKind
	for _, c := range n.Calls {
		out = append(out, c.Arguments.Get(1).(domain.Notification).Kind)
	}
	return out
}

func newNotifier() *MockNotifier {
	n := new(MockNotifier)
	n.On("Notify", mock.Anything, mock.Anything).Return(nil)
	return n
}

func product(id, price string) domain.Product {
	return domain.Product{
		ID:    id,
		Slug:  id,
		Name:  "Product " + id,
		Price: decimal.RequireFromString(price),
	}
}

func newStore(t *testing.T) (*cart.Store, snapshot.Adapter, *MockNotifier) {
	t.Helper()
	snaps := snapshot.New(kvstore.NewMemory())
	n := newNotifier()
	s, err := cart.Load(t.Context(), "s1", snaps.CartKey("s1"), snaps, n)
	require.NoError(t, err)
	return s, snaps, n
}

type unreadableKV struct {
	*kvstore.Memory
}

func (unreadableKV) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func assertConsistent(t *testing.T, s domain.CartSummary) {
	t.Helper()
	count := 0
	total := decimal.Zero
	for _, it := range s.Items {
		assert.GreaterOrEqual(t, it.Quantity, 1)
		assert.LessOrEqual(t, it.Quantity, domain.MaxQuantity)
		count += it.Quantity
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	assert.Equal(t, count, s.Count)
	assert.True(t, total.Equal(s.Total), "total %s != %s", total, s.Total)
}

func TestStore(t *testing.T) {
	t.Run("AddTwiceMerges", func(t *testing.T) {
		s, _, _ := newStore(t)
		p := product("p1", "10.50")

		s.Add(t.Context(), p, 3)
		sum := s.Add(t.Context(), p, 3)

		require.Len(t, sum.Items, 1)
		assert.Equal(t, 6, sum.Items[0].Quantity)
		assert.Equal(t, 6, sum.Count)
		assert.True(t, decimal.RequireFromString("63").Equal(sum.Total))
	})

	t.Run("AddDefaultsToOne", func(t *testing.T) {
		s, _, _ := newStore(t)
		sum := s.Add(t.Context(), product("p1", "1"), 0)
		assert.Equal(t, 1, sum.Count)
	})

	t.Run("UpdateZeroEqualsRemove", func(t *testing.T) {
		a, _, an := newStore(t)
		b, _, bn := newStore(t)
		for _, s := range []*cart.Store{a, b} {
			s.Add(t.Context(), product("p1", "5"), 2)
			s.Add(t.Context(), product("p2", "7"), 1)
		}

		got := a.UpdateQuantity(t.Context(), "p1", 0)
		want := b.Remove(t.Context(), "p1")

		assert.Equal(t, want.Count, got.Count)
		assert.True(t, want.Total.Equal(got.Total))
		assert.Equal(t, bn.kinds(), an.kinds())
	})

	t.Run("UpdateSetsExactly", func(t *testing.T) {
		s, _, _ := newStore(t)
		s.Add(t.Context(), product("p1", "5"), 2)

		sum := s.UpdateQuantity(t.Context(), "p1", 7)
		assert.Equal(t, 7, sum.Count)

		sum = s.UpdateQuantity(t.Context(), "missing", 3)
		assert.Equal(t, 7, sum.Count)
	})

	t.Run("RemoveAbsentIsNoop", func(t *testing.T) {
		s, _, n := newStore(t)
		sum := s.Remove(t.Context(), "missing")
		assert.Zero(t, sum.Count)
		assert.Empty(t, n.kinds())
	})

	t.Run("Notifications", func(t *testing.T) {
		s, _, n := newStore(t)
		s.Add(t.Context(), product("p1", "1"), 1)
		s.Remove(t.Context(), "p1")
		s.Clear(t.Context())

		assert.Equal(t, []domain.NotificationKind{
			domain.CartItemAdded, domain.CartItemRemoved, domain.CartCleared,
		}, n.kinds())

		removed := n.Calls[1].Arguments.Get(1).(domain.Notification)
		assert.True(t, removed.Destructive)
		assert.Equal(t, "s1", removed.SessionID)
		assert.NotEmpty(t, removed.ID)
	})

	t.Run("NotifierFailureIgnored", func(t *testing.T) {
		snaps := snapshot.New(kvstore.NewMemory())
		n := new(MockNotifier)
		n.On("Notify", mock.Anything, mock.Anything).Return(errors.New("down"))
		s, err := cart.Load(t.Context(), "s1", "k", snaps, n)
		require.NoError(t, err)

		sum := s.Add(t.Context(), product("p1", "2"), 2)
		assert.Equal(t, 2, sum.Count)
	})

	t.Run("Persists", func(t *testing.T) {
		s, snaps, _ := newStore(t)
		s.Add(t.Context(), product("p1", "2.25"), 2)
		s.Add(t.Context(), product("p2", "1"), 1)

		restored, err := cart.Load(
			t.Context(), "s1", snaps.CartKey("s1"), snaps, newNotifier(),
		)
		require.NoError(t, err)
		sum := restored.Summary()
		assert.Equal(t, 3, sum.Count)
		assert.True(t, decimal.RequireFromString("5.5").Equal(sum.Total))

		s.Clear(t.Context())
		items, err := snaps.LoadCart(t.Context(), snaps.CartKey("s1"))
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("LoadFailure", func(t *testing.T) {
		snaps := snapshot.New(unreadableKV{kvstore.NewMemory()})
		s, err := cart.Load(t.Context(), "s1", "k", snaps, newNotifier())
		assert.ErrorIs(t, err, domain.ErrSnapshotUnavailable)
		assert.Nil(t, s)
	})

	t.Run("QuantityIsCapped", func(t *testing.T) {
		s, snaps, _ := newStore(t)
		p := product("p1", "0.01")

		s.Add(t.Context(), p, math.MaxInt)
		sum := s.Add(t.Context(), p, 1)
		require.Len(t, sum.Items, 1)
		assert.Equal(t, domain.MaxQuantity, sum.Items[0].Quantity)
		assertConsistent(t, sum)

		sum = s.UpdateQuantity(t.Context(), p.ID, math.MaxInt)
		assert.Equal(t, domain.MaxQuantity, sum.Items[0].Quantity)

		restored, err := cart.Load(
			t.Context(), "s1", snaps.CartKey("s1"), snaps, newNotifier(),
		)
		require.NoError(t, err)
		assert.Equal(t, domain.MaxQuantity, restored.Summary().Count)
	})

	t.Run("Checkout", func(t *testing.T) {
		s, _, _ := newStore(t)
		_, err := s.Checkout(t.Context())
		assert.ErrorIs(t, err, domain.ErrEmptyCart)

		s.Add(t.Context(), product("p1", "2"), 2)
		items, err := s.Checkout(t.Context())
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Zero(t, s.Count())
	})

	t.Run("RandomSequenceKeepsInvariants", func(t *testing.T) {
		s, _, _ := newStore(t)
		rnd := rand.New(rand.NewPCG(1, 2))
		products := []domain.Product{
			product("p1", "9.99"), product("p2", "0.10"), product("p3", "120"),
		}

		for range 200 {
			p := products[rnd.IntN(len(products))]
			var sum domain.CartSummary
			switch rnd.IntN(3) {
			case 0:
				sum = s.Add(t.Context(), p, rnd.IntN(4))
			case 1:
				sum = s.Remove(t.Context(), p.ID)
			default:
				sum = s.UpdateQuantity(t.Context(), p.ID, rnd.IntN(6)-1)
			}
			assertConsistent(t, sum)
		}
	})
}
