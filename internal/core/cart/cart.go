// Package cart implements the per-session shopping cart.
package cart

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

type Opt func(*Store)

func ClockOpt(now func() time.Time) Opt {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store holds at most one line item per product, each with a quantity
// between 1 and [domain.MaxQuantity]. Every mutation is serialized and
// written to the snapshot before it returns.
type Store struct {
	mu        sync.Mutex
	sessionID string
	key       string
	items     []domain.CartLineItem
	snapshots port.CartSnapshots
	notifier  port.Notifier
	now       func() time.Time
}

// Load creates the store of a session and restores its last snapshot.
// It fails when the snapshot cannot be read.
func Load(
	ctx context.Context,
	sessionID, key string,
	snapshots port.CartSnapshots,
	notifier port.Notifier,
	opts ...Opt,
) (*Store, error) {
	const op = "cart.Load"

	s := &Store{
		sessionID: sessionID,
		key:       key,
		snapshots: snapshots,
		notifier:  notifier,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	items, err := snapshots.LoadCart(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, it := range items {
		if i := s.indexOf(it.Product.ID); i != -1 {
			s.items[i].Quantity = addQuantity(s.items[i].Quantity, it.Quantity)
			continue
		}
		it.Quantity = addQuantity(0, it.Quantity)
		s.items = append(s.items, it)
	}
	return s, nil
}

// Add puts quantity units of p into the cart, merging with an existing
// line item. A quantity below one adds a single unit. The resulting
// quantity is capped at [domain.MaxQuantity].
func (s *Store) Add(
	ctx context.Context, p domain.Product, quantity int,
) domain.CartSummary {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(p.ID); i != -1 {
		s.items[i].Quantity = addQuantity(s.items[i].Quantity, quantity)
	} else {
		s.items = append(s.items, domain.CartLineItem{
			Product: p, Quantity: addQuantity(0, quantity),
		})
	}
	s.persist(ctx)

	n := domain.NewNotification(s.sessionID, domain.CartItemAdded, s.now())
	n.Title = "Item Added to Cart"
	n.Description = p.Name + " has been added to your cart."
	n.ProductID = p.ID
	s.notify(ctx, n)

	return s.summary()
}

// Remove deletes the line item of a product. Removing an absent product
// changes nothing.
func (s *Store) Remove(ctx context.Context, productID string) domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(ctx, productID)
	return s.summary()
}

// UpdateQuantity sets the quantity of a line item. A quantity of zero or
// less removes it, one above [domain.MaxQuantity] is capped.
func (s *Store) UpdateQuantity(
	ctx context.Context, productID string, quantity int,
) domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(ctx, productID)
		return s.summary()
	}

	quantity = min(quantity, domain.MaxQuantity)
	i := s.indexOf(productID)
	if i == -1 || s.items[i].Quantity == quantity {
		return s.summary()
	}
	s.items[i].Quantity = quantity
	s.persist(ctx)
	return s.summary()
}

func (s *Store) Clear(ctx context.Context) domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist(ctx)

	n := domain.NewNotification(s.sessionID, domain.CartCleared, s.now())
	n.Title = "Cart Cleared"
	n.Description = "Your shopping cart has been emptied."
	s.notify(ctx, n)

	return s.summary()
}

// Checkout empties the cart and returns what it held. It fails when the
// cart is already empty.
func (s *Store) Checkout(ctx context.Context) ([]domain.CartLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	items := s.items
	s.items = nil
	s.persist(ctx)
	return items, nil
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count()
}

func (s *Store) Summary() domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary()
}

func (s *Store) remove(ctx context.Context, productID string) {
	i := s.indexOf(productID)
	if i == -1 {
		return
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.persist(ctx)

	n := domain.NewNotification(s.sessionID, domain.CartItemRemoved, s.now())
	n.Title = "Item Removed"
	n.Description = "Item has been removed from your cart."
	n.Destructive = true
	n.ProductID = productID
	s.notify(ctx, n)
}

func (s *Store) summary() domain.CartSummary {
	return domain.CartSummary{
		Items: slices.Clone(s.items),
		Count: s.count(),
		Total: s.total(),
	}
}

func (s *Store) count() int {
	var n int
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func (s *Store) total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// addQuantity sums quantities without leaving the 0..MaxQuantity range.
// Both operands are clamped first so the sum cannot overflow.
func addQuantity(have, add int) int {
	have = min(max(have, 0), domain.MaxQuantity)
	add = min(max(add, 0), domain.MaxQuantity)
	return min(have+add, domain.MaxQuantity)
}

func (s *Store) indexOf(productID string) int {
	return slices.IndexFunc(s.items, func(it domain.CartLineItem) bool {
		return it.Product.ID == productID
	})
}

// persist runs with a context detached from cancellation: a mutation
// already applied in memory must reach the snapshot.
func (s *Store) persist(ctx context.Context) {
	const op = "Store.persist"

	err := s.snapshots.SaveCart(context.WithoutCancel(ctx), s.key, s.items)
	if err != nil {
		slog.With("op", op).Error(
			"failed to save cart snapshot", "session", s.sessionID, "err", err,
		)
	}
}

func (s *Store) notify(ctx context.Context, n domain.Notification) {
	const op = "Store.notify"

	if err := s.notifier.Notify(context.WithoutCancel(ctx), n); err != nil {
		slog.With("op", op).Error(
			"failed to deliver notification",
			"session", s.sessionID, "kind", n.Kind, "err", err,
		)
	}
}
