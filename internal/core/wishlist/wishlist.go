// Package wishlist implements the per-session set of saved products.
package wishlist

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

type Opt func(*Store)

func ClockOpt(now func() time.Time) Opt {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

type Store struct {
	mu        sync.Mutex
	sessionID string
	key       string
	items     []domain.Product
	snapshots port.WishlistSnapshots
	notifier  port.Notifier
	now       func() time.Time
}

// Load creates the store of a session and restores its last snapshot.
// It fails when the snapshot cannot be read.
func Load(
	ctx context.Context,
	sessionID, key string,
	snapshots port.WishlistSnapshots,
	notifier port.Notifier,
	opts ...Opt,
) (*Store, error) {
	const op = "wishlist.Load"

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

	items, err := snapshots.LoadWishlist(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, p := range items {
		if s.indexOf(p.ID) == -1 {
			s.items = append(s.items, p)
		}
	}
	return s, nil
}

// Add saves p and reports whether it was not saved before.
func (s *Store) Add(ctx context.Context, p domain.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(p.ID) != -1 {
		return false
	}
	s.items = append(s.items, p)
	s.persist(ctx)

	n := domain.NewNotification(s.sessionID, domain.WishlistItemAdded, s.now())
	n.Title = "Added to Wishlist"
	n.Description = p.Name + " has been added to your wishlist."
	n.ProductID = p.ID
	s.notify(ctx, n)
	return true
}

// Remove reports whether the product was saved.
func (s *Store) Remove(ctx context.Context, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i == -1 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.persist(ctx)

	n := domain.NewNotification(s.sessionID, domain.WishlistItemRemoved, s.now())
	n.Title = "Removed from Wishlist"
	n.Description = "Item has been removed from your wishlist."
	n.Destructive = true
	n.ProductID = productID
	s.notify(ctx, n)
	return true
}

func (s *Store) Summary() domain.WishlistSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.WishlistSummary{
		Items: slices.Clone(s.items),
		Count: len(s.items),
	}
}

func (s *Store) indexOf(productID string) int {
	return slices.IndexFunc(s.items, func(p domain.Product) bool {
		return p.ID == productID
	})
}

func (s *Store) persist(ctx context.Context) {
	const op = "Store.persist"

	err := s.snapshots.SaveWishlist(context.WithoutCancel(ctx), s.key, s.items)
	if err != nil {
		slog.With("op", op).Error(
			"failed to save wishlist snapshot", "session", s.sessionID, "err", err,
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
