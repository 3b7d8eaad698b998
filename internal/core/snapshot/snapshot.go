// Package snapshot mirrors cart and wishlist contents to a key-value store
// as JSON arrays.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.Snapshots = Adapter{}

const (
	DefaultCartKey     = "cartItems"
	DefaultWishlistKey = "wishlistItems"
)

type Opt func(*Adapter)

func CartKeyOpt(name string) Opt {
	return func(a *Adapter) {
		if name != "" {
			a.cartKey = name
		}
	}
}

func WishlistKeyOpt(name string) Opt {
	return func(a *Adapter) {
		if name != "" {
			a.wishlistKey = name
		}
	}
}

// Adapter never reports a broken snapshot to the caller. Load yields no
// items and the value is logged and removed. Only read failures are
// returned as errors.
type Adapter struct {
	kv          port.KVStore
	cartKey     string
	wishlistKey string
}

func New(kv port.KVStore, opts ...Opt) Adapter {
	a := Adapter{
		kv:          kv,
		cartKey:     DefaultCartKey,
		wishlistKey: DefaultWishlistKey,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func (a Adapter) CartKey(sessionID string) string {
	return sessionID + ":" + a.cartKey
}

func (a Adapter) WishlistKey(sessionID string) string {
	return sessionID + ":" + a.wishlistKey
}

func (a Adapter) LoadCart(
	ctx context.Context, key string,
) ([]domain.CartLineItem, error) {
	const op = "Adapter.LoadCart"
	log := slog.With("op", op, "key", key)

	elems, err := a.loadArray(ctx, key, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if elems == nil {
		return nil, nil
	}

	items := make([]domain.CartLineItem, 0, len(elems))
	for i, raw := range elems {
		if !validElement(raw, true) {
			log.Warn("drop invalid cart element", "index", i)
			continue
		}
		var r cartRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			log.Warn("drop invalid cart element", "index", i, "err", err)
			continue
		}
		items = append(items, domain.CartLineItem{
			Product:  r.toDomain(),
			Quantity: r.Quantity,
		})
	}
	return items, nil
}

func (a Adapter) LoadWishlist(
	ctx context.Context, key string,
) ([]domain.Product, error) {
	const op = "Adapter.LoadWishlist"
	log := slog.With("op", op, "key", key)

	elems, err := a.loadArray(ctx, key, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if elems == nil {
		return nil, nil
	}

	items := make([]domain.Product, 0, len(elems))
	for i, raw := range elems {
		if !validElement(raw, false) {
			log.Warn("drop invalid wishlist element", "index", i)
			continue
		}
		var r productRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			log.Warn("drop invalid wishlist element", "index", i, "err", err)
			continue
		}
		items = append(items, r.toDomain())
	}
	return items, nil
}

func (a Adapter) SaveCart(
	ctx context.Context, key string, items []domain.CartLineItem,
) error {
	const op = "Adapter.SaveCart"

	records := make([]cartRecord, 0, len(items))
	for _, it := range items {
		records = append(records, cartRecord{
			productRecord: toRecord(it.Product),
			Quantity:      it.Quantity,
		})
	}
	if err := save(ctx, a.kv, key, records); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (a Adapter) SaveWishlist(
	ctx context.Context, key string, items []domain.Product,
) error {
	const op = "Adapter.SaveWishlist"

	records := make([]productRecord, 0, len(items))
	for _, p := range items {
		records = append(records, toRecord(p))
	}
	if err := save(ctx, a.kv, key, records); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func save[T any](ctx context.Context, kv port.KVStore, key string, records []T) error {
	if len(records) == 0 {
		return kv.Delete(ctx, key)
	}
	b, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, b)
}

// loadArray returns nil elements for a missing or discarded snapshot.
func (a Adapter) loadArray(
	ctx context.Context, key string, log *slog.Logger,
) ([]json.RawMessage, error) {
	b, err := a.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrSnapshotUnavailable, err)
	}

	var elems []json.RawMessage
	err = json.Unmarshal(b, &elems)
	if err != nil || elems == nil {
		log.Warn("discard corrupted snapshot", "err", err)
		if err := a.kv.Delete(ctx, key); err != nil {
			log.Error("failed to remove corrupted snapshot", "err", err)
		}
		return nil, nil
	}
	return elems, nil
}

func validElement(raw json.RawMessage, withQuantity bool) bool {
	var p requiredFields
	if err := json.Unmarshal(raw, &p); err != nil || p.ID == nil {
		return false
	}
	if !withQuantity {
		return true
	}
	if p.Quantity == nil {
		return false
	}
	q := *p.Quantity
	return q >= 1 && q == math.Trunc(q) && q <= domain.MaxQuantity
}
