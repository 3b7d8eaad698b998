// Package notify delivers store notifications.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var (
	_ port.Notifier         = Log{}
	_ port.Notifier         = (*Inbox)(nil)
	_ port.NotificationFeed = (*Inbox)(nil)
	_ port.Notifier         = Fanout{}
)

const DefaultInboxSize = 20

// Log writes notifications to the structured log.
type Log struct{}

func (Log) Notify(ctx context.Context, n domain.Notification) error {
	slog.InfoContext(ctx, "notification",
		"op", "Log.Notify",
		"session", n.SessionID,
		"kind", n.Kind,
		"title", n.Title,
		"productID", n.ProductID,
	)
	return nil
}

// Inbox keeps the latest notifications of every session in memory.
type Inbox struct {
	mu   sync.RWMutex
	size int
	m    map[string][]domain.Notification
}

func NewInbox(size int) *Inbox {
	if size < 1 {
		size = DefaultInboxSize
	}
	return &Inbox{size: size, m: make(map[string][]domain.Notification)}
}

func (b *Inbox) Notify(_ context.Context, n domain.Notification) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m[n.SessionID] = Append(b.m[n.SessionID], n, b.size)
	return nil
}

// Recent returns the notifications of a session, newest first.
func (b *Inbox) Recent(
	ctx context.Context, sessionID string,
) ([]domain.Notification, error) {
	const op = "Inbox.Recent"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	return NewestFirst(b.m[sessionID]), nil
}

// Append adds n to a feed kept in arrival order, dropping the oldest
// entries beyond size.
func Append(
	feed []domain.Notification, n domain.Notification, size int,
) []domain.Notification {
	feed = append(feed, n)
	if over := len(feed) - size; over > 0 {
		feed = slices.Delete(feed, 0, over)
	}
	return feed
}

func NewestFirst(feed []domain.Notification) []domain.Notification {
	out := slices.Clone(feed)
	slices.Reverse(out)
	if out == nil {
		out = []domain.Notification{}
	}
	return out
}

// Fanout delivers to every notifier, even when some of them fail.
type Fanout []port.Notifier

func (f Fanout) Notify(ctx context.Context, n domain.Notification) error {
	const op = "Fanout.Notify"

	var errs []error
	for _, target := range f {
		if err := target.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
