package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/wishlist"
)

var (
	_ port.ShopBrowser        = (*Service)(nil)
	_ port.CartManager        = (*Service)(nil)
	_ port.WishlistManager    = (*Service)(nil)
	_ port.OrderPlacer        = (*Service)(nil)
	_ port.SuggestionFinder   = (*Service)(nil)
	_ port.NotificationReader = (*Service)(nil)
)

const (
	DefaultCheckoutDelay = 2 * time.Second
	DefaultSessionIdle   = 30 * time.Minute
)

type Opt func(*Service)

// SuggesterOpt enables AI suggestions. Without it the service suggests
// nothing.
func SuggesterOpt(s port.ProductSuggester) Opt {
	return func(svc *Service) {
		svc.suggester = s
	}
}

func SuggestionLimitOpt(n int) Opt {
	return func(svc *Service) {
		if n > 0 {
			svc.suggestionLimit = n
		}
	}
}

func FeedOpt(f port.NotificationFeed) Opt {
	return func(svc *Service) {
		svc.feed = f
	}
}

func CheckoutDelayOpt(d time.Duration) Opt {
	return func(svc *Service) {
		if d >= 0 {
			svc.checkoutDelay = d
		}
	}
}

// SessionIdleOpt sets how long an unused session stays in memory. The
// snapshot outlives it, so the next request restores the session.
func SessionIdleOpt(d time.Duration) Opt {
	return func(svc *Service) {
		if d > 0 {
			svc.sessionIdle = d
		}
	}
}

func ClockOpt(now func() time.Time) Opt {
	return func(svc *Service) {
		if now != nil {
			svc.now = now
		}
	}
}

// ProcessorsOpt adds background components started by Run.
func ProcessorsOpt(ps ...port.NotificationsProcessor) Opt {
	return func(svc *Service) {
		svc.processors = append(svc.processors, ps...)
	}
}

// session is published to the map before its stores are loaded. ready is
// closed once cart, wishlist and err are set.
type session struct {
	ready    chan struct{}
	err      error
	cart     *cart.Store
	wishlist *wishlist.Store
	lastSeen atomic.Int64 // unix nanoseconds
}

type Service struct {
	catalog         *catalog.Catalog
	snapshots       port.Snapshots
	notifier        port.Notifier
	feed            port.NotificationFeed
	suggester       port.ProductSuggester
	suggestionLimit int
	checkoutDelay   time.Duration
	sessionIdle     time.Duration
	processors      []port.NotificationsProcessor
	now             func() time.Time

	mu        sync.Mutex
	sessions  map[string]*session
	lastSweep time.Time

	ordersMu sync.RWMutex
	orders   map[string][]domain.Order
}

func New(
	catalog *catalog.Catalog,
	snapshots port.Snapshots,
	notifier port.Notifier,
	opts ...Opt,
) *Service {
	s := &Service{
		catalog:         catalog,
		snapshots:       snapshots,
		notifier:        notifier,
		suggestionLimit: domain.DefaultSuggestionLimit,
		checkoutDelay:   DefaultCheckoutDelay,
		sessionIdle:     DefaultSessionIdle,
		now:             time.Now,
		sessions:        make(map[string]*session),
		orders:          make(map[string][]domain.Order),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run runs the background components in separate goroutines.
//
// Blocks current goroutine while components is preparing to ready state.
func (s *Service) Run(ctx context.Context, stopFn context.CancelFunc) {
	var wg sync.WaitGroup
	wg.Add(len(s.processors))
	for _, p := range s.processors {
		go p.Run(ctx, stopFn, &wg)
	}
	wg.Wait()
}

func (s *Service) Close() {
	for _, p := range s.processors {
		p.Close()
	}
}

// session returns the stores of a session, restoring them from snapshots
// on first use. Concurrent first requests share a single load, and a
// failed load is not kept, so the next request tries again.
func (s *Service) session(ctx context.Context, id string) (*session, error) {
	const op = "Service.session"
	now := s.now()

	s.mu.Lock()
	s.evictIdle(now)
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{ready: make(chan struct{})}
		s.sessions[id] = sess
	}
	sess.lastSeen.Store(now.UnixNano())
	s.mu.Unlock()

	if !ok {
		s.load(ctx, id, sess)
	}

	select {
	case <-sess.ready:
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	}
	if sess.err != nil {
		return nil, fmt.Errorf("%s: %w", op, sess.err)
	}
	return sess, nil
}

// load restores the stores of sess without holding the service lock.
// Other requests of the session wait for it, so it ignores cancellation
// of the request that started it.
func (s *Service) load(ctx context.Context, id string, sess *session) {
	const op = "Service.load"
	defer close(sess.ready)

	ctx = context.WithoutCancel(ctx)
	sess.cart, sess.err = cart.Load(
		ctx, id, s.snapshots.CartKey(id), s.snapshots, s.notifier,
		cart.ClockOpt(s.now),
	)
	if sess.err == nil {
		sess.wishlist, sess.err = wishlist.Load(
			ctx, id, s.snapshots.WishlistKey(id), s.snapshots, s.notifier,
			wishlist.ClockOpt(s.now),
		)
	}
	if sess.err == nil {
		return
	}

	slog.With("op", op).Error(
		"failed to restore session", "session", id, "err", sess.err,
	)
	s.mu.Lock()
	if s.sessions[id] == sess {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
}

// evictIdle drops sessions unused for longer than the idle timeout,
// scanning at most once per timeout. The caller holds s.mu.
func (s *Service) evictIdle(now time.Time) {
	if now.Sub(s.lastSweep) < s.sessionIdle {
		return
	}
	s.lastSweep = now

	deadline := now.Add(-s.sessionIdle).UnixNano()
	for id, sess := range s.sessions {
		if sess.lastSeen.Load() < deadline {
			delete(s.sessions, id)
		}
	}
}
