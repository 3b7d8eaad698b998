package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/internal/adapter/notify"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
)

var (
	_ port.NotificationFeed       = (*NotificationsView)(nil)
	_ port.NotificationsProcessor = (*NotificationsView)(nil)
)

const recoverPollInterval = 100 * time.Millisecond

// A NotificationsViewConfig used for setup [NotificationsView].
type NotificationsViewConfig struct {
	SeedBrokers []string
	Group       string
	Security    Security
}

// A NotificationsView reads the feeds kept by [NotificationsProcessor].
type NotificationsView struct {
	gv *goka.View
}

func NewNotificationsView(
	config NotificationsViewConfig,
) (*NotificationsView, error) {
	const op = "NewNotificationsView"

	if err := config.Security.applyGoka(); err != nil {
		return nil, opErr(err, op)
	}

	gv, err := goka.NewView(
		config.SeedBrokers,
		goka.GroupTable(goka.Group(config.Group)),
		feedCodec{},
	)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &NotificationsView{gv}, nil
}

// Run runs the view in a separate goroutine and calls wg.Done once the
// table is recovered.
func (v *NotificationsView) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "NotificationsView.Run"
	log := slog.With("op", op)

	defer wg.Done()

	go v.runView(ctx, stopFn)

	log.Info("recovering...")
	ticker := time.NewTicker(recoverPollInterval)
	defer ticker.Stop()
	for !v.gv.Recovered() {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
	log.Info("running")
}

func (v *NotificationsView) runView(
	ctx context.Context, stopFn context.CancelFunc,
) {
	const op = "NotificationsView.runView"
	log := slog.With("op", op)

	defer stopFn()

	if err := v.gv.Run(ctx); err != nil {
		log.Error("unexpected fail on run", "err", err)
		return
	}
	log.Info("stopped")
}

// Close is a no-op, the view stops with the context passed to Run.
func (v *NotificationsView) Close() {}

func (v *NotificationsView) Recent(
	ctx context.Context, sessionID string,
) ([]domain.Notification, error) {
	const op = "NotificationsView.Recent"

	if err := ctx.Err(); err != nil {
		return nil, opErr(err, op)
	}

	value, err := v.gv.Get(sessionID)
	if err != nil {
		return nil, opErr(err, op)
	}
	if value == nil {
		return []domain.Notification{}, nil
	}

	feed, ok := value.([]schema.StoreEventV1)
	if !ok {
		return nil, fmt.Errorf(
			"%s: %w: %T", op, ErrInvalidValueType, value,
		)
	}
	return notify.NewestFirst(fromFeedV1(feed)), nil
}
