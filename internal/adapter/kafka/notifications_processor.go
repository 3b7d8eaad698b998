package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/internal/adapter/notify"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
)

var _ port.NotificationsProcessor = (*NotificationsProcessor)(nil)

// A NotificationsProcessorConfig used for setup [NotificationsProcessor].
//
// FeedSize defaults to [notify.DefaultInboxSize].
type NotificationsProcessorConfig struct {
	SeedBrokers []string
	Topic       string
	Group       string
	FeedSize    int
	Serde       Serde
	Security    Security
}

// A NotificationsProcessor folds the events stream into a bounded feed
// per session, persisted in the group table.
type NotificationsProcessor struct {
	gp   *goka.Processor
	size int
}

func NewNotificationsProcessor(
	config NotificationsProcessorConfig,
) (*NotificationsProcessor, error) {
	const op = "NewNotificationsProcessor"

	if err := config.Security.applyGoka(); err != nil {
		return nil, opErr(err, op)
	}

	p := &NotificationsProcessor{size: config.FeedSize}
	if p.size < 1 {
		p.size = notify.DefaultInboxSize
	}

	gg := goka.DefineGroup(
		goka.Group(config.Group),
		goka.Input(
			goka.Stream(config.Topic),
			newStoreEventCodec(config.Serde),
			p.processFn,
		),
		goka.Persist(feedCodec{}),
	)

	gp, err := goka.NewProcessor(
		config.SeedBrokers, gg, withNonlogProcOpt(),
	)
	if err != nil {
		return nil, opErr(err, op)
	}
	p.gp = gp
	return p, nil
}

// Run runs the processor in a separate goroutine and calls wg.Done when
// it is ready. The processor failing calls stopFn.
func (p *NotificationsProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "NotificationsProcessor.Run"
	log := slog.With("op", op)

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	if err := p.gp.WaitForReadyContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Error("fall down while preparing", "err", err)
		}
		return
	}
	log.Info("running")
}

func (p *NotificationsProcessor) runProc(
	ctx context.Context, stopFn context.CancelFunc,
) {
	const op = "NotificationsProcessor.runProc"
	log := slog.With("op", op)

	defer stopFn()

	if err := p.gp.Run(ctx); err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *NotificationsProcessor) Close() {
	const op = "NotificationsProcessor.Close"
	log := slog.With("op", op)

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

func (p *NotificationsProcessor) processFn(ctx goka.Context, msg any) {
	const op = "NotificationsProcessor.processFn"
	log := slog.With("op", op, "session", ctx.Key())

	ev, ok := msg.(schema.StoreEventV1)
	if !ok {
		log.Error("unexpected message type", "type", fmt.Sprintf("%T", msg))
		return
	}

	var stored []schema.StoreEventV1
	if v := ctx.Value(); v != nil {
		stored, ok = v.([]schema.StoreEventV1)
		if !ok {
			log.Error("unexpected table value type", "type", fmt.Sprintf("%T", v))
			stored = nil
		}
	}

	ctx.SetValue(foldFeed(stored, ev, p.size))
	log.Debug("event stored", "kind", ev.Kind)
}

func foldFeed(
	stored []schema.StoreEventV1, ev schema.StoreEventV1, size int,
) []schema.StoreEventV1 {
	feed := notify.Append(fromFeedV1(stored), fromStoreEventV1(ev), size)
	return toFeedV1(feed)
}
