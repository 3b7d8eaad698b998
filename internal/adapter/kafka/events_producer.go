package kafka

import (
	"context"
	"errors"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.Notifier = (*EventsProducer)(nil)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl    ProducerClient
	serde Serde
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string, sec Security,
) ProducerOpt {
	return func(opts *producerOpts) error {
		secOpts, err := sec.clientOpts()
		if err != nil {
			return err
		}

		kgoOpts := append([]kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
		}, secOpts...)

		cl, err := kgo.NewClient(kgoOpts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerSerdeOpt(s Serde) ProducerOpt {
	return func(opts *producerOpts) error {
		if s == nil {
			return errors.New("serde is nil")
		}
		opts.serde = s
		return nil
	}
}

// An EventsProducer publishes every store notification to the events
// topic, keyed by session so a session's events stay ordered.
type EventsProducer struct {
	cl    ProducerClient
	serde Serde
}

func NewEventsProducer(opts ...ProducerOpt) (*EventsProducer, error) {
	const op = "NewEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return nil, opErr(err, op)
		}
	}

	return &EventsProducer{cl: options.cl, serde: options.serde}, nil
}

func (p *EventsProducer) Notify(
	ctx context.Context, n domain.Notification,
) error {
	const op = "EventsProducer.Notify"

	value, err := p.serde.Encode(toStoreEventV1(n))
	if err != nil {
		return opErr(err, op)
	}

	rec := &kgo.Record{Key: []byte(n.SessionID), Value: value}
	if err := p.cl.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (p *EventsProducer) Close() {
	const op = "EventsProducer.Close"
	log := slog.With("op", op)

	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}
