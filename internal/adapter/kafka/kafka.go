// Package kafka streams store events through a Kafka cluster and keeps
// the per-session notification feed in a goka group table.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Serde interface {
	Encode(v any) ([]byte, error)
	Decode(b []byte, v any) error
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func toStoreEventV1(n domain.Notification) schema.StoreEventV1 {
	return schema.StoreEventV1{
		ID:          n.ID,
		SessionID:   n.SessionID,
		Kind:        string(n.Kind),
		Title:       n.Title,
		Description: n.Description,
		Destructive: n.Destructive,
		ProductID:   n.ProductID,
		At:          n.At.UTC(),
	}
}

func fromStoreEventV1(s schema.StoreEventV1) domain.Notification {
	return domain.Notification{
		ID:          s.ID,
		SessionID:   s.SessionID,
		Kind:        domain.NotificationKind(s.Kind),
		Title:       s.Title,
		Description: s.Description,
		Destructive: s.Destructive,
		ProductID:   s.ProductID,
		At:          s.At,
	}
}

func toFeedV1(feed []domain.Notification) []schema.StoreEventV1 {
	out := make([]schema.StoreEventV1, len(feed))
	for i := range feed {
		out[i] = toStoreEventV1(feed[i])
	}
	return out
}

func fromFeedV1(feed []schema.StoreEventV1) []domain.Notification {
	out := make([]domain.Notification, len(feed))
	for i := range feed {
		out[i] = fromStoreEventV1(feed[i])
	}
	return out
}
