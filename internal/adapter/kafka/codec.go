package kafka

import (
	"github.com/hamba/avro/v2"
	"github.com/niksmo/storefront/pkg/schema"
)

// A storeEventCodec used for serde [schema.StoreEventV1] in the events
// stream.
type storeEventCodec struct {
	serde Serde
}

func newStoreEventCodec(s Serde) storeEventCodec {
	return storeEventCodec{s}
}

func (c storeEventCodec) Encode(v any) ([]byte, error) {
	const op = "storeEventCodec.Encode"
	if _, ok := v.(schema.StoreEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c storeEventCodec) Decode(data []byte) (any, error) {
	const op = "storeEventCodec.Decode"
	var s schema.StoreEventV1
	if err := c.serde.Decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A feedCodec used for serde the group table value. The table is private
// to the group, so values are plain avro without a registry header.
type feedCodec struct{}

func (feedCodec) Encode(v any) ([]byte, error) {
	const op = "feedCodec.Encode"
	feed, ok := v.([]schema.StoreEventV1)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	b, err := avro.Marshal(schema.NotificationFeedV1Avro(), feed)
	if err != nil {
		return nil, opErr(err, op)
	}
	return b, nil
}

func (feedCodec) Decode(data []byte) (any, error) {
	const op = "feedCodec.Decode"
	var feed []schema.StoreEventV1
	if err := avro.Unmarshal(schema.NotificationFeedV1Avro(), data, &feed); err != nil {
		return nil, opErr(err, op)
	}
	return feed, nil
}
