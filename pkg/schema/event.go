package schema

import (
	"sync"
	"time"

	"github.com/hamba/avro/v2"
)

const StoreEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "store_event",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "session_id", "type": "string"},
		{"name": "kind", "type": "string"},
		{"name": "title", "type": "string"},
		{"name": "description", "type": "string"},
		{"name": "destructive", "type": "boolean"},
		{"name": "product_id", "type": "string", "default": ""},
		{"name": "at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

// NotificationFeedSchemaTextV1 is the value of the per-session feed table.
const NotificationFeedSchemaTextV1 = `{
	"type": "array",
	"items": ` + StoreEventSchemaTextV1 + `
}`

type StoreEventV1 struct {
	ID          string    `avro:"id"`
	SessionID   string    `avro:"session_id"`
	Kind        string    `avro:"kind"`
	Title       string    `avro:"title"`
	Description string    `avro:"description"`
	Destructive bool      `avro:"destructive"`
	ProductID   string    `avro:"product_id"`
	At          time.Time `avro:"at"`
}

var (
	storeEventV1Avro       = sync.OnceValue(mustParse(StoreEventSchemaTextV1))
	notificationFeedV1Avro = sync.OnceValue(mustParse(NotificationFeedSchemaTextV1))
)

func StoreEventV1Avro() avro.Schema {
	return storeEventV1Avro()
}

func NotificationFeedV1Avro() avro.Schema {
	return notificationFeedV1Avro()
}

func mustParse(text string) func() avro.Schema {
	return func() avro.Schema {
		return avro.MustParse(text)
	}
}
