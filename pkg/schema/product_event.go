package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const ProductEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "product_event",
	"fields": [
		{"name": "event_type", "type": {
			"type": "enum",
			"name": "product_event_type",
			"symbols": ["created", "updated", "deleted"]
		}},
		{"name": "product_id", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "summary", "type": "string"},
		{"name": "description", "type": "string"},
		{"name": "image_file", "type": "string"},
		{"name": "price", "type": "string"},
		{"name": "brand", "type": {
			"type": "record",
			"name": "reference",
			"fields": [
				{"name": "id", "type": "string"},
				{"name": "name", "type": "string"}
			]
		}},
		{"name": "type", "type": "reference"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type (
	ProductEventV1 struct {
		EventType   string      `avro:"event_type"`
		ProductID   string      `avro:"product_id"`
		Name        string      `avro:"name"`
		Summary     string      `avro:"summary"`
		Description string      `avro:"description"`
		ImageFile   string      `avro:"image_file"`
		Price       string      `avro:"price"`
		Brand       ReferenceV1 `avro:"brand"`
		Type        ReferenceV1 `avro:"type"`
		OccurredAt  time.Time   `avro:"occurred_at"`
	}

	ReferenceV1 struct {
		ID   string `avro:"id"`
		Name string `avro:"name"`
	}
)

// ProductEventV1Avro panics if the schema text is malformed.
func ProductEventV1Avro() avro.Schema {
	return avro.MustParse(ProductEventSchemaTextV1)
}
