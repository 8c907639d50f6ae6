package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ProductEventsProducer = (*ProductEventsProducer)(nil)

// A ProductEventsProducer publishes catalog changes keyed by product ID.
type ProductEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
	now     func() time.Time
}

func NewProductEventsProducer(
	opts ...ProducerOpt,
) (ProductEventsProducer, error) {
	const op = "NewProductEventsProducer"

	if len(opts) != 2 {
		panic(fmt.Errorf("%s: %w", op, ErrTooFewOpts)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ProductEventsProducer{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return ProductEventsProducer{
		cl:      options.cl,
		encoder: options.encoder,
		now:     time.Now,
	}, nil
}

func (p ProductEventsProducer) Close() {
	const op = "ProductEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ProductEventsProducer) ProduceProductEvent(
	ctx context.Context, e domain.ProductEvent,
) error {
	const op = "ProductEventsProducer.ProduceProductEvent"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r, err := p.createRecord(e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	slog.DebugContext(ctx, "product event produced",
		"op", op, "type", e.Type, "productID", e.Product.ID)
	return nil
}

func (p ProductEventsProducer) createRecord(
	e domain.ProductEvent,
) (*kgo.Record, error) {
	const op = "ProductEventsProducer.createRecord"

	s := p.toSchema(e)
	v, err := p.encoder.Encode(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &kgo.Record{Key: []byte(s.ProductID), Value: v}, nil
}

func (p ProductEventsProducer) toSchema(
	e domain.ProductEvent,
) (s schema.ProductEventV1) {
	s.EventType = string(e.Type)
	s.ProductID = e.Product.ID
	s.Name = e.Product.Name
	s.Summary = e.Product.Summary
	s.Description = e.Product.Description
	s.ImageFile = e.Product.ImageFile
	s.Price = e.Product.Price.String()
	s.Brand = schema.ReferenceV1{ID: e.Product.Brand.ID, Name: e.Product.Brand.Name}
	s.Type = schema.ReferenceV1{ID: e.Product.Type.ID, Name: e.Product.Type.Name}
	s.OccurredAt = p.now().UTC()
	return s
}
