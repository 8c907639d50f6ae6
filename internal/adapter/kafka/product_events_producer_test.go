package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/pkg/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type MockProducerClient struct {
	mock.Mock
}

func (c *MockProducerClient) ProduceSync(
	ctx context.Context, rs ...*kgo.Record,
) kgo.ProduceResults {
	args := c.Called(ctx, rs)
	return args.Get(0).(kgo.ProduceResults)
}

func (c *MockProducerClient) Close() {
	c.Called()
}

type MockEncoder struct {
	mock.Mock
}

func (e *MockEncoder) Encode(v any) ([]byte, error) {
	args := e.Called(v)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func helmetEvent() domain.ProductEvent {
	return domain.ProductEvent{
		Type: domain.ProductCreated,
		Product: domain.Product{
			ID:    "602d2149e773f2a3990b47f5",
			Name:  "Helmet",
			Price: decimal.RequireFromString("29.99"),
			Brand: domain.Brand{ID: "B1", Name: "Adidas"},
			Type:  domain.ProductType{ID: "T1", Name: "Helmets"},
		},
	}
}

func TestNewProductEventsProducer(t *testing.T) {
	t.Run("TooFewOpts", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = NewProductEventsProducer(ProducerEncoderOpt(new(MockEncoder)))
		})
	})

	t.Run("NilEncoder", func(t *testing.T) {
		_, err := NewProductEventsProducer(
			ProducerWithClientOpt(new(MockProducerClient)),
			ProducerEncoderOpt(nil),
		)
		assert.Error(t, err)
	})

	t.Run("NoSeedBrokers", func(t *testing.T) {
		_, err := NewProductEventsProducer(
			ProducerClientOpt(t.Context(), nil, "topic", nil),
			ProducerEncoderOpt(new(MockEncoder)),
		)
		assert.Error(t, err)
	})
}

func TestProduceProductEvent(t *testing.T) {
	occurredAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	newProducer := func(
		t *testing.T, cl *MockProducerClient, enc *MockEncoder,
	) ProductEventsProducer {
		t.Helper()
		p, err := NewProductEventsProducer(
			ProducerWithClientOpt(cl), ProducerEncoderOpt(enc),
		)
		require.NoError(t, err)
		p.now = func() time.Time { return occurredAt }
		return p
	}

	t.Run("Regular", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)
		p := newProducer(t, cl, enc)

		wantSchema := schema.ProductEventV1{
			EventType:  "created",
			ProductID:  "602d2149e773f2a3990b47f5",
			Name:       "Helmet",
			Price:      "29.99",
			Brand:      schema.ReferenceV1{ID: "B1", Name: "Adidas"},
			Type:       schema.ReferenceV1{ID: "T1", Name: "Helmets"},
			OccurredAt: occurredAt,
		}
		enc.On("Encode", wantSchema).Return([]byte("encoded"), nil)

		cl.On("ProduceSync", mock.Anything, mock.MatchedBy(func(rs []*kgo.Record) bool {
			return len(rs) == 1 &&
				string(rs[0].Key) == "602d2149e773f2a3990b47f5" &&
				string(rs[0].Value) == "encoded"
		})).Return(kgo.ProduceResults{{}})

		err := p.ProduceProductEvent(t.Context(), helmetEvent())
		require.NoError(t, err)
		enc.AssertExpectations(t)
		cl.AssertExpectations(t)
	})

	t.Run("EncodeError", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)
		p := newProducer(t, cl, enc)

		encodeErr := errors.New("encode failed")
		enc.On("Encode", mock.Anything).Return(nil, encodeErr)

		err := p.ProduceProductEvent(t.Context(), helmetEvent())
		assert.ErrorIs(t, err, encodeErr)
		cl.AssertNotCalled(t, "ProduceSync", mock.Anything, mock.Anything)
	})

	t.Run("BrokerError", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)
		p := newProducer(t, cl, enc)

		brokerErr := errors.New("not enough replicas")
		enc.On("Encode", mock.Anything).Return([]byte("encoded"), nil)
		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{{Err: brokerErr}})

		err := p.ProduceProductEvent(t.Context(), helmetEvent())
		assert.ErrorIs(t, err, brokerErr)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)
		p := newProducer(t, cl, enc)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := p.ProduceProductEvent(ctx, helmetEvent())
		assert.ErrorIs(t, err, context.Canceled)
		enc.AssertNotCalled(t, "Encode", mock.Anything)
	})

	t.Run("Close", func(t *testing.T) {
		cl := new(MockProducerClient)
		p := newProducer(t, cl, new(MockEncoder))
		cl.On("Close").Return()

		p.Close()
		cl.AssertExpectations(t)
	})
}
