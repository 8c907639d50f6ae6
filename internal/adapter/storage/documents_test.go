package storage

import (
	"context"
	"testing"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProductDocument(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		p := domain.Product{
			ID:          primitive.NewObjectID().Hex(),
			Name:        "Helmet",
			Summary:     "summary",
			Description: "description",
			ImageFile:   "https://img.example/helmet.png",
			Price:       decimal.RequireFromString("29.99"),
			Brand:       domain.Brand{ID: "B1", Name: "Adidas"},
			Type:        domain.ProductType{ID: "T1", Name: "Helmets"},
		}

		d, err := toProductDocument(p)
		require.NoError(t, err)
		assert.Equal(t, p.ID, d.ID.Hex())
		assert.Equal(t, "29.99", d.Price.String())

		got, err := d.toDomain()
		require.NoError(t, err)
		assert.True(t, p.Price.Equal(got.Price))
		got.Price = p.Price
		assert.Equal(t, p, got)
	})

	t.Run("NoID", func(t *testing.T) {
		d, err := toProductDocument(domain.Product{Name: "x"})
		require.NoError(t, err)
		assert.True(t, d.ID.IsZero())
	})

	t.Run("MalformedID", func(t *testing.T) {
		for _, id := range malformedIDs {
			_, err := toProductDocument(domain.Product{ID: id})
			require.Error(t, err, id)
			assert.ErrorIs(t, err, domain.ErrInvalidInput, id)
		}
	})
}

// Both wrong length and non-hex characters of the right length.
var malformedIDs = []string{"not-an-object-id", "zz", "zzzzzzzzzzzzzzzzzzzzzzzz"}

func TestMalformedIDRejectedBeforeQuery(t *testing.T) {
	repo := NewCatalogRepository(MongoDB{})

	for _, id := range malformedIDs {
		t.Run(id, func(t *testing.T) {
			_, err := repo.GetProduct(t.Context(), id)
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "GetProduct")

			_, err = repo.UpdateProduct(t.Context(), domain.Product{ID: id, Name: "x"})
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "UpdateProduct")

			_, err = repo.DeleteProduct(t.Context(), id)
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "DeleteProduct")
		})
	}
}

func TestClassify(t *testing.T) {
	_, hexErr := primitive.ObjectIDFromHex("zz")
	_, byteErr := primitive.ObjectIDFromHex("zzzzzzzzzzzzzzzzzzzzzzzz")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"InvalidHex", hexErr, domain.ErrInvalidInput},
		{"InvalidByte", byteErr, domain.ErrInvalidInput},
		{"DeadlineExceeded", contextDeadline(t), domain.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tt.err), tt.want)
		})
	}
}

func contextDeadline(t *testing.T) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(t.Context(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	return ctx.Err()
}
