package storage

import (
	"fmt"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	productDocument struct {
		ID          primitive.ObjectID   `bson:"_id,omitempty"`
		Name        string               `bson:"name"`
		Summary     string               `bson:"summary"`
		Description string               `bson:"description"`
		ImageFile   string               `bson:"imageFile"`
		Price       primitive.Decimal128 `bson:"price"`
		Brand       referenceDocument    `bson:"brand"`
		Type        referenceDocument    `bson:"type"`
	}

	// referenceDocument is a brand or type embedded into a product.
	referenceDocument struct {
		ID   string `bson:"id"`
		Name string `bson:"name"`
	}

	labelDocument struct {
		ID   primitive.ObjectID `bson:"_id,omitempty"`
		Name string             `bson:"name"`
	}
)

func toProductDocument(p domain.Product) (productDocument, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return productDocument{}, fmt.Errorf("%w: price: %w", domain.ErrInvalidInput, err)
	}

	d := productDocument{
		Name:        p.Name,
		Summary:     p.Summary,
		Description: p.Description,
		ImageFile:   p.ImageFile,
		Price:       price,
		Brand:       referenceDocument{ID: p.Brand.ID, Name: p.Brand.Name},
		Type:        referenceDocument{ID: p.Type.ID, Name: p.Type.Name},
	}

	if p.ID != "" {
		d.ID, err = objectIDFromHex(p.ID)
		if err != nil {
			return productDocument{}, err
		}
	}
	return d, nil
}

func (d productDocument) toDomain() (domain.Product, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return domain.Product{}, fmt.Errorf("price %q: %w", d.Price.String(), err)
	}

	return domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Summary:     d.Summary,
		Description: d.Description,
		ImageFile:   d.ImageFile,
		Price:       price,
		Brand:       domain.Brand{ID: d.Brand.ID, Name: d.Brand.Name},
		Type:        domain.ProductType{ID: d.Type.ID, Name: d.Type.Name},
	}, nil
}

func productsToDomain(ds []productDocument) ([]domain.Product, error) {
	ps := make([]domain.Product, 0, len(ds))
	for _, d := range ds {
		p, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

// objectIDFromHex rejects ids the store could never have assigned.
func objectIDFromHex(id string) (primitive.ObjectID, error) {
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed id %q", domain.ErrInvalidInput, id)
	}
	return primitive.ObjectIDFromHex(id)
}
