package storage

import (
	"context"
	"fmt"
	"regexp"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	_ port.ProductRepository = (*CatalogRepository)(nil)
	_ port.BrandRepository   = (*CatalogRepository)(nil)
	_ port.TypesRepository   = (*CatalogRepository)(nil)
)

// A CatalogRepository serves products, brands and types from one database.
type CatalogRepository struct {
	db MongoDB
}

func NewCatalogRepository(db MongoDB) CatalogRepository {
	return CatalogRepository{db}
}

func (r CatalogRepository) GetProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "CatalogRepository.GetProduct"

	oid, err := objectIDFromHex(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, classify(err))
	}

	var d productDocument
	err = r.db.products().FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, classify(err))
	}

	p, err := d.toDomain()
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r CatalogRepository) GetProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "CatalogRepository.GetProducts"

	ps, err := r.findProducts(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

// GetProductsByName matches any product whose name contains name,
// ignoring case.
func (r CatalogRepository) GetProductsByName(
	ctx context.Context, name string,
) ([]domain.Product, error) {
	const op = "CatalogRepository.GetProductsByName"

	filter := bson.D{{Key: "name", Value: primitive.Regex{
		Pattern: regexp.QuoteMeta(name),
		Options: "i",
	}}}

	ps, err := r.findProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r CatalogRepository) GetProductsByBrand(
	ctx context.Context, brandName string,
) ([]domain.Product, error) {
	const op = "CatalogRepository.GetProductsByBrand"

	ps, err := r.findProducts(ctx, bson.D{{Key: "brand.name", Value: brandName}})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r CatalogRepository) findProducts(
	ctx context.Context, filter any,
) ([]domain.Product, error) {
	cur, err := r.db.products().Find(ctx, filter)
	if err != nil {
		return nil, classify(err)
	}

	var ds []productDocument
	if err := cur.All(ctx, &ds); err != nil {
		return nil, classify(err)
	}
	return productsToDomain(ds)
}

func (r CatalogRepository) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "CatalogRepository.CreateProduct"

	p.ID = ""
	d, err := toProductDocument(p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.db.products().InsertOne(ctx, d)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, classify(err))
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return domain.Product{}, fmt.Errorf(
			"%s: unexpected inserted id type %T", op, res.InsertedID,
		)
	}

	p.ID = oid.Hex()
	return p, nil
}

func (r CatalogRepository) UpdateProduct(
	ctx context.Context, p domain.Product,
) (bool, error) {
	const op = "CatalogRepository.UpdateProduct"

	d, err := toProductDocument(p)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.db.products().ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, classify(err))
	}
	return res.MatchedCount > 0, nil
}

func (r CatalogRepository) DeleteProduct(
	ctx context.Context, id string,
) (bool, error) {
	const op = "CatalogRepository.DeleteProduct"

	oid, err := objectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, classify(err))
	}

	res, err := r.db.products().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, classify(err))
	}
	return res.DeletedCount > 0, nil
}

func (r CatalogRepository) GetAllBrands(
	ctx context.Context,
) ([]domain.Brand, error) {
	const op = "CatalogRepository.GetAllBrands"

	ds, err := findLabels(ctx, r.db.brands())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bs := make([]domain.Brand, 0, len(ds))
	for _, d := range ds {
		bs = append(bs, domain.Brand{ID: d.ID.Hex(), Name: d.Name})
	}
	return bs, nil
}

func (r CatalogRepository) GetAllTypes(
	ctx context.Context,
) ([]domain.ProductType, error) {
	const op = "CatalogRepository.GetAllTypes"

	ds, err := findLabels(ctx, r.db.types())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ts := make([]domain.ProductType, 0, len(ds))
	for _, d := range ds {
		ts = append(ts, domain.ProductType{ID: d.ID.Hex(), Name: d.Name})
	}
	return ts, nil
}

func findLabels(
	ctx context.Context, coll *mongo.Collection,
) ([]labelDocument, error) {
	cur, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, classify(err)
	}

	var ds []labelDocument
	if err := cur.All(ctx, &ds); err != nil {
		return nil, classify(err)
	}
	return ds, nil
}
