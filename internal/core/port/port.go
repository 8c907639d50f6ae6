package port

import (
	"context"

	"github.com/niksmo/catalog/internal/core/domain"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetProductsByName(ctx context.Context, name string) ([]domain.Product, error)
	GetProductsByBrand(ctx context.Context, brandName string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)

	// UpdateProduct replaces the whole product. Reports false when no
	// product has the given ID.
	UpdateProduct(ctx context.Context, p domain.Product) (bool, error)

	// DeleteProduct reports false when no product has the given ID.
	DeleteProduct(ctx context.Context, id string) (bool, error)
}

type BrandRepository interface {
	GetAllBrands(ctx context.Context) ([]domain.Brand, error)
}

type TypesRepository interface {
	GetAllTypes(ctx context.Context) ([]domain.ProductType, error)
}

type ProductEventsProducer interface {
	ProduceProductEvent(context.Context, domain.ProductEvent) error
}

type HealthChecker interface {
	Ping(context.Context) error
}
