package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/mediator"
	"github.com/niksmo/catalog/internal/core/port"
)

type Service struct {
	products port.ProductRepository
	brands   port.BrandRepository
	types    port.TypesRepository
	events   port.ProductEventsProducer
}

// New returns a Service. The events producer is optional.
func New(
	products port.ProductRepository,
	brands port.BrandRepository,
	types port.TypesRepository,
	events port.ProductEventsProducer,
) Service {
	return Service{
		products: products,
		brands:   brands,
		types:    types,
		events:   events,
	}
}

// Register binds every catalog command and query to its handler.
func (s Service) Register(m *mediator.Mediator) {
	mediator.Handle(m, s.GetProductByID)
	mediator.Handle(m, s.GetProductsByName)
	mediator.Handle(m, s.GetAllProducts)
	mediator.Handle(m, s.GetProductsByBrand)
	mediator.Handle(m, s.GetAllBrands)
	mediator.Handle(m, s.GetAllTypes)
	mediator.Handle(m, s.CreateProduct)
	mediator.Handle(m, s.UpdateProduct)
	mediator.Handle(m, s.DeleteProduct)
}

func (s Service) GetProductByID(
	ctx context.Context, q GetProductByIDQuery,
) (domain.Product, error) {
	const op = "Service.GetProductByID"

	p, err := s.products.GetProduct(ctx, q.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s Service) GetProductsByName(
	ctx context.Context, q GetProductsByNameQuery,
) ([]domain.Product, error) {
	const op = "Service.GetProductsByName"

	ps, err := s.products.GetProductsByName(ctx, q.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (s Service) GetAllProducts(
	ctx context.Context, _ GetAllProductsQuery,
) ([]domain.Product, error) {
	const op = "Service.GetAllProducts"

	ps, err := s.products.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (s Service) GetProductsByBrand(
	ctx context.Context, q GetProductsByBrandQuery,
) ([]domain.Product, error) {
	const op = "Service.GetProductsByBrand"

	ps, err := s.products.GetProductsByBrand(ctx, q.BrandName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (s Service) GetAllBrands(
	ctx context.Context, _ GetAllBrandsQuery,
) ([]domain.Brand, error) {
	const op = "Service.GetAllBrands"

	bs, err := s.brands.GetAllBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return bs, nil
}

func (s Service) GetAllTypes(
	ctx context.Context, _ GetAllTypesQuery,
) ([]domain.ProductType, error) {
	const op = "Service.GetAllTypes"

	ts, err := s.types.GetAllTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ts, nil
}

func (s Service) CreateProduct(
	ctx context.Context, c CreateProductCommand,
) (domain.Product, error) {
	const op = "Service.CreateProduct"

	p, err := s.products.CreateProduct(ctx, c.toDomain())
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.notify(ctx, domain.ProductEvent{Type: domain.ProductCreated, Product: p})
	return p, nil
}

func (s Service) UpdateProduct(
	ctx context.Context, c UpdateProductCommand,
) (bool, error) {
	const op = "Service.UpdateProduct"

	p := c.toDomain()
	ok, err := s.products.UpdateProduct(ctx, p)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if ok {
		s.notify(ctx, domain.ProductEvent{Type: domain.ProductUpdated, Product: p})
	}
	return ok, nil
}

func (s Service) DeleteProduct(
	ctx context.Context, c DeleteProductByIDCommand,
) (bool, error) {
	const op = "Service.DeleteProduct"

	ok, err := s.products.DeleteProduct(ctx, c.ID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if ok {
		s.notify(ctx, domain.ProductEvent{
			Type:    domain.ProductDeleted,
			Product: domain.Product{ID: c.ID},
		})
	}
	return ok, nil
}

// notify never fails the command: the document is already stored.
func (s Service) notify(ctx context.Context, evt domain.ProductEvent) {
	const op = "Service.notify"

	if s.events == nil {
		return
	}

	err := s.events.ProduceProductEvent(ctx, evt)
	if err != nil {
		slog.ErrorContext(ctx, "failed to produce product event",
			"op", op,
			"type", evt.Type,
			"productID", evt.Product.ID,
			"err", err,
		)
	}
}
