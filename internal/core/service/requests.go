package service

import (
	"errors"
	"fmt"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/shopspring/decimal"
)

var errEmptyID = errors.New("id is required")

type GetProductByIDQuery struct {
	ID string
}

func (GetProductByIDQuery) RequestName() string { return "GetProductByIdQuery" }

func (q GetProductByIDQuery) Validate() error {
	if q.ID == "" {
		return errEmptyID
	}
	return nil
}

type GetProductsByNameQuery struct {
	Name string
}

func (GetProductsByNameQuery) RequestName() string { return "GetProductByNameQuery" }

func (q GetProductsByNameQuery) Validate() error {
	if q.Name == "" {
		return errors.New("product name is required")
	}
	return nil
}

type GetAllProductsQuery struct{}

func (GetAllProductsQuery) RequestName() string { return "GetAllProductsQuery" }

type GetProductsByBrandQuery struct {
	BrandName string
}

func (GetProductsByBrandQuery) RequestName() string { return "GetProductByBrandQuery" }

func (q GetProductsByBrandQuery) Validate() error {
	if q.BrandName == "" {
		return errors.New("brand name is required")
	}
	return nil
}

type GetAllBrandsQuery struct{}

func (GetAllBrandsQuery) RequestName() string { return "GetAllBrandsQuery" }

type GetAllTypesQuery struct{}

func (GetAllTypesQuery) RequestName() string { return "GetAllTypesQuery" }

type CreateProductCommand struct {
	Name        string
	Summary     string
	Description string
	ImageFile   string
	Price       decimal.Decimal
	Brand       domain.Brand
	Type        domain.ProductType
}

func (CreateProductCommand) RequestName() string { return "CreateProductCommand" }

func (c CreateProductCommand) Validate() error {
	return c.toDomain().Validate()
}

func (c CreateProductCommand) toDomain() domain.Product {
	return domain.Product{
		Name:        c.Name,
		Summary:     c.Summary,
		Description: c.Description,
		ImageFile:   c.ImageFile,
		Price:       c.Price,
		Brand:       c.Brand,
		Type:        c.Type,
	}
}

type UpdateProductCommand struct {
	ID          string
	Name        string
	Summary     string
	Description string
	ImageFile   string
	Price       decimal.Decimal
	Brand       domain.Brand
	Type        domain.ProductType
}

func (UpdateProductCommand) RequestName() string { return "UpdateProductCommand" }

func (c UpdateProductCommand) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errEmptyID)
	}
	return c.toDomain().Validate()
}

func (c UpdateProductCommand) toDomain() domain.Product {
	return domain.Product{
		ID:          c.ID,
		Name:        c.Name,
		Summary:     c.Summary,
		Description: c.Description,
		ImageFile:   c.ImageFile,
		Price:       c.Price,
		Brand:       c.Brand,
		Type:        c.Type,
	}
}

type DeleteProductByIDCommand struct {
	ID string
}

func (DeleteProductByIDCommand) RequestName() string { return "DeleteProductByIdCommand" }

func (c DeleteProductByIDCommand) Validate() error {
	if c.ID == "" {
		return errEmptyID
	}
	return nil
}
