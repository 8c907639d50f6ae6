package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type (
	Product struct {
		ID          string
		Name        string
		Summary     string
		Description string
		ImageFile   string
		Price       decimal.Decimal
		Brand       Brand
		Type        ProductType
	}

	Brand struct {
		ID   string
		Name string
	}

	ProductType struct {
		ID   string
		Name string
	}
)

// Validate reports every field that can't be stored.
// The returned error wraps [ErrInvalidInput].
func (p Product) Validate() error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}

	if p.Price.IsNegative() {
		errs = append(errs, errors.New("price must not be negative"))
	}

	if p.Brand.Name == "" {
		errs = append(errs, errors.New("brand name is required"))
	}

	if p.Type.Name == "" {
		errs = append(errs, errors.New("type name is required"))
	}

	if len(errs) != 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

type ProductEventType string

const (
	ProductCreated ProductEventType = "created"
	ProductUpdated ProductEventType = "updated"
	ProductDeleted ProductEventType = "deleted"
)

// A ProductEvent notifies about a committed product change.
//
// Product holds only the ID for [ProductDeleted].
type ProductEvent struct {
	Type    ProductEventType
	Product Product
}
