package httphandler

import (
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/service"
	"github.com/shopspring/decimal"
)

type (
	Product struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Summary     string          `json:"summary"`
		Description string          `json:"description"`
		ImageFile   string          `json:"imageFile"`
		Price       Price           `json:"price"`
		Brand       Brand           `json:"brand"`
		Type        Type            `json:"type"`
	}

	Brand struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	Type struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
)

// Price is a decimal written to JSON as a number. Decoding accepts both
// numbers and quoted strings.
type Price struct {
	decimal.Decimal
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthEntry struct {
	Status   string `json:"status"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

type healthResponse struct {
	Status  string                 `json:"status"`
	Entries map[string]healthEntry `json:"entries"`
}

func (p Product) toCreateCommand() service.CreateProductCommand {
	return service.CreateProductCommand{
		Name:        p.Name,
		Summary:     p.Summary,
		Description: p.Description,
		ImageFile:   p.ImageFile,
		Price:       p.Price.Decimal,
		Brand:       domain.Brand{ID: p.Brand.ID, Name: p.Brand.Name},
		Type:        domain.ProductType{ID: p.Type.ID, Name: p.Type.Name},
	}
}

func (p Product) toUpdateCommand() service.UpdateProductCommand {
	return service.UpdateProductCommand{
		ID:          p.ID,
		Name:        p.Name,
		Summary:     p.Summary,
		Description: p.Description,
		ImageFile:   p.ImageFile,
		Price:       p.Price.Decimal,
		Brand:       domain.Brand{ID: p.Brand.ID, Name: p.Brand.Name},
		Type:        domain.ProductType{ID: p.Type.ID, Name: p.Type.Name},
	}
}

func fromDomainProduct(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Summary:     p.Summary,
		Description: p.Description,
		ImageFile:   p.ImageFile,
		Price:       Price{p.Price},
		Brand:       Brand{ID: p.Brand.ID, Name: p.Brand.Name},
		Type:        Type{ID: p.Type.ID, Name: p.Type.Name},
	}
}

func fromDomainProducts(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, fromDomainProduct(p))
	}
	return out
}

func fromDomainBrands(bs []domain.Brand) []Brand {
	out := make([]Brand, 0, len(bs))
	for _, b := range bs {
		out = append(out, Brand{ID: b.ID, Name: b.Name})
	}
	return out
}

func fromDomainTypes(ts []domain.ProductType) []Type {
	out := make([]Type, 0, len(ts))
	for _, t := range ts {
		out = append(out, Type{ID: t.ID, Name: t.Name})
	}
	return out
}
