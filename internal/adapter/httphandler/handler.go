package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/mediator"
	"github.com/niksmo/catalog/internal/core/service"
)

const (
	catalogBase  = "/CatalogController"
	maxBodyBytes = 1 << 20
)

// GET    /CatalogController/GetProductById/{id}
// GET    /CatalogController/GetProductByProductName/{productName}
// GET    /CatalogController/GetAllProducts
// GET    /CatalogController/GetAllBrands
// GET    /CatalogController/GetAllTypes
// GET    /CatalogController/GetProductByBrandName/{brandName}
// POST   /CatalogController/CreateProduct
// PUT    /CatalogController/UpdateProduct
// DELETE /CatalogController/{id} (PUT kept as a legacy alias)

type CatalogHandler struct {
	m *mediator.Mediator
}

func RegisterCatalog(mux *http.ServeMux, m *mediator.Mediator) {
	h := CatalogHandler{m}
	mux.HandleFunc("GET "+catalogBase+"/GetProductById/{id}", h.GetProductByID)
	mux.HandleFunc("GET "+catalogBase+"/GetProductByProductName/{productName}", h.GetProductByProductName)
	mux.HandleFunc("GET "+catalogBase+"/GetAllProducts", h.GetAllProducts)
	mux.HandleFunc("GET "+catalogBase+"/GetAllBrands", h.GetAllBrands)
	mux.HandleFunc("GET "+catalogBase+"/GetAllTypes", h.GetAllTypes)
	mux.HandleFunc("GET "+catalogBase+"/GetProductByBrandName/{brandName}", h.GetProductByBrandName)
	mux.HandleFunc("POST "+catalogBase+"/CreateProduct", h.CreateProduct)
	mux.HandleFunc("PUT "+catalogBase+"/UpdateProduct", h.UpdateProduct)
	mux.HandleFunc("DELETE "+catalogBase+"/{id}", h.DeleteProduct)
	mux.HandleFunc("PUT "+catalogBase+"/{id}", h.LegacyDeleteProduct)
}

func (h CatalogHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProductByID"

	q := service.GetProductByIDQuery{ID: r.PathValue("id")}
	p, err := mediator.Send[domain.Product](r.Context(), h.m, q)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, op, http.StatusOK, fromDomainProduct(p))
}

func (h CatalogHandler) GetProductByProductName(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProductByProductName"

	q := service.GetProductsByNameQuery{Name: r.PathValue("productName")}
	ps, err := mediator.Send[[]domain.Product](r.Context(), h.m, q)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, op, http.StatusOK, fromDomainProducts(ps))
}

func (h CatalogHandler) GetAllProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetAllProducts"

	ps, err := mediator.Send[[]domain.Product](
		r.Context(), h.m, service.GetAllProductsQuery{},
	)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, op, http.StatusOK, fromDomainProducts(ps))
}

func (h CatalogHandler) GetAllBrands(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetAllBrands"

	bs, err := mediator.Send[[]domain.Brand](
		r.Context(), h.m, service.GetAllBrandsQuery{},
	)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, op, http.StatusOK, fromDomainBrands(bs))
}

func (h CatalogHandler) GetAllTypes(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetAllTypes"

	ts, err := mediator.Send[[]domain.ProductType](
		r.Context(), h.m, service.GetAllTypesQuery{},
	)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, op, http.StatusOK, fromDomainTypes(ts))
}

func (h CatalogHandler) GetProductByBrandName(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProductByBrandName"

	q := service.GetProductsByBrandQuery{BrandName: r.PathValue("brandName")}
	ps, err := mediator.Send[[]domain.Product](r.Context(), h.m, q)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, op, http.StatusOK, fromDomainProducts(ps))
}

func (h CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.CreateProduct"

	var body Product
	if !decodeJSON(w, r, op, &body) {
		return
	}

	p, err := mediator.Send[domain.Product](r.Context(), h.m, body.toCreateCommand())
	if err != nil {
		writeError(w, r, op, err)
		return
	}

	loggerFrom(r, op).Info("product created", "productID", p.ID)
	writeJSON(w, r, op, http.StatusOK, fromDomainProduct(p))
}

func (h CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.UpdateProduct"

	var body Product
	if !decodeJSON(w, r, op, &body) {
		return
	}

	ok, err := mediator.Send[bool](r.Context(), h.m, body.toUpdateCommand())
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, op, http.StatusOK, ok)
}

func (h CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.DeleteProduct"

	c := service.DeleteProductByIDCommand{ID: r.PathValue("id")}
	ok, err := mediator.Send[bool](r.Context(), h.m, c)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, op, http.StatusOK, ok)
}

// LegacyDeleteProduct serves PUT /CatalogController/{id}, which older clients
// use for deletion.
func (h CatalogHandler) LegacyDeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.LegacyDeleteProduct"
	loggerFrom(r, op).Warn("deprecated route, use DELETE", "path", r.URL.Path)
	h.DeleteProduct(w, r)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, op string, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		loggerFrom(r, op).Warn("failed to parse JSON", "err", err)
		writeJSON(w, r, op, http.StatusBadRequest, errorResponse{"invalid JSON data"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, op string, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		loggerFrom(r, op).Error("failed to write response body", "err", err)
	}
}

func loggerFrom(r *http.Request, op string) *slog.Logger {
	return slog.With("op", op, "requestID", RequestIDFrom(r.Context()))
}
