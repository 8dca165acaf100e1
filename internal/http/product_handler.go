package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mhnipu/smart-shopper-galaxy/internal/catalog"
	"github.com/mhnipu/smart-shopper-galaxy/internal/currency"
	"github.com/mhnipu/smart-shopper-galaxy/internal/domain"
)

type ProductHandler struct {
	catalog  *catalog.Service
	currency *currency.Service
	timeout  time.Duration
}

func NewProductHandler(catalogSvc *catalog.Service, currencySvc *currency.Service, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog:  catalogSvc,
		currency: currencySvc,
		timeout:  timeout,
	}
}

type ProductResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	DisplayPrice string `json:"display_price"`
	ImageURL     string `json:"image_url"`
	Category     string `json:"category"`
	Featured     bool   `json:"featured"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// List serves the catalog; ?category= narrows to one category and ?q= runs
// a text search over name and description.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var (
		products []*domain.Product
		err      error
	)
	switch {
	case r.URL.Query().Get("q") != "":
		products, err = h.catalog.SearchProducts(ctx, r.URL.Query().Get("q"))
	case r.URL.Query().Get("category") != "":
		products, err = h.catalog.ListByCategory(ctx, r.URL.Query().Get("category"))
	default:
		products, err = h.catalog.ListProducts(ctx)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}

	dtos := make([]ProductResponse, len(products))
	for i, p := range products {
		dtos[i] = h.productResponse(p)
	}
	respondJSON(w, http.StatusOK, &ProductsResponse{Products: dtos})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	product, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, h.productResponse(product))
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list categories")
		return
	}

	respondJSON(w, http.StatusOK, &CategoriesResponse{Categories: categories})
}

func (h *ProductHandler) productResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price.String(),
		DisplayPrice: h.currency.FormatPrice(p.Price),
		ImageURL:     p.ImageURL,
		Category:     p.Category,
		Featured:     p.Featured,
	}
}
