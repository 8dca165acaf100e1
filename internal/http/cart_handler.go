package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mhnipu/smart-shopper-galaxy/internal/cart"
	"github.com/mhnipu/smart-shopper-galaxy/internal/catalog"
	"github.com/mhnipu/smart-shopper-galaxy/internal/currency"
	"github.com/mhnipu/smart-shopper-galaxy/internal/domain"
	"github.com/mhnipu/smart-shopper-galaxy/internal/session"
)

type CartHandler struct {
	sessions *session.Manager
	catalog  *catalog.Service
	currency *currency.Service
	pricing  cart.PricingConfig
	timeout  time.Duration
}

func NewCartHandler(
	sessions *session.Manager,
	catalogSvc *catalog.Service,
	currencySvc *currency.Service,
	pricing cart.PricingConfig,
	timeout time.Duration) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		catalog:  catalogSvc,
		currency: currencySvc,
		pricing:  pricing,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartItemDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Display  string `json:"display_price"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}

type CartResponseDTO struct {
	Items           []CartItemDTO `json:"items"`
	TotalItems      int           `json:"total_items"`
	Subtotal        string        `json:"subtotal"`
	Tax             string        `json:"tax"`
	Shipping        string        `json:"shipping"`
	Total           string        `json:"total"`
	DisplaySubtotal string        `json:"display_subtotal"`
	DisplayTotal    string        `json:"display_total"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	c := h.sessions.For(ctx, userID).Cart
	respondJSON(w, http.StatusOK, h.cartResponse(c))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must not be empty")
		return
	}

	// Resolve the product so the line item carries its current name and price
	product, err := h.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to validate product")
		return
	}

	item := domain.LineItem{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Image: product.ImageURL,
	}

	c := h.sessions.For(ctx, userID).Cart
	c.AddItem(ctx, item, req.Quantity)

	respondJSON(w, http.StatusCreated, h.cartResponse(c))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID := chi.URLParam(r, "product_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c := h.sessions.For(ctx, userID).Cart
	c.UpdateQuantity(ctx, productID, req.Quantity)

	respondJSON(w, http.StatusOK, h.cartResponse(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID := chi.URLParam(r, "product_id")

	c := h.sessions.For(ctx, userID).Cart
	c.RemoveItem(ctx, productID)

	respondJSON(w, http.StatusOK, h.cartResponse(c))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	c := h.sessions.For(ctx, userID).Cart
	c.Clear(ctx)

	respondJSON(w, http.StatusOK, h.cartResponse(c))
}

func (h *CartHandler) cartResponse(c *cart.Cart) CartResponseDTO {
	items := c.Items()
	totals := cart.ComputeTotals(items, h.pricing)

	dtos := make([]CartItemDTO, len(items))
	for i, item := range items {
		dtos[i] = CartItemDTO{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price.String(),
			Display:  h.currency.FormatPrice(item.Price),
			Image:    item.Image,
			Quantity: item.Quantity,
		}
	}

	return CartResponseDTO{
		Items:           dtos,
		TotalItems:      c.TotalItems(),
		Subtotal:        totals.Subtotal.String(),
		Tax:             totals.Tax.String(),
		Shipping:        totals.Shipping.String(),
		Total:           totals.Total.String(),
		DisplaySubtotal: h.currency.FormatPrice(totals.Subtotal),
		DisplayTotal:    h.currency.FormatPrice(totals.Total),
	}
}
