package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mhnipu/smart-shopper-galaxy/internal/catalog"
	"github.com/mhnipu/smart-shopper-galaxy/internal/domain"
	"github.com/mhnipu/smart-shopper-galaxy/internal/session"
	"github.com/mhnipu/smart-shopper-galaxy/internal/wishlist"
)

type WishlistHandler struct {
	sessions *session.Manager
	catalog  *catalog.Service
	timeout  time.Duration
}

func NewWishlistHandler(sessions *session.Manager, catalogSvc *catalog.Service, timeout time.Duration) *WishlistHandler {
	return &WishlistHandler{
		sessions: sessions,
		catalog:  catalogSvc,
		timeout:  timeout,
	}
}

type AddWishlistItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type WishlistItemDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Image string `json:"image"`
}

type WishlistResponseDTO struct {
	Items      []WishlistItemDTO `json:"items"`
	TotalItems int               `json:"total_items"`
}

func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	wl := h.sessions.For(ctx, userID).Wishlist
	respondJSON(w, http.StatusOK, wishlistResponse(wl))
}

func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddWishlistItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must not be empty")
		return
	}

	product, err := h.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to validate product")
		return
	}

	wl := h.sessions.For(ctx, userID).Wishlist
	added := wl.AddItem(ctx, domain.LineItem{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Image: product.ImageURL,
	})

	status := http.StatusCreated
	if !added {
		// already present: not an error, nothing changed
		status = http.StatusOK
	}
	respondJSON(w, status, wishlistResponse(wl))
}

func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID := chi.URLParam(r, "product_id")

	wl := h.sessions.For(ctx, userID).Wishlist
	wl.RemoveItem(ctx, productID)

	respondJSON(w, http.StatusOK, wishlistResponse(wl))
}

func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	wl := h.sessions.For(ctx, userID).Wishlist
	wl.Clear(ctx)

	respondJSON(w, http.StatusOK, wishlistResponse(wl))
}

func wishlistResponse(wl *wishlist.Wishlist) WishlistResponseDTO {
	items := wl.Items()
	dtos := make([]WishlistItemDTO, len(items))
	for i, item := range items {
		dtos[i] = WishlistItemDTO{
			ID:    item.ID,
			Name:  item.Name,
			Price: item.Price.String(),
			Image: item.Image,
		}
	}
	return WishlistResponseDTO{
		Items:      dtos,
		TotalItems: wl.TotalItems(),
	}
}
