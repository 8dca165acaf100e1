package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mhnipu/smart-shopper-galaxy/internal/checkout"
	"github.com/mhnipu/smart-shopper-galaxy/internal/currency"
	"github.com/mhnipu/smart-shopper-galaxy/internal/domain"
	"github.com/mhnipu/smart-shopper-galaxy/internal/session"
)

type CheckoutHandler struct {
	sessions *session.Manager
	checkout *checkout.Service
	currency *currency.Service
	timeout  time.Duration
}

func NewCheckoutHandler(sessions *session.Manager, checkoutSvc *checkout.Service, currencySvc *currency.Service, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		sessions: sessions,
		checkout: checkoutSvc,
		currency: currencySvc,
		timeout:  timeout,
	}
}

type PlaceOrderRequestDTO struct {
	IdempotencyKey string                   `json:"idempotency_key"`
	Shipping       checkout.ShippingDetails `json:"shipping"`
}

type OrderItemDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

type OrderResponseDTO struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Items        []OrderItemDTO `json:"items"`
	Subtotal     string         `json:"subtotal"`
	Tax          string         `json:"tax"`
	Shipping     string         `json:"shipping"`
	Total        string         `json:"total"`
	DisplayTotal string         `json:"display_total"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
}

type OrdersResponseDTO struct {
	Orders []OrderResponseDTO `json:"orders"`
}

// PlaceOrder freezes the caller's cart into an order. The cart is cleared
// only after the order is persisted, so a failed checkout keeps its
// contents intact.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	stores := h.sessions.For(ctx, userID)
	order, err := h.checkout.PlaceOrder(ctx, userID, req.IdempotencyKey, req.Shipping, stores.Cart.Items())
	if err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		case errors.As(err, &verr):
			respondJSON(w, http.StatusBadRequest, &ErrorResponse{
				Error:   "invalid shipping details",
				Code:    "invalid_shipping",
				Details: strings.Join(verr.Problems, "; "),
			})
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to place order")
		}
		return
	}

	stores.Cart.Clear(ctx)
	respondJSON(w, http.StatusCreated, h.orderResponse(order))
}

func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	id := chi.URLParam(r, "id")
	order, err := h.checkout.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, checkout.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get order")
		return
	}
	if order.UserID != userID {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	respondJSON(w, http.StatusOK, h.orderResponse(order))
}

func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.checkout.ListOrders(ctx, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list orders")
		return
	}

	dtos := make([]OrderResponseDTO, len(orders))
	for i, o := range orders {
		dtos[i] = h.orderResponse(o)
	}
	respondJSON(w, http.StatusOK, &OrdersResponseDTO{Orders: dtos})
}

func (h *CheckoutHandler) orderResponse(order *domain.Order) OrderResponseDTO {
	items := make([]OrderItemDTO, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.String(),
			Subtotal:    item.Subtotal.String(),
		}
	}
	return OrderResponseDTO{
		ID:           order.ID,
		UserID:       order.UserID,
		Items:        items,
		Subtotal:     order.Subtotal.String(),
		Tax:          order.Tax.String(),
		Shipping:     order.Shipping.String(),
		Total:        order.Total.String(),
		DisplayTotal: h.currency.FormatPrice(order.Total),
		Status:       order.Status.String(),
		CreatedAt:    order.CreatedAt,
	}
}
