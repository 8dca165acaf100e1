package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Auth     *AuthHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Currency *CurrencyHandler
	Product  *ProductHandler
	Wishlist *WishlistHandler
}

// NewRouter wires the storefront API under /api/v1.
func NewRouter(h Handlers, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(MockAuthMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/register", h.Auth.Register)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/me", h.Auth.Me)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.List)
			r.Get("/categories", h.Product.Categories)
			r.Get("/{id}", h.Product.Get)
		})

		r.Route("/currency", func(r chi.Router) {
			r.Get("/", h.Currency.Get)
			r.Put("/", h.Currency.Set)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{product_id}", h.Cart.UpdateQuantity)
			r.Delete("/items/{product_id}", h.Cart.RemoveItem)
			r.Delete("/", h.Cart.ClearCart)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", h.Wishlist.Get)
			r.Post("/items", h.Wishlist.AddItem)
			r.Delete("/items/{product_id}", h.Wishlist.RemoveItem)
			r.Delete("/", h.Wishlist.Clear)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Checkout.PlaceOrder)
			r.Get("/", h.Checkout.ListOrders)
			r.Get("/{id}", h.Checkout.GetOrder)
		})
	})

	return r
}
