package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mhnipu/smart-shopper-galaxy/internal/catalog"
	"github.com/mhnipu/smart-shopper-galaxy/internal/domain"
	"github.com/mhnipu/smart-shopper-galaxy/internal/kv"
	"github.com/mhnipu/smart-shopper-galaxy/internal/notify"
	"github.com/mhnipu/smart-shopper-galaxy/internal/session"
)

const testTimeout = 5 * time.Second

type stubCatalogRepo struct {
	products []*domain.Product
}

func (s *stubCatalogRepo) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.products, nil
}

func (s *stubCatalogRepo) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, catalog.ErrProductNotFound
}

func (s *stubCatalogRepo) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCatalogRepo) SearchProducts(ctx context.Context, query string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCatalogRepo) ListCategories(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range s.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

type noCache struct{}

func (noCache) Get(ctx context.Context, id string) (*domain.Product, error) {
	return nil, catalog.ErrCacheMiss
}

func (noCache) Set(ctx context.Context, id string, product *domain.Product) error { return nil }

func (noCache) Delete(ctx context.Context, id string) error { return nil }

func testProduct(id, name, category, price string) *domain.Product {
	return &domain.Product{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString(price),
		ImageURL: "/images/" + id + ".jpg",
	}
}

func newTestCatalog(products ...*domain.Product) *catalog.Service {
	return catalog.NewService(&stubCatalogRepo{products: products}, noCache{})
}

func newTestSessions() *session.Manager {
	return session.NewManager(kv.NewMemoryStore(), notify.Discard{})
}

// newRequest builds a request carrying the user id the auth middleware
// would normally inject. An empty userID leaves the context bare.
func newRequest(t *testing.T, method, target, userID string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, target, &buf)
	if userID != "" {
		r = r.WithContext(context.WithValue(r.Context(), "user_id", userID))
	}
	return r
}

// withURLParam attaches a chi route parameter so handlers invoked directly
// can read it.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(into))
}
