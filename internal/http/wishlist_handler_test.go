package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWishlistHandler(t *testing.T) *WishlistHandler {
	t.Helper()

	catalogSvc := newTestCatalog(
		testProduct("p1", "Nebula Lamp", "lighting", "25.00"),
	)
	return NewWishlistHandler(newTestSessions(), catalogSvc, testTimeout)
}

func TestWishlistHandler_Get_Empty(t *testing.T) {
	handler := newWishlistHandler(t)

	rec := httptest.NewRecorder()
	handler.Get(rec, newRequest(t, "GET", "/api/v1/wishlist", "user-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp WishlistResponseDTO
	decodeBody(t, rec, &resp)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.TotalItems)
}

func TestWishlistHandler_AddItem(t *testing.T) {
	handler := newWishlistHandler(t)

	rec := httptest.NewRecorder()
	handler.AddItem(rec, newRequest(t, "POST", "/api/v1/wishlist/items", "user-1",
		AddWishlistItemRequestDTO{ProductID: "p1"}))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp WishlistResponseDTO
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p1", resp.Items[0].ID)
	assert.Equal(t, "Nebula Lamp", resp.Items[0].Name)
}

func TestWishlistHandler_AddItem_AlreadyPresent(t *testing.T) {
	handler := newWishlistHandler(t)

	rec := httptest.NewRecorder()
	handler.AddItem(rec, newRequest(t, "POST", "/api/v1/wishlist/items", "user-1",
		AddWishlistItemRequestDTO{ProductID: "p1"}))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	handler.AddItem(rec, newRequest(t, "POST", "/api/v1/wishlist/items", "user-1",
		AddWishlistItemRequestDTO{ProductID: "p1"}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp WishlistResponseDTO
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Items, 1)
}

func TestWishlistHandler_AddItem_UnknownProduct(t *testing.T) {
	handler := newWishlistHandler(t)

	rec := httptest.NewRecorder()
	handler.AddItem(rec, newRequest(t, "POST", "/api/v1/wishlist/items", "user-1",
		AddWishlistItemRequestDTO{ProductID: "nope"}))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWishlistHandler_RemoveItem(t *testing.T) {
	handler := newWishlistHandler(t)

	rec := httptest.NewRecorder()
	handler.AddItem(rec, newRequest(t, "POST", "/api/v1/wishlist/items", "user-1",
		AddWishlistItemRequestDTO{ProductID: "p1"}))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	r := newRequest(t, "DELETE", "/api/v1/wishlist/items/p1", "user-1", nil)
	handler.RemoveItem(rec, withURLParam(r, "product_id", "p1"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp WishlistResponseDTO
	decodeBody(t, rec, &resp)
	assert.Empty(t, resp.Items)
}

func TestWishlistHandler_Clear(t *testing.T) {
	handler := newWishlistHandler(t)

	rec := httptest.NewRecorder()
	handler.AddItem(rec, newRequest(t, "POST", "/api/v1/wishlist/items", "user-1",
		AddWishlistItemRequestDTO{ProductID: "p1"}))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	handler.Clear(rec, newRequest(t, "DELETE", "/api/v1/wishlist", "user-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp WishlistResponseDTO
	decodeBody(t, rec, &resp)
	assert.Empty(t, resp.Items)
}

func TestWishlistHandler_Unauthorized(t *testing.T) {
	handler := newWishlistHandler(t)

	rec := httptest.NewRecorder()
	handler.Get(rec, newRequest(t, "GET", "/api/v1/wishlist", "", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
