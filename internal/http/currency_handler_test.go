package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhnipu/smart-shopper-galaxy/internal/currency"
	"github.com/mhnipu/smart-shopper-galaxy/internal/kv"
)

func newCurrencyHandler(t *testing.T) *CurrencyHandler {
	t.Helper()
	return NewCurrencyHandler(currency.NewService(context.Background(), kv.NewMemoryStore()), testTimeout)
}

func TestCurrencyHandler_Get_DefaultsToUSD(t *testing.T) {
	handler := newCurrencyHandler(t)

	rec := httptest.NewRecorder()
	handler.Get(rec, newRequest(t, "GET", "/api/v1/currency", "", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CurrencyResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "USD", resp.Active.Code)
	require.Len(t, resp.Available, 7)
	assert.Equal(t, "USD", resp.Available[0].Code)
	assert.Equal(t, "BTC", resp.Available[6].Code)
}

func TestCurrencyHandler_Set(t *testing.T) {
	handler := newCurrencyHandler(t)

	rec := httptest.NewRecorder()
	handler.Set(rec, newRequest(t, "PUT", "/api/v1/currency", "",
		SetCurrencyRequestDTO{Code: "EUR"}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CurrencyResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "EUR", resp.Active.Code)
	assert.Equal(t, "€", resp.Active.Symbol)
}

func TestCurrencyHandler_Set_UnknownCodeKeepsCurrent(t *testing.T) {
	handler := newCurrencyHandler(t)

	rec := httptest.NewRecorder()
	handler.Set(rec, newRequest(t, "PUT", "/api/v1/currency", "",
		SetCurrencyRequestDTO{Code: "XYZ"}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CurrencyResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "USD", resp.Active.Code)
}
