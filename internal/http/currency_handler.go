package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mhnipu/smart-shopper-galaxy/internal/currency"
)

type CurrencyHandler struct {
	currency *currency.Service
	timeout  time.Duration
}

func NewCurrencyHandler(currencySvc *currency.Service, timeout time.Duration) *CurrencyHandler {
	return &CurrencyHandler{
		currency: currencySvc,
		timeout:  timeout,
	}
}

type CurrencyDTO struct {
	Code          string `json:"code"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	ExchangeRate  string `json:"exchange_rate"`
	DecimalPlaces int32  `json:"decimal_places"`
}

type CurrencyResponse struct {
	Active    CurrencyDTO   `json:"active"`
	Available []CurrencyDTO `json:"available"`
}

type SetCurrencyRequestDTO struct {
	Code string `json:"code"`
}

func (h *CurrencyHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.currencyResponse())
}

// Set switches the active currency. An unrecognized code leaves the
// selection unchanged and still returns the current state.
func (h *CurrencyHandler) Set(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SetCurrencyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	h.currency.SetCode(ctx, req.Code)
	respondJSON(w, http.StatusOK, h.currencyResponse())
}

func (h *CurrencyHandler) currencyResponse() *CurrencyResponse {
	available := h.currency.Available()
	dtos := make([]CurrencyDTO, len(available))
	for i, info := range available {
		dtos[i] = currencyDTO(info)
	}
	return &CurrencyResponse{
		Active:    currencyDTO(h.currency.Active()),
		Available: dtos,
	}
}

func currencyDTO(info currency.Info) CurrencyDTO {
	return CurrencyDTO{
		Code:          info.Code,
		Symbol:        info.Symbol,
		Name:          info.Name,
		ExchangeRate:  info.ExchangeRate.String(),
		DecimalPlaces: info.DecimalPlaces,
	}
}
