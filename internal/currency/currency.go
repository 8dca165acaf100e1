// Package currency converts and formats base-currency amounts for display.
// Rates are static constants; there is no live refresh.
package currency

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mhnipu/smart-shopper-galaxy/internal/kv"
)

type Info struct {
	Code          string          `json:"code"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	DecimalPlaces int32           `json:"decimal_places"`
}

const (
	DefaultCode = "USD"
	storageKey  = "currency"
)

// Rates relative to USD.
var currencies = map[string]Info{
	"USD": {Code: "USD", Symbol: "$", Name: "US Dollar", ExchangeRate: decimal.NewFromInt(1), DecimalPlaces: 2},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro", ExchangeRate: decimal.RequireFromString("0.93"), DecimalPlaces: 2},
	"GBP": {Code: "GBP", Symbol: "£", Name: "British Pound", ExchangeRate: decimal.RequireFromString("0.81"), DecimalPlaces: 2},
	"JPY": {Code: "JPY", Symbol: "¥", Name: "Japanese Yen", ExchangeRate: decimal.RequireFromString("151.67"), DecimalPlaces: 0},
	"CAD": {Code: "CAD", Symbol: "C$", Name: "Canadian Dollar", ExchangeRate: decimal.RequireFromString("1.38"), DecimalPlaces: 2},
	"AUD": {Code: "AUD", Symbol: "A$", Name: "Australian Dollar", ExchangeRate: decimal.RequireFromString("1.54"), DecimalPlaces: 2},
	"BTC": {Code: "BTC", Symbol: "₿", Name: "Bitcoin", ExchangeRate: decimal.RequireFromString("0.000016"), DecimalPlaces: 8},
}

var displayOrder = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "BTC"}

// Service holds the process-wide active currency selection. Many readers,
// one setter; the selection survives restarts through the kv store.
type Service struct {
	mu     sync.RWMutex
	active Info
	store  kv.Store
}

func NewService(ctx context.Context, store kv.Store) *Service {
	s := &Service{
		active: currencies[DefaultCode],
		store:  store,
	}

	data, err := store.Get(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("currency: load persisted selection: %v", err)
		}
		return s
	}

	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		log.Printf("currency: corrupt persisted selection, using %s: %v", DefaultCode, err)
		return s
	}
	if info, ok := currencies[code]; ok {
		s.active = info
	}
	return s
}

// Active returns the currently selected currency.
func (s *Service) Active() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SetCode switches the active currency. Unknown codes are a no-op; the
// previous selection stays active and false is returned.
func (s *Service) SetCode(ctx context.Context, code string) bool {
	info, ok := currencies[code]
	if !ok {
		return false
	}

	s.mu.Lock()
	s.active = info
	s.mu.Unlock()

	data, _ := json.Marshal(code)
	if err := s.store.Set(ctx, storageKey, data); err != nil {
		// durability is best-effort; the in-memory selection stands
		log.Printf("currency: persist selection: %v", err)
	}
	return true
}

// FormatPrice renders a base-currency amount in the active currency:
// symbol immediately followed by the converted amount rounded to the
// currency's decimal places. No grouping separators.
func (s *Service) FormatPrice(amountInBase decimal.Decimal) string {
	info := s.Active()
	converted := amountInBase.Mul(info.ExchangeRate)
	return info.Symbol + converted.StringFixed(info.DecimalPlaces)
}

// Available lists every supported currency in display order.
func (s *Service) Available() []Info {
	out := make([]Info, 0, len(displayOrder))
	for _, code := range displayOrder {
		out = append(out, currencies[code])
	}
	return out
}
