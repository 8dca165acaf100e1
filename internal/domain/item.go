package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyID       = errors.New("line item id must not be empty")
	ErrNegativePrice = errors.New("line item price must not be negative")
)

// LineItem is one row in a cart or wishlist. Price is in the base currency;
// Quantity is only meaningful inside a cart.
type LineItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity,omitempty"`
}

// NewLineItem validates input at the store boundary so consumers never see a
// malformed item.
func NewLineItem(id, name string, price decimal.Decimal, image string) (LineItem, error) {
	if id == "" {
		return LineItem{}, ErrEmptyID
	}
	if price.IsNegative() {
		return LineItem{}, ErrNegativePrice
	}
	return LineItem{
		ID:    id,
		Name:  name,
		Price: price,
		Image: image,
	}, nil
}

func (i LineItem) Validate() error {
	if i.ID == "" {
		return ErrEmptyID
	}
	if i.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
