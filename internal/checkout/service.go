// Package checkout validates the shipping form, freezes the cart into an
// order with computed totals, and records an outbox event for publishing.
// Payment is simulated; there is no real processor behind this.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mhnipu/smart-shopper-galaxy/internal/cart"
	"github.com/mhnipu/smart-shopper-galaxy/internal/domain"
	"github.com/mhnipu/smart-shopper-galaxy/internal/notify"
)

var ErrEmptyCart = errors.New("cart is empty")

const eventTypeOrderPlaced = "order-placed"

// ShippingDetails mirrors the checkout form fields.
type ShippingDetails struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phone_number"`
	OrderNotes  string `json:"order_notes,omitempty"`
}

type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid shipping details: " + strings.Join(e.Problems, "; ")
}

func (d ShippingDetails) Validate() error {
	var problems []string
	if _, err := mail.ParseAddress(d.Email); err != nil {
		problems = append(problems, "please enter a valid email address")
	}
	if len(d.Name) < 2 {
		problems = append(problems, "name must be at least 2 characters")
	}
	if len(d.Address) < 5 {
		problems = append(problems, "please enter your full address")
	}
	if len(d.City) < 2 {
		problems = append(problems, "please enter your city")
	}
	if len(d.State) < 2 {
		problems = append(problems, "please enter your state/province")
	}
	if len(d.ZipCode) < 3 {
		problems = append(problems, "please enter a valid postal code")
	}
	if len(d.Country) < 2 {
		problems = append(problems, "please select your country")
	}
	if len(d.PhoneNumber) < 5 {
		problems = append(problems, "please enter a valid phone number")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

type Service struct {
	repo     RepoInterface
	pricing  cart.PricingConfig
	notifier notify.Notifier
}

func NewService(repo RepoInterface, pricing cart.PricingConfig, notifier notify.Notifier) *Service {
	return &Service{
		repo:     repo,
		pricing:  pricing,
		notifier: notifier,
	}
}

// PlaceOrder turns the given cart contents into a persisted order. A reused
// idempotency key returns the previously created order instead of a
// duplicate.
func (s *Service) PlaceOrder(
	ctx context.Context,
	userID, idempotencyKey string,
	details ShippingDetails,
	items []domain.LineItem) (*domain.Order, error) {

	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}

	existingID, err := s.repo.GetOrderIDByIdempotencyKey(ctx, idempotencyKey)
	if err != nil && !errors.Is(err, ErrIdempotencyKeyNotFound) {
		return nil, fmt.Errorf("failed to check idempotency: %w", err)
	}
	if err == nil {
		log.Printf("checkout: duplicate request, idempotency_key=%s order_id=%s", idempotencyKey, existingID)
		return s.repo.GetOrder(ctx, existingID)
	}

	totals := cart.ComputeTotals(items, s.pricing)

	orderItems := make([]domain.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = domain.OrderItem{
			ProductID:   item.ID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			Subtotal:    item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
	}

	order := &domain.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     orderItems,
		Subtotal:  totals.Subtotal,
		Tax:       totals.Tax,
		Shipping:  totals.Shipping,
		Total:     totals.Total,
		Status:    domain.OrderStatusPlaced,
		CreatedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(map[string]any{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.Total,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	event := &OutboxEvent{
		EventType: eventTypeOrderPlaced,
		Payload:   payload,
	}
	if err := s.repo.CreateOrder(ctx, order, idempotencyKey, event); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.notifier.Notify("Order placed successfully")
	return order, nil
}

// GetOrder returns a previously placed order, for the confirmation page.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.ListOrders(ctx, userID)
}
