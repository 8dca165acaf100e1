package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhnipu/smart-shopper-galaxy/internal/cart"
	"github.com/mhnipu/smart-shopper-galaxy/internal/domain"
	"github.com/mhnipu/smart-shopper-galaxy/internal/notify"
)

type mockRepository struct {
	ordersByKey  map[string]string
	orders       map[string]*domain.Order
	createdOrder *domain.Order
	createdEvent *OutboxEvent
	createdKey   string
	createErr    error
	getErr       error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		ordersByKey: make(map[string]string),
		orders:      make(map[string]*domain.Order),
	}
}

func (m *mockRepository) GetOrderIDByIdempotencyKey(_ context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	id, ok := m.ordersByKey[key]
	if !ok {
		return "", ErrIdempotencyKeyNotFound
	}
	return id, nil
}

func (m *mockRepository) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (m *mockRepository) ListOrders(_ context.Context, userID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockRepository) CreateOrder(_ context.Context, order *domain.Order, key string, event *OutboxEvent) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.createdOrder = order
	m.createdEvent = event
	m.createdKey = key
	m.ordersByKey[key] = order.ID
	m.orders[order.ID] = order
	return nil
}

func (m *mockRepository) GetUnprocessedEvents(context.Context, int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (m *mockRepository) MarkEventAsProcessed(context.Context, int64) error {
	return nil
}

func validDetails() ShippingDetails {
	return ShippingDetails{
		Email:       "buyer@example.com",
		Name:        "Pat Buyer",
		Address:     "1 Long Street",
		City:        "Springfield",
		State:       "IL",
		ZipCode:     "62704",
		Country:     "US",
		PhoneNumber: "555-0100",
	}
}

func cartItems() []domain.LineItem {
	return []domain.LineItem{
		{ID: "p1", Name: "Headphones", Price: decimal.NewFromInt(10), Quantity: 2},
		{ID: "p2", Name: "Keyboard", Price: decimal.NewFromInt(5), Quantity: 1},
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	repo := newMockRepository()
	sut := NewService(repo, cart.DefaultPricing(), notify.Discard{})

	order, err := sut.PlaceOrder(context.Background(), "u1", "key-1", validDetails(), cartItems())
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, domain.OrderStatusPlaced, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "p1", order.Items[0].ProductID)
	assert.True(t, order.Items[0].Subtotal.Equal(decimal.NewFromInt(20)))

	// 25 subtotal, 8% tax, flat shipping below the threshold
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(25)))
	assert.True(t, order.Tax.Equal(decimal.NewFromInt(2)))
	assert.True(t, order.Shipping.Equal(decimal.NewFromInt(10)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(37)))

	require.NotNil(t, repo.createdEvent)
	assert.Equal(t, "order-placed", repo.createdEvent.EventType)
	assert.Equal(t, "key-1", repo.createdKey)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	sut := NewService(newMockRepository(), cart.DefaultPricing(), notify.Discard{})

	_, err := sut.PlaceOrder(context.Background(), "u1", "key-1", validDetails(), nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_InvalidDetails(t *testing.T) {
	sut := NewService(newMockRepository(), cart.DefaultPricing(), notify.Discard{})

	details := validDetails()
	details.Email = "not-an-email"
	details.ZipCode = "1"

	_, err := sut.PlaceOrder(context.Background(), "u1", "key-1", details, cartItems())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Problems, 2)
}

func TestPlaceOrder_DuplicateIdempotencyKeyReturnsExistingOrder(t *testing.T) {
	repo := newMockRepository()
	sut := NewService(repo, cart.DefaultPricing(), notify.Discard{})
	ctx := context.Background()

	first, err := sut.PlaceOrder(ctx, "u1", "key-1", validDetails(), cartItems())
	require.NoError(t, err)

	second, err := sut.PlaceOrder(ctx, "u1", "key-1", validDetails(), cartItems())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.orders, 1)
}

func TestPlaceOrder_RepoError(t *testing.T) {
	repo := newMockRepository()
	repo.createErr = fmt.Errorf("database error")
	sut := NewService(repo, cart.DefaultPricing(), notify.Discard{})

	_, err := sut.PlaceOrder(context.Background(), "u1", "key-1", validDetails(), cartItems())
	require.ErrorContains(t, err, "database error")
}

func TestValidate_AcceptsOptionalNotes(t *testing.T) {
	details := validDetails()
	details.OrderNotes = ""
	assert.NoError(t, details.Validate())

	details.OrderNotes = "leave at the door"
	assert.NoError(t, details.Validate())
}
