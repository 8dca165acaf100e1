package fulfillment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhnipu/smart-shopper-galaxy/internal/checkout"
	"github.com/mhnipu/smart-shopper-galaxy/internal/domain"
)

type mockOrderStore struct {
	mu      sync.Mutex
	updates map[string]domain.OrderStatus
	err     error
}

func newMockOrderStore() *mockOrderStore {
	return &mockOrderStore{updates: make(map[string]domain.OrderStatus)}
}

func (m *mockOrderStore) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.updates[id] = status
	return nil
}

func (m *mockOrderStore) statusOf(id string) (domain.OrderStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.updates[id]
	return s, ok
}

type mockReader struct {
	mu       sync.Mutex
	messages []kafka.Message
	closed   bool
}

func (m *mockReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	m.mu.Lock()
	if len(m.messages) > 0 {
		msg := m.messages[0]
		m.messages = m.messages[1:]
		m.mu.Unlock()
		return msg, nil
	}
	m.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, context.Canceled
}

func (m *mockReader) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func TestConsumer_CompletesOrder(t *testing.T) {
	store := newMockOrderStore()
	reader := &mockReader{messages: []kafka.Message{
		{Value: []byte(`{"order_id":"order-1","user_id":"user-1","total":"37.00"}`)},
	}}
	c := &Consumer{store: store, reader: reader}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, ok := store.statusOf("order-1")
		return ok
	}, time.Second, 10*time.Millisecond)

	status, _ := store.statusOf("order-1")
	assert.Equal(t, domain.OrderStatusCompleted, status)

	cancel()
	<-done
}

func TestConsumer_SkipsMalformedMessage(t *testing.T) {
	store := newMockOrderStore()
	reader := &mockReader{messages: []kafka.Message{
		{Value: []byte(`not json`)},
		{Value: []byte(`{"user_id":"no-order-id"}`)},
		{Value: []byte(`{"order_id":"order-2"}`)},
	}}
	c := &Consumer{store: store, reader: reader}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, ok := store.statusOf("order-2")
		return ok
	}, time.Second, 10*time.Millisecond)

	store.mu.Lock()
	assert.Len(t, store.updates, 1)
	store.mu.Unlock()

	cancel()
	<-done
}

func TestConsumer_UnknownOrderIsSkipped(t *testing.T) {
	store := newMockOrderStore()
	store.err = checkout.ErrOrderNotFound
	reader := &mockReader{messages: []kafka.Message{
		{Value: []byte(`{"order_id":"ghost"}`)},
	}}
	c := &Consumer{store: store, reader: reader}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	c.Run(ctx)

	_, ok := store.statusOf("ghost")
	assert.False(t, ok)
}

func TestConsumer_StoreErrorDoesNotStopRun(t *testing.T) {
	store := newMockOrderStore()
	store.err = errors.New("db down")
	reader := &mockReader{messages: []kafka.Message{
		{Value: []byte(`{"order_id":"order-3"}`)},
		{Value: []byte(`{"order_id":"order-4"}`)},
	}}
	c := &Consumer{store: store, reader: reader}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		reader.mu.Lock()
		defer reader.mu.Unlock()
		return len(reader.messages) == 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	store.mu.Lock()
	assert.Empty(t, store.updates)
	store.mu.Unlock()
}

func TestConsumer_Close(t *testing.T) {
	reader := &mockReader{}
	c := &Consumer{store: newMockOrderStore(), reader: reader}

	c.Close()

	reader.mu.Lock()
	assert.True(t, reader.closed)
	reader.mu.Unlock()
}
