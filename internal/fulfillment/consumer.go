// Package fulfillment consumes published order events and moves the orders
// to their terminal status. Fulfillment itself is simulated: every consumed
// order completes.
package fulfillment

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/mhnipu/smart-shopper-galaxy/internal/checkout"
	"github.com/mhnipu/smart-shopper-galaxy/internal/domain"
)

const consumerTopic = "storefront-orders"

// OrderStore is the slice of the checkout repository the consumer needs.
type OrderStore interface {
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type orderPlacedEvent struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
}

type Consumer struct {
	store  OrderStore
	reader messageReader
}

func NewConsumer(store OrderStore, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    consumerTopic,
		GroupID:  "storefront-fulfillment",
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{store: store, reader: reader}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		log.Printf("fulfillment: error closing kafka reader: %v", err)
	}
}

func (c *Consumer) processMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Printf("fulfillment: error reading message: %v", err)
		return
	}

	var event orderPlacedEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		log.Printf("fulfillment: error parsing message: %v", err)
		return
	}
	if event.OrderID == "" {
		log.Printf("fulfillment: message without order_id, skipping")
		return
	}

	if err := c.store.UpdateOrderStatus(ctx, event.OrderID, domain.OrderStatusCompleted); err != nil {
		if errors.Is(err, checkout.ErrOrderNotFound) {
			log.Printf("fulfillment: order %s not found, skipping", event.OrderID)
			return
		}
		log.Printf("fulfillment: failed to complete order %s: %v", event.OrderID, err)
		return
	}

	log.Printf("fulfillment: order %s completed for user %s", event.OrderID, event.UserID)
}
