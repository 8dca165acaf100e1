// Package cart maintains an ordered, duplicate-free-by-id collection of line
// items, written through to a kv snapshot on every mutation. In-memory state
// is authoritative; durability is best-effort.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/mhnipu/smart-shopper-galaxy/internal/domain"
	"github.com/mhnipu/smart-shopper-galaxy/internal/kv"
	"github.com/mhnipu/smart-shopper-galaxy/internal/notify"
)

type Cart struct {
	mu       sync.Mutex
	items    []domain.LineItem
	store    kv.Store
	key      string
	notifier notify.Notifier
}

// New rehydrates the cart persisted under key, or starts empty when nothing
// usable is stored.
func New(ctx context.Context, store kv.Store, key string, notifier notify.Notifier) *Cart {
	c := &Cart{
		store:    store,
		key:      key,
		notifier: notifier,
	}

	data, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("cart: load %q: %v", key, err)
		}
		return c
	}
	if err := json.Unmarshal(data, &c.items); err != nil {
		log.Printf("cart: corrupt snapshot %q, starting empty: %v", key, err)
		c.items = nil
	}
	return c
}

// AddItem inserts item at the end of the collection, or increments the
// quantity of an existing entry with the same id. Quantities below 1 clamp
// to 1. Malformed items are dropped with a log line; adding never fails.
func (c *Cart) AddItem(ctx context.Context, item domain.LineItem, quantity int) {
	if err := item.Validate(); err != nil {
		log.Printf("cart: rejecting item: %v", err)
		return
	}
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	merged := false
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = quantity
		c.items = append(c.items, item)
	}
	c.persistLocked(ctx)
	c.mu.Unlock()

	if merged {
		c.notifier.Notify(fmt.Sprintf("Updated %s quantity in cart", item.Name))
	} else {
		c.notifier.Notify(fmt.Sprintf("%s added to cart", item.Name))
	}
}

// UpdateQuantity sets the quantity of the entry with the given id. Values
// below 1 clamp to 1; decrementing never deletes. Unknown ids are a no-op.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			c.persistLocked(ctx)
			return
		}
	}
}

// RemoveItem deletes the entry with the given id. Absent ids are a no-op.
func (c *Cart) RemoveItem(ctx context.Context, id string) {
	c.mu.Lock()
	removed := false
	name := ""
	for i := range c.items {
		if c.items[i].ID == id {
			removed = true
			name = c.items[i].Name
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	if removed {
		c.persistLocked(ctx)
	}
	c.mu.Unlock()

	if removed {
		c.notifier.Notify(fmt.Sprintf("%s removed from cart", name))
	}
}

// Clear empties the collection unconditionally.
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	c.items = nil
	c.persistLocked(ctx)
	c.mu.Unlock()

	c.notifier.Notify("Cart cleared")
}

// Items returns a copy of the collection in insertion order.
func (c *Cart) Items() []domain.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems is the sum of quantities over all entries.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

func (c *Cart) Contains(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// persistLocked writes the whole snapshot through to the store. Failures
// are logged and swallowed: the session keeps running on in-memory state.
func (c *Cart) persistLocked(ctx context.Context) {
	data, err := json.Marshal(c.items)
	if err != nil {
		log.Printf("cart: marshal %q: %v", c.key, err)
		return
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		log.Printf("cart: persist %q: %v", c.key, err)
	}
}
