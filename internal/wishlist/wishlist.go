// Package wishlist is the presence-set instantiation of the persisted
// collection pattern: entries carry product metadata but no quantity, and
// adding an existing id changes nothing.
package wishlist

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

type Wishlist struct {
	mu       sync.Mutex
	items    []domain.LineItem
	store    kv.Store
	key      string
	notifier notify.Notifier
}

func New(ctx context.Context, store kv.Store, key string, notifier notify.Notifier) *Wishlist {
	w := &Wishlist{
		store:    store,
		key:      key,
		notifier: notifier,
	}

	data, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("wishlist: load %q: %v", key, err)
		}
		return w
	}
	if err := json.Unmarshal(data, &w.items); err != nil {
		log.Printf("wishlist: corrupt snapshot %q, starting empty: %v", key, err)
		w.items = nil
	}
	return w
}

// AddItem appends item unless an entry with the same id already exists, in
// which case the set is unchanged and only an informational notification
// fires. Returns true when the item was actually added.
func (w *Wishlist) AddItem(ctx context.Context, item domain.LineItem) bool {
	if err := item.Validate(); err != nil {
		log.Printf("wishlist: rejecting item: %v", err)
		return false
	}
	item.Quantity = 0 // wishlist entries are presence records

	w.mu.Lock()
	exists := false
	for i := range w.items {
		if w.items[i].ID == item.ID {
			exists = true
			break
		}
	}
	if !exists {
		w.items = append(w.items, item)
		w.persistLocked(ctx)
	}
	w.mu.Unlock()

	if exists {
		w.notifier.Notify(fmt.Sprintf("%s is already in your wishlist", item.Name))
		return false
	}
	w.notifier.Notify(fmt.Sprintf("%s added to wishlist", item.Name))
	return true
}

// RemoveItem deletes the entry with the given id. Absent ids are a no-op.
func (w *Wishlist) RemoveItem(ctx context.Context, id string) {
	w.mu.Lock()
	removed := false
	name := ""
	for i := range w.items {
		if w.items[i].ID == id {
			removed = true
			name = w.items[i].Name
			w.items = append(w.items[:i], w.items[i+1:]...)
			break
		}
	}
	if removed {
		w.persistLocked(ctx)
	}
	w.mu.Unlock()

	if removed {
		w.notifier.Notify(fmt.Sprintf("%s removed from wishlist", name))
	}
}

func (w *Wishlist) Clear(ctx context.Context) {
	w.mu.Lock()
	w.items = nil
	w.persistLocked(ctx)
	w.mu.Unlock()

	w.notifier.Notify("Wishlist cleared")
}

// Contains reports whether an entry with the given id exists.
func (w *Wishlist) Contains(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, item := range w.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Items returns a copy of the set in insertion order.
func (w *Wishlist) Items() []domain.LineItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]domain.LineItem, len(w.items))
	copy(out, w.items)
	return out
}

// TotalItems is the entry count.
func (w *Wishlist) TotalItems() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

func (w *Wishlist) persistLocked(ctx context.Context) {
	data, err := json.Marshal(w.items)
	if err != nil {
		log.Printf("wishlist: marshal %q: %v", w.key, err)
		return
	}
	if err := w.store.Set(ctx, w.key, data); err != nil {
		log.Printf("wishlist: persist %q: %v", w.key, err)
	}
}
