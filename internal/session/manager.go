// Package session hands out the per-user cart and wishlist instances. Each
// pair persists under its own keys and lives for the life of the process.
package session

import (
	"context"
	"sync"

	"github.com/mhnipu/smart-shopper-galaxy/internal/cart"
	"github.com/mhnipu/smart-shopper-galaxy/internal/kv"
	"github.com/mhnipu/smart-shopper-galaxy/internal/notify"
	"github.com/mhnipu/smart-shopper-galaxy/internal/wishlist"
)

type Stores struct {
	Cart     *cart.Cart
	Wishlist *wishlist.Wishlist
}

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Stores
	store    kv.Store
	notifier notify.Notifier
}

func NewManager(store kv.Store, notifier notify.Notifier) *Manager {
	return &Manager{
		sessions: make(map[string]*Stores),
		store:    store,
		notifier: notifier,
	}
}

// For returns the stores for the given user, rehydrating them from the kv
// store on first access.
func (m *Manager) For(ctx context.Context, userID string) *Stores {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s
	}

	s := &Stores{
		Cart:     cart.New(ctx, m.store, "cart:"+userID, m.notifier),
		Wishlist: wishlist.New(ctx, m.store, "wishlist:"+userID, m.notifier),
	}
	m.sessions[userID] = s
	return s
}
