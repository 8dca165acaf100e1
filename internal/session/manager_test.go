package session

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhnipu/smart-shopper-galaxy/internal/domain"
	"github.com/mhnipu/smart-shopper-galaxy/internal/kv"
	"github.com/mhnipu/smart-shopper-galaxy/internal/notify"
)

func TestFor_SameUserGetsSameStores(t *testing.T) {
	sut := NewManager(kv.NewMemoryStore(), notify.Discard{})
	ctx := context.Background()

	a := sut.For(ctx, "u1")
	b := sut.For(ctx, "u1")

	assert.Same(t, a, b)
}

func TestFor_UsersAreIsolated(t *testing.T) {
	sut := NewManager(kv.NewMemoryStore(), notify.Discard{})
	ctx := context.Background()

	item := domain.LineItem{ID: "p1", Name: "Headphones", Price: decimal.NewFromInt(10)}
	sut.For(ctx, "u1").Cart.AddItem(ctx, item, 1)

	assert.Equal(t, 1, sut.For(ctx, "u1").Cart.TotalItems())
	assert.Equal(t, 0, sut.For(ctx, "u2").Cart.TotalItems())
}

func TestFor_RehydratesFromStore(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()

	first := NewManager(store, notify.Discard{})
	item := domain.LineItem{ID: "p1", Name: "Headphones", Price: decimal.NewFromInt(10)}
	first.For(ctx, "u1").Cart.AddItem(ctx, item, 2)
	first.For(ctx, "u1").Wishlist.AddItem(ctx, item)

	second := NewManager(store, notify.Discard{})
	stores := second.For(ctx, "u1")
	require.Equal(t, 2, stores.Cart.TotalItems())
	assert.True(t, stores.Wishlist.Contains("p1"))
}
