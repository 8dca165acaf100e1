// Package kv is the durable snapshot store behind the cart, wishlist,
// currency selection and auth session. Values are whole JSON snapshots,
// overwritten on every mutation and read once at startup.
package kv

import (
	"context"
	"errors"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("key not found")
