// Package cache holds the write-once stores behind the pipeline's stage
// gates. A stored value is never overwritten by the gate; deleting it is how
// an operator forces a stage to run again.
package cache

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when the key has no value.
var ErrNotFound = errors.New("cache: not found")

// Store persists opaque values under episode keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	// Location describes where key lives, for operator-facing messages.
	Location(key string) string
}
