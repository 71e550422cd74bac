package cache

import (
	"context"
	"errors"
	"fmt"
)

// ComputeFunc produces the value for a key that is not cached yet.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// GetOrCompute returns the stored value for key, or runs compute, persists
// its result and returns it. fresh reports whether compute ran. A failed
// compute leaves the store untouched.
func GetOrCompute(ctx context.Context, store Store, key string, compute ComputeFunc) (data []byte, fresh bool, err error) {
	data, err = store.Get(ctx, key)
	if err == nil {
		return data, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, fmt.Errorf("read %s: %w", store.Location(key), err)
	}

	data, err = compute(ctx)
	if err != nil {
		return nil, false, err
	}

	if err := store.Put(ctx, key, data); err != nil {
		return nil, false, fmt.Errorf("write %s: %w", store.Location(key), err)
	}
	return data, true, nil
}
