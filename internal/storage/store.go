// Package storage defines the key-value port the services persist through.
package storage

import (
	"context"
)

// Record is one key and its stored value.
type Record struct {
	Key   string
	Value []byte
}

// Store is an opaque key-value store. It offers no transactions: concurrent
// Set calls on the same key are last-write-wins.
type Store interface {
	// Get returns the value stored at key, or a not_found AppError.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set creates or replaces the value at key.
	Set(ctx context.Context, key string, value []byte) error
	// GetByPrefix returns every record whose key starts with prefix,
	// ordered by key.
	GetByPrefix(ctx context.Context, prefix string) ([]Record, error)
	Close() error
}
