package storage

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound indicates the key has no value in the store
	ErrKeyNotFound = errors.New("storage.key_not_found")

	// ErrEmptyKey indicates an empty key was passed to an operation
	ErrEmptyKey = errors.New("storage.empty_key")

	// ErrStorageClosed indicates the store was used after Close
	ErrStorageClosed = errors.New("storage.closed")
)

// Storage defines the interface for durable key-value persistence.
// Writes are last-write-wins; no multi-key transactional guarantee is
// assumed by callers.
type Storage interface {
	// Get retrieves the value stored under key.
	// Returns ErrKeyNotFound if the key has no value.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the value stored under key.
	// Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}
