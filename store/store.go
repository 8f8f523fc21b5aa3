// Package store defines the key-value persistence contract the SDK
// keeps its state in: anonymous identities, language preferences,
// sync timestamps and cached translations.
//
// Entries have no expiry; they live until explicitly removed or
// overwritten. The default in-memory implementation suits a single
// process; the redis and valkey subpackages persist SDK state shared
// between processes.
package store

import "context"

// Store is the low-level key-value interface. Values are strings and
// 64-bit integers, mirroring the platform preference stores the other
// SDK ports persist into.
type Store interface {
	// Get retrieves a string value, reporting whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a string value, overwriting any previous one.
	Set(ctx context.Context, key, value string) error

	// GetInt64 retrieves an integer value, zero when the key is absent.
	GetInt64(ctx context.Context, key string) (int64, error)

	// SetInt64 stores an integer value, overwriting any previous one.
	SetInt64(ctx context.Context, key string, value int64) error

	// Delete removes a key. Removing an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
