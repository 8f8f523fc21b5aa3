package store

import (
	"context"
	"strconv"
	"sync"
)

// InMemoryStore is a thread-safe in-memory store implementation. It
// is the default backend and doubles as the test double; state does
// not survive the process.
type InMemoryStore struct {
	items sync.Map // map[string]string
}

// NewInMemoryStore creates a new in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Get retrieves a string value.
func (s *InMemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := s.items.Load(key)
	if !ok {
		return "", false, nil
	}

	str, ok := value.(string)
	if !ok {
		return "", false, nil
	}
	return str, true, nil
}

// Set stores a string value.
func (s *InMemoryStore) Set(_ context.Context, key, value string) error {
	s.items.Store(key, value)
	return nil
}

// GetInt64 retrieves an integer value, zero when absent.
func (s *InMemoryStore) GetInt64(ctx context.Context, key string) (int64, error) {
	str, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return 0, err
	}

	value, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, err
	}
	return value, nil
}

// SetInt64 stores an integer value.
func (s *InMemoryStore) SetInt64(ctx context.Context, key string, value int64) error {
	return s.Set(ctx, key, strconv.FormatInt(value, 10))
}

// Delete removes a key.
func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.items.Delete(key)
	return nil
}

// Close releases resources. The in-memory store holds none.
func (s *InMemoryStore) Close() error {
	return nil
}
