// Package valkey provides a Valkey-backed SDK state store using the
// official Valkey client.
package valkey

import (
	"context"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/gettranslated/gettranslated-go/store"
)

// Store is a Valkey-backed store implementation.
type Store struct {
	client valkey.Client
}

const connectionTimeout = 5 * time.Second

// New creates a new Valkey store from a connection URL such as
// valkey://localhost:6379.
func New(url string) (store.Store, error) {
	valkeyOpts, err := valkey.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client, err := valkey.NewClient(valkeyOpts)
	if err != nil {
		return nil, err
	}

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if pingErr := client.Do(ctx, client.B().Ping().Build()).Error(); pingErr != nil {
		client.Close()
		return nil, pingErr
	}

	return &Store{client: client}, nil
}

// Get retrieves a string value.
func (vs *Store) Get(ctx context.Context, key string) (string, bool, error) {
	resp := vs.client.Do(ctx, vs.client.B().Get().Key(key).Build())

	if err := resp.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}

	val, err := resp.ToString()
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores a string value. SDK state never expires.
func (vs *Store) Set(ctx context.Context, key, value string) error {
	cmd := vs.client.B().Set().Key(key).Value(value).Build()
	return vs.client.Do(ctx, cmd).Error()
}

// GetInt64 retrieves an integer value, zero when absent.
func (vs *Store) GetInt64(ctx context.Context, key string) (int64, error) {
	val, ok, err := vs.Get(ctx, key)
	if err != nil || !ok {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// SetInt64 stores an integer value as its decimal form so state stays
// portable between backends.
func (vs *Store) SetInt64(ctx context.Context, key string, value int64) error {
	return vs.Set(ctx, key, strconv.FormatInt(value, 10))
}

// Delete removes a key.
func (vs *Store) Delete(ctx context.Context, key string) error {
	cmd := vs.client.B().Del().Key(key).Build()
	return vs.client.Do(ctx, cmd).Error()
}

// Close closes the Valkey connection.
func (vs *Store) Close() error {
	vs.client.Close()
	return nil
}
