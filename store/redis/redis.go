// Package redis provides a Redis-backed SDK state store.
package redis

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gettranslated/gettranslated-go/store"
)

// Options contains configuration for the Redis store.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Store is a Redis-backed store implementation.
type Store struct {
	client *redis.Client
}

const connectionTimeout = 5 * time.Second

// New creates a new Redis store.
func New(opts Options) (store.Store, error) {
	// Parse address to handle redis:// scheme
	addr := opts.Addr
	if parsedURL, err := url.Parse(opts.Addr); err == nil && parsedURL.Scheme == "redis" {
		addr = parsedURL.Host
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{client: client}, nil
}

// Get retrieves a string value.
func (rs *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := rs.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

// Set stores a string value. SDK state never expires.
func (rs *Store) Set(ctx context.Context, key, value string) error {
	return rs.client.Set(ctx, key, value, 0).Err()
}

// GetInt64 retrieves an integer value, zero when absent.
func (rs *Store) GetInt64(ctx context.Context, key string) (int64, error) {
	val, ok, err := rs.Get(ctx, key)
	if err != nil || !ok {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// SetInt64 stores an integer value as its decimal form so state stays
// portable between backends.
func (rs *Store) SetInt64(ctx context.Context, key string, value int64) error {
	return rs.Set(ctx, key, strconv.FormatInt(value, 10))
}

// Delete removes a key.
func (rs *Store) Delete(ctx context.Context, key string) error {
	return rs.client.Del(ctx, key).Err()
}

// Close closes the Redis connection.
func (rs *Store) Close() error {
	return rs.client.Close()
}
