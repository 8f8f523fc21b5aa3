package redis_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gettranslated/gettranslated-go/store"
	"github.com/gettranslated/gettranslated-go/store/redis"
)

// Tests run only against a live server named by
// GETTRANSLATED_TEST_REDIS_ADDR, e.g. "localhost:6379".
func newTestStore(t *testing.T) (context.Context, store.Store) {
	t.Helper()

	addr := os.Getenv("GETTRANSLATED_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("GETTRANSLATED_TEST_REDIS_ADDR not set")
	}

	s, err := redis.New(redis.Options{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	return context.Background(), s
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx, s := newTestStore(t)

	key := "gettranslated:test:greeting"
	t.Cleanup(func() { _ = s.Delete(ctx, key) })

	_, found, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Set(ctx, key, "bonjour"))

	value, found, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "bonjour", value)

	require.NoError(t, s.Delete(ctx, key))
	_, found, err = s.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, found)
}

func TestRedisStoreInt64(t *testing.T) {
	ctx, s := newTestStore(t)

	key := "gettranslated:test:last_sync"
	t.Cleanup(func() { _ = s.Delete(ctx, key) })

	value, err := s.GetInt64(ctx, key)
	require.NoError(t, err)
	require.Zero(t, value)

	require.NoError(t, s.SetInt64(ctx, key, 1724900000000))
	value, err = s.GetInt64(ctx, key)
	require.NoError(t, err)
	require.Equal(t, int64(1724900000000), value)
}

func TestRedisNewRejectsUnreachableServer(t *testing.T) {
	if os.Getenv("GETTRANSLATED_TEST_REDIS_ADDR") == "" {
		t.Skip("GETTRANSLATED_TEST_REDIS_ADDR not set")
	}

	_, err := redis.New(redis.Options{Addr: "localhost:1"})
	require.Error(t, err)
}
