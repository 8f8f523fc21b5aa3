package gettranslated

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gettranslated/gettranslated-go/keys"
	"github.com/gettranslated/gettranslated-go/store"
)

var anonymousIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{12}@com\.example\.app$`)

func newTestIdentityManager() *identityManager {
	return &identityManager{
		store:      store.NewInMemoryStore(),
		appPackage: "com.example.app",
	}
}

func TestResolveUserIDSupplied(t *testing.T) {
	ctx := context.Background()
	m := newTestIdentityManager()

	userID, anonymous := m.resolveUserID(ctx, "  alice  ")
	require.Equal(t, "alice", userID)
	require.False(t, anonymous)

	// Supplied ids are never persisted as the anonymous identity.
	_, found, err := m.store.Get(ctx, keys.Config(keys.SuffixUserID))
	require.NoError(t, err)
	require.False(t, found)
}

func TestResolveUserIDGeneratesAnonymous(t *testing.T) {
	ctx := context.Background()
	m := newTestIdentityManager()

	userID, anonymous := m.resolveUserID(ctx, "")
	require.True(t, anonymous)
	require.Regexp(t, anonymousIDPattern, userID)

	persisted, found, err := m.store.Get(ctx, keys.Config(keys.SuffixUserID))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, userID, persisted)
}

func TestResolveUserIDReusesPersisted(t *testing.T) {
	ctx := context.Background()
	m := newTestIdentityManager()

	first, _ := m.resolveUserID(ctx, "")
	second, anonymous := m.resolveUserID(ctx, "   ")
	require.True(t, anonymous)
	require.Equal(t, first, second)
}

func TestForgetAnonymousID(t *testing.T) {
	ctx := context.Background()
	m := newTestIdentityManager()

	first, _ := m.resolveUserID(ctx, "")
	m.forgetAnonymousID(ctx)

	second, anonymous := m.resolveUserID(ctx, "")
	require.True(t, anonymous)
	require.NotEqual(t, first, second)
}

func TestRandomUserIDShape(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		id := randomUserID()
		require.Len(t, id, 12)
		require.Regexp(t, `^[A-Za-z0-9]{12}$`, id)
		seen[id] = struct{}{}
	}
	require.Greater(t, len(seen), 1)
}
