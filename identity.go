package gettranslated

import (
	"context"
	"crypto/rand"
	"strings"

	"github.com/pitabwire/util"

	"github.com/gettranslated/gettranslated-go/keys"
	"github.com/gettranslated/gettranslated-go/store"
)

// Anonymous id format: 12 characters drawn from this alphabet, then
// "@" and the app package. The format is shared across SDK ports.
const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"
	idLength   = 12
)

// identityManager owns anonymous id generation and persistence. It
// performs no network or cache work, purely identity bookkeeping.
type identityManager struct {
	store      store.Store
	appPackage string
}

// resolveUserID picks the identity a session runs under. A non-empty
// supplied id wins as-is; otherwise the persisted anonymous id is
// reused, generating and persisting a fresh one when none exists.
func (m *identityManager) resolveUserID(ctx context.Context, supplied string) (string, bool) {
	trimmed := strings.TrimSpace(supplied)
	if trimmed != "" {
		return trimmed, false
	}

	key := keys.Config(keys.SuffixUserID)
	existing, found, err := m.store.Get(ctx, key)
	if err != nil {
		util.Log(ctx).WithError(err).Warn("could not read stored anonymous id")
	}
	if found && existing != "" {
		return existing, true
	}

	userID := randomUserID() + "@" + m.appPackage
	if setErr := m.store.Set(ctx, key, userID); setErr != nil {
		util.Log(ctx).WithError(setErr).Warn("could not persist anonymous id")
	}
	return userID, true
}

// forgetAnonymousID drops the persisted anonymous id so the next
// anonymous session generates a fresh identity. Used on logout.
func (m *identityManager) forgetAnonymousID(ctx context.Context) {
	if err := m.store.Delete(ctx, keys.Config(keys.SuffixUserID)); err != nil {
		util.Log(ctx).WithError(err).Warn("could not remove stored anonymous id")
	}
}

func randomUserID() string {
	buf := make([]byte, idLength)
	_, _ = rand.Read(buf)

	id := make([]byte, idLength)
	for i, b := range buf {
		id[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(id)
}
