package gettranslated

import (
	"context"

	"github.com/pitabwire/util"

	"github.com/gettranslated/gettranslated-go/keys"
	"github.com/gettranslated/gettranslated-go/store"
)

// translationCache maps (language, source text) to translated strings
// in the key-value store. Entries have no expiry; sync and individual
// fetches overwrite with last-write-wins semantics. Store failures
// degrade to cache misses so translation flow never breaks on a bad
// backend.
type translationCache struct {
	store store.Store
}

func (c *translationCache) get(ctx context.Context, lang, text string) (string, bool) {
	value, found, err := c.store.Get(ctx, keys.Translation(lang, text))
	if err != nil {
		util.Log(ctx).WithError(err).Warn("translation cache read failed")
		return "", false
	}
	return value, found
}

func (c *translationCache) put(ctx context.Context, lang, text, translation string) {
	if err := c.store.Set(ctx, keys.Translation(lang, text), translation); err != nil {
		util.Log(ctx).WithError(err).Warn("translation cache write failed")
	}
}

func (c *translationCache) remove(ctx context.Context, lang, text string) {
	if err := c.store.Delete(ctx, keys.Translation(lang, text)); err != nil {
		util.Log(ctx).WithError(err).Warn("translation cache delete failed")
	}
}
