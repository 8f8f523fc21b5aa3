// Package keys derives the storage keys the SDK persists state under.
//
// The key scheme {PREFIX}_{CATEGORY}_{IDENTIFIER}_{SUFFIX} and the
// 32-bit polynomial text hash are a cross-platform contract: every
// GetTranslated SDK port must derive byte-identical keys so cached
// state can be shared and compared across platforms.
package keys

import "fmt"

// Prefix namespaces every key the SDK writes.
const Prefix = "ai.gettranslated.sdk"

// Storage categories.
const (
	CategoryUser        = "user"
	CategoryLanguage    = "lang"
	CategoryTranslation = "trans"
	CategorySync        = "sync"
	CategoryConfig      = "config"
)

// Key suffixes.
const (
	SuffixLanguageOverride = "language_override"
	SuffixServerOverride   = "server_override"
	SuffixLastSync         = "last_sync"
	SuffixUserID           = "user_id"
	SuffixAppName          = "app_name"
	SuffixTranslation      = "translation"
)

// Generate builds a key following {PREFIX}_{CATEGORY}_{IDENTIFIER}_{SUFFIX}.
func Generate(category, identifier, suffix string) string {
	return fmt.Sprintf("%s_%s_%s_%s", Prefix, category, identifier, suffix)
}

// User builds a user-scoped key: {PREFIX}_user_{userID}_{suffix}.
func User(userID, suffix string) string {
	return Generate(CategoryUser, userID, suffix)
}

// Language builds a language-scoped key: {PREFIX}_lang_{language}_{suffix}.
func Language(language, suffix string) string {
	return Generate(CategoryLanguage, language, suffix)
}

// Config builds a global configuration key: {PREFIX}_config_global_{suffix}.
func Config(suffix string) string {
	return Generate(CategoryConfig, "global", suffix)
}

// Translation builds a translation cache key:
// {PREFIX}_trans_{language}{hash}_translation.
func Translation(language, text string) string {
	return Generate(CategoryTranslation, fmt.Sprintf("%s%d", language, Hash(text)), SuffixTranslation)
}

// Hash accumulates h = h*31 + byte over the UTF-8 bytes of text in
// wrapping signed 32-bit arithmetic, matching Java's String.hashCode.
// Every SDK port must produce identical values for identical text.
func Hash(text string) int32 {
	var h int32
	for _, b := range []byte(text) {
		h = h*31 + int32(b)
	}
	return h
}
