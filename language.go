package gettranslated

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/pitabwire/util"
	"golang.org/x/text/language"
)

// resolveLanguage picks the active language. Precedence, first
// applicable rule wins:
//
//  1. server override, verbatim;
//  2. saved user preference, when it is a supported language;
//  3. best device-language match against the supported set, falling
//     back to the base language and finally the first supported
//     language (lexicographic, so ties resolve deterministically).
//
// Persisting or clearing the server override is the caller's job;
// this function only decides.
func resolveLanguage(serverOverride, savedPreference string, supported []string, baseLanguage, deviceLanguage string) string {
	if serverOverride != "" {
		return serverOverride
	}

	if savedPreference != "" && containsLanguage(supported, savedPreference) {
		return savedPreference
	}

	fallback := baseLanguage
	if fallback == "" {
		fallback = "en"
	}
	if len(supported) == 0 {
		return fallback
	}

	return bestLanguageMatch(supported, deviceLanguage, fallback)
}

// bestLanguageMatch finds the supported language closest to the
// device language: exact match, then the base subtag ("en-US" → "en"),
// then any supported language sharing that base-subtag prefix, then
// the fallback when supported, then the first supported language.
func bestLanguageMatch(supported []string, deviceLanguage, fallback string) string {
	available := sortedLanguages(supported)

	if containsLanguage(available, deviceLanguage) {
		return deviceLanguage
	}

	base := baseSubtag(deviceLanguage)
	if containsLanguage(available, base) {
		return base
	}

	for _, lang := range available {
		if base != "" && strings.HasPrefix(lang, base) {
			return lang
		}
	}

	if containsLanguage(available, fallback) {
		return fallback
	}

	return available[0]
}

// baseSubtag returns the portion of a language tag before the first
// "-" or "_" separator.
func baseSubtag(lang string) string {
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		return lang[:i]
	}
	return lang
}

func containsLanguage(languages []string, lang string) bool {
	if lang == "" {
		return false
	}
	for _, l := range languages {
		if l == lang {
			return true
		}
	}
	return false
}

func sortedLanguages(languages []string) []string {
	sorted := make([]string, len(languages))
	copy(sorted, languages)
	sort.Strings(sorted)
	return sorted
}

// Locale environment variables, in precedence order.
var localeEnvVars = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// detectDeviceLanguage reads the device language from configuration
// or the process locale environment, normalised to a BCP 47 tag.
// Falls back to "en" when nothing usable is present.
func detectDeviceLanguage(ctx context.Context, cfg Config) string {
	if lang := normalizeLocale(cfg.DeviceLanguage); lang != "" {
		return lang
	}

	for _, name := range localeEnvVars {
		if lang := normalizeLocale(os.Getenv(name)); lang != "" {
			util.Log(ctx).WithField("source", name).WithField("language", lang).Debug("detected device language")
			return lang
		}
	}

	util.Log(ctx).Debug("no device language detected, using fallback: en")
	return "en"
}

// normalizeLocale converts a raw locale string such as "en_US.UTF-8"
// into a canonical tag such as "en-US". Returns "" for values that do
// not denote a language.
func normalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	if raw == "" || raw == "C" || raw == "POSIX" {
		return ""
	}

	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return ""
	}
	return tag.String()
}
