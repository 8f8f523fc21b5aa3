package keys_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gettranslated/gettranslated-go/keys"
)

func TestHash(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want int32
	}{
		{name: "empty", text: "", want: 0},
		{name: "single byte", text: "a", want: 97},
		{name: "two bytes", text: "ab", want: 3105},
		{name: "hello", text: "hello", want: 99162322},
		{name: "capitalized hello", text: "Hello", want: 69609650},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, keys.Hash(tc.text))
		})
	}
}

func TestHashOverflowWraps(t *testing.T) {
	// Long inputs must wrap in 32-bit space rather than grow, and stay
	// deterministic across calls.
	long := ""
	for i := 0; i < 100; i++ {
		long += "overflow-me"
	}
	first := keys.Hash(long)
	require.Equal(t, first, keys.Hash(long))
	require.NotEqual(t, keys.Hash(long+"!"), first)
}

func TestGenerate(t *testing.T) {
	require.Equal(t,
		"ai.gettranslated.sdk_user_u-1_language_override",
		keys.Generate(keys.CategoryUser, "u-1", keys.SuffixLanguageOverride))
}

func TestScopedKeys(t *testing.T) {
	require.Equal(t,
		"ai.gettranslated.sdk_user_alice_server_override",
		keys.User("alice", keys.SuffixServerOverride))
	require.Equal(t,
		"ai.gettranslated.sdk_lang_fr_last_sync",
		keys.Language("fr", keys.SuffixLastSync))
	require.Equal(t,
		"ai.gettranslated.sdk_config_global_user_id",
		keys.Config(keys.SuffixUserID))
}

func TestTranslationKey(t *testing.T) {
	require.Equal(t,
		"ai.gettranslated.sdk_trans_fr69609650_translation",
		keys.Translation("fr", "Hello"))

	// Negative hashes are rendered with their sign, still one single key.
	require.Contains(t, keys.Translation("de", "Hello"), "ai.gettranslated.sdk_trans_de")
	require.NotEqual(t, keys.Translation("fr", "Hello"), keys.Translation("de", "Hello"))
	require.NotEqual(t, keys.Translation("fr", "Hello"), keys.Translation("fr", "Hello!"))
}
