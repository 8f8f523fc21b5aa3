package gettranslated

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryNotifiesInRegistrationOrder(t *testing.T) {
	registry := &languageChangeRegistry{}

	var order []string
	registry.subscribe(func(language string) {
		order = append(order, "first:"+language)
	})
	registry.subscribe(func(language string) {
		order = append(order, "second:"+language)
	})

	registry.notify("fr")
	require.Equal(t, []string{"first:fr", "second:fr"}, order)
}

func TestSubscriptionCancel(t *testing.T) {
	registry := &languageChangeRegistry{}

	calls := 0
	sub := registry.subscribe(func(string) { calls++ })

	registry.notify("de")
	require.Equal(t, 1, calls)

	sub.Cancel()
	registry.notify("fr")
	require.Equal(t, 1, calls)

	// Cancel is idempotent.
	sub.Cancel()
}

func TestCancelNilSubscription(t *testing.T) {
	var sub *Subscription
	require.NotPanics(t, func() { sub.Cancel() })
}

func TestListenerMayCancelDuringNotify(t *testing.T) {
	registry := &languageChangeRegistry{}

	var sub *Subscription
	calls := 0
	sub = registry.subscribe(func(string) {
		calls++
		sub.Cancel()
	})

	registry.notify("de")
	registry.notify("fr")
	require.Equal(t, 1, calls)
}

func TestListenersSurviveAcrossNotifications(t *testing.T) {
	registry := &languageChangeRegistry{}

	var got []string
	registry.subscribe(func(language string) {
		got = append(got, language)
	})

	registry.notify("fr")
	registry.notify("de")
	require.Equal(t, []string{"fr", "de"}, got)
}
