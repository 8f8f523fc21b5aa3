// Package gettranslated is the Go client SDK for the GetTranslated
// live translation service.
//
// A Client resolves the language a user should see from server
// overrides, saved preferences and the device locale, fetches string
// translations on demand and keeps a local key-value cache warm via
// background synchronization. Translations are never bundled at build
// time; everything comes from the service.
//
// Typical usage:
//
//	ctx := context.Background()
//	client, err := gettranslated.New(ctx, apiKey)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	client.Initialize(ctx, func(err error) { ... })
//	greeting := client.GetDynamicString(ctx, "Welcome back!", nil)
package gettranslated
