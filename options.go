package gettranslated

import (
	"context"
	"net/http"
	"time"

	"github.com/pitabwire/util"

	"github.com/gettranslated/gettranslated-go/store"
	"github.com/gettranslated/gettranslated-go/workerpool"
)

// Option configures a client at construction time.
type Option func(ctx context.Context, c *Client)

// WithUserID fixes the identity the first Initialize runs under,
// instead of an anonymous generated id.
func WithUserID(userID string) Option {
	return func(_ context.Context, c *Client) {
		c.suppliedUserID = userID
	}
}

// WithServerURL points the client at a different translation service,
// typically a staging environment or a local test server.
func WithServerURL(rawURL string) Option {
	return func(_ context.Context, c *Client) {
		c.cfg.ServerURL = normalizeServerURL(rawURL, c.cfg.ServerURL)
	}
}

// WithAppPackage sets the application package identifier appended to
// generated anonymous ids.
func WithAppPackage(appPackage string) Option {
	return func(_ context.Context, c *Client) {
		if appPackage != "" {
			c.cfg.AppPackage = appPackage
		}
	}
}

// WithConfig replaces the environment-derived configuration wholesale.
func WithConfig(cfg Config) Option {
	return func(_ context.Context, c *Client) {
		c.cfg = cfg
	}
}

// WithStore supplies the key-value store backing identities, language
// preferences, sync timestamps and cached translations. Defaults to
// the in-memory store.
func WithStore(s store.Store) Option {
	return func(_ context.Context, c *Client) {
		c.store = s
	}
}

// WithHTTPClient supplies the HTTP client used for all service calls.
func WithHTTPClient(client *http.Client) Option {
	return func(_ context.Context, c *Client) {
		c.httpClient = client
	}
}

// WithLogger supplies a preconfigured logger.
func WithLogger(log *util.LogEntry) Option {
	return func(_ context.Context, c *Client) {
		c.log = log
	}
}

// WithWorkerPool supplies the pool that runs background requests.
func WithWorkerPool(pool workerpool.Pool) Option {
	return func(_ context.Context, c *Client) {
		c.pool = pool
	}
}

// WithSyncInterval sets the periodic sync cadence. Zero or negative
// disables periodic sync; on-demand sync still works.
func WithSyncInterval(interval time.Duration) Option {
	return func(_ context.Context, c *Client) {
		c.cfg.SyncInterval = interval
	}
}
