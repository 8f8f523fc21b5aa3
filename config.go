package gettranslated

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultServerURL is the production translation service.
const DefaultServerURL = "https://www.gettranslated.ai"

// Config carries the SDK's environment-driven settings. Every field
// can be overridden programmatically through client options.
type Config struct {
	// ServerURL is the base URL of the translation service. Trimmed
	// and stripped of any trailing slash before use.
	ServerURL string `env:"GETTRANSLATED_SERVER_URL" envDefault:"https://www.gettranslated.ai" yaml:"server_url"`

	// AppPackage identifies the embedding application; it suffixes
	// generated anonymous user ids and is reported on init.
	AppPackage string `env:"GETTRANSLATED_APP_PACKAGE" envDefault:"go-app" yaml:"app_package"`

	// DeviceLanguage overrides device locale detection entirely.
	DeviceLanguage string `env:"GETTRANSLATED_DEVICE_LANGUAGE" yaml:"device_language"`

	// SyncInterval is the cadence of the background translation sync
	// while the client is initialized in a non-base language. Zero
	// disables periodic sync; the post-init sync still runs.
	SyncInterval time.Duration `env:"GETTRANSLATED_SYNC_INTERVAL" envDefault:"15m" yaml:"sync_interval"`

	LogLevel   string `env:"LOG_LEVEL"   envDefault:"warn"  yaml:"log_level"`
	LogColored bool   `env:"LOG_COLORED" envDefault:"false" yaml:"log_colored"`

	WorkerPoolCapacity int           `env:"GETTRANSLATED_WORKER_POOL_CAPACITY" envDefault:"16"  yaml:"worker_pool_capacity"`
	WorkerPoolExpiry   time.Duration `env:"GETTRANSLATED_WORKER_POOL_EXPIRY"   envDefault:"10s" yaml:"worker_pool_expiry"`
}

// ConfigFromEnv loads configuration from the process environment.
func ConfigFromEnv() (Config, error) {
	return env.ParseAs[Config]()
}

// LoggingLevel implements the log-level accessor used at logger setup.
func (c Config) LoggingLevel() string {
	return c.LogLevel
}

// LoggingColored reports whether the colored log handler is wanted.
func (c Config) LoggingColored() bool {
	return c.LogColored
}

// Server returns the effective server base URL: trimmed, trailing
// slash stripped, falling back to the default when empty so
// misconfiguration never blanks the endpoint.
func (c Config) Server() string {
	return normalizeServerURL(c.ServerURL, DefaultServerURL)
}

// normalizeServerURL trims raw and strips a trailing slash; an empty
// result keeps current unchanged.
func normalizeServerURL(raw, current string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimSuffix(trimmed, "/")
	if trimmed == "" {
		return current
	}
	return trimmed
}
