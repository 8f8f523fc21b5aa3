package gettranslated

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pitabwire/util"

	"github.com/gettranslated/gettranslated-go/keys"
	"github.com/gettranslated/gettranslated-go/store"
	"github.com/gettranslated/gettranslated-go/workerpool"
)

type contextKey string

func (c contextKey) String() string {
	return "gettranslated/" + string(c)
}

const ctxKeyClient = contextKey("clientKey")

// ToContext pushes a client into the supplied context for propagation.
func ToContext(ctx context.Context, client *Client) context.Context {
	return context.WithValue(ctx, ctxKeyClient, client)
}

// FromContext extracts a client from the supplied context if any exists.
func FromContext(ctx context.Context) *Client {
	client, ok := ctx.Value(ctxKeyClient).(*Client)
	if !ok {
		return nil
	}
	return client
}

// InitCallback receives the outcome of Initialize, Login and Logout.
// A nil error means success; otherwise the error is an *Error whose
// Code is 0 for network/parse/validation failures and the HTTP status
// for server rejections.
type InitCallback func(err error)

// TranslationCallback receives the asynchronous outcome of a
// translation request.
type TranslationCallback func(translation string, err error)

// Client is the SDK handle. It owns the key-value store, the network
// gateway, the worker pool and the language-change registry, and holds
// the session for the currently active identity. One client per
// process is the expected shape; identity-changing operations
// (Initialize, Login, Logout) are serialized internally.
type Client struct {
	apiKey string
	cfg    Config
	log    *util.LogEntry

	store      store.Store
	pool       workerpool.Pool
	gateway    *gateway
	identity   *identityManager
	cache      *translationCache
	registry   *languageChangeRegistry
	httpClient *http.Client

	suppliedUserID string

	mu         sync.Mutex
	current    *session
	syncOnce   sync.Once
	syncCancel context.CancelFunc
}

// session is the state for one identity. A new session is built for
// every Initialize, Login and Logout; the replaced session's in-flight
// callbacks detect the swap and drop their results.
type session struct {
	userID    string
	anonymous bool

	deviceLanguage string

	mu           sync.RWMutex
	appName      string
	language     string
	baseLanguage string
	supported    map[string]struct{}
	initialized  bool
}

// New creates a client for the given API key. No network traffic
// happens until Initialize is called.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	c := &Client{
		apiKey:   apiKey,
		cfg:      cfg,
		registry: &languageChangeRegistry{},
	}

	for _, opt := range opts {
		opt(ctx, c)
	}

	if c.log == nil {
		c.log = newLogger(ctx, c.cfg)
	}
	if c.store == nil {
		c.store = store.NewInMemoryStore()
	}
	if c.pool == nil {
		pool, poolErr := workerpool.New(ctx,
			workerpool.WithCapacity(c.cfg.WorkerPoolCapacity),
			workerpool.WithExpiryDuration(c.cfg.WorkerPoolExpiry),
			workerpool.WithLogger(c.log),
		)
		if poolErr != nil {
			return nil, poolErr
		}
		c.pool = pool
	}

	c.gateway = newGateway(apiKey, c.httpClient, c.cfg.Server())
	c.identity = &identityManager{store: c.store, appPackage: c.cfg.AppPackage}
	c.cache = &translationCache{store: c.store}

	return c, nil
}

// Close stops the periodic sync, releases the worker pool and closes
// the store. The client is unusable afterwards.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.syncCancel != nil {
		c.syncCancel()
		c.syncCancel = nil
	}
	c.mu.Unlock()

	c.pool.Shutdown()
	return c.store.Close()
}

// Log returns the client logger bound to the supplied context.
func (c *Client) Log(ctx context.Context) *util.LogEntry {
	return c.log.WithContext(ctx)
}

// withLogger makes the client logger reachable via util.Log for the
// subcomponents this call fans out into.
func (c *Client) withLogger(ctx context.Context) context.Context {
	return util.ContextWithLogger(ctx, c.log)
}

func (c *Client) currentSession() *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Client) isCurrent(sess *session) bool {
	return c.currentSession() == sess
}

// submit schedules background work, degrading to a plain goroutine if
// the pool is saturated so no caller ever blocks or loses a task.
func (c *Client) submit(ctx context.Context, task func()) {
	if err := c.pool.Submit(ctx, task); err != nil {
		c.Log(ctx).WithError(err).Debug("worker pool refused task, running detached")
		go task()
	}
}

// newSession builds session state for an identity. The active
// language starts as the device language's base subtag until an init
// response resolves the real one.
func (c *Client) newSession(ctx context.Context, suppliedUserID string) *session {
	userID, anonymous := c.identity.resolveUserID(ctx, suppliedUserID)

	sess := &session{
		userID:         userID,
		anonymous:      anonymous,
		deviceLanguage: detectDeviceLanguage(ctx, c.cfg),
		baseLanguage:   "en",
		supported:      map[string]struct{}{},
	}
	sess.language = baseSubtag(sess.deviceLanguage)

	if appName, found, err := c.store.Get(ctx, keys.Config(keys.SuffixAppName)); err == nil && found {
		sess.appName = appName
	}

	c.Log(ctx).WithField("user_id", userID).Info("session user resolved")
	return sess
}

// Initialize registers the client with the translation service and
// resolves the active language. Idempotent: when already initialized
// the callback succeeds immediately without a network round-trip. A
// previous failed attempt is discarded before a fresh one starts. The
// callback fires from a background goroutine except on the idempotent
// path.
func (c *Client) Initialize(ctx context.Context, callback InitCallback) {
	ctx = c.withLogger(ctx)

	c.mu.Lock()
	if c.current != nil && c.current.isInitialized() {
		c.mu.Unlock()
		c.Log(ctx).Warn("already initialized")
		invokeInit(callback, nil)
		return
	}
	if c.current != nil {
		c.Log(ctx).Debug("clearing previous failed initialization attempt")
		c.current = nil
	}

	sess := c.newSession(ctx, c.suppliedUserID)
	c.current = sess
	c.mu.Unlock()

	c.performInitialization(ctx, sess, callback)
}

// Login switches to an authenticated identity and re-runs the full
// initialization flow under it. Leaving an anonymous identity fires a
// best-effort login notification carrying both ids. The previous
// session's supported languages are carried over provisionally so the
// UI does not flicker while the init response is in flight.
func (c *Client) Login(ctx context.Context, userID string, callback InitCallback) {
	ctx = c.withLogger(ctx)

	c.mu.Lock()
	cur := c.current
	if cur == nil {
		c.mu.Unlock()
		err := newValidationError("GetTranslated SDK has not been initialized")
		c.Log(ctx).Error(err.Message)
		invokeInit(callback, err)
		return
	}

	trimmed := strings.TrimSpace(userID)
	if trimmed == "" {
		c.mu.Unlock()
		err := newValidationError("User id cannot be null or empty")
		c.Log(ctx).Error(err.Message)
		invokeInit(callback, err)
		return
	}

	if trimmed == cur.userID {
		c.mu.Unlock()
		c.Log(ctx).WithField("user_id", trimmed).Info("already logged in")
		invokeInit(callback, nil)
		return
	}

	if cur.anonymous {
		c.notifyLogin(ctx, cur.appNameSnapshot(), cur.userID, trimmed)
	}

	sess := c.newSession(ctx, trimmed)
	sess.carryLanguagesFrom(cur)
	c.current = sess
	c.mu.Unlock()

	c.performInitialization(ctx, sess, callback)
}

// Logout drops the persisted anonymous id and re-initializes under a
// brand-new anonymous identity, carrying supported languages over
// provisionally as Login does.
func (c *Client) Logout(ctx context.Context, callback InitCallback) {
	ctx = c.withLogger(ctx)

	c.mu.Lock()
	cur := c.current
	if cur == nil {
		c.mu.Unlock()
		err := newValidationError("GetTranslated SDK has not been initialized")
		c.Log(ctx).Error(err.Message)
		invokeInit(callback, err)
		return
	}

	c.Log(ctx).Info("logging out and returning to anonymous user")
	c.identity.forgetAnonymousID(ctx)

	sess := c.newSession(ctx, "")
	sess.carryLanguagesFrom(cur)
	c.current = sess
	c.mu.Unlock()

	c.performInitialization(ctx, sess, callback)
}

// performInitialization runs the init round-trip on the worker pool.
func (c *Client) performInitialization(ctx context.Context, sess *session, callback InitCallback) {
	payload := map[string]any{
		"userId":      sess.userID,
		"lang":        sess.currentLanguage(),
		"version":     Version,
		"app_package": c.cfg.AppPackage,
	}
	appName := sess.appNameSnapshot()
	if appName != "" {
		payload["app_name"] = appName
	}

	c.submit(ctx, func() {
		resp, err := c.gateway.invoke(ctx, endpointInit, payload, appName)
		if err != nil {
			c.Log(ctx).WithError(err).WithField("code", ErrorCode(err)).Error("initialization failed")
			sess.markUninitialized()
			invokeInit(callback, err)
			return
		}
		c.handleInitResponse(ctx, sess, resp, callback)
	})
}

// handleInitResponse applies a successful init response: project name,
// base language, supported languages, resolved active language. A
// session that has been replaced while the request was in flight drops
// the response without firing its callback.
func (c *Client) handleInitResponse(ctx context.Context, sess *session, resp map[string]any, callback InitCallback) {
	if !c.isCurrent(sess) {
		c.Log(ctx).Debug("discarding init response for superseded session")
		return
	}

	if project, ok := resp["project"].(string); ok && project != "" {
		sess.setAppName(project)
		if err := c.store.Set(ctx, keys.Config(keys.SuffixAppName), project); err != nil {
			c.Log(ctx).WithError(err).Warn("could not persist app name")
		}
	}

	baseLanguage := ""
	if base, ok := resp["base_language"].(string); ok && base != "" {
		baseLanguage = base
	}

	supported := parseLanguages(resp["languages"])

	serverOverride, hasOverride := resp["language_override"].(string)
	overrideKey := keys.User(sess.userID, keys.SuffixServerOverride)
	if hasOverride && serverOverride != "" {
		c.Log(ctx).WithField("language", serverOverride).Info("using server language override")
		if err := c.store.Set(ctx, overrideKey, serverOverride); err != nil {
			c.Log(ctx).WithError(err).Warn("could not persist server language override")
		}
	} else {
		serverOverride = ""
		if err := c.store.Delete(ctx, overrideKey); err != nil {
			c.Log(ctx).WithError(err).Warn("could not clear server language override")
		}
	}

	savedPreference, _, err := c.store.Get(ctx, keys.User(sess.userID, keys.SuffixLanguageOverride))
	if err != nil {
		c.Log(ctx).WithError(err).Warn("could not read saved language preference")
	}

	resolved := sess.applyInitState(baseLanguage, supported, serverOverride, savedPreference)
	c.Log(ctx).WithField("language", resolved).Info("initialized")

	c.registry.notify(resolved)
	invokeInit(callback, nil)

	c.scheduleSync(ctx, sess)
	c.startAutoSync(ctx)
}

// notifyLogin tells the server about an anonymous-to-authenticated
// transition. Best-effort: failures are logged, never surfaced.
func (c *Client) notifyLogin(ctx context.Context, appName, oldUserID, newUserID string) {
	payload := map[string]any{
		"userId":      oldUserID,
		"loginUserId": newUserID,
		"version":     Version,
	}
	if appName != "" {
		payload["app_name"] = appName
	}

	c.submit(ctx, func() {
		if _, err := c.gateway.invoke(ctx, endpointLogin, payload, appName); err != nil {
			c.Log(ctx).WithError(err).WithField("user_id", newUserID).Error("login notification failed")
			return
		}
		c.Log(ctx).WithField("user_id", newUserID).Info("logged in")
	})
}

// GetDynamicString returns the best immediately-available rendering of
// text and never blocks: the cached translation on a hit, otherwise
// text itself. On a cache miss a background fetch is issued and the
// callback delivers the translation (or the failure) later; the
// return value is never the awaited translation.
func (c *Client) GetDynamicString(ctx context.Context, text string, callback TranslationCallback) string {
	ctx = c.withLogger(ctx)

	if strings.TrimSpace(text) == "" {
		c.Log(ctx).Warn("empty or whitespace-only text provided for translation")
		return text
	}

	sess := c.currentSession()
	if sess == nil {
		c.Log(ctx).Warn("not initialized")
		invokeTranslation(callback, "", newValidationError("Not initialized"))
		return text
	}

	if sess.inBaseLanguage() {
		invokeTranslation(callback, text, nil)
		return text
	}

	lang := sess.currentLanguage()
	if cached, found := c.cache.get(ctx, lang, text); found {
		invokeTranslation(callback, cached, nil)
		return cached
	}

	c.submit(ctx, func() {
		c.fetchTranslation(ctx, sess, lang, text, callback)
	})
	return text
}

// fetchTranslation requests a single translation and caches it.
func (c *Client) fetchTranslation(ctx context.Context, sess *session, lang, text string, callback TranslationCallback) {
	payload := map[string]any{
		"text":    text,
		"lang":    lang,
		"version": Version,
	}
	appName := sess.appNameSnapshot()
	if appName != "" {
		payload["app_name"] = appName
	}

	resp, err := c.gateway.invoke(ctx, endpointTranslate, payload, appName)
	if err != nil {
		c.Log(ctx).WithError(err).Error("translation request failed")
		invokeTranslation(callback, "", err)
		return
	}

	translation, ok := resp["translation"].(string)
	if !ok || translation == "" {
		err = newParseError("Empty translation response")
		c.Log(ctx).WithError(err).Error("translation request failed")
		invokeTranslation(callback, "", err)
		return
	}

	if !c.isCurrent(sess) {
		c.Log(ctx).Debug("discarding translation for superseded session")
		return
	}

	c.cache.put(ctx, lang, text, translation)
	invokeTranslation(callback, translation, nil)
}

// SetLanguage switches the active language. Unsupported codes are
// ignored with a warning. With persist the code is saved as the
// user's preference and survives re-initialization. Subscribers are
// notified and a background sync warms the cache for the new language.
func (c *Client) SetLanguage(ctx context.Context, code string, persist bool) {
	ctx = c.withLogger(ctx)

	sess := c.currentSession()
	if sess == nil {
		c.Log(ctx).Warn("not initialized")
		return
	}

	if !sess.setLanguage(code) {
		c.Log(ctx).
			WithField("language", code).
			WithField("supported", strings.Join(sess.supportedList(), ", ")).
			Warn("language is not supported")
		return
	}

	c.Log(ctx).WithField("language", code).Info("language changed")

	if persist {
		if err := c.store.Set(ctx, keys.User(sess.userID, keys.SuffixLanguageOverride), code); err != nil {
			c.Log(ctx).WithError(err).Warn("could not persist language preference")
		}
	}

	c.registry.notify(code)
	c.scheduleSync(ctx, sess)
}

// OnLanguageChange registers a listener for language changes. The
// registry outlives sessions: listeners stay registered across login,
// logout and re-initialization until their subscription is canceled.
func (c *Client) OnLanguageChange(fn LanguageChangeFunc) *Subscription {
	return c.registry.subscribe(fn)
}

// SyncTranslations schedules a background sync round for the active
// language. Best-effort: failures are logged and never surfaced.
func (c *Client) SyncTranslations(ctx context.Context) {
	ctx = c.withLogger(ctx)
	sess := c.currentSession()
	if sess == nil {
		return
	}
	c.scheduleSync(ctx, sess)
}

func (c *Client) scheduleSync(ctx context.Context, sess *session) {
	c.submit(ctx, func() {
		c.syncTranslations(ctx, sess)
	})
}

// syncTranslations bulk-fetches translations changed since the last
// recorded sync and writes them through to the cache. The timestamp
// stored on success is the time the request was issued, so changes
// landing mid-request are picked up again next round.
func (c *Client) syncTranslations(ctx context.Context, sess *session) {
	if !c.isCurrent(sess) || sess.inBaseLanguage() {
		return
	}

	lang := sess.currentLanguage()
	syncKey := keys.Language(lang, keys.SuffixLastSync)

	lastSync, err := c.store.GetInt64(ctx, syncKey)
	if err != nil {
		c.Log(ctx).WithError(err).Warn("could not read last sync timestamp")
	}
	issuedAt := time.Now().UnixMilli()

	payload := map[string]any{
		"lang":      lang,
		"version":   Version,
		"last_sync": lastSync,
	}
	appName := sess.appNameSnapshot()
	if appName != "" {
		payload["app_name"] = appName
	}

	resp, err := c.gateway.invoke(ctx, endpointSync, payload, appName)
	if err != nil {
		c.Log(ctx).WithError(err).Error("sync failed")
		return
	}

	if setErr := c.store.SetInt64(ctx, syncKey, issuedAt); setErr != nil {
		c.Log(ctx).WithError(setErr).Warn("could not persist sync timestamp")
	}

	entries, _ := resp["translations"].([]any)
	stored := 0
	for _, entry := range entries {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		entryLang, _ := item["lang"].(string)
		source, _ := item["string"].(string)
		translation, _ := item["translation"].(string)
		if entryLang == "" || source == "" || translation == "" {
			continue
		}
		c.cache.put(ctx, entryLang, source, translation)
		stored++
	}
	c.Log(ctx).WithField("language", lang).WithField("count", stored).Debug("sync completed")
}

// startAutoSync starts the periodic sync ticker, once per client. The
// ticker survives caller context cancellation and stops at Close.
func (c *Client) startAutoSync(ctx context.Context) {
	if c.cfg.SyncInterval <= 0 {
		return
	}

	c.syncOnce.Do(func() {
		syncCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		c.mu.Lock()
		c.syncCancel = cancel
		c.mu.Unlock()

		go func() {
			ticker := time.NewTicker(c.cfg.SyncInterval)
			defer ticker.Stop()
			for {
				select {
				case <-syncCtx.Done():
					return
				case <-ticker.C:
					c.SyncTranslations(syncCtx)
				}
			}
		}()
	})
}

// SetServerURL redirects subsequent requests to a different service
// base URL. Blank values are ignored.
func (c *Client) SetServerURL(rawURL string) {
	c.gateway.setServerURL(rawURL)
	c.mu.Lock()
	c.cfg.ServerURL = c.gateway.server()
	c.mu.Unlock()
}

// Initialized reports whether an init response has been processed for
// the current identity.
func (c *Client) Initialized() bool {
	sess := c.currentSession()
	return sess != nil && sess.isInitialized()
}

// Languages returns the supported language codes, sorted. Empty until
// an init response lands (or a provisional carry-over exists).
func (c *Client) Languages() []string {
	sess := c.currentSession()
	if sess == nil {
		return nil
	}
	return sess.supportedList()
}

// CurrentLanguage returns the active language code, "en" before any
// session exists.
func (c *Client) CurrentLanguage() string {
	sess := c.currentSession()
	if sess == nil {
		return "en"
	}
	return sess.currentLanguage()
}

func invokeInit(callback InitCallback, err error) {
	if callback != nil {
		callback(err)
	}
}

func invokeTranslation(callback TranslationCallback, translation string, err error) {
	if callback != nil {
		callback(translation, err)
	}
}

// parseLanguages accepts both wire forms of the supported-language
// list: an array of code strings or an array of {code, name} objects.
func parseLanguages(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}

	var codes []string
	for _, item := range items {
		switch v := item.(type) {
		case string:
			codes = append(codes, v)
		case map[string]any:
			if code, isString := v["code"].(string); isString && code != "" {
				codes = append(codes, code)
			}
		}
	}
	return codes
}

func (s *session) isInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

func (s *session) markUninitialized() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = false
}

func (s *session) currentLanguage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

func (s *session) appNameSnapshot() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appName
}

func (s *session) setAppName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appName = name
}

// inBaseLanguage reports whether translation can be skipped entirely.
// An uninitialized session counts as base language: passthrough is the
// only safe answer before the server has spoken.
func (s *session) inBaseLanguage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return true
	}
	return s.language == s.baseLanguage
}

// carryLanguagesFrom copies the supported set of a replaced session as
// a provisional value. The init response refreshes it; carrying it
// avoids an empty language picker while the request is in flight.
func (s *session) carryLanguagesFrom(previous *session) {
	previous.mu.RLock()
	carried := make(map[string]struct{}, len(previous.supported))
	for lang := range previous.supported {
		carried[lang] = struct{}{}
	}
	previous.mu.RUnlock()

	s.mu.Lock()
	s.supported = carried
	s.mu.Unlock()
}

// applyInitState installs the server-declared language landscape and
// resolves the active language. Returns the resolved language.
func (s *session) applyInitState(baseLanguage string, supported []string, serverOverride, savedPreference string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if baseLanguage != "" {
		s.baseLanguage = baseLanguage
	}

	if len(supported) > 0 {
		s.supported = make(map[string]struct{}, len(supported)+1)
		for _, lang := range supported {
			s.supported[lang] = struct{}{}
		}
	}
	// The base language never needs translation, so it is always on offer.
	s.supported[s.baseLanguage] = struct{}{}

	supportedList := make([]string, 0, len(s.supported))
	for lang := range s.supported {
		supportedList = append(supportedList, lang)
	}

	s.language = resolveLanguage(serverOverride, savedPreference, supportedList, s.baseLanguage, s.deviceLanguage)
	s.initialized = true
	return s.language
}

// setLanguage updates the active language, refusing codes outside a
// non-empty supported set.
func (s *session) setLanguage(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.supported) > 0 {
		if _, ok := s.supported[code]; !ok {
			return false
		}
	}
	s.language = code
	return true
}

func (s *session) supportedList() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	languages := make([]string, 0, len(s.supported))
	for lang := range s.supported {
		languages = append(languages, lang)
	}
	return sortedLanguages(languages)
}
