package gettranslated

import "sync"

// LanguageChangeFunc receives the new language code whenever the
// active language changes.
type LanguageChangeFunc func(language string)

// Subscription is the disposable handle returned when registering a
// language-change listener.
type Subscription struct {
	registry *languageChangeRegistry
	id       uint64
}

// Cancel unregisters the listener. Safe to call more than once.
func (s *Subscription) Cancel() {
	if s == nil || s.registry == nil {
		return
	}
	s.registry.remove(s.id)
}

// languageChangeRegistry holds language-change listeners in
// registration order. Its lifetime is independent of any session:
// listeners survive login, logout and re-initialization, and are
// removed only through their Subscription.
type languageChangeRegistry struct {
	mu     sync.Mutex
	nextID uint64
	subs   []registeredListener
}

type registeredListener struct {
	id uint64
	fn LanguageChangeFunc
}

func (r *languageChangeRegistry) subscribe(fn LanguageChangeFunc) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.subs = append(r.subs, registeredListener{id: r.nextID, fn: fn})
	return &Subscription{registry: r, id: r.nextID}
}

func (r *languageChangeRegistry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, sub := range r.subs {
		if sub.id == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return
		}
	}
}

// notify invokes listeners in registration order. Listeners run on
// the caller's goroutine; a copy is taken so listeners may subscribe
// or cancel without deadlocking.
func (r *languageChangeRegistry) notify(language string) {
	r.mu.Lock()
	listeners := make([]LanguageChangeFunc, 0, len(r.subs))
	for _, sub := range r.subs {
		listeners = append(listeners, sub.fn)
	}
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(language)
	}
}
