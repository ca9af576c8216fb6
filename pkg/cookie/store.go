package cookie

import (
	"fmt"
	"maps"
	"net/http"
	"sync"
)

// Change describes a single mutation of a Store.
type Change struct {
	Name    string
	Value   string
	Removed bool
	Options Options
}

// Cookie returns the change as an http.Cookie. Removals expire the cookie.
func (c Change) Cookie() *http.Cookie {
	if c.Removed {
		opts := c.Options
		opts.MaxAge = -1
		return opts.cookie(c.Name, "")
	}
	return c.Options.cookie(c.Name, c.Value)
}

// Header returns the Set-Cookie header value for the change.
// A removal is written as an empty value.
func (c Change) Header() string {
	if c.Removed {
		return c.Name + "="
	}
	return c.Cookie().String()
}

// Store is a cookie map with change notification. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	values    map[string]string
	defaults  Options
	listeners map[uint64]func(Change)
	nextID    uint64
}

// NewStore returns a store primed with the given cookies.
func NewStore(cookies []*http.Cookie, opts ...Option) *Store {
	s := &Store{
		values:    make(map[string]string, len(cookies)),
		defaults:  applyOptions(defaultOptions(), opts),
		listeners: make(map[uint64]func(Change)),
	}
	for _, c := range cookies {
		if c == nil || c.Name == "" {
			continue
		}
		// First occurrence wins, matching http.Request.Cookie.
		if _, ok := s.values[c.Name]; !ok {
			s.values[c.Name] = c.Value
		}
	}
	return s
}

// ParseHeader returns a store primed from a raw Cookie header value.
// Malformed pairs are skipped.
func ParseHeader(header string, opts ...Option) *Store {
	r := &http.Request{Header: http.Header{"Cookie": {header}}}
	return NewStore(r.Cookies(), opts...)
}

// Get returns the value of the named cookie.
func (s *Store) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

// All returns a copy of every cookie in the store.
func (s *Store) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

// Set stores value under name and notifies listeners.
func (s *Store) Set(name, value string, opts ...Option) error {
	change := Change{
		Name:    name,
		Value:   value,
		Options: applyOptions(s.defaults, opts),
	}
	if err := change.Cookie().Valid(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCookie, err)
	}

	s.mu.Lock()
	s.values[name] = value
	listeners := s.snapshot()
	s.mu.Unlock()

	notify(listeners, change)
	return nil
}

// Remove deletes the named cookie and notifies listeners.
// Removing an unknown cookie still notifies, so a stale client copy is cleared.
func (s *Store) Remove(name string, opts ...Option) {
	change := Change{
		Name:    name,
		Removed: true,
		Options: applyOptions(s.defaults, opts),
	}

	s.mu.Lock()
	delete(s.values, name)
	listeners := s.snapshot()
	s.mu.Unlock()

	notify(listeners, change)
}

// AddChangeListener registers fn for every subsequent mutation.
// The returned function unregisters it.
func (s *Store) AddChangeListener(fn func(Change)) (remove func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// snapshot must be called with s.mu held.
func (s *Store) snapshot() []func(Change) {
	out := make([]func(Change), 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []func(Change), change Change) {
	for _, fn := range listeners {
		fn(change)
	}
}
