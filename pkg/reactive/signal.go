package reactive

import (
	"slices"
	"sync"
)

// Source is anything that can notify about changes.
type Source interface {
	// Subscribe registers fn and returns a function removing it.
	// The returned cancel function is idempotent.
	Subscribe(fn func()) (cancel func())
}

// Signal is a registry of change listeners. The zero value is ready to use.
type Signal struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[uint64]func()
}

// Subscribe registers fn to be called on every Notify.
func (s *Signal) Subscribe(fn func()) func() {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	if s.listeners == nil {
		s.listeners = make(map[uint64]func())
	}
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

// Notify calls every registered listener in subscription order.
// Listeners are snapshotted first so they may subscribe or cancel while running.
func (s *Signal) Notify() {
	s.mu.Lock()
	if len(s.listeners) == 0 {
		s.mu.Unlock()
		return
	}
	ids := make([]uint64, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len returns the number of active listeners.
func (s *Signal) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}
