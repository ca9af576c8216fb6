package reactive

import "sync"

// Readable is the read side of an observable value.
type Readable[T any] interface {
	Get() T
}

// Value is an observable cell. Safe for concurrent use.
type Value[T any] struct {
	mu     sync.RWMutex
	value  T
	signal Signal
}

// NewValue creates a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set replaces the value and notifies subscribers.
// Subscribers are notified even when the new value equals the old one;
// T is not required to be comparable.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.value = value
	v.mu.Unlock()
	v.signal.Notify()
}

// Update replaces the value with fn(current) atomically and notifies subscribers.
func (v *Value[T]) Update(fn func(T) T) {
	v.mu.Lock()
	v.value = fn(v.value)
	v.mu.Unlock()
	v.signal.Notify()
}

// Subscribe registers fn to run after every Set or Update.
func (v *Value[T]) Subscribe(fn func()) func() {
	return v.signal.Subscribe(fn)
}

type static[T any] struct{ value T }

func (s static[T]) Get() T { return s.value }

// Static returns a Readable that always yields value and never changes.
func Static[T any](value T) Readable[T] {
	return static[T]{value: value}
}

// Func adapts a getter function to Readable.
type Func[T any] func() T

func (f Func[T]) Get() T { return f() }

// Sources returns the subset of readables that can notify about changes.
func Sources[T any](readables ...Readable[T]) []Source {
	var out []Source
	for _, r := range readables {
		if s, ok := r.(Source); ok {
			out = append(out, s)
		}
	}
	return out
}
