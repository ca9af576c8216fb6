package reactive_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/reactive"
)

func TestValue(t *testing.T) {
	t.Parallel()

	t.Run("get returns initial and set replaces", func(t *testing.T) {
		t.Parallel()
		v := reactive.NewValue("a")
		assert.Equal(t, "a", v.Get())

		v.Set("b")
		assert.Equal(t, "b", v.Get())
	})

	t.Run("subscribers see the new value", func(t *testing.T) {
		t.Parallel()
		v := reactive.NewValue(1)
		var seen []int
		cancel := v.Subscribe(func() { seen = append(seen, v.Get()) })

		v.Set(2)
		v.Update(func(n int) int { return n * 10 })
		cancel()
		v.Set(3)

		assert.Equal(t, []int{2, 20}, seen)
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		t.Parallel()
		v := reactive.NewValue(0)
		var calls atomic.Int32
		cancel := v.Subscribe(func() { calls.Add(1) })
		cancel()
		cancel()
		v.Set(1)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("listener may read and unsubscribe during notify", func(t *testing.T) {
		t.Parallel()
		v := reactive.NewValue("x")
		var cancel func()
		var got string
		cancel = v.Subscribe(func() {
			got = v.Get()
			cancel()
		})

		v.Set("y")
		v.Set("z")
		assert.Equal(t, "y", got)
	})

	t.Run("concurrent writers", func(t *testing.T) {
		t.Parallel()
		v := reactive.NewValue(0)
		var notified atomic.Int32
		v.Subscribe(func() { notified.Add(1) })

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v.Update(func(n int) int { return n + 1 })
			}()
		}
		wg.Wait()

		assert.Equal(t, 50, v.Get())
		assert.Equal(t, int32(50), notified.Load())
	})
}

func TestStaticAndFunc(t *testing.T) {
	t.Parallel()

	s := reactive.Static("owner-1")
	assert.Equal(t, "owner-1", s.Get())
	_, isSource := s.(reactive.Source)
	assert.False(t, isSource)

	n := 0
	f := reactive.Func[int](func() int { n++; return n })
	assert.Equal(t, 1, f.Get())
	assert.Equal(t, 2, f.Get())
}

func TestSources(t *testing.T) {
	t.Parallel()

	dynamic := reactive.NewValue("p1")
	sources := reactive.Sources[string](reactive.Static("x"), dynamic, reactive.Static("y"))
	require.Len(t, sources, 1)

	var fired bool
	sources[0].Subscribe(func() { fired = true })
	dynamic.Set("p2")
	assert.True(t, fired)
}

func TestSignal(t *testing.T) {
	t.Parallel()

	var s reactive.Signal
	var order []int
	s.Subscribe(func() { order = append(order, 1) })
	cancel := s.Subscribe(func() { order = append(order, 2) })
	s.Subscribe(func() { order = append(order, 3) })
	assert.Equal(t, 3, s.Len())

	s.Notify()
	cancel()
	s.Notify()

	assert.Equal(t, []int{1, 2, 3, 1, 3}, order)
	assert.Equal(t, 2, s.Len())

	noop := s.Subscribe(nil)
	noop()
	assert.Equal(t, 2, s.Len())
}
