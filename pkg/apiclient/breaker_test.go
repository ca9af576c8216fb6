package apiclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreaker(t *testing.T) {
	t.Parallel()

	now := time.Unix(0, 0)
	b := newBreaker(2, time.Minute)
	b.now = func() time.Time { return now }

	assert.True(t, b.allow())
	b.failure()
	assert.Equal(t, breakerClosed, b.current())
	b.failure()
	assert.Equal(t, breakerOpen, b.current())
	assert.False(t, b.allow())

	now = now.Add(2 * time.Minute)
	assert.True(t, b.allow())
	assert.Equal(t, breakerHalfOpen, b.current())

	b.failure()
	assert.Equal(t, breakerOpen, b.current())

	now = now.Add(2 * time.Minute)
	assert.True(t, b.allow())
	b.success()
	assert.Equal(t, breakerClosed, b.current())
}

func TestBreakerDisabled(t *testing.T) {
	t.Parallel()

	b := newBreaker(0, 0)
	for range 10 {
		b.failure()
	}
	assert.True(t, b.allow())
	assert.Equal(t, "closed", b.current().String())
}
