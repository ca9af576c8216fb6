package async_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrymomot/formguard/pkg/async"
)

func TestAsyncReturnsResult(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	future := async.Async(ctx, 42, func(_ context.Context, n int) (string, error) {
		time.Sleep(20 * time.Millisecond)
		return fmt.Sprintf("n=%d", n), nil
	})

	result, err := future.Await()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "n=42" {
		t.Errorf("expected 'n=42', got %q", result)
	}
}

func TestAsyncErrorPropagation(t *testing.T) {
	t.Parallel()
	expectedErr := errors.New("backend unreachable")

	future := async.Async(context.Background(), "name", func(_ context.Context, _ string) (bool, error) {
		return false, expectedErr
	})

	_, err := future.Await()
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected %v, got %v", expectedErr, err)
	}
}

func TestAsyncPreCanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	future := async.Async(ctx, 1, func(_ context.Context, n int) (int, error) {
		called = true
		return n, nil
	})

	_, err := future.Await()
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Error("function must not run with a canceled context")
	}
}

func TestAsyncRecoversPanic(t *testing.T) {
	t.Parallel()

	future := async.Async(context.Background(), 0, func(_ context.Context, _ int) (int, error) {
		panic("boom")
	})

	result, err := future.Await()
	if !errors.Is(err, async.ErrPanic) {
		t.Fatalf("expected ErrPanic, got %v", err)
	}
	if result != 0 {
		t.Errorf("expected zero result after panic, got %d", result)
	}
}

func TestResolved(t *testing.T) {
	t.Parallel()

	future := async.Resolved("ready", nil)
	if !future.IsComplete() {
		t.Fatal("resolved future must be complete")
	}

	select {
	case <-future.Done():
	default:
		t.Fatal("Done channel must be closed")
	}

	result, err := future.Await()
	if err != nil || result != "ready" {
		t.Errorf("expected 'ready', got %q (%v)", result, err)
	}
}

func TestIsComplete(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})

	future := async.Async(context.Background(), 0, func(_ context.Context, _ int) (bool, error) {
		<-release
		return true, nil
	})

	if future.IsComplete() {
		t.Error("future must not be complete before release")
	}

	close(release)
	if _, err := future.Await(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !future.IsComplete() {
		t.Error("future must be complete after Await")
	}
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fast := async.Async(ctx, 10, func(_ context.Context, ms int) (string, error) {
		time.Sleep(time.Duration(ms) * time.Millisecond)
		return "ok", nil
	})
	result, err := fast.AwaitWithTimeout(500 * time.Millisecond)
	if err != nil || result != "ok" {
		t.Errorf("expected 'ok', got %q (%v)", result, err)
	}

	release := make(chan struct{})
	defer close(release)
	slow := async.Async(ctx, 0, func(_ context.Context, _ int) (string, error) {
		<-release
		return "late", nil
	})
	result, err = slow.AwaitWithTimeout(20 * time.Millisecond)
	if !errors.Is(err, async.ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
	if result != "" {
		t.Errorf("expected empty result on timeout, got %q", result)
	}
}

func TestWaitAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	expectedErr := errors.New("second failed")

	futures := []*async.Future[int]{
		async.Async(ctx, 1, func(_ context.Context, n int) (int, error) { return n, nil }),
		async.Async(ctx, 2, func(_ context.Context, n int) (int, error) { return n, expectedErr }),
		async.Async(ctx, 3, func(_ context.Context, n int) (int, error) { return n, nil }),
	}

	results, err := async.WaitAll(futures...)
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected %v, got %v", expectedErr, err)
	}
	for i, want := range []int{1, 2, 3} {
		if results[i] != want {
			t.Errorf("results[%d] = %d, want %d", i, results[i], want)
		}
	}
}

func TestWaitAny(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	release := make(chan struct{})
	defer close(release)

	slow := async.Async(ctx, "slow", func(_ context.Context, s string) (string, error) {
		<-release
		return s, nil
	})
	fast := async.Async(ctx, "fast", func(_ context.Context, s string) (string, error) {
		return s, nil
	})

	index, result, err := async.WaitAny(slow, fast)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if index != 1 || result != "fast" {
		t.Errorf("expected index=1 result=fast, got index=%d result=%q", index, result)
	}

	if _, _, err := async.WaitAny[string](); !errors.Is(err, async.ErrNoFutures) {
		t.Errorf("expected ErrNoFutures, got %v", err)
	}
}

func TestAsyncConcurrentIncrement(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	counter := 0

	futures := make([]*async.Future[int], 0, 200)
	for range 200 {
		futures = append(futures, async.Async(context.Background(), 1, func(_ context.Context, delta int) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			counter += delta
			return counter, nil
		}))
	}

	if _, err := async.WaitAll(futures...); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != 200 {
		t.Errorf("expected counter 200, got %d", counter)
	}
}
