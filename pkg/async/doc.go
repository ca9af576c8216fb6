// Package async provides a small generic Future type for running a
// computation in its own goroutine and collecting the result later.
//
// Async starts the supplied function and returns a *Future immediately. The
// caller waits with Await, bounds the wait with AwaitWithTimeout, selects on
// Done, or polls with IsComplete. Resolved builds a future that is already
// complete, which lets callers treat immediate and deferred values the same
// way.
//
// # Usage
//
//	future := async.Async(ctx, "my-project", func(ctx context.Context, name string) (bool, error) {
//	    return client.NameAvailable(ctx, name)
//	})
//
//	ok, err := future.Await()
//
// # Error Handling
//
// The future carries whatever error the function returned. If the context is
// already canceled the function is never called and the future completes with
// ctx.Err(). A panic inside the function is recovered and reported as an
// error wrapping ErrPanic, so one misbehaving task cannot take the process
// down.
//
// WaitAll and WaitAny coordinate several futures at once.
package async
