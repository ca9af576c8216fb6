// Package reactive provides a minimal observable value primitive.
//
// A Value holds a single value of type T and notifies subscribers every time
// it is replaced. Subscribers are plain callbacks; they run synchronously on
// the goroutine that performed the write, after the value lock has been
// released, so a callback may freely read the value again.
//
// Readable is the read side of a value. Static wraps a constant so APIs that
// accept a Readable work with both fixed and changing inputs. Source is the
// subscription side; code that wants to react to changes type-asserts a
// Readable to Source.
//
// # Usage
//
//	owner := reactive.NewValue("42")
//	cancel := owner.Subscribe(func() {
//	    fmt.Println("owner is now", owner.Get())
//	})
//	defer cancel()
//
//	owner.Set("43")
//
// Signal is the listener registry both Value and higher level types embed;
// it can be used on its own to make any type observable.
package reactive
