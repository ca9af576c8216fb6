package validation

import (
	"context"

	"github.com/dmitrymomot/formguard/pkg/async"
)

// Params carries static or scope parameters of a rule.
type Params map[string]any

// Reason classifies why a rule failed.
type Reason uint8

const (
	// ReasonRule: the rule itself judged the value invalid.
	ReasonRule Reason = iota
	// ReasonDomain: the backend explicitly rejected the value.
	ReasonDomain
	// ReasonTransport: the check could not be completed.
	ReasonTransport
)

func (r Reason) String() string {
	switch r {
	case ReasonRule:
		return "rule"
	case ReasonDomain:
		return "domain"
	case ReasonTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Outcome is the verdict of one rule evaluation.
// Message and Reason are meaningless when Valid is true.
//
// Params, when set, are the parameters the evaluation actually used. They
// take precedence over the rule's current Params in the error.
type Outcome struct {
	Valid   bool
	Message string
	Reason  Reason
	Err     error
	Params  Params
}

// WithParams returns a copy of o carrying params.
func (o Outcome) WithParams(params Params) Outcome {
	o.Params = params
	return o
}

// Pass is the valid outcome.
func Pass() Outcome {
	return Outcome{Valid: true}
}

// Fail reports a rule failure, optionally with a message key.
func Fail(message string) Outcome {
	return Outcome{Message: message, Reason: ReasonRule}
}

// Reject reports a domain rejection carrying the backend message.
func Reject(message string) Outcome {
	return Outcome{Message: message, Reason: ReasonDomain}
}

// Unavailable reports a failed check with no specific message.
func Unavailable(err error) Outcome {
	return Outcome{Reason: ReasonTransport, Err: err}
}

// Result is an Outcome that is either known now or arrives later.
type Result struct {
	outcome Outcome
	future  *async.Future[Outcome]
}

// Immediate wraps an outcome that is already known.
func Immediate(o Outcome) Result {
	return Result{outcome: o}
}

// Deferred wraps a future outcome. A nil future is an immediate transport failure.
func Deferred(f *async.Future[Outcome]) Result {
	if f == nil {
		return Immediate(Unavailable(nil))
	}
	return Result{future: f}
}

// Go runs fn on its own goroutine and returns its deferred outcome.
func Go(ctx context.Context, fn func(ctx context.Context) (Outcome, error)) Result {
	return Deferred(async.Async(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (Outcome, error) {
		return fn(ctx)
	}))
}

// IsAsync reports whether the outcome is deferred.
func (r Result) IsAsync() bool {
	return r.future != nil
}

// Done returns a channel that is closed once the outcome is known.
func (r Result) Done() <-chan struct{} {
	if r.future == nil {
		return closedChan
	}
	return r.future.Done()
}

// Await blocks until the outcome is known. A deferred computation that
// returned an error or panicked becomes a transport failure.
func (r Result) Await() Outcome {
	if r.future == nil {
		return r.outcome
	}
	o, err := r.future.Await()
	if err != nil {
		return Unavailable(err)
	}
	return o
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()
