package validation

import (
	"context"
	"maps"

	"github.com/dmitrymomot/formguard/pkg/reactive"
)

// Rule is a named predicate over a candidate value. Evaluate returns either an
// immediate or a deferred outcome; callers treat both the same way.
type Rule interface {
	Type() string
	Params() Params
	Evaluate(ctx context.Context, value any) Result
}

// Watcher is implemented by rules whose parameters can change over time.
// A Field re-evaluates when any of the returned sources notifies.
type Watcher interface {
	Dependencies() []reactive.Source
}

// Messenger is implemented by rules that produce their own failure message.
type Messenger interface {
	Message(ctx context.Context, e FieldError) string
}

type syncRule struct {
	typ    string
	params Params
	check  func(value any) bool
}

// NewRule builds a synchronous rule. A panic in check is not recovered.
func NewRule(typ string, params Params, check func(value any) bool) Rule {
	return &syncRule{typ: typ, params: params, check: check}
}

func (r *syncRule) Type() string   { return r.typ }
func (r *syncRule) Params() Params { return maps.Clone(r.params) }

func (r *syncRule) Evaluate(_ context.Context, value any) Result {
	if r.check(value) {
		return Immediate(Pass())
	}
	return Immediate(Fail(""))
}

type asyncRule struct {
	typ    string
	params Params
	check  func(ctx context.Context, value any) (Outcome, error)
}

// NewAsyncRule builds a rule evaluated on its own goroutine.
// An error or panic from check turns into a transport failure.
func NewAsyncRule(typ string, params Params, check func(ctx context.Context, value any) (Outcome, error)) Rule {
	return &asyncRule{typ: typ, params: params, check: check}
}

func (r *asyncRule) Type() string   { return r.typ }
func (r *asyncRule) Params() Params { return maps.Clone(r.params) }

func (r *asyncRule) Evaluate(ctx context.Context, value any) Result {
	return Go(ctx, func(ctx context.Context) (Outcome, error) {
		return r.check(ctx, value)
	})
}

// dependencies returns the reactive inputs of r, if any.
func dependencies(r Rule) []reactive.Source {
	if w, ok := r.(Watcher); ok {
		return w.Dependencies()
	}
	return nil
}
