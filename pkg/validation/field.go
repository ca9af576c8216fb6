package validation

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/reactive"
)

// Status is the aggregated state of a field's rules.
type Status uint8

const (
	StatusValid Status = iota
	StatusPending
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusPending:
		return "pending"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

type ruleState struct {
	status  Status
	outcome Outcome
}

func stateOf(o Outcome) ruleState {
	if o.Valid {
		return ruleState{status: StatusValid, outcome: o}
	}
	return ruleState{status: StatusInvalid, outcome: o}
}

// Field binds a rule set to one observable value.
//
// Every change of the value, or of a rule dependency, starts a new evaluation
// identified by a monotonically increasing token. Asynchronous outcomes are
// applied only while their token is still the current one, so a slow response
// for an old value never overwrites the state of a newer value.
//
// Errors are split in two sets. Silent errors are every failing rule. Surfaced
// errors are the failing rules once the field is dirty. Errors returns one of
// the two, depending on the silent flag, after any external errors.
type Field[T any] struct {
	name      string
	state     reactive.Readable[T]
	rules     []Rule
	external  reactive.Readable[[]string]
	autoDirty bool
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	token   uint64
	value   T
	states  []ruleState
	pending int
	idle    chan struct{}
	dirty   bool
	silent  bool
	closed  bool

	signal reactive.Signal
	unsubs []func()
}

// NewField creates a field over state and runs the first evaluation.
// A panic in a synchronous rule propagates to whoever triggered the
// evaluation: NewField itself, or the code that changed state.
func NewField[T any](name string, state reactive.Readable[T], opts ...FieldOption) *Field[T] {
	cfg := defaultFieldConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if state == nil {
		var zero T
		state = reactive.Static(zero)
	}

	ctx, cancel := context.WithCancel(cfg.ctx)
	f := &Field[T]{
		name:      name,
		state:     state,
		rules:     cfg.rules,
		external:  cfg.external,
		autoDirty: cfg.autoDirty,
		logger:    cfg.logger.With(logger.Component("validation"), logger.Field(name)),
		ctx:       ctx,
		cancel:    cancel,
		states:    make([]ruleState, len(cfg.rules)),
		idle:      make(chan struct{}),
		silent:    cfg.silent,
	}

	if src, ok := state.(reactive.Source); ok {
		f.unsubs = append(f.unsubs, src.Subscribe(func() { f.evaluate(true) }))
	}
	for _, r := range f.rules {
		for _, dep := range dependencies(r) {
			f.unsubs = append(f.unsubs, dep.Subscribe(func() { f.evaluate(false) }))
		}
	}
	if src, ok := cfg.external.(reactive.Source); ok {
		f.unsubs = append(f.unsubs, src.Subscribe(f.signal.Notify))
	}

	f.evaluate(false)
	return f
}

func (f *Field[T]) Name() string {
	return f.name
}

// settle closes the idle channel if it is still open. Caller holds f.mu.
func (f *Field[T]) settle() {
	select {
	case <-f.idle:
	default:
		close(f.idle)
	}
}

func (f *Field[T]) evaluate(changed bool) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.token++
	token := f.token
	if changed && f.autoDirty {
		f.dirty = true
	}
	f.settle()
	f.idle = make(chan struct{})
	f.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			f.mu.Lock()
			if token == f.token {
				// Awaits of the previous evaluation are stale now and never
				// report back, so their slots must not stay pending.
				f.pending = 0
				for i, st := range f.states {
					if st.status == StatusPending {
						f.states[i] = ruleState{}
					}
				}
				f.settle()
			}
			f.mu.Unlock()
			panic(r)
		}
	}()

	value := f.state.Get()
	results := make([]Result, len(f.rules))
	for i, r := range f.rules {
		results[i] = r.Evaluate(f.ctx, value)
	}

	f.mu.Lock()
	if f.closed || token != f.token {
		f.mu.Unlock()
		f.logger.Debug("evaluation superseded", logger.Token(token))
		return
	}
	f.value = value
	f.pending = 0
	for i, res := range results {
		if !res.IsAsync() {
			f.states[i] = stateOf(res.Await())
			continue
		}
		f.states[i] = ruleState{status: StatusPending}
		f.pending++
		go f.await(token, i, res)
	}
	if f.pending == 0 {
		f.settle()
	}
	f.mu.Unlock()

	f.signal.Notify()
}

func (f *Field[T]) await(token uint64, i int, res Result) {
	o := res.Await()
	rule := f.rules[i].Type()

	f.mu.Lock()
	if f.closed || token != f.token {
		f.mu.Unlock()
		f.logger.Debug("stale outcome discarded",
			logger.Token(token),
			logger.Rule(rule),
			slog.Bool("valid", o.Valid),
		)
		return
	}
	f.states[i] = stateOf(o)
	f.pending--
	if f.pending == 0 {
		f.settle()
	}
	f.mu.Unlock()

	if !o.Valid {
		attrs := []any{logger.Token(token), logger.Rule(rule), slog.String("reason", o.Reason.String())}
		if o.Err != nil {
			attrs = append(attrs, logger.Error(o.Err))
		}
		f.logger.Debug("rule failed", attrs...)
	}
	f.signal.Notify()
}

// Revalidate starts a new evaluation of the current value.
func (f *Field[T]) Revalidate() {
	f.evaluate(false)
}

// Touch marks the field dirty so its errors are surfaced.
func (f *Field[T]) Touch() {
	f.mu.Lock()
	f.dirty = true
	f.mu.Unlock()
	f.signal.Notify()
}

// Reset clears the dirty flag.
func (f *Field[T]) Reset() {
	f.mu.Lock()
	f.dirty = false
	f.mu.Unlock()
	f.signal.Notify()
}

// SetSilent switches between the silent and the surfaced error set.
func (f *Field[T]) SetSilent(silent bool) {
	f.mu.Lock()
	f.silent = silent
	f.mu.Unlock()
	f.signal.Notify()
}

func (f *Field[T]) Silent() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.silent
}

func (f *Field[T]) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty
}

// Value returns the value of the latest applied evaluation.
func (f *Field[T]) Value() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Pending reports whether an asynchronous rule has not answered yet.
func (f *Field[T]) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending > 0
}

// Invalid reports whether any rule failed, regardless of dirty and silent.
func (f *Field[T]) Invalid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invalid()
}

func (f *Field[T]) invalid() bool {
	for _, st := range f.states {
		if st.status == StatusInvalid {
			return true
		}
	}
	return false
}

// Status is StatusInvalid if any rule failed, StatusPending if any rule has
// not answered yet and StatusValid otherwise.
func (f *Field[T]) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case f.invalid():
		return StatusInvalid
	case f.pending > 0:
		return StatusPending
	default:
		return StatusValid
	}
}

func (f *Field[T]) externalErrors(value T) []FieldError {
	if f.external == nil {
		return nil
	}
	msgs := f.external.Get()
	out := make([]FieldError, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, FieldError{
			Field:    f.name,
			Value:    value,
			Outcome:  Outcome{Message: msg},
			External: true,
		})
	}
	return out
}

// ruleErrors lists failing rules in declaration order. Caller holds f.mu.
func (f *Field[T]) ruleErrors() []FieldError {
	var out []FieldError
	for i, st := range f.states {
		if st.status != StatusInvalid {
			continue
		}
		r := f.rules[i]
		params := r.Params()
		if st.outcome.Params != nil {
			params = maps.Clone(params)
			if params == nil {
				params = make(Params, len(st.outcome.Params))
			}
			maps.Copy(params, st.outcome.Params)
		}
		e := FieldError{
			Field:   f.name,
			Rule:    r.Type(),
			Params:  params,
			Value:   f.value,
			Outcome: st.outcome,
		}
		if m, ok := r.(Messenger); ok {
			e.messenger = m
		}
		out = append(out, e)
	}
	return out
}

// SilentErrors returns every failing rule, dirty or not.
func (f *Field[T]) SilentErrors() []FieldError {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ruleErrors()
}

// SurfacedErrors returns the failing rules once the field is dirty.
func (f *Field[T]) SurfacedErrors() []FieldError {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.dirty {
		return nil
	}
	return f.ruleErrors()
}

// Errors returns external errors in the given order, then the silent or the
// surfaced rule errors depending on the silent flag.
func (f *Field[T]) Errors() []FieldError {
	f.mu.Lock()
	value, silent, dirty := f.value, f.silent, f.dirty
	var ruleErrs []FieldError
	if silent || dirty {
		ruleErrs = f.ruleErrors()
	}
	f.mu.Unlock()

	return append(f.externalErrors(value), ruleErrs...)
}

// HasError reports whether external errors exist or, in silent mode, any
// rule failed, or, in surfaced mode, any rule failed on a dirty field.
func (f *Field[T]) HasError() bool {
	if f.external != nil && len(f.external.Get()) > 0 {
		return true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.silent {
		return f.invalid()
	}
	return f.dirty && f.invalid()
}

// Validate marks the field dirty, waits for pending rules of the current
// evaluation and reports whether the field is free of errors.
func (f *Field[T]) Validate(ctx context.Context) (bool, error) {
	f.Touch()

	for {
		f.mu.Lock()
		if f.closed {
			f.mu.Unlock()
			return false, ErrFieldClosed
		}
		idle, token := f.idle, f.token
		f.mu.Unlock()

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-idle:
		}

		f.mu.Lock()
		closed, current := f.closed, token == f.token
		f.mu.Unlock()
		if closed {
			return false, ErrFieldClosed
		}
		if current {
			return !f.HasError(), nil
		}
	}
}

// Subscribe registers fn to run whenever the field state changes.
func (f *Field[T]) Subscribe(fn func()) (cancel func()) {
	return f.signal.Subscribe(fn)
}

// Close stops evaluation, cancels in-flight checks and detaches from every
// source. Outcomes arriving afterwards are discarded.
func (f *Field[T]) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.settle()
	unsubs := f.unsubs
	f.unsubs = nil
	f.mu.Unlock()

	f.cancel()
	for _, unsub := range unsubs {
		unsub()
	}
	return nil
}
