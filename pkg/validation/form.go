package validation

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrymomot/formguard/pkg/async"
)

// Validatable is the part of a Field a Form needs. *Field[T] satisfies it for any T.
type Validatable interface {
	Name() string
	HasError() bool
	Pending() bool
	Errors() []FieldError
	Validate(ctx context.Context) (bool, error)
	Reset()
	Close() error
}

// Form groups independent fields. Fields never share evaluation state;
// the form only aggregates.
type Form struct {
	mu     sync.RWMutex
	fields []Validatable
}

func NewForm(fields ...Validatable) *Form {
	f := &Form{}
	f.Add(fields...)
	return f
}

// Add appends fields; nil entries are skipped.
func (f *Form) Add(fields ...Validatable) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, field := range fields {
		if field != nil {
			f.fields = append(f.fields, field)
		}
	}
}

// Field returns the field registered under name.
func (f *Form) Field(name string) (Validatable, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, field := range f.fields {
		if field.Name() == name {
			return field, true
		}
	}
	return nil, false
}

func (f *Form) snapshot() []Validatable {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Validatable, len(f.fields))
	copy(out, f.fields)
	return out
}

func (f *Form) HasError() bool {
	for _, field := range f.snapshot() {
		if field.HasError() {
			return true
		}
	}
	return false
}

func (f *Form) Pending() bool {
	for _, field := range f.snapshot() {
		if field.Pending() {
			return true
		}
	}
	return false
}

// Errors maps field names to their current errors. Fields without errors are omitted.
func (f *Form) Errors() map[string][]FieldError {
	out := make(map[string][]FieldError)
	for _, field := range f.snapshot() {
		if errs := field.Errors(); len(errs) > 0 {
			out[field.Name()] = errs
		}
	}
	return out
}

// All returns every current error in field order.
func (f *Form) All() FieldErrors {
	var out FieldErrors
	for _, field := range f.snapshot() {
		out = append(out, field.Errors()...)
	}
	return out
}

// Validate validates all fields concurrently. It returns FieldErrors (which
// matches ErrValidationFailed with errors.Is) when any field has an error.
func (f *Form) Validate(ctx context.Context) error {
	fields := f.snapshot()
	futures := make([]*async.Future[bool], 0, len(fields))
	for _, field := range fields {
		futures = append(futures, async.Async(ctx, field, func(ctx context.Context, v Validatable) (bool, error) {
			return v.Validate(ctx)
		}))
	}

	results, err := async.WaitAll(futures...)
	if err != nil {
		return err
	}
	for _, ok := range results {
		if !ok {
			return f.All()
		}
	}
	return nil
}

// Reset clears the dirty flag of every field.
func (f *Form) Reset() {
	for _, field := range f.snapshot() {
		field.Reset()
	}
}

// Close closes every field.
func (f *Form) Close() error {
	var errs []error
	for _, field := range f.snapshot() {
		if err := field.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
