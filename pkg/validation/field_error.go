package validation

import (
	"context"
	"strings"
)

// FieldError is one entry of a field's error list. Rule errors resolve their
// text through Message on every call; external errors carry it verbatim.
type FieldError struct {
	Field    string
	Rule     string
	Params   Params
	Value    any
	Outcome  Outcome
	External bool

	messenger Messenger
}

// Message returns the display text for ctx's locale.
func (e FieldError) Message(ctx context.Context) string {
	if e.External {
		return e.Outcome.Message
	}
	if e.messenger != nil {
		return e.messenger.Message(ctx, e)
	}
	return Resolver{}.Key(e)
}

func (e FieldError) Error() string {
	if e.External {
		return e.Field + ": " + e.Outcome.Message
	}
	return e.Field + ": " + e.Rule
}

// FieldErrors collects errors of several fields.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Error())
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Unwrap() error {
	return ErrValidationFailed
}

// Has reports whether any error belongs to field.
func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Messages resolves every error of field in ctx's locale.
func (fe FieldErrors) Messages(ctx context.Context, field string) []string {
	var out []string
	for _, e := range fe {
		if e.Field == field {
			out = append(out, e.Message(ctx))
		}
	}
	return out
}

// Fields lists field names in first-seen order.
func (fe FieldErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, e := range fe {
		if !seen[e.Field] {
			fields = append(fields, e.Field)
			seen[e.Field] = true
		}
	}
	return fields
}
