package validation

import (
	"context"
	"maps"

	"github.com/dmitrymomot/formguard/pkg/reactive"
)

// KeyPrefix is prepended to a rule type to form its default message key.
const KeyPrefix = "validation."

// Translator turns a message key and its parameters into display text for
// the locale carried by ctx. *i18n.Translator satisfies it.
type Translator interface {
	Translate(ctx context.Context, key string, params map[string]any) string
}

// TranslatorFunc adapts a plain function to Translator.
type TranslatorFunc func(ctx context.Context, key string, params map[string]any) string

func (f TranslatorFunc) Translate(ctx context.Context, key string, params map[string]any) string {
	return f(ctx, key, params)
}

// Resolver picks the message key for a failure and hands it to the Translator.
//
// The key is KeyPrefix + rule type. A message carried by the outcome (for
// example one supplied by the backend) replaces it, and a non-empty Override
// replaces both. A nil Translator returns the key unchanged.
type Resolver struct {
	Translator Translator
	Override   string
}

// Key returns the lookup key chosen for e.
func (r Resolver) Key(e FieldError) string {
	switch {
	case r.Override != "":
		return r.Override
	case e.Outcome.Message != "":
		return e.Outcome.Message
	default:
		return KeyPrefix + e.Rule
	}
}

// Resolve translates the failure. It is not cached: every call consults the
// Translator so a locale change is picked up immediately.
func (r Resolver) Resolve(ctx context.Context, e FieldError) string {
	key := r.Key(e)
	if r.Translator == nil {
		return key
	}
	return r.Translator.Translate(ctx, key, e.bag())
}

// bag is the full parameter set handed to the Translator.
func (e FieldError) bag() map[string]any {
	params := make(map[string]any, len(e.Params)+4)
	maps.Copy(params, e.Params)
	params["type"] = e.Rule
	params["property"] = e.Field
	params["model"] = e.Value
	params["response"] = map[string]any{
		"valid":   e.Outcome.Valid,
		"message": e.Outcome.Message,
		"reason":  e.Outcome.Reason.String(),
	}
	return params
}

type messageRule struct {
	Rule
	resolver Resolver
}

// WithMessage returns a rule that validates exactly like rule and resolves its
// failure message through t, honoring override when it is non-empty.
// Synchronous rules stay synchronous and asynchronous rules stay asynchronous.
func WithMessage(rule Rule, t Translator, override string) Rule {
	if inner, ok := rule.(*messageRule); ok {
		rule = inner.Rule
		if override == "" {
			override = inner.resolver.Override
		}
	}
	return &messageRule{Rule: rule, resolver: Resolver{Translator: t, Override: override}}
}

func (r *messageRule) Message(ctx context.Context, e FieldError) string {
	return r.resolver.Resolve(ctx, e)
}

func (r *messageRule) Dependencies() []reactive.Source {
	return dependencies(r.Rule)
}
