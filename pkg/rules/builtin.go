package rules

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/dmitrymomot/formguard/pkg/reactive"
	"github.com/dmitrymomot/formguard/pkg/validation"
)

// Required fails on nil, blank strings, empty collections and nil pointers.
func (s *Set) Required(msg ...string) validation.Rule {
	return s.wrap(validation.NewRule("required", nil, validation.IsPresent), msg)
}

type requiredIf struct {
	cond reactive.Readable[bool]
}

func (r *requiredIf) Type() string { return "requiredIf" }

func (r *requiredIf) Params() validation.Params {
	return validation.Params{"prop": r.cond.Get()}
}

func (r *requiredIf) Evaluate(_ context.Context, value any) validation.Result {
	if !r.cond.Get() || validation.IsPresent(value) {
		return validation.Immediate(validation.Pass())
	}
	return validation.Immediate(validation.Fail(""))
}

func (r *requiredIf) Dependencies() []reactive.Source {
	return reactive.Sources(r.cond)
}

// RequiredIf behaves like Required while cond is true and passes otherwise.
// The field re-evaluates when cond changes.
func (s *Set) RequiredIf(cond reactive.Readable[bool], msg ...string) validation.Rule {
	if cond == nil {
		cond = reactive.Static(false)
	}
	return s.wrap(&requiredIf{cond: cond}, msg)
}

// length counts runes of strings and elements of collections; other values
// are measured by their printed form.
func length(v any) int {
	if n, ok := validation.Length(v); ok {
		return n
	}
	return len([]rune(fmt.Sprint(v)))
}

// MinLength fails when a non-empty value is shorter than min.
// Whitespace counts.
func (s *Set) MinLength(min int, msg ...string) validation.Rule {
	return s.wrap(validation.NewRule("minLength", validation.Params{"min": min}, func(v any) bool {
		return !validation.HasValue(v) || length(v) >= min
	}), msg)
}

// MaxLength fails when a present value is longer than max.
func (s *Set) MaxLength(max int, msg ...string) validation.Rule {
	return s.wrap(validation.NewRule("maxLength", validation.Params{"max": max}, func(v any) bool {
		return !validation.HasValue(v) || length(v) <= max
	}), msg)
}

// URL accepts absolute http, https and ftp URLs with a host.
func (s *Set) URL(msg ...string) validation.Rule {
	return s.wrap(validation.NewRule("url", nil, func(v any) bool {
		if !validation.HasValue(v) {
			return true
		}
		u, err := url.ParseRequestURI(fmt.Sprint(v))
		if err != nil || u.Host == "" {
			return false
		}
		switch u.Scheme {
		case "http", "https", "ftp":
			return true
		default:
			return false
		}
	}), msg)
}

// Pattern fails when a present value does not match regex.
// It panics if regex does not compile.
func (s *Set) Pattern(regex string, msg ...string) validation.Rule {
	re := regexp.MustCompile(regex)
	return s.wrap(validation.NewRule("pattern", validation.Params{"regex": regex}, func(v any) bool {
		return !validation.HasValue(v) || re.MatchString(fmt.Sprint(v))
	}), msg)
}
