package rules

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/formguard/pkg/apiclient"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/validation"
)

// ErrNoBackend is reported by remote rules of a Set built without a Backend.
var ErrNoBackend = errors.New("rules: no backend configured")

// Backend performs availability checks. *apiclient.Client satisfies it.
type Backend interface {
	Check(ctx context.Context, req apiclient.CheckRequest) error
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, req apiclient.CheckRequest) error

func (f BackendFunc) Check(ctx context.Context, req apiclient.CheckRequest) error {
	return f(ctx, req)
}

// Set builds rules bound to one Translator and one Backend.
// Every factory accepts an optional override message; when given, it
// replaces both the default key and any backend-supplied message.
type Set struct {
	translator validation.Translator
	backend    Backend
	logger     *slog.Logger
}

type Option func(*Set)

func WithLogger(l *slog.Logger) Option {
	return func(s *Set) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a rule set. t may be nil, in which case messages resolve to
// their keys; backend may be nil for forms without remote rules.
func New(t validation.Translator, backend Backend, opts ...Option) *Set {
	s := &Set{
		translator: t,
		backend:    backend,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("rules"))
	return s
}

func (s *Set) wrap(r validation.Rule, msg []string) validation.Rule {
	var override string
	if len(msg) > 0 {
		override = msg[0]
	}
	return validation.WithMessage(r, s.translator, override)
}
