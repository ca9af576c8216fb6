package validation

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/reactive"
)

type fieldConfig struct {
	rules     []Rule
	external  reactive.Readable[[]string]
	silent    bool
	autoDirty bool
	ctx       context.Context
	logger    *slog.Logger
}

func defaultFieldConfig() *fieldConfig {
	return &fieldConfig{
		ctx:    context.Background(),
		logger: logger.Discard(),
	}
}

// FieldOption configures a Field.
type FieldOption func(*fieldConfig)

// WithRules appends rules in declaration order. Nil rules are skipped.
func WithRules(rules ...Rule) FieldOption {
	return func(c *fieldConfig) {
		for _, r := range rules {
			if r != nil {
				c.rules = append(c.rules, r)
			}
		}
	}
}

// WithExternalErrors adds errors supplied from outside the rule set, such as
// server-side form errors. They are always surfaced.
func WithExternalErrors(errs reactive.Readable[[]string]) FieldOption {
	return func(c *fieldConfig) {
		c.external = errs
	}
}

// WithSilentErrors starts the field in silent mode.
func WithSilentErrors(silent bool) FieldOption {
	return func(c *fieldConfig) {
		c.silent = silent
	}
}

// WithAutoDirty marks the field dirty on the first value change.
func WithAutoDirty() FieldOption {
	return func(c *fieldConfig) {
		c.autoDirty = true
	}
}

// WithContext sets the parent context handed to rule evaluations.
func WithContext(ctx context.Context) FieldOption {
	return func(c *fieldConfig) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

func WithLogger(l *slog.Logger) FieldOption {
	return func(c *fieldConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
