package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formguard/pkg/reactive"
	"github.com/dmitrymomot/formguard/pkg/rules"
	"github.com/dmitrymomot/formguard/pkg/validation"
)

func valid(r validation.Rule, v any) bool {
	return r.Evaluate(context.Background(), v).Await().Valid
}

func TestBuiltinRules(t *testing.T) {
	t.Parallel()
	set := rules.New(nil, nil)

	tests := []struct {
		name  string
		rule  validation.Rule
		value any
		want  bool
	}{
		{"required empty", set.Required(), "", false},
		{"required blank", set.Required(), "   ", false},
		{"required nil", set.Required(), nil, false},
		{"required value", set.Required(), "x", true},
		{"required empty slice", set.Required(), []string{}, false},
		{"minLength absent passes", set.MinLength(3), "", true},
		{"minLength short", set.MinLength(3), "ab", false},
		{"minLength exact", set.MinLength(3), "abc", true},
		{"minLength whitespace counts", set.MinLength(3), "  ", false},
		{"minLength padded", set.MinLength(3), " a ", true},
		{"minLength counts runes", set.MinLength(3), "äöü", true},
		{"maxLength long", set.MaxLength(3), "abcd", false},
		{"maxLength ok", set.MaxLength(3), "abc", true},
		{"maxLength whitespace counts", set.MaxLength(3), "    ", false},
		{"maxLength slice", set.MaxLength(1), []int{1, 2}, false},
		{"url absent passes", set.URL(), "", true},
		{"url https", set.URL(), "https://example.com/path?q=1", true},
		{"url ftp", set.URL(), "ftp://files.example.com", true},
		{"url relative", set.URL(), "/just/a/path", false},
		{"url bad scheme", set.URL(), "javascript:alert(1)", false},
		{"url garbage", set.URL(), "not a url", false},
		{"pattern absent passes", set.Pattern(`^[a-z]+$`), "", true},
		{"pattern match", set.Pattern(`^[a-z]+$`), "abc", true},
		{"pattern mismatch", set.Pattern(`^[a-z]+$`), "ABC", false},
		{"pattern blank is checked", set.Pattern(`^[a-z]+$`), "   ", false},
		{"url blank is checked", set.URL(), " ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := tt.rule.Evaluate(context.Background(), tt.value)
			assert.False(t, res.IsAsync())
			assert.Equal(t, tt.want, res.Await().Valid)
		})
	}
}

func TestBuiltinRuleParams(t *testing.T) {
	t.Parallel()
	set := rules.New(nil, nil)

	assert.Equal(t, "minLength", set.MinLength(3).Type())
	assert.Equal(t, 3, set.MinLength(3).Params()["min"])
	assert.Equal(t, 5, set.MaxLength(5).Params()["max"])
	assert.Equal(t, `^\d+$`, set.Pattern(`^\d+$`).Params()["regex"])
	assert.Panics(t, func() { set.Pattern(`(`) })
}

func TestRequiredIf(t *testing.T) {
	t.Parallel()
	set := rules.New(nil, nil)

	cond := reactive.NewValue(false)
	rule := set.RequiredIf(cond)
	assert.True(t, valid(rule, ""))

	cond.Set(true)
	assert.False(t, valid(rule, ""))
	assert.True(t, valid(rule, "x"))

	w, ok := rule.(validation.Watcher)
	assert.True(t, ok)
	assert.Len(t, w.Dependencies(), 1)

	assert.True(t, valid(set.RequiredIf(nil), ""))
}

func TestRequiredIfReevaluatesField(t *testing.T) {
	t.Parallel()
	set := rules.New(nil, nil)

	cond := reactive.NewValue(false)
	field := validation.NewField("reason", reactive.NewValue(""),
		validation.WithRules(set.RequiredIf(cond)),
		validation.WithSilentErrors(true),
	)
	defer field.Close()

	assert.False(t, field.HasError())
	cond.Set(true)
	assert.True(t, field.HasError())
}

func TestOverrideMessage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	set := rules.New(nil, nil)

	field := validation.NewField("name", reactive.NewValue(""),
		validation.WithRules(set.Required("Please enter a name"), set.MinLength(3)),
		validation.WithSilentErrors(true),
	)
	defer field.Close()

	errs := field.Errors()
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "Please enter a name", errs[0].Message(ctx))
	}
}
