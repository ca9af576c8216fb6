package rules_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/apiclient"
	"github.com/dmitrymomot/formguard/pkg/reactive"
	"github.com/dmitrymomot/formguard/pkg/rules"
	"github.com/dmitrymomot/formguard/pkg/validation"
)

// fakeBackend records requests and answers with err.
type fakeBackend struct {
	mu       sync.Mutex
	err      error
	requests []apiclient.CheckRequest
}

func (b *fakeBackend) Check(_ context.Context, req apiclient.CheckRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, req)
	return b.err
}

func (b *fakeBackend) calls() []apiclient.CheckRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]apiclient.CheckRequest(nil), b.requests...)
}

func remoteRules(set *rules.Set) map[string]validation.Rule {
	return map[string]validation.Rule{
		"validProjectName":  set.ValidProjectName(reactive.Static("42")),
		"validOrgName":      set.ValidOrgName(),
		"validApiKeyName":   set.ValidAPIKeyName(reactive.Static("alice")),
		"validChannelName":  set.ValidChannelName(reactive.Static("7"), reactive.Static("Release")),
		"validChannelColor": set.ValidChannelColor(reactive.Static("7"), reactive.Static("#00ff00")),
	}
}

func TestRemoteRulesSkipAbsentValue(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	set := rules.New(nil, backend)

	for typ, rule := range remoteRules(set) {
		for _, value := range []any{nil, ""} {
			res := rule.Evaluate(context.Background(), value)
			assert.False(t, res.IsAsync(), typ)
			assert.True(t, res.Await().Valid, typ)
		}
	}
	assert.Empty(t, backend.calls())
}

func TestRemoteRulesCheckBlankValue(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{err: &apiclient.DomainError{Status: 400}}
	set := rules.New(nil, backend)

	rule := set.ValidOrgName()
	res := rule.Evaluate(context.Background(), "   ")
	require.True(t, res.IsAsync())

	o := res.Await()
	assert.False(t, o.Valid)
	assert.Equal(t, validation.ReasonDomain, o.Reason)

	calls := backend.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "   ", calls[0].Query.Get("name"))
}

func TestRemoteRulesRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ   string
		value string
		want  apiclient.CheckRequest
	}{
		{"validProjectName", "my-project", apiclient.CheckRequest{
			Path:  "projects/validateName",
			Query: map[string][]string{"userId": {"42"}, "value": {"my-project"}},
		}},
		{"validOrgName", "Acme", apiclient.CheckRequest{
			Path:  "organizations/validate",
			Query: map[string][]string{"name": {"Acme"}},
		}},
		{"validApiKeyName", "ci", apiclient.CheckRequest{
			Path:          "api-keys/check-key/alice",
			Authenticated: true,
			Query:         map[string][]string{"name": {"ci"}},
		}},
		{"validChannelName", "Beta", apiclient.CheckRequest{
			Path:          "channels/checkName",
			Authenticated: true,
			Query:         map[string][]string{"projectId": {"7"}, "existingName": {"Release"}, "name": {"Beta"}},
		}},
		{"validChannelColor", "#ff0000", apiclient.CheckRequest{
			Path:          "channels/checkColor",
			Authenticated: true,
			Query:         map[string][]string{"projectId": {"7"}, "existingColor": {"#00ff00"}, "color": {"#ff0000"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			t.Parallel()
			backend := &fakeBackend{}
			rule := remoteRules(rules.New(nil, backend))[tt.typ]

			assert.Equal(t, tt.typ, rule.Type())
			res := rule.Evaluate(context.Background(), tt.value)
			require.True(t, res.IsAsync())
			assert.True(t, res.Await().Valid)

			calls := backend.calls()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.want.Path, calls[0].Path)
			assert.Equal(t, tt.want.Authenticated, calls[0].Authenticated)
			assert.Equal(t, tt.want.Query.Encode(), calls[0].Query.Encode())
		})
	}
}

func TestRemoteRulesClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		typ         string
		wantReason  validation.Reason
		wantMessage string
	}{
		{"domain rejection with message", &apiclient.DomainError{Status: 400, Message: "X"}, "validChannelName", validation.ReasonDomain, "X"},
		{"domain rejection without message", &apiclient.DomainError{Status: 400}, "validChannelName", validation.ReasonDomain, rules.MessageNotAvailable},
		{"org rejection without message", &apiclient.DomainError{Status: 400}, "validOrgName", validation.ReasonDomain, rules.MessageDuplicateOrg},
		{"wrapped domain rejection", errors.Join(errors.New("ctx"), &apiclient.DomainError{Message: "Y"}), "validProjectName", validation.ReasonDomain, "Y"},
		{"transport failure", apiclient.ErrTransport, "validChannelName", validation.ReasonTransport, ""},
		{"org transport failure", apiclient.ErrTransport, "validOrgName", validation.ReasonTransport, ""},
		{"unexpected status", apiclient.ErrUnexpectedStatus, "validApiKeyName", validation.ReasonTransport, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rule := remoteRules(rules.New(nil, &fakeBackend{err: tt.err}))[tt.typ]

			o := rule.Evaluate(context.Background(), "taken").Await()
			assert.False(t, o.Valid)
			assert.Equal(t, tt.wantReason, o.Reason)
			assert.Equal(t, tt.wantMessage, o.Message)
			if tt.wantReason == validation.ReasonTransport {
				assert.ErrorIs(t, o.Err, tt.err)
			}
		})
	}
}

func TestRemoteRuleWithoutBackend(t *testing.T) {
	t.Parallel()

	o := rules.New(nil, nil).ValidOrgName().Evaluate(context.Background(), "Acme").Await()
	assert.False(t, o.Valid)
	assert.Equal(t, validation.ReasonTransport, o.Reason)
	assert.ErrorIs(t, o.Err, rules.ErrNoBackend)
}

func TestRemoteRuleScopeChangeReevaluates(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	set := rules.New(nil, backend)
	projectID := reactive.NewValue("1")

	rule := set.ValidChannelName(projectID, nil)
	assert.Equal(t, validation.Params{"projectId": "1", "existingName": ""}, rule.Params())

	field := validation.NewField("name", reactive.NewValue("Beta"), validation.WithRules(rule))
	defer field.Close()
	_, err := field.Validate(context.Background())
	require.NoError(t, err)

	projectID.Set("2")
	_, err = field.Validate(context.Background())
	require.NoError(t, err)

	calls := backend.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "1", calls[0].Query.Get("projectId"))
	assert.Equal(t, "2", calls[1].Query.Get("projectId"))
}

func TestRemoteRuleEscapesUsername(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	rule := rules.New(nil, backend).ValidAPIKeyName(reactive.Static("a/b"))
	require.True(t, rule.Evaluate(context.Background(), "key").Await().Valid)
	assert.Equal(t, "api-keys/check-key/a%2Fb", backend.calls()[0].Path)
}

func TestRemoteRuleErrorKeepsRequestScope(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{err: &apiclient.DomainError{Status: 400}}
	set := rules.New(nil, backend)

	project := "1"
	rule := set.ValidChannelName(reactive.Func[string](func() string { return project }), nil)

	o := rule.Evaluate(context.Background(), "Release").Await()
	assert.Equal(t, validation.Params{"projectId": "1", "existingName": ""}, o.Params)

	field := validation.NewField("name", reactive.NewValue("Release"), validation.WithRules(rule))
	defer field.Close()
	ok, err := field.Validate(context.Background())
	require.NoError(t, err)
	require.False(t, ok)

	// Not a reactive source, so the field does not re-run the check.
	project = "2"

	errs := field.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "1", errs[0].Params["projectId"])
	assert.Equal(t, "2", rule.Params()["projectId"])
	assert.Equal(t, "1", backend.calls()[1].Query.Get("projectId"))
}
