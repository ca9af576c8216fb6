package rules

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/dmitrymomot/formguard/pkg/apiclient"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/reactive"
	"github.com/dmitrymomot/formguard/pkg/validation"
)

// Default message keys for domain rejections that carry no message.
const (
	MessageNotAvailable = "validation.notAvailable"
	MessageDuplicateOrg  = "organization.new.error.duplicateName"
)

// scope is one parent-entity parameter of a remote check.
type scope struct {
	param string // name in the rule parameters
	query string // query parameter, empty when the value goes into the path
	value reactive.Readable[string]
}

// remoteRule checks availability of a value against the backend.
type remoteRule struct {
	typ            string
	path           func(scope map[string]string) string
	authenticated  bool
	valueQuery     string
	scopes         []scope
	defaultMessage string
	backend        Backend
	logger         *slog.Logger
}

func (r *remoteRule) Type() string { return r.typ }

// Params reads the scopes now. Outcomes carry the values sent with their
// request instead.
func (r *remoteRule) Params() validation.Params {
	params := make(validation.Params, len(r.scopes))
	for _, s := range r.scopes {
		params[s.param] = s.value.Get()
	}
	return params
}

func (r *remoteRule) Dependencies() []reactive.Source {
	readables := make([]reactive.Readable[string], 0, len(r.scopes))
	for _, s := range r.scopes {
		readables = append(readables, s.value)
	}
	return reactive.Sources(readables...)
}

// Evaluate skips the call for an absent value. Scope parameters are read at
// dispatch time, so the request always matches the evaluation that sent it.
func (r *remoteRule) Evaluate(ctx context.Context, value any) validation.Result {
	if !validation.HasValue(value) {
		return validation.Immediate(validation.Pass())
	}
	if r.backend == nil {
		return validation.Immediate(validation.Unavailable(ErrNoBackend))
	}

	snapshot := make(map[string]string, len(r.scopes))
	query := url.Values{}
	for _, s := range r.scopes {
		v := s.value.Get()
		snapshot[s.param] = v
		if s.query != "" {
			query.Set(s.query, v)
		}
	}
	query.Set(r.valueQuery, fmt.Sprint(value))

	req := apiclient.CheckRequest{
		Path:          r.path(snapshot),
		Authenticated: r.authenticated,
		Query:         query,
	}

	params := make(validation.Params, len(snapshot))
	for k, v := range snapshot {
		params[k] = v
	}

	return validation.Go(ctx, func(ctx context.Context) (validation.Outcome, error) {
		return r.classify(ctx, r.backend.Check(ctx, req)).WithParams(params), nil
	})
}

func (r *remoteRule) classify(ctx context.Context, err error) validation.Outcome {
	if err == nil {
		return validation.Pass()
	}
	if de, ok := apiclient.AsDomainError(err); ok {
		msg := de.Message
		if msg == "" {
			msg = r.defaultMessage
		}
		return validation.Reject(msg)
	}
	r.logger.DebugContext(ctx, "availability check failed", logger.Rule(r.typ), logger.Error(err))
	return validation.Unavailable(err)
}

func fixedPath(p string) func(map[string]string) string {
	return func(map[string]string) string { return p }
}

func orStatic(v reactive.Readable[string]) reactive.Readable[string] {
	if v == nil {
		return reactive.Static("")
	}
	return v
}

func (s *Set) remote(r *remoteRule, msg []string) validation.Rule {
	r.backend = s.backend
	r.logger = s.logger
	if r.defaultMessage == "" {
		r.defaultMessage = MessageNotAvailable
	}
	return s.wrap(r, msg)
}

// ValidProjectName checks that no project of ownerID uses the name.
func (s *Set) ValidProjectName(ownerID reactive.Readable[string], msg ...string) validation.Rule {
	return s.remote(&remoteRule{
		typ:        "validProjectName",
		path:       fixedPath("projects/validateName"),
		valueQuery: "value",
		scopes:     []scope{{param: "ownerId", query: "userId", value: orStatic(ownerID)}},
	}, msg)
}

// ValidOrgName checks that the organization name is free.
func (s *Set) ValidOrgName(msg ...string) validation.Rule {
	return s.remote(&remoteRule{
		typ:            "validOrgName",
		path:           fixedPath("organizations/validate"),
		valueQuery:     "name",
		defaultMessage: MessageDuplicateOrg,
	}, msg)
}

// ValidAPIKeyName checks that username has no API key with the name.
func (s *Set) ValidAPIKeyName(username reactive.Readable[string], msg ...string) validation.Rule {
	return s.remote(&remoteRule{
		typ: "validApiKeyName",
		path: func(scope map[string]string) string {
			return "api-keys/check-key/" + url.PathEscape(scope["username"])
		},
		authenticated: true,
		valueQuery:    "name",
		scopes:        []scope{{param: "username", value: orStatic(username)}},
	}, msg)
}

// ValidChannelName checks that the channel name is free within projectID.
// existingName is the name being edited and always passes.
func (s *Set) ValidChannelName(projectID, existingName reactive.Readable[string], msg ...string) validation.Rule {
	return s.remote(&remoteRule{
		typ:           "validChannelName",
		path:          fixedPath("channels/checkName"),
		authenticated: true,
		valueQuery:    "name",
		scopes: []scope{
			{param: "projectId", query: "projectId", value: orStatic(projectID)},
			{param: "existingName", query: "existingName", value: orStatic(existingName)},
		},
	}, msg)
}

// ValidChannelColor checks that the channel color is free within projectID.
// existingColor is the color being edited and always passes.
func (s *Set) ValidChannelColor(projectID, existingColor reactive.Readable[string], msg ...string) validation.Rule {
	return s.remote(&remoteRule{
		typ:           "validChannelColor",
		path:          fixedPath("channels/checkColor"),
		authenticated: true,
		valueQuery:    "color",
		scopes: []scope{
			{param: "projectId", query: "projectId", value: orStatic(projectID)},
			{param: "existingColor", query: "existingColor", value: orStatic(existingColor)},
		},
	}, msg)
}
