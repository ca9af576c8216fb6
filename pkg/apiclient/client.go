package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/requestid"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 * 1024

// CheckRequest describes one availability check.
type CheckRequest struct {
	// Path is relative to the API prefix, e.g. "channels/checkName".
	Path          string
	Authenticated bool
	Query         url.Values
}

// Client calls the backend availability endpoints. Safe for concurrent use.
type Client struct {
	base      *url.URL
	userAgent string
	http      *http.Client
	tokens    TokenSource
	breaker   *breaker
	logger    *slog.Logger
}

// New validates cfg and builds a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %w", ErrInvalidConfig, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: base url must be http or https", ErrInvalidConfig)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("%w: base url host is required", ErrInvalidConfig)
	}
	base = base.JoinPath(cfg.Prefix)
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		base:      base,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: timeout},
		breaker:   newBreaker(cfg.BreakerThreshold, cfg.BreakerCooldown),
		logger:    logger.Discard(),
	}
	if cfg.Token != "" {
		c.tokens = StaticToken(cfg.Token)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CircuitState reports "closed", "open" or "half-open".
func (c *Client) CircuitState() string {
	return c.breaker.current().String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// Check performs the request and classifies the answer:
// nil on 2xx, *DomainError for a structured backend rejection, and an error
// matching ErrTransport, ErrUnexpectedStatus, ErrUnauthenticated or
// ErrCircuitOpen otherwise.
func (c *Client) Check(ctx context.Context, req CheckRequest) error {
	if req.Path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidRequest)
	}
	if !c.breaker.allow() {
		return ErrCircuitOpen
	}

	endpoint := c.endpoint(req.Path, req.Query)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestid.Header, reqID)
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if req.Authenticated {
		token, err := c.token(ctx)
		if err != nil {
			return err
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		// Cancellation by the caller is not a backend failure.
		if ctx.Err() == nil {
			c.breaker.failure()
		}
		c.logger.DebugContext(ctx, "check failed",
			logger.Endpoint(req.Path),
			logger.RequestID(reqID),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "check completed",
		logger.Endpoint(req.Path),
		logger.RequestID(reqID),
		logger.Status(resp.StatusCode),
		logger.Duration(time.Since(start)),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		c.breaker.success()
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if de := parseDomainError(resp.StatusCode, body); de != nil {
		c.breaker.success()
		return de
	}

	if resp.StatusCode >= 500 {
		c.breaker.failure()
	} else {
		c.breaker.success()
	}
	return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", ErrUnauthenticated
	}
	token, err := c.tokens(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if token == "" {
		return "", ErrUnauthenticated
	}
	return token, nil
}

type errorPayload struct {
	IsDomainException    bool   `json:"isDomainException"`
	IsHangarAPIException bool   `json:"isHangarApiException"`
	Message              string `json:"message"`
	MessageArgs          []any  `json:"messageArgs"`
}

// parseDomainError returns nil unless body is a JSON error flagged as a domain rejection.
func parseDomainError(status int, body []byte) *DomainError {
	if len(body) == 0 {
		return nil
	}
	var p errorPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil
	}
	if !p.IsDomainException && !p.IsHangarAPIException {
		return nil
	}
	return &DomainError{Status: status, Message: p.Message, MessageArgs: p.MessageArgs}
}
