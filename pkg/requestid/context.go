package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header carries the request id to the backend.
const Header = "X-Request-ID"

type contextKey struct{}

// New returns a fresh random request id.
func New() string {
	return uuid.NewString()
}

func WithContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKey{}, requestID)
}

// FromContext returns the request id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(contextKey{}).(string)
	return requestID
}
