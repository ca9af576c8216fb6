package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil error yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Field records a form field name under "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Rule records a validation rule type under "rule".
func Rule(ruleType string) slog.Attr {
	return slog.String("rule", ruleType)
}

// Token records a field evaluation token under "token".
func Token(token uint64) slog.Attr {
	return slog.Uint64("token", token)
}

// Endpoint records a backend endpoint path under "endpoint".
func Endpoint(path string) slog.Attr {
	return slog.String("endpoint", path)
}

// Status records an HTTP status code under "status".
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Duration records d under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// RequestID records the request identifier under "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}
