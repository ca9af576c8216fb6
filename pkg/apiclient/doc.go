// Package apiclient talks to the backend availability endpoints used by the
// remote validation rules.
//
// Every endpoint is a GET under Config.BaseURL + Config.Prefix. Check
// classifies the answer into three cases that callers must keep apart:
//
//   - nil: the value is available (2xx).
//   - *DomainError: the backend explicitly rejected the value. The JSON body
//     carries isDomainException or isHangarApiException and an optional
//     message key.
//   - any other error: the check could not be completed (network failure,
//     unexpected status, missing token, open circuit). This must never be
//     presented as "value taken".
//
// Each request carries an X-Request-ID header, taken from the context when
// present (see package requestid) and generated otherwise. Authenticated
// calls add a bearer token from the TokenSource.
//
// After Config.BreakerThreshold consecutive transport failures the client
// stops calling the backend for Config.BreakerCooldown and fails fast with
// ErrCircuitOpen.
package apiclient
