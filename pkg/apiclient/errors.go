package apiclient

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig    = errors.New("apiclient: invalid configuration")
	ErrInvalidRequest   = errors.New("apiclient: invalid request")
	ErrUnauthenticated  = errors.New("apiclient: no access token for authenticated call")
	ErrTransport        = errors.New("apiclient: transport failure")
	ErrUnexpectedStatus = errors.New("apiclient: unexpected response status")
	ErrCircuitOpen      = errors.New("apiclient: backend circuit is open")
)

// DomainError is a structured rejection reported by the backend, as opposed
// to a transport or server failure.
type DomainError struct {
	Status      int
	Message     string
	MessageArgs []any
}

func (e *DomainError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("apiclient: domain rejection (status %d)", e.Status)
	}
	return fmt.Sprintf("apiclient: domain rejection (status %d): %s", e.Status, e.Message)
}

// AsDomainError returns the DomainError wrapped in err, if any.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsDomainError reports whether err carries a backend domain rejection.
func IsDomainError(err error) bool {
	_, ok := AsDomainError(err)
	return ok
}
