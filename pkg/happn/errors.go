package happn

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned by operations that need a session when none exists.
	ErrNotAuthenticated = errors.New("happn: no authenticated session")
	// ErrSessionEstablished is returned when Authenticate is called on a client that already holds a token.
	ErrSessionEstablished = errors.New("happn: session already established")
)

// TransportError reports a failure to exchange a request before any response arrived.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthenticationError reports a rejected or failed token exchange. Exactly one of
// Reason (server answered with a non-200 status) or Err (no usable answer) is set.
type AuthenticationError struct {
	StatusCode int
	Reason     string
	Err        error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %v", e.Err)
	}
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// RequestError reports a non-200 response to an authenticated operation.
// Its message is the status reason alone so callers can match on it.
type RequestError struct {
	Op         string
	StatusCode int
	Reason     string
}

func (e *RequestError) Error() string { return e.Reason }
