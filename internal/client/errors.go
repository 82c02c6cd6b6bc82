package client

import (
	"errors"
	"fmt"
)

// ServerError is a completed HTTP exchange whose status indicates failure.
// Message is the "error" field of the response body, or the status text when
// the body carries none.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.Status, e.Message)
}

// TransportError means the HTTP exchange could not complete or its response
// could not be parsed.
type TransportError struct {
	Op  string // "create", "list", "delete", "health"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsServerError reports whether err wraps a *ServerError.
func IsServerError(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}

// IsTransportError reports whether err wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
