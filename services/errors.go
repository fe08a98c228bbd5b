package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies backend failures
type ErrorKind int

const (
	// ErrTransport means no response reached us (network failure, timeout)
	ErrTransport ErrorKind = iota
	// ErrNotFound means the backend answered 404 with a detail message
	ErrNotFound
	// ErrBadRequest means the backend answered any other non-success status
	ErrBadRequest
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTransport:
		return "transport"
	case ErrNotFound:
		return "not_found"
	case ErrBadRequest:
		return "bad_request"
	default:
		return "unknown"
	}
}

// APIError is the single error type the fetch client surfaces. For response
// errors, Detail carries the server-supplied message verbatim; for transport
// errors, Err carries the underlying cause.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Detail     string
	Err        error
}

func (e *APIError) Error() string {
	if e.Kind == ErrTransport {
		return fmt.Sprintf("backend unreachable: %v", e.Err)
	}
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a network-level failure
func IsTransport(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == ErrTransport
}

// IsNotFound reports whether err is a backend 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == ErrNotFound
}

// ErrorDetail extracts the user-facing message from a fetch error: the
// server detail verbatim when we have one, the error text otherwise.
func ErrorDetail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Kind != ErrTransport && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}

// errorType returns the metrics label for a fetch error
func errorType(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind.String()
	}
	return "unknown"
}
