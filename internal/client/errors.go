package client

import (
	"errors"
	"fmt"
)

// ErrNoSnapshots reports that the device has no snapshots available right
// now. Snapshot retention is best-effort on the platform side, so callers
// should treat this as a normal outcome rather than a failure.
var ErrNoSnapshots = errors.New("no snapshots available for device")

// ErrNotImplemented reports a call into a reserved extension point, e.g.
// selecting a named subset of settings.
var ErrNotImplemented = errors.New("not implemented")

// ErrorKind classifies an API rejection by the HTTP status that produced it.
type ErrorKind int

const (
	// Unexpected covers any status outside the documented 200/400/401/403 set.
	Unexpected ErrorKind = iota
	// Unauthorized (401) usually means the token is invalid or expired.
	Unauthorized
	// Forbidden (403): the token lacks the required ACL.
	Forbidden
	// BadRequest (400): the request or its filter was rejected.
	BadRequest
	// MalformedResponse: a 200 whose body is not the expected envelope.
	MalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case BadRequest:
		return "bad request"
	case MalformedResponse:
		return "malformed response"
	default:
		return "unexpected"
	}
}

// APIError is a request the gateway received and rejected, or answered with
// a body the client could not decode. Transport failures are a
// *TransportError instead.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	// Reason carries the human-readable text from the error envelope's first
	// entry, when the gateway provided one.
	Reason string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("flespi: %s (status %d): %s", e.Kind, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("flespi: %s (status %d)", e.Kind, e.StatusCode)
}

// TransportError is a failure to complete the round trip at all: connection
// refused, timeout, cancelled context. No API outcome exists.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("flespi: request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsAuthError reports whether err is an API rejection caused by the token
// (401 or 403).
func IsAuthError(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Kind == Unauthorized || ae.Kind == Forbidden
	}
	return false
}
