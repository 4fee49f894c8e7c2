package libclient

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrResourceDoesNotExist = errors.New("resource does not exist")
	ErrAccessForbidden      = errors.New("resource access forbidden")
	ErrInvalidArgument      = errors.New("invalid argument")
)

// ErrorKind is a coarse-grained categorization for API errors.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "not_found"
	KindForbidden       ErrorKind = "forbidden"
	KindAPI             ErrorKind = "api"
	KindTransport       ErrorKind = "transport"
	KindInvalidArgument ErrorKind = "invalid_argument"
)

// APIError wraps a request failure with operation context and a kind.
// Transport-level causes stay reachable through Unwrap; the underlying
// HTTP library's error types never cross this boundary unwrapped.
type APIError struct {
	Op     string
	Kind   ErrorKind
	Status int // HTTP status when one was received, 0 otherwise
	Err    error
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		base += fmt.Sprintf(" (status=%d)", e.Status)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is maps kinds onto the package sentinels so that callers can classify
// failures with errors.Is without inspecting the concrete type.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrResourceDoesNotExist:
		return e.Kind == KindNotFound
	case ErrAccessForbidden:
		return e.Kind == KindForbidden
	case ErrInvalidArgument:
		return e.Kind == KindInvalidArgument
	}
	return false
}

// IsKind helps callers classify errors without depending on the wrapper type.
func IsKind(err error, kind ErrorKind) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// EditFormError is a domain validation failure on an edit submission.
// It is distinguished from transport errors by status code before decoding:
// the server answered, but rejected the form, and Payload carries the parsed
// per-field error body.
type EditFormError struct {
	Status  int
	Payload map[string]any
	// RawBody holds the response body verbatim when it was not JSON and
	// Payload could not be filled.
	RawBody string
}

func (e *EditFormError) Error() string {
	if len(e.Payload) == 0 && e.RawBody != "" {
		return fmt.Sprintf("edit form rejected (status=%d): %s", e.Status, e.RawBody)
	}
	return fmt.Sprintf("edit form rejected (status=%d, %d field error(s))", e.Status, len(e.Payload))
}

// ErrorFromStatus translates a residual non-2xx status into an APIError.
// It returns nil for success statuses. Statuses with dedicated semantics
// (404/410/401) are already translated by the resource verbs.
func ErrorFromStatus(op string, status int) error {
	if status < 400 {
		return nil
	}
	return &APIError{Op: op, Kind: KindAPI, Status: status}
}
