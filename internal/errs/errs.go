// Package errs defines the failure taxonomy shared by every core operation.
package errs

import (
	"errors"
	"fmt"
)

// ErrInFlight is returned when an operation is attempted while the same
// operation is still pending. Callers reject, they never queue.
var ErrInFlight = errors.New("operation already in progress")

// ValidationError blocks a call before any network round-trip.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ProtocolError is a non-JSON or unexpected-shape response.
type ProtocolError struct {
	Op     string
	Status int
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: protocol error (status %d): %s", e.Op, e.Status, e.Reason)
}

// RemoteError is a well-formed error body returned by the remote store.
// Message is shown to the user verbatim.
type RemoteError struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// AuthError reports a missing or rejected credential.
type AuthError struct {
	Op     string
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// NotFoundError separates "does not exist yet" from every other failure.
type NotFoundError struct {
	Op       string
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s not found", e.Op, e.Resource)
}

// Validation builds a ValidationError.
func Validation(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsProtocol reports whether err is a ProtocolError.
func IsProtocol(err error) bool {
	var p *ProtocolError
	return errors.As(err, &p)
}

// IsRemote reports whether err is a RemoteError.
func IsRemote(err error) bool {
	var r *RemoteError
	return errors.As(err, &r)
}

// IsAuth reports whether err is an AuthError.
func IsAuth(err error) bool {
	var a *AuthError
	return errors.As(err, &a)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}

// UserMessage returns the short message to show for err.
// Remote and validation messages pass through; everything else uses fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var r *RemoteError
	if errors.As(err, &r) && r.Message != "" {
		return r.Message
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Message
	}
	var a *AuthError
	if errors.As(err, &a) {
		return a.Reason
	}
	if errors.Is(err, ErrInFlight) {
		return "Please wait for the current request to finish"
	}
	return fallback
}
