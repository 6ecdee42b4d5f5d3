// Package fault classifies errors so handlers can branch on kind
// instead of string-matching upstream messages.
package fault

import (
	"errors"
	"fmt"
)

// Kind enumerates the failure classes surfaced by the backend.
type Kind int

const (
	// Unknown covers errors that were never classified.
	Unknown Kind = iota
	// Auth covers OAuth state mismatches and failed token exchanges.
	Auth
	// Upstream covers failures calling the Calendar or AI APIs.
	Upstream
	// Validation covers rejected client input.
	Validation
)

func (k Kind) String() string {
	switch k {
	case Auth:
		return "auth"
	case Upstream:
		return "upstream"
	case Validation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error pairs a Kind with the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Authf wraps a formatted error as an Auth fault.
func Authf(format string, args ...any) error {
	return &Error{Kind: Auth, Err: fmt.Errorf(format, args...)}
}

// Upstreamf wraps a formatted error as an Upstream fault.
func Upstreamf(format string, args ...any) error {
	return &Error{Kind: Upstream, Err: fmt.Errorf(format, args...)}
}

// Validationf wraps a formatted error as a Validation fault.
func Validationf(format string, args ...any) error {
	return &Error{Kind: Validation, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the Kind of err, or Unknown if err carries none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}
