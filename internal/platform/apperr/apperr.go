// Package apperr defines the error taxonomy shared by all features and maps it to HTTP responses.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. The set is closed: every handler response is derived from one of these.
type Kind int

const (
	// Storage is the default kind: the backing store failed or an unexpected fault happened.
	Storage Kind = iota
	// Validation means the caller sent malformed input.
	Validation
	// InvalidCredentials is the uniform login failure.
	InvalidCredentials
	// DuplicateEmail is a registration conflict.
	DuplicateEmail
	// Unauthorized means no usable identity was presented.
	Unauthorized
	// Forbidden means the identity is known but not allowed.
	Forbidden
	// NotFound means the target is missing or soft-deleted.
	NotFound
	// CapacityExceeded is a rejected join on a full event.
	CapacityExceeded
	// Configuration means the process is missing required settings.
	Configuration
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case InvalidCredentials:
		return "invalid_credentials"
	case DuplicateEmail:
		return "duplicate_email"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case CapacityExceeded:
		return "capacity_exceeded"
	case Configuration:
		return "configuration"
	default:
		return "storage"
	}
}

// Error carries a Kind together with the operation that failed and its cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// E builds an *Error. err may be nil, in which case the kind name is used as the message.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil && e.Op == "":
		return e.Kind.String()
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Op == "":
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or Storage when there is none.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Storage
}

// IsKind reports whether err classifies as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
