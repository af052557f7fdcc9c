package generation

import (
	"errors"
	"fmt"
)

// Kind is the caller-visible failure category.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthenticated
	KindServiceUnavailable
	KindInsufficientFunds
	KindBadRequest
	KindGenerationFailure
	KindMisconfiguration
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindBadRequest:
		return "bad_request"
	case KindGenerationFailure:
		return "generation_failure"
	case KindMisconfiguration:
		return "misconfiguration"
	default:
		return "unknown"
	}
}

// Error carries a Kind, a generic message safe to show the caller, and the
// internal cause, which is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf returns the Kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

const (
	msgDatabaseDown   = "Database is taking too long to respond. Please try again."
	msgNotConfigured  = "Service is not configured. Please try again later."
	msgInvalidURL     = "Invalid URL"
	msgUnsupported    = "Unsupported task type"
	msgGenerationFail = "AI Generation Failed"
)
