package advisor

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so that callers can decide whether to retry, degrade or abort.
type Kind int

const (
	Unknown         Kind = iota
	Unauthenticated      // credentials are missing or rejected by a remote service.
	Unavailable          // the remote service could not be reached or is overloaded.
	NoData               // the request succeeded but nothing came back.
	InvalidInput         // the input cannot be processed as is.
)

func (k Kind) String() string {
	switch k {
	case Unauthenticated:
		return "unauthenticated"
	case Unavailable:
		return "unavailable"
	case NoData:
		return "no data"
	case InvalidInput:
		return "invalid input"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind as its name, so that it reads well in JSON payloads.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Error is a failure tagged with a Kind.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "gemini generate"
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf returns an *Error of the given kind, the message is formatted like fmt.Errorf (%w is supported).
func Errorf(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Wrap tags err with kind, unless err already carries a Kind.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, Unknown otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
