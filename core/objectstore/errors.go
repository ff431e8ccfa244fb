package objectstore

import (
	"errors"
	"fmt"
)

// Kind classifies facade failures.
type Kind int

const (
	// KindNotFound means the requested key does not exist.
	KindNotFound Kind = iota + 1
	// KindCallout means the backend call itself failed.
	KindCallout
	// KindInvalidOperation means the input was rejected before any backend call.
	KindInvalidOperation
	// KindItemParsing means the stored body could not be decoded.
	KindItemParsing
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindCallout:
		return "storage callout failed"
	case KindInvalidOperation:
		return "invalid storage operation"
	case KindItemParsing:
		return "storage item parsing failed"
	default:
		return "unknown storage error"
	}
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrCallout          = &Error{Kind: KindCallout}
	ErrInvalidOperation = &Error{Kind: KindInvalidOperation}
	ErrItemParsing      = &Error{Kind: KindItemParsing}
)

// Error is returned by every Store operation. Op names the operation and Err
// carries the underlying cause.
type Error struct {
	Kind    Kind
	Op      string
	Key     string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Message != "" {
		msg = e.Message
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Key != "" {
		msg += fmt.Sprintf(" (key %q)", e.Key)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func newError(kind Kind, op, key, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Key: key, Message: msg, Err: err}
}
