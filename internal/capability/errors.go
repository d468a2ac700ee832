package capability

import (
	"errors"
	"fmt"
)

// Kind classifies why a capability call failed.
type Kind int

const (
	// KindUnknown is reported for errors that carry no kind.
	KindUnknown Kind = iota
	// KindUnsupported: the capability is deliberately not implemented.
	KindUnsupported
	// KindInvalidValue: an argument or state has the wrong logical value.
	KindInvalidValue
	// KindMissingKey: a requested key does not exist.
	KindMissingKey
	// KindOutOfRange: a numeric or positional argument is outside its domain.
	KindOutOfRange
	// KindInvalidSignature: the capability was invoked with the wrong
	// number of arguments.
	KindInvalidSignature
	// KindInternal: a failure the consumer cannot anticipate.
	KindInternal
)

var kindNames = map[Kind]string{
	KindUnknown:          "unknown",
	KindUnsupported:      "unsupported-operation",
	KindInvalidValue:     "invalid-value",
	KindMissingKey:       "missing-key",
	KindOutOfRange:       "out-of-range",
	KindInvalidSignature: "invalid-call-signature",
	KindInternal:         "internal",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a kind name back to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown error kind: %q", name)
}

// Sentinels for errors.Is. Any *Error matches the sentinel of its kind.
var (
	ErrUnsupported      = &Error{Kind: KindUnsupported}
	ErrInvalidValue     = &Error{Kind: KindInvalidValue}
	ErrMissingKey       = &Error{Kind: KindMissingKey}
	ErrOutOfRange       = &Error{Kind: KindOutOfRange}
	ErrInvalidSignature = &Error{Kind: KindInvalidSignature}
	ErrInternal         = &Error{Kind: KindInternal}
)

// Error is a failure raised by a capability.
type Error struct {
	Kind Kind
	// Op is the capability that failed
	Op  string
	Msg string
	Err error
}

// Errorf returns an *Error of the given kind with a formatted message.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error of the given kind caused by err.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind alone, so errors.Is(err, ErrMissingKey) holds for every
// missing-key error regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}
