package tcore

import (
	"errors"
	"fmt"
)

// Kind classifies the failure modes a tcore operation can report.
// Every core operation returns a value or a tagged error;
// panics are reserved for violated internal invariants.
type Kind int

const (
	// Range covers numeric overflow, out-of-range fields, exceeded
	// instant bounds, and ambiguous wall-clock resolution under
	// RejectAmbiguity.
	Range Kind = iota
	// Type covers a missing required field in a partial value, or a
	// calendar unit used without the anchor it requires.
	Type
	// Syntax covers a malformed identifier or a malformed POSIX rule.
	Syntax
	// Assert indicates a violated internal invariant - a bug, not a
	// caller mistake.
	Assert
)

func (k Kind) String() string {
	switch k {
	case Range:
		return "Range"
	case Type:
		return "Type"
	case Syntax:
		return "Syntax"
	case Assert:
		return "Assert"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the sum type every tcore operation fails with.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is a *Error of e's Kind with no message and
// no cause, so a bare &Error{Kind: Range} works as a sentinel for
// errors.Is(err, &tcore.Error{Kind: tcore.Range}) style checks.
func (e *Error) Is(target error) bool {
	var k *Error
	if errors.As(target, &k) {
		return k.Kind == e.Kind && k.msg == "" && k.err == nil
	}
	return false
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}

func rangeErrorf(format string, args ...any) error {
	return newError(Range, format, args...)
}

func typeErrorf(format string, args ...any) error {
	return newError(Type, format, args...)
}

func syntaxErrorf(format string, args ...any) error {
	return newError(Syntax, format, args...)
}

// RangeErrorf, TypeErrorf, and SyntaxErrorf are the exported forms of
// the error constructors above, for use by subpackages (e.g.
// tcore/calendar, tcore/posix, tcore/tzdb) that need to report a failure
// in the same Kind taxonomy without exposing the Error struct's fields.
func RangeErrorf(format string, args ...any) error  { return rangeErrorf(format, args...) }
func TypeErrorf(format string, args ...any) error   { return typeErrorf(format, args...) }
func SyntaxErrorf(format string, args ...any) error { return syntaxErrorf(format, args...) }

// assertf panics to signal a violated internal invariant. It must never
// be reachable for any caller input
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(&Error{Kind: Assert, msg: fmt.Sprintf(format, args...)})
	}
}

// joinFieldErrors aggregates multiple field-level validation failures
// into a single error, mirroring how go-tz's tzdata parser collects one
// error per malformed column instead of stopping at the first.
func joinFieldErrors(kind Kind, errs ...error) error {
	var present []error
	for _, e := range errs {
		if e != nil {
			present = append(present, e)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return wrapError(kind, errors.Join(present...), "invalid fields")
}
