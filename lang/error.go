package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
//
// Errors returned by this package are derived from these sentinels using
// [Error.Detail], [Error.With], or [Error.Wrap], and still match them with
// [errors.Is].
var (
	ErrUnbalancedParentheses   = NewError("unbalanced parentheses")
	ErrMissingOperands         = NewError("missing operands")
	ErrUnknownVariable         = NewError("unknown variable")
	ErrUnknownFunction         = NewError("unknown function")
	ErrNotEnoughFunctionParams = NewError("not enough function parameters")
	ErrCannotEvaluateToken     = NewError("cannot evaluate token")
	ErrParamCountMismatch      = NewError("parameter count mismatch")
	ErrUnexpectedToken         = NewError("unexpected token")
	ErrUnexpectedCharacter     = NewError("unexpected character")
	ErrMaxDepthExceeded        = NewError("maximum nesting depth exceeded")
	ErrReadInput               = NewError("failed to read input")
	ErrInvalidDefinition       = NewError("invalid definition")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	err    error       // Wrapped error (for errors.Unwrap)
	msg    string      // Sentinel message, used for errors.Is
	detail string      // Offending operator, name, or token
	attrs  []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
//
// The message is formed from whichever fields are set, in order:
//
//	"<msg>: <detail>: <err>"
func (e *Error) Error() string {
	part := make([]string, 0, 3)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.detail != "" {
		part = append(part, e.detail)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an Error derived from the same sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.detail != "" {
		attrs = append(attrs, slog.String("detail", e.detail))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Detail returns a copy of the error naming the offending operator, variable,
// function, or token.
func (e *Error) Detail(detail string) *Error {
	return &Error{
		err:    e.err,
		msg:    e.msg,
		detail: detail,
		attrs:  e.attrs,
	}
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		err:    err,
		msg:    e.msg,
		detail: e.detail,
		attrs:  e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		err:    e.err,
		msg:    e.msg,
		detail: e.detail,
		attrs:  newAttrs,
	}
}
