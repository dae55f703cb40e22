package document

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrParse indicates malformed input text.
	ErrParse = errors.New("parse error")

	// ErrIO indicates a file could not be read or written.
	ErrIO = errors.New("i/o error")

	// ErrTypeMismatch indicates a document of the wrong kind, or a tree
	// shape the destination cannot hold (for example a non-table TOML root).
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnsupportedConversion indicates no bridge exists for a format pair.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrUnregisteredFormat indicates no adapter is registered for a format.
	ErrUnregisteredFormat = errors.New("unregistered format")
)

// Error is the structured error returned by every fallible operation.
type Error struct {
	// Kind is one of the sentinel errors above.
	Kind error
	// Op names the failing operation ("parse", "dump", "convert", ...).
	Op string
	// Format is the format involved, if any.
	Format Format
	// Path is a file path or a location inside a tree.
	Path string
	// Message describes the failure.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a human-readable error message.
func (e *Error) Error() string {
	msg := "error"
	if e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Op != "" {
		if e.Format != Auto {
			msg = e.Op + " " + e.Format.String() + ": " + msg
		} else {
			msg = e.Op + ": " + msg
		}
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel this error belongs to.
func (e *Error) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// ParseFailure wraps a parser diagnostic.
func ParseFailure(f Format, cause error) *Error {
	return &Error{Kind: ErrParse, Op: "parse", Format: f, Cause: cause}
}

// IOFailure wraps a file system error.
func IOFailure(op, path string, cause error) *Error {
	return &Error{Kind: ErrIO, Op: op, Path: path, Cause: cause}
}

// TypeMismatch reports a document or tree of the wrong shape.
func TypeMismatch(op string, f Format, format string, args ...any) *Error {
	return &Error{Kind: ErrTypeMismatch, Op: op, Format: f, Message: fmt.Sprintf(format, args...)}
}

// Unsupported reports a missing bridge between two formats.
func Unsupported(from, to Format) *Error {
	return &Error{
		Kind:    ErrUnsupportedConversion,
		Op:      "convert",
		Message: fmt.Sprintf("no bridge from %s to %s", from, to),
	}
}

// Unregistered reports a format without an adapter.
func Unregistered(f Format) *Error {
	return &Error{Kind: ErrUnregisteredFormat, Op: "lookup", Message: fmt.Sprintf("no adapter for %s", f)}
}
