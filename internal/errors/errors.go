package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is a validation error tied to a location in the game document.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Human-readable description
	Location string            // Offending section or identifier, e.g. "dungeon card random:Hall"
	Metadata map[string]string // Offending identifiers, keyed by role
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Location == "" {
		return e.Message
	}
	return e.Location + ": " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// At returns a copy of the error attached to location. An existing location is kept as a
// suffix so nested sections read outermost first.
func (e *Error) At(location string) *Error {
	c := *e
	if c.Location == "" {
		c.Location = location
	} else if location != "" {
		c.Location = location + ", " + c.Location
	}
	return &c
}

// With returns a copy of the error carrying an extra metadata entry.
func (e *Error) With(key, value string) *Error {
	c := *e
	c.Metadata = make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		c.Metadata[k] = v
	}
	c.Metadata[key] = value
	return &c
}

// New creates a simple error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Sentinel returns a bare error with the given code, for use with errors.Is.
func Sentinel(code Code) *Error {
	return &Error{Code: code}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// HasCode reports whether err's chain contains an *Error with the given code.
func HasCode(err error, code Code) bool {
	return stderrors.Is(err, Sentinel(code))
}

// Locate attaches location to err when it is an *Error; other errors are wrapped as
// schema violations at that location.
func Locate(err error, location string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.At(location)
	}
	return Wrap(CodeSchemaViolation, err.Error(), err).At(location)
}
