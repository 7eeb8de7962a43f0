package domainerrors

import "errors"

// Code represents a domain error category independent of transport layer.
// These codes describe what went wrong in business logic terms.
type Code string

const (
	CodeInvalidInput Code = "invalid_input"
	CodeValidation   Code = "validation_failed"

	// Field rejection kinds
	CodeTypeMismatch      Code = "type_mismatch"      // Input is not the expected primitive shape
	CodeInvalidFormat     Code = "invalid_format"     // Right shape, fails a format/range/enum/length rule
	CodeModifyForbidden   Code = "modify_forbidden"   // Write against an already-initialized write-once field
	CodeMissingDependency Code = "missing_dependency" // Field requires another field that is not set yet

	// Persistence failure kinds
	CodeEncoding   Code = "io_encoding"
	CodePermission Code = "io_permission"
	CodeIO         Code = "io_failure"
)

// Error wraps domain or infrastructure failures with a stable code.
// It is transport-agnostic and can be used across record, store, and other layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		// Preserve the original domain code, update message
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the domain code carried by err, or an empty code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsIO reports whether err is any of the persistence failure kinds.
func IsIO(err error) bool {
	switch CodeOf(err) {
	case CodeEncoding, CodePermission, CodeIO:
		return true
	}
	return false
}
