// Package fields holds the validate-and-normalize rules for patient record fields.
//
// Every rule is a pure function from untrusted input to a canonical string or a
// coded domain error. Rules never emit audit events themselves; the record's field
// set operation reports each outcome so the rules stay usable on their own.
package fields

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	dErrors "patients/pkg/domain-errors"
	"patients/pkg/platform/validation"
)

// Context carries values resolved by earlier assignments of the same record.
type Context struct {
	// DocumentKind is the kind resolved from the already-stored document type.
	// The zero value means no document type has been assigned yet.
	DocumentKind DocumentKind
}

// Rule validates raw input for the named field and returns its canonical form.
type Rule func(field string, raw any, ctx Context) (string, error)

// asString accepts any value whose underlying kind is string, including named
// string types.
func asString(field string, raw any) (string, error) {
	if raw == nil {
		return "", typeError(field, raw)
	}
	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.String {
		return "", typeError(field, raw)
	}
	return checkEncoding(field, v.String())
}

// asExactString accepts only the built-in string type.
func asExactString(field string, raw any) (string, error) {
	value, ok := raw.(string)
	if !ok {
		return "", typeError(field, raw)
	}
	return checkEncoding(field, value)
}

// asText renders any non-nil value as text: strings as they are, everything
// else through its default format.
func asText(field string, raw any) (string, error) {
	if raw == nil {
		return "", typeError(field, raw)
	}
	if v := reflect.ValueOf(raw); v.Kind() == reflect.String {
		return checkEncoding(field, v.String())
	}
	return checkEncoding(field, fmt.Sprint(raw))
}

// checkEncoding rejects input that could never be persisted as UTF-8.
func checkEncoding(field, value string) (string, error) {
	if !utf8.ValidString(value) {
		return "", formError(field, value, "not valid UTF-8")
	}
	return value, nil
}

func typeError(field string, raw any) error {
	if raw == nil {
		return dErrors.New(dErrors.CodeTypeMismatch, field+": argument is nil")
	}
	return dErrors.New(dErrors.CodeTypeMismatch,
		fmt.Sprintf("%s: argument %v of type %T is not a string", field, raw, raw))
}

func formError(field, value, reason string) error {
	return dErrors.New(dErrors.CodeInvalidFormat,
		fmt.Sprintf("%s: argument %q is in unsupported form: %s", field, value, reason))
}

func checkLength(field, value string, max int) error {
	return validation.CheckStringLength(field, value, max)
}
