package validation

import (
	"fmt"

	dErrors "patients/pkg/domain-errors"
)

// Raw field length limits, checked before any pattern matching on untrusted input.
const (
	// MaxNameLength is the maximum length of a first or last name in bytes.
	MaxNameLength = 100

	// MaxDateLength bounds the birth date input; the date rule itself demands 10 runes.
	MaxDateLength = 64

	// MaxPhoneLength is the maximum length of a phone number including separators.
	MaxPhoneLength = 40

	// MaxDocumentTypeLength is the maximum length of a document type name.
	MaxDocumentTypeLength = 64

	// MaxDocumentIDLength is the maximum length of a document id including separators.
	MaxDocumentIDLength = 40
)

// Record line limits
const (
	// MaxLineLength is the maximum length of a persisted record line.
	// Lines longer than this cannot be produced by valid records.
	MaxLineLength = 4096

	// RecordFieldCount is the number of fields in a persisted record line.
	RecordFieldCount = 6
)

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeInvalidFormat, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}

// CheckFieldCount validates that a split record line carries exactly the expected number of fields.
func CheckFieldCount(count, want int) error {
	if count != want {
		return dErrors.New(dErrors.CodeInvalidFormat, fmt.Sprintf("record has %d fields, expected %d", count, want))
	}
	return nil
}

// CheckLimit validates an iteration limit.
func CheckLimit(n int) error {
	if n < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("limit must not be negative, got %d", n))
	}
	return nil
}
