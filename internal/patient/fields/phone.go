package fields

import (
	"strings"

	"patients/pkg/platform/validation"
	s "patients/pkg/string"
)

const (
	// MinPhoneDigits is the digit count of a number with a one-digit country code.
	MinPhoneDigits = 11
	// MaxPhoneDigits is the digit count of a number with a four-digit country code.
	MaxPhoneDigits = 14

	phoneSeparators = `\ +._-`
	// subscriberDigits is the length of the number after the country code.
	subscriberDigits = 10
)

// Phone accepts only the built-in string type. After separators are stripped the
// number must hold 11 to 14 digits; it is stored as "<cc> ddd ddd dd dd".
func Phone(field string, raw any, _ Context) (string, error) {
	value, err := asExactString(field, raw)
	if err != nil {
		return "", err
	}
	if err := checkLength(field, value, validation.MaxPhoneLength); err != nil {
		return "", err
	}
	digits := s.StripChars(value, phoneSeparators)
	if !s.IsASCIIDigits(digits) {
		return "", formError(field, value, "phone must contain digits and separators only")
	}
	if len(digits) < MinPhoneDigits || len(digits) > MaxPhoneDigits {
		return "", formError(field, value, "phone must contain 11 to 14 digits")
	}
	return FormatPhone(digits), nil
}

// FormatPhone groups a digit string from its end: the last ten digits become
// ddd ddd dd dd and everything before them is the country code. A one-digit
// domestic code 8 is rewritten to the international 7.
func FormatPhone(digits string) string {
	codeLen := len(digits) - subscriberDigits
	code, rest := digits[:codeLen], digits[codeLen:]
	if code == "8" {
		code = "7"
	}
	return strings.Join([]string{code, rest[0:3], rest[3:6], rest[6:8], rest[8:10]}, " ")
}
