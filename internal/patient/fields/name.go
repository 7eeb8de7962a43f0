package fields

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"patients/pkg/platform/validation"
)

// Name accepts a non-empty string made only of letters and returns it with the
// first letter upper-cased and the remainder lower-cased.
func Name(field string, raw any, _ Context) (string, error) {
	value, err := asString(field, raw)
	if err != nil {
		return "", err
	}
	if err := checkLength(field, value, validation.MaxNameLength); err != nil {
		return "", err
	}
	if value == "" {
		return "", formError(field, value, "name is empty")
	}
	for _, r := range value {
		if !unicode.IsLetter(r) {
			return "", formError(field, value, "name must contain letters only")
		}
	}
	return Capitalize(value), nil
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
// A new Caser is built per call because Casers keep state between calls.
func Capitalize(s string) string {
	return cases.Title(language.Und).String(s)
}
