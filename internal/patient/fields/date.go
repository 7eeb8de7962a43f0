package fields

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"patients/pkg/platform/validation"
	s "patients/pkg/string"
)

// dateLength is the rune length of a yyyy/mm/dd-shaped date.
const dateLength = 10

// wordRun matches runs of word characters; whatever lies between runs acts as a separator.
var wordRun = regexp.MustCompile(`[\p{L}\p{N}\p{Mn}_']+`)

var dateBlockWidths = []int{4, 2, 2}

// recordBreakers would split a persisted record line if stored.
const recordBreakers = ",\r\n"

// Date accepts dates shaped yyyy/mm/dd with any separators between the blocks.
// The value is stored unchanged; no calendar check is made.
func Date(field string, raw any, _ Context) (string, error) {
	value, err := asString(field, raw)
	if err != nil {
		return "", err
	}
	if err := checkLength(field, value, validation.MaxDateLength); err != nil {
		return "", err
	}
	if strings.ContainsAny(value, recordBreakers) {
		return "", formError(field, value, "separator conflicts with the record format")
	}
	if !IsDate(value) {
		return "", formError(field, value, "expected yyyy/mm/dd")
	}
	return value, nil
}

// IsDate reports whether value is exactly 10 characters long and splits into
// digit blocks of widths 4, 2 and 2.
func IsDate(value string) bool {
	if utf8.RuneCountInString(value) != dateLength {
		return false
	}
	blocks := wordRun.FindAllString(value, -1)
	widths := make([]int, len(blocks))
	for i, b := range blocks {
		widths[i] = utf8.RuneCountInString(b)
	}
	if !slices.Equal(widths, dateBlockWidths) {
		return false
	}
	for _, b := range blocks {
		if !s.IsASCIIDigits(b) {
			return false
		}
	}
	return true
}
