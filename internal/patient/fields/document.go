package fields

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	dErrors "patients/pkg/domain-errors"
	"patients/pkg/platform/validation"
	s "patients/pkg/string"
)

// DocumentKind identifies an identity document type.
type DocumentKind int

const (
	DocumentUnknown DocumentKind = iota
	DocumentPassport
	DocumentInternationalPassport
	DocumentDriverLicense
)

type documentSpec struct {
	// names are the accepted lower-case type names; the first is the English one.
	names []string
	// groups are the digit group widths of the canonical id; they sum to the id length.
	groups []int
}

var documentSpecs = map[DocumentKind]documentSpec{
	DocumentPassport: {
		names:  []string{"passport", "паспорт"},
		groups: []int{4, 6},
	},
	DocumentInternationalPassport: {
		names:  []string{"international passport", "загран"},
		groups: []int{2, 7},
	},
	DocumentDriverLicense: {
		names:  []string{"driver's license", "водительские права"},
		groups: []int{2, 2, 6},
	},
}

var documentKindByName = func() map[string]DocumentKind {
	m := make(map[string]DocumentKind)
	for kind, spec := range documentSpecs {
		for _, name := range spec.names {
			m[name] = kind
		}
	}
	return m
}()

// ParseDocumentKind resolves a lower-case document type name.
func ParseDocumentKind(name string) (DocumentKind, bool) {
	kind, ok := documentKindByName[name]
	return kind, ok
}

func (k DocumentKind) String() string {
	spec, ok := documentSpecs[k]
	if !ok {
		return "unknown"
	}
	return spec.names[0]
}

// Digits returns the number of digits an id of this kind must contain.
func (k DocumentKind) Digits() int {
	n := 0
	for _, g := range documentSpecs[k].groups {
		n += g
	}
	return n
}

// IsZero reports whether the kind is unresolved.
func (k DocumentKind) IsZero() bool {
	return k == DocumentUnknown
}

// DocumentType lower-cases the input and accepts it when it names a known
// document kind.
func DocumentType(field string, raw any, _ Context) (string, error) {
	value, err := asString(field, raw)
	if err != nil {
		return "", err
	}
	if err := checkLength(field, value, validation.MaxDocumentTypeLength); err != nil {
		return "", err
	}
	lowered := cases.Lower(language.Und).String(value)
	if _, ok := ParseDocumentKind(lowered); !ok {
		return "", formError(field, lowered, "unknown document type")
	}
	return lowered, nil
}

// DocumentID extracts the digits of the input, checks their count against the
// document kind already resolved in ctx and groups them in the kind's format.
// Non-string input is read through its text form, so integers are accepted.
func DocumentID(field string, raw any, ctx Context) (string, error) {
	if ctx.DocumentKind.IsZero() {
		return "", dErrors.New(dErrors.CodeMissingDependency,
			fmt.Sprintf("%s: document_type must be set before %s", field, field))
	}
	value, err := asText(field, raw)
	if err != nil {
		return "", err
	}
	if err := checkLength(field, value, validation.MaxDocumentIDLength); err != nil {
		return "", err
	}
	digits := s.DigitsOnly(value)
	if want := ctx.DocumentKind.Digits(); len(digits) != want {
		return "", formError(field, value,
			fmt.Sprintf("%s number must contain %d digits", ctx.DocumentKind, want))
	}
	return FormatDocumentID(ctx.DocumentKind, digits), nil
}

// FormatDocumentID splits digits into the kind's groups joined by spaces.
// digits must already have the kind's length.
func FormatDocumentID(kind DocumentKind, digits string) string {
	groups := documentSpecs[kind].groups
	parts := make([]string, 0, len(groups))
	pos := 0
	for _, g := range groups {
		parts = append(parts, digits[pos:pos+g])
		pos += g
	}
	return strings.Join(parts, " ")
}
