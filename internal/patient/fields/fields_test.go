package fields

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "patients/pkg/domain-errors"
	str "patients/pkg/string"
)

// nickname is a named string type; string-like rules accept it, strict rules do not.
type nickname string

// FieldRulesSuite tests the field validate-and-normalize rules.
//
// Justification: These rules are the only gate between untrusted input and
// stored personal data. Each rejection kind and each canonical form is pinned here.
type FieldRulesSuite struct {
	suite.Suite
}

func TestFieldRulesSuite(t *testing.T) {
	suite.Run(t, new(FieldRulesSuite))
}

func (s *FieldRulesSuite) requireCode(err error, code dErrors.Code) {
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, code), "expected %s, got %v", code, err)
}

func (s *FieldRulesSuite) TestName() {
	s.Run("capitalizes regardless of input casing", func() {
		for in, want := range map[string]string{
			"ivan":   "Ivan",
			"PETROV": "Petrov",
			"mArIa":  "Maria",
			"иВАН":   "Иван",
			"ПЕТРОВ": "Петров",
			"o":      "O",
		} {
			got, err := Name("first_name", in, Context{})
			s.Require().NoError(err, in)
			s.Equal(want, got)
		}
	})

	s.Run("accepts named string types", func() {
		got, err := Name("first_name", nickname("ivan"), Context{})
		s.Require().NoError(err)
		s.Equal("Ivan", got)
	})

	s.Run("rejects non-letters with invalid format", func() {
		for _, in := range []string{"", "Ivan1", "Anna-Maria", "Jean Paul", "O'Neil", "Ivan,"} {
			_, err := Name("first_name", in, Context{})
			s.requireCode(err, dErrors.CodeInvalidFormat)
		}
	})

	s.Run("rejects non-strings with type mismatch", func() {
		for _, in := range []any{nil, 42, []byte("ivan"), 'i'} {
			_, err := Name("last_name", in, Context{})
			s.requireCode(err, dErrors.CodeTypeMismatch)
		}
	})

	s.Run("rejects oversized input before scanning it", func() {
		_, err := Name("last_name", strings.Repeat("a", 101), Context{})
		s.requireCode(err, dErrors.CodeInvalidFormat)
	})

	s.Run("error message names the field", func() {
		_, err := Name("last_name", "B0b", Context{})
		s.Require().Error(err)
		s.Contains(err.Error(), "last_name")
		s.Contains(err.Error(), "B0b")
	})
}

func (s *FieldRulesSuite) TestDate() {
	s.Run("accepts yyyy/mm/dd with any separators", func() {
		for _, in := range []string{"1990/05/14", "1990-05-14", "1990.05/14", "1990 05 14", "2000|01|01"} {
			got, err := Date("birth_date", in, Context{})
			s.Require().NoError(err, in)
			s.Equal(in, got, "dates are stored unchanged")
		}
	})

	s.Run("rejects wrong shapes with invalid format", func() {
		for _, in := range []string{
			"1990/5/14",   // 9 characters
			"1990/05/144", // 11 characters
			"19900/5/14",  // blocks 5-1-2
			"1990//0514",  // two blocks
			"14/05/1990",  // blocks 2-2-4
			"1990/05/1a",  // letter in block
			"abcd/ef/gh",
			"1990_05_14", // underscore is a word character
			"",
		} {
			_, err := Date("birth_date", in, Context{})
			s.requireCode(err, dErrors.CodeInvalidFormat)
		}
	})

	s.Run("rejects separators that would break a record line", func() {
		for _, in := range []string{"1990,05,14", "1990\n05\n14", "1990\r05/14"} {
			s.True(IsDate(in), "shape alone is valid")
			_, err := Date("birth_date", in, Context{})
			s.requireCode(err, dErrors.CodeInvalidFormat)
		}
	})

	s.Run("rejects non-strings with type mismatch", func() {
		_, err := Date("birth_date", 19900514, Context{})
		s.requireCode(err, dErrors.CodeTypeMismatch)
	})

	s.Run("rejects separators that are not valid utf-8", func() {
		for _, in := range []string{"1990\xff05\xff14", "1990/05\xc0/1"} {
			_, err := Date("birth_date", in, Context{})
			s.requireCode(err, dErrors.CodeInvalidFormat)
		}
	})

	s.Run("accepts iff length is 10 and blocks are 4-2-2 digits", func() {
		seps := []string{"/", "-", ".", " ", ":"}
		for _, a := range seps {
			for _, b := range seps {
				s.True(IsDate("2024" + a + "02" + b + "29"))
				s.False(IsDate("2024" + a + "2" + b + "029"))
			}
		}
	})
}

func (s *FieldRulesSuite) TestPhone() {
	s.Run("normalizes to country code and grouped digits", func() {
		tests := map[string]string{
			"+7 915 123 45 67":    "7 915 123 45 67",
			"79151234567":         "7 915 123 45 67",
			"8-915-123-45-67":     "7 915 123 45 67",
			"8.915.123.45.67":     "7 915 123 45 67",
			`8\915\123\45\67`:     "7 915 123 45 67",
			"+380_44_123_45_67":   "38 044 123 45 67",
			"+1234 567 890 12 34": "1234 567 890 12 34",
			"+88 915 123 45 67":   "88 915 123 45 67",
			"+1 202 555 01 00":    "1 202 555 01 00",
		}
		for in, want := range tests {
			got, err := Phone("phone", in, Context{})
			s.Require().NoError(err, in)
			s.Equal(want, got, in)
		}
	})

	s.Run("rejects digit counts outside 11..14", func() {
		for _, in := range []string{"915 123 45 67", "+12345 567 890 12 34", "", "+"} {
			_, err := Phone("phone", in, Context{})
			s.requireCode(err, dErrors.CodeInvalidFormat)
		}
	})

	s.Run("rejects characters outside the separator class", func() {
		for _, in := range []string{"+7 (915) 123-45-67", "+7 915 123 45 6x", "+7/915/123/45/67"} {
			_, err := Phone("phone", in, Context{})
			s.requireCode(err, dErrors.CodeInvalidFormat)
		}
	})

	s.Run("rejects invalid utf-8", func() {
		_, err := Phone("phone", "+7 915 123 45 67\xff", Context{})
		s.requireCode(err, dErrors.CodeInvalidFormat)
	})

	s.Run("type check is strict", func() {
		for _, in := range []any{nickname("79151234567"), 79151234567, nil} {
			_, err := Phone("phone", in, Context{})
			s.requireCode(err, dErrors.CodeTypeMismatch)
		}
	})

	s.Run("every valid length yields four groups after a code that is never 8", func() {
		const pool = "80123456789012"
		for n := MinPhoneDigits; n <= MaxPhoneDigits; n++ {
			digits := pool[:n]
			// interleave separators between every digit
			interleaved := strings.Join(strings.Split(digits, ""), "-")
			got, err := Phone("phone", "+"+interleaved, Context{})
			s.Require().NoError(err)

			groups := strings.Split(got, " ")
			s.Require().Len(groups, 5)
			s.Len(groups[0], n-10)
			s.NotEqual("8", groups[0])
			s.Equal([]int{3, 3, 2, 2}, []int{len(groups[1]), len(groups[2]), len(groups[3]), len(groups[4])})
		}
	})
}

func (s *FieldRulesSuite) TestDocumentType() {
	s.Run("lower-cases known names", func() {
		tests := map[string]string{
			"ПАСПОРТ":                "паспорт",
			"Passport":               "passport",
			"INTERNATIONAL PASSPORT": "international passport",
			"Загран":                 "загран",
			"Driver's License":       "driver's license",
			"Водительские права":     "водительские права",
		}
		for in, want := range tests {
			got, err := DocumentType("document_type", in, Context{})
			s.Require().NoError(err, in)
			s.Equal(want, got)
		}
	})

	s.Run("rejects unknown names", func() {
		for _, in := range []string{"id card", "", "passport ", "pasport"} {
			_, err := DocumentType("document_type", in, Context{})
			s.requireCode(err, dErrors.CodeInvalidFormat)
		}
	})

	s.Run("rejects non-strings", func() {
		_, err := DocumentType("document_type", 1, Context{})
		s.requireCode(err, dErrors.CodeTypeMismatch)
	})

	s.Run("every accepted name resolves to its kind", func() {
		for kind, spec := range documentSpecs {
			for _, name := range spec.names {
				got, ok := ParseDocumentKind(name)
				s.True(ok)
				s.Equal(kind, got)
			}
		}
	})
}

func (s *FieldRulesSuite) TestDocumentID() {
	s.Run("formats per kind", func() {
		tests := []struct {
			kind DocumentKind
			in   string
			want string
		}{
			{DocumentPassport, "1234567890", "1234 567890"},
			{DocumentPassport, "12 34 567890", "1234 567890"},
			{DocumentPassport, "№1234-567890", "1234 567890"},
			{DocumentInternationalPassport, "123456789", "12 3456789"},
			{DocumentDriverLicense, "1234567890", "12 34 567890"},
		}
		for _, tt := range tests {
			got, err := DocumentID("document_id", tt.in, Context{DocumentKind: tt.kind})
			s.Require().NoError(err, tt.in)
			s.Equal(tt.want, got)
		}
	})

	s.Run("requires the document kind to be resolved", func() {
		_, err := DocumentID("document_id", "1234567890", Context{})
		s.requireCode(err, dErrors.CodeMissingDependency)
	})

	s.Run("rejects wrong digit counts", func() {
		tests := []struct {
			kind DocumentKind
			in   string
		}{
			{DocumentPassport, "123456789"},
			{DocumentInternationalPassport, "1234567890"},
			{DocumentDriverLicense, "12345678901"},
			{DocumentPassport, "no digits"},
		}
		for _, tt := range tests {
			_, err := DocumentID("document_id", tt.in, Context{DocumentKind: tt.kind})
			s.requireCode(err, dErrors.CodeInvalidFormat)
		}
	})

	s.Run("reads non-strings through their text form", func() {
		got, err := DocumentID("document_id", 1234567890, Context{DocumentKind: DocumentPassport})
		s.Require().NoError(err)
		s.Equal("1234 567890", got)

		got, err = DocumentID("document_id", nickname("123456789"), Context{DocumentKind: DocumentInternationalPassport})
		s.Require().NoError(err)
		s.Equal("12 3456789", got)

		_, err = DocumentID("document_id", 123456789, Context{DocumentKind: DocumentPassport})
		s.requireCode(err, dErrors.CodeInvalidFormat)
	})

	s.Run("rejects nil", func() {
		_, err := DocumentID("document_id", nil, Context{DocumentKind: DocumentPassport})
		s.requireCode(err, dErrors.CodeTypeMismatch)
	})

	s.Run("rejects invalid utf-8", func() {
		_, err := DocumentID("document_id", "1234\xff567890", Context{DocumentKind: DocumentPassport})
		s.requireCode(err, dErrors.CodeInvalidFormat)
	})

	s.Run("re-extracting digits reproduces the input digits", func() {
		const pool = "9081726354"
		for kind := range documentSpecs {
			digits := pool[:kind.Digits()]
			got, err := DocumentID("document_id", "  "+digits+"  ", Context{DocumentKind: kind})
			s.Require().NoError(err)
			s.Equal(digits, str.DigitsOnly(got))
		}
	})
}

func (s *FieldRulesSuite) TestDocumentKind() {
	s.Equal(10, DocumentPassport.Digits())
	s.Equal(9, DocumentInternationalPassport.Digits())
	s.Equal(10, DocumentDriverLicense.Digits())
	s.Equal("passport", DocumentPassport.String())
	s.Equal("unknown", DocumentUnknown.String())
	s.True(DocumentUnknown.IsZero())
}
