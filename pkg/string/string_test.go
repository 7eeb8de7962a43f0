package string

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"FirstName", "first_name"},
		{"DocumentID", "document_id"},
		{"SuccessLog", "success_log"},
		{"path", "path"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToSnakeCase(tt.in))
		})
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "79151234567", DigitsOnly("+7 (915) 123-45-67"))
	assert.Equal(t, "", DigitsOnly("abc"))
	// non-ASCII digits are not extracted
	assert.Equal(t, "12", DigitsOnly("1٣2"))
}

func TestStripChars(t *testing.T) {
	assert.Equal(t, "79151234567", StripChars(`+7 915\123.45_67-`, `\ +._-`))
	assert.Equal(t, "abc", StripChars("abc", ""))
}

func TestIsASCIIDigits(t *testing.T) {
	assert.True(t, IsASCIIDigits("1990"))
	assert.False(t, IsASCIIDigits(""))
	assert.False(t, IsASCIIDigits("19a0"))
	assert.False(t, IsASCIIDigits("١٩٩٠"))
}
