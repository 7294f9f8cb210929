package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireFields(t *testing.T) {
	tests := []struct {
		name        string
		fields      []Field
		expectedErr string
	}{
		{
			name: "all present",
			fields: []Field{
				{Name: "username", Value: "alice"},
				{Name: "email", Value: "alice@example.com"},
			},
		},
		{
			name: "one missing",
			fields: []Field{
				{Name: "username", Value: "alice"},
				{Name: "password", Value: ""},
			},
			expectedErr: "Missing required fields: password",
		},
		{
			name: "blank counts as missing",
			fields: []Field{
				{Name: "title", Value: "   "},
				{Name: "content", Value: ""},
			},
			expectedErr: "Missing required fields: title, content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireFields(tt.fields...)
			if tt.expectedErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.expectedErr)
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"alice@example.com", "a.b@sub.domain.org"}
	invalid := []string{"", "alice", "alice@", "@example.com", "a b@example.com"}

	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectedErr string
	}{
		{name: "too short", password: "12345", expectedErr: "Password must be at least 6 characters long"},
		{name: "minimum length", password: "123456"},
		{name: "maximum length", password: strings.Repeat("a", 50)},
		{name: "too long", password: strings.Repeat("a", 51), expectedErr: "Password cannot exceed 50 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.expectedErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.expectedErr)
			}
		})
	}
}

func TestValidateTitleAndContent(t *testing.T) {
	assert.EqualError(t, ValidateTitle("ab"), "Title must be at least 3 characters")
	assert.NoError(t, ValidateTitle("abc"))
	assert.NoError(t, ValidateTitle(strings.Repeat("t", 200)))
	assert.EqualError(t, ValidateTitle(strings.Repeat("t", 201)), "Title cannot exceed 200 characters")

	assert.EqualError(t, ValidateContent("short"), "Content must be at least 10 characters")
	assert.NoError(t, ValidateContent("long enough content"))
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "trims whitespace", input: "  hello  ", expected: "hello"},
		{name: "strips angle brackets", input: "a < b > c", expected: "a  b  c"},
		// Only the brackets go; the text between them survives.
		{name: "script tag leaves payload", input: "<script>alert('x')</script>", expected: "scriptalert('x')/script"},
		{name: "plain text untouched", input: "plain text", expected: "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeInput(tt.input))
		})
	}
}
