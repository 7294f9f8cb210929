// Package validation holds the input rules for the auth and post flows.
// Messages are part of the API contract and are returned to clients verbatim.
package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Password length bounds, inclusive.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 50
)

// Title and content bounds.
const (
	MinTitleLength   = 3
	MaxTitleLength   = 200
	MinContentLength = 10
)

var validate = validator.New()

// Field pairs a request field name with its raw value for presence checks.
type Field struct {
	Name  string
	Value string
}

// RequireFields returns an error naming every blank field, in order.
func RequireFields(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return errors.New("Missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}

// IsValidEmail reports whether email has a plausible address shape.
func IsValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// ValidatePassword enforces the password length bounds. The message
// distinguishes too short from too long.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errors.New("Password must be at least 6 characters long")
	}
	if len(password) > MaxPasswordLength {
		return errors.New("Password cannot exceed 50 characters")
	}
	return nil
}

// ValidateTitle enforces the post title bounds.
func ValidateTitle(title string) error {
	if len(title) < MinTitleLength {
		return errors.New("Title must be at least 3 characters")
	}
	if len(title) > MaxTitleLength {
		return errors.New("Title cannot exceed 200 characters")
	}
	return nil
}

// ValidateContent enforces the post content minimum.
func ValidateContent(content string) error {
	if len(content) < MinContentLength {
		return errors.New("Content must be at least 10 characters")
	}
	return nil
}

// SanitizeInput trims whitespace and strips angle brackets. Only '<' and '>'
// are removed, the text between them is kept.
func SanitizeInput(input string) string {
	trimmed := strings.TrimSpace(input)
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return -1
		}
		return r
	}, trimmed)
}
