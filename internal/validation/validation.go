package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// messages maps "Field.tag" to the client-facing text for that rule.
var messages = map[string]string{
	"FullName.required":    "Fullname is required",
	"FullName.min":         "Fullname should have at least 4 characters",
	"Email.required":       "Email is required",
	"Email.email":          "Invalid Email",
	"Password.required":    "Password is required",
	"Title.required":       "Title is required",
	"Title.min":            "Title should have at least 4 characters",
	"Title.max":            "Title cannot have more than 50 characters",
	"Description.required": "Description is required",
	"Description.min":      "Description cannot have less than 4 characters",
	"Description.max":      "Description cannot have more than 800 characters",
	"Status.required":      "Status is required",
	"Progress.min":         "Progress cannot be less than 0",
	"Progress.max":         "Progress cannot be more than 100",
}

// FirstMessage extracts the message for the first failing field of a
// validator error. Fields fail in struct declaration order, so the choice
// is deterministic.
func FirstMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "Invalid request"
	}

	first := validationErrors[0]
	if first.Tag() == "oneof" {
		return fmt.Sprintf("%v is not supported", first.Value())
	}
	if msg, ok := messages[first.Field()+"."+first.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", first.Field(), first.Tag())
}

const passwordSymbols = "!@#%^&*"

// ValidPassword reports whether a plaintext password satisfies the
// complexity policy: 8 to 20 characters drawn from letters, digits and
// the fixed symbol set, with at least one of each class.
func ValidPassword(password string) bool {
	if len(password) < 8 || len(password) > 20 {
		return false
	}

	var hasDigit, hasLetter, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			return false
		}
	}
	return hasDigit && hasLetter && hasSymbol
}
