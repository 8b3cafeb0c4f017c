package handlers

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation limits for auth fields, matching what the admin UI enforces.
const (
	minUsernameLen = 3
	minPasswordLen = 6
	maxTitleLen    = 300
	maxSlugLen     = 300
)

// emailPattern is deliberately loose — real validation happens when the
// address is used; this only rejects obvious garbage.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// fieldError is a single field-level validation failure.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validateRegister checks registration inputs and returns all failures.
func validateRegister(username, email, password string) []fieldError {
	var errs []fieldError
	if utf8.RuneCountInString(strings.TrimSpace(username)) < minUsernameLen {
		errs = append(errs, fieldError{"username", "Username must be at least 3 characters."})
	}
	if !emailPattern.MatchString(email) {
		errs = append(errs, fieldError{"email", "A valid email address is required."})
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		errs = append(errs, fieldError{"password", "Password must be at least 6 characters."})
	}
	return errs
}

// validateLogin checks login inputs and returns all failures.
func validateLogin(email, password string) []fieldError {
	var errs []fieldError
	if !emailPattern.MatchString(email) {
		errs = append(errs, fieldError{"email", "A valid email address is required."})
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		errs = append(errs, fieldError{"password", "Password must be at least 6 characters."})
	}
	return errs
}

// validatePostInput checks the shallow constraints on post fields.
// Cross-field business rules (hero slot collisions and the like) are
// intentionally not enforced here.
func validatePostInput(title, slugValue string) string {
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(slugValue) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	return ""
}
