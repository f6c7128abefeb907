package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Error reports one invalid input field.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Fail builds a field error.
func Fail(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
)

// Required fails when value is blank.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return Fail(field, "is required")
	}
	return nil
}

// Email fails unless value looks like an address.
func Email(field, value string) error {
	if !emailRe.MatchString(value) {
		return Fail(field, "is not a valid email address")
	}
	return nil
}

// Phone accepts an optional leading + and up to 16 digits; spaces are ignored.
func Phone(field, value string) error {
	if !phoneRe.MatchString(strings.ReplaceAll(value, " ", "")) {
		return Fail(field, "is not a valid phone number")
	}
	return nil
}

// MaxLen fails when value is longer than n characters.
func MaxLen(field, value string, n int) error {
	if utf8.RuneCountInString(value) > n {
		return Fail(field, "must be %d characters or less", n)
	}
	return nil
}

// OneOf fails unless value is one of allowed.
func OneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return Fail(field, "must be one of %s", strings.Join(allowed, ", "))
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
