package validation

import "regexp"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsEmail reports whether the text looks like a contact email address.
// The check is deliberately loose: the backend owns real validation.
func IsEmail(text string) bool {
	return emailPattern.MatchString(text)
}
