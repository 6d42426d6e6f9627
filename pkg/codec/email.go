package codec

import "regexp"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether the value is an acceptable email. Email is
// optional everywhere in the intake forms, so the empty string is valid.
func ValidateEmail(value string) bool {
	if value == "" {
		return true
	}
	return emailPattern.MatchString(value)
}
