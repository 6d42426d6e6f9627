package codec

import "strings"

const (
	countryPrefix = "380"
	// nationalDigits is the length of a Ukrainian national subscriber number.
	nationalDigits = 9
	// totalDigits is the full digit budget including the country prefix.
	totalDigits = len(countryPrefix) + nationalDigits
)

// FormatPhone normalises arbitrary user input into the canonical
// "+380XXXXXXXXX" shape. Non-digit characters are stripped; input that does
// not carry the country prefix gets it prepended and the national part is
// truncated to nine digits. The result is always prefixed, never partial
// garbage, and FormatPhone is idempotent over its own output.
func FormatPhone(raw string) string {
	digits := keepDigits(raw)
	if digits == "" {
		return "+" + countryPrefix
	}

	if strings.HasPrefix(digits, countryPrefix) {
		if len(digits) > totalDigits {
			digits = digits[:totalDigits]
		}
		return "+" + digits
	}

	if len(digits) > nationalDigits {
		digits = digits[:nationalDigits]
	}
	return "+" + countryPrefix + digits
}

// ValidatePhone reports whether the formatted string is exactly the country
// prefix followed by nine digits, with no separators.
func ValidatePhone(formatted string) bool {
	if !strings.HasPrefix(formatted, "+"+countryPrefix) {
		return false
	}
	national := strings.TrimPrefix(formatted, "+"+countryPrefix)
	if len(national) != nationalDigits {
		return false
	}
	return keepDigits(national) == national
}

func keepDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
