package codec

import (
	"fmt"
	"strconv"
	"strings"
)

// Default budget range applied when a stored value cannot be parsed.
const (
	DefaultBudgetMin = 10000
	DefaultBudgetMax = 50000
)

// ParseBudgetRange splits a "min-max" string into its two bounds. Any parse
// failure or wrong arity yields the default range rather than an error.
func ParseBudgetRange(raw string) (min, max int) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 2 {
		return DefaultBudgetMin, DefaultBudgetMax
	}
	min, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return DefaultBudgetMin, DefaultBudgetMax
	}
	max, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return DefaultBudgetMin, DefaultBudgetMax
	}
	return min, max
}

// FormatBudgetRange encodes the bounds back into the "min-max" wire string.
func FormatBudgetRange(min, max int) string {
	return fmt.Sprintf("%d-%d", min, max)
}
