package domain

import (
	"fmt"
	"strconv"
)

// ParseQuantity parses a base-10 integer that is zero or greater. Any sign,
// "-0" included, is rejected, as are whitespace, fractions and exponents.
func ParseQuantity(text string) (int, error) {
	if !isInteger(text) {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidQuantity, text)
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidQuantity, text, err)
	}
	if text[0] == '-' {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidQuantity, text)
	}

	return n, nil
}

func isInteger(text string) bool {
	digits := text
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}
