package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Present fails when value is nil, i.e. the field was absent or not a string.
func Present(field string, value *string) Rule {
	return newRule(field, "required", "field is required", func() bool {
		return value != nil
	})
}

// RequiredString fails for empty or whitespace-only strings.
func RequiredString(field, value string) Rule {
	return newRule(field, "required", "field is required", func() bool {
		return strings.TrimSpace(value) != ""
	})
}

// MaxLenString counts characters, not bytes.
func MaxLenString(field, value string, max int) Rule {
	msg := fmt.Sprintf("must be at most %d characters long", max)
	return newRule(field, "max_length", msg, func() bool {
		return utf8.RuneCountInString(value) <= max
	})
}
