package validator

import (
	"fmt"
	"slices"
)

// InList fails unless value is one of allowed. Comparison is exact.
func InList[T comparable](field string, value T, allowed []T) Rule {
	msg := fmt.Sprintf("must be one of: %v", allowed)
	return newRule(field, "in_list", msg, func() bool {
		return slices.Contains(allowed, value)
	})
}
