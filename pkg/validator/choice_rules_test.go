package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/copygen/pkg/validator"
)

func TestInList(t *testing.T) {
	allowed := []string{"instagram", "facebook", "ecommerce", "email", "google", "blog"}

	tests := []struct {
		value string
		want  bool
	}{
		{"instagram", true},
		{"blog", true},
		{"Instagram", false},
		{"tiktok", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			rule := validator.InList("template", tt.value, allowed)
			assert.Equal(t, tt.want, rule.Check())
			assert.Equal(t, "in_list", rule.Error.Code)
		})
	}

	t.Run("generic over ints", func(t *testing.T) {
		assert.True(t, validator.InList("n", 2, []int{1, 2, 3}).Check())
		assert.False(t, validator.InList("n", 4, []int{1, 2, 3}).Check())
	})
}
