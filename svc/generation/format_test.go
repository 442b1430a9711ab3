package generation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/copygen/svc/generation"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	t.Run("strips emphasis and collapses blank lines", func(t *testing.T) {
		t.Parallel()
		in := "**Big news!**\r\n\r\n\r\n\r\nOur __summer__ sale starts now.\n\n\n\nShop today.\n"
		got := generation.Format(generation.TemplateInstagram, in)
		assert.Equal(t, "Big news!\n\nOur summer sale starts now.\n\nShop today.", got)
	})

	t.Run("truncates ad fields", func(t *testing.T) {
		t.Parallel()
		in := "Headline 1: The Most Comfortable Running Shoes Ever Made\n" +
			"Headline 2: Free Shipping\n" +
			"Description: Lightweight cushioning, breathable mesh and a fit that lasts mile after mile after mile after mile."
		got := generation.Format(generation.TemplateGoogle, in)
		assert.Equal(t,
			"Headline 1: The Most Comfortable Running S\n"+
				"Headline 2: Free Shipping\n"+
				"Description: Lightweight cushioning, breathable mesh and a fit that lasts mile after mile af",
			got)
	})

	t.Run("unlabelled ad lines are cut positionally", func(t *testing.T) {
		t.Parallel()
		in := "A headline that is definitely longer than thirty\n\nShort\nThird line is within the description limit"
		got := generation.Format(generation.TemplateGoogle, in)
		assert.Equal(t,
			"A headline that is definitely\n\nShort\nThird line is within the description limit",
			got)
	})

	t.Run("other templates are not truncated", func(t *testing.T) {
		t.Parallel()
		in := "Headline 1: The Most Comfortable Running Shoes Ever Made"
		assert.Equal(t, in, generation.Format(generation.TemplateBlog, in))
	})
}
