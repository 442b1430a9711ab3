package generation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/copygen/svc/generation"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	catalog, err := generation.DefaultCatalog()
	require.NoError(t, err)

	for _, tmpl := range generation.Templates() {
		p, err := catalog.Enhanced(tmpl, "handmade candles", map[string]any{"audience": "gift shoppers"})
		require.NoError(t, err, tmpl)
		assert.NotEmpty(t, p.System, tmpl)
		assert.Contains(t, p.User, "handmade candles", tmpl)
		assert.Greater(t, p.Temperature, 0.0, tmpl)
		assert.Positive(t, p.MaxTokens, tmpl)
	}

	basic := catalog.Basic("raw prompt")
	assert.Equal(t, "raw prompt", basic.User)
	assert.Contains(t, basic.System, "marketing copywriter")
}

func TestCatalog_UnknownTemplate(t *testing.T) {
	t.Parallel()

	catalog, err := generation.DefaultCatalog()
	require.NoError(t, err)

	_, err = catalog.Enhanced("tiktok", "x", nil)
	assert.ErrorIs(t, err, generation.ErrUnknownTemplate)
}

func TestParseCatalog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "invalid yaml", data: "persona: [unclosed"},
		{name: "missing persona", data: "templates: {}"},
		{name: "missing template", data: "persona: writer\ntemplates:\n  blog:\n    scaffold: x\n"},
		{
			name: "broken scaffold",
			data: `persona: writer
templates:
  instagram: {scaffold: "{{.Prompt"}
  facebook: {scaffold: x}
  ecommerce: {scaffold: x}
  email: {scaffold: x}
  google: {scaffold: x}
  blog: {scaffold: x}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := generation.ParseCatalog([]byte(tt.data))
			assert.ErrorIs(t, err, generation.ErrInvalidCatalog)
		})
	}
}
