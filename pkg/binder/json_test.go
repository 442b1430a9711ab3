package binder_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/copygen/pkg/binder"
)

func newJSONRequest(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Prompt   string `json:"prompt"`
		Template string `json:"template"`
	}

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := binder.JSON()(newJSONRequest(`{"prompt":"  keep spaces ","template":"blog"}`, "application/json"), &got)
		require.NoError(t, err)
		assert.Equal(t, "  keep spaces ", got.Prompt)
		assert.Equal(t, "blog", got.Template)
	})

	t.Run("content type with charset", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := binder.JSON()(newJSONRequest(`{"prompt":"x"}`, "application/json; charset=utf-8"), &got)
		require.NoError(t, err)
		assert.Equal(t, "x", got.Prompt)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := binder.JSON()(newJSONRequest(`{"prompt":"x"}`, ""), &got)
		require.ErrorIs(t, err, binder.ErrMissingContentType)
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := binder.JSON()(newJSONRequest(`{"prompt":"x"}`, "text/plain"), &got)
		require.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := binder.JSON()(newJSONRequest("", "application/json"), &got)
		require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
		assert.Contains(t, err.Error(), "empty body")
	})

	t.Run("invalid syntax", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := binder.JSON()(newJSONRequest(`{"prompt":`, "application/json"), &got)
		require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("unknown fields rejected by default", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := binder.JSON()(newJSONRequest(`{"prompt":"x","context":{"a":1}}`, "application/json"), &got)
		require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("unknown fields accepted when allowed", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := binder.JSON(binder.WithUnknownFields())(newJSONRequest(`{"prompt":"x","extra":true}`, "application/json"), &got)
		require.NoError(t, err)
		assert.Equal(t, "x", got.Prompt)
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := binder.JSON()(newJSONRequest(`{"prompt":"x"}{"prompt":"y"}`, "application/json"), &got)
		require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
		assert.Contains(t, err.Error(), "unexpected data")
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()
		var got payload
		body := `{"prompt":"` + strings.Repeat("a", 64) + `"}`
		err := binder.JSON(binder.WithMaxSize(32))(newJSONRequest(body, "application/json"), &got)
		require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
		assert.Contains(t, err.Error(), "too large")
	})

	t.Run("untyped field keeps raw json type", func(t *testing.T) {
		t.Parallel()
		var got struct {
			Prompt any `json:"prompt"`
		}
		err := binder.JSON()(newJSONRequest(`{"prompt":42}`, "application/json"), &got)
		require.NoError(t, err)
		assert.Equal(t, float64(42), got.Prompt)
	})
}
