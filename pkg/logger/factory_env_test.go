package logger_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/copygen/pkg/logger"
)

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	jsonPresets := map[string]string{
		"production": "production",
		"prod":       "production",
		"staging":    "staging",
		"stage":      "staging",
	}

	for in, want := range jsonPresets {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := logger.New(logger.WithEnvironment(in, "copygen"), logger.WithOutput(&buf))
			log.Debug("hidden")
			log.Info("visible")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "debug must be filtered, leaving one JSON line")
			assert.Equal(t, want, entry["env"])
			assert.Equal(t, "copygen", entry["service"])
			assert.Equal(t, "visible", entry["msg"])
		})
	}

	for _, in := range []string{"", "development", "dev", "local-laptop"} {
		t.Run("development/"+in, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := logger.New(logger.WithEnvironment(in, "copygen"), logger.WithOutput(&buf))
			log.Debug("details")

			out := buf.String()
			assert.Contains(t, out, "level=DEBUG")
			assert.Contains(t, out, "env=development")
			assert.Contains(t, out, "service=copygen")
		})
	}
}

func TestPresets_EmptyServiceIsIgnored(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithDevelopment(""), logger.WithOutput(&buf))
	log.Debug("dropped")
	log.Info("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.NotContains(t, entry, "service")
}

func TestWithRotatingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "copygen.log")

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithRotatingFile(path, 1))
	log.Info("generation saved", logger.Template("blog"))

	assert.Contains(t, buf.String(), "generation saved")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"template":"blog"`)

	t.Run("empty path writes only to output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger.New(logger.WithOutput(&buf), logger.WithRotatingFile("", 10)).Info("only buffer")
		assert.Contains(t, buf.String(), "only buffer")
	})
}
