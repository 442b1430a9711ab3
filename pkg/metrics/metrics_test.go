package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/copygen/pkg/metrics"
)

func TestCollector(t *testing.T) {
	t.Parallel()

	m := metrics.New("test")
	m.RateLimitRejected()
	m.RateLimitRejected()
	m.WebhookEvent("PURCHASE_APPROVED", metrics.OutcomeSuccess)
	m.Generation("blog", metrics.OutcomeError)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "test_rate_limit_rejections_total 2")
	assert.Contains(t, string(body), `test_webhook_events_total{event="PURCHASE_APPROVED",outcome="success"} 1`)
	assert.Contains(t, string(body), `test_generations_total{outcome="error",template="blog"} 1`)
}

func TestCollectorsAreIndependent(t *testing.T) {
	t.Parallel()

	a := metrics.New("test")
	b := metrics.New("test")
	a.Generation("email", metrics.OutcomeSuccess)

	families, err := b.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		assert.NotEqual(t, "test_generations_total", f.GetName())
	}
}
