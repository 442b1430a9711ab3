package app_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/copygen/modules/app"
	"github.com/dmitrymomot/copygen/pkg/environment"
	"github.com/dmitrymomot/copygen/pkg/httpserver"
	"github.com/dmitrymomot/copygen/pkg/metrics"
	"github.com/dmitrymomot/copygen/pkg/ratelimit"
	"github.com/dmitrymomot/copygen/svc/generation"
	"github.com/dmitrymomot/copygen/svc/store"
	"github.com/dmitrymomot/copygen/svc/subscription"
)

const (
	testHottok       = "hottok-secret"
	testPaddleSecret = "pdl_ntfset_test"
)

type fakeGateway struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeGateway) Generate(_ context.Context, t generation.Template, prompt string, _ map[string]any) (generation.Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return generation.Output{}, &generation.GenerationError{Template: t, Err: f.err}
	}
	return generation.Output{Content: "copy: " + prompt, Tokens: 42, Template: t}, nil
}

func (f *fakeGateway) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type testApp struct {
	handler http.Handler
	store   *store.Memory
	gateway *fakeGateway
}

type appConfig struct {
	hottok       string
	paddleSecret string
	gatewayErr   error
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(t *testing.T, cfg appConfig) *testApp {
	t.Helper()

	log := quietLogger()
	mem := store.NewMemory()
	gw := &fakeGateway{err: cfg.gatewayErr}
	m := metrics.New("copygen")

	limiterStore := ratelimit.NewMemoryStore()
	t.Cleanup(func() { _ = limiterStore.Close() })
	limiter, err := ratelimit.NewFixedWindow(limiterStore, app.RateLimitRequests, app.RateLimitWindow)
	require.NoError(t, err)

	lifecycle, err := subscription.NewLifecycle(mem, subscription.WithLifecycleLogger(log))
	require.NoError(t, err)
	d := subscription.NewDispatcher(lifecycle,
		subscription.WithDispatcherMetrics(m),
		subscription.WithDispatcherLogger(log),
	)

	webhookOpts := []app.WebhookOption{app.WithHottok(cfg.hottok), app.WithWebhookLogger(log)}
	if cfg.paddleSecret != "" {
		p, err := subscription.NewPaddleParser(cfg.paddleSecret)
		require.NoError(t, err)
		webhookOpts = append(webhookOpts, app.WithPaddle(p))
	}

	genSvc := generation.NewService(gw, mem, generation.WithMetrics(m), generation.WithLogger(log))

	r := app.Router(app.RouterOptions{
		Logger:      log,
		Environment: environment.Production,
		Limiter:     limiter,
		Rejections:  m,
		API:         app.NewAPIService(genSvc, mem, app.WithAPILogger(log)),
		Webhooks:    app.NewWebhookService(d, webhookOpts...),
		Health: httpserver.HealthHandler(time.Now(), log, time.Second,
			httpserver.DependencyCheck{Name: "store", Check: mem.Ping},
		),
		Metrics: m.Handler(),
	})

	return &testApp{handler: r, store: mem, gateway: gw}
}

func (a *testApp) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func hotmartBody(event, email string) string {
	return fmt.Sprintf(`{
		"event": %q,
		"data": {
			"buyer": {"email": %q},
			"product": {"id": 1234, "name": "Copy Pro"},
			"purchase": {"transaction": "HP-001"}
		}
	}`, event, email)
}

func signPaddle(secret, body string) string {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts + ":" + body))
	return fmt.Sprintf("ts=%s;h1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}
