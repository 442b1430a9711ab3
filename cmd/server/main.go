package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/copygen/modules/app"
	"github.com/dmitrymomot/copygen/pkg/config"
	"github.com/dmitrymomot/copygen/pkg/environment"
	"github.com/dmitrymomot/copygen/pkg/httpserver"
	"github.com/dmitrymomot/copygen/pkg/logger"
	"github.com/dmitrymomot/copygen/pkg/metrics"
	"github.com/dmitrymomot/copygen/pkg/pg"
	"github.com/dmitrymomot/copygen/pkg/ratelimit"
	"github.com/dmitrymomot/copygen/pkg/redis"
	"github.com/dmitrymomot/copygen/pkg/requestid"
	"github.com/dmitrymomot/copygen/svc/generation"
	"github.com/dmitrymomot/copygen/svc/store"
	"github.com/dmitrymomot/copygen/svc/subscription"
)

var errUnknownLimiterStore = errors.New("unknown rate limit store")

func main() {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		slog.Error("failed to load configuration", logger.Error(err))
		os.Exit(1)
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogFile != "" {
		logOpts = append(logOpts, logger.WithRotatingFile(cfg.LogFile, cfg.LogFileMB))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	started := time.Now()
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	st, storeCheck, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	closers = append(closers, closeStore)

	limiterStore, limiterCheck, closeLimiter, err := openLimiterStore(ctx, cfg)
	if err != nil {
		return err
	}
	closers = append(closers, closeLimiter)

	limiter, err := ratelimit.NewFixedWindow(limiterStore, app.RateLimitRequests, app.RateLimitWindow)
	if err != nil {
		return fmt.Errorf("create rate limiter: %w", err)
	}

	m := metrics.New(cfg.ServiceName)

	model, err := generation.NewOpenAIModel(cfg.Generation)
	if err != nil {
		return err
	}
	catalog, err := generation.DefaultCatalog()
	if err != nil {
		return err
	}
	gateway, err := generation.NewGateway(model, catalog,
		generation.WithTimeout(cfg.Generation.Timeout),
		generation.WithEnhancedPrompts(cfg.Generation.Enhanced),
		generation.WithFormatting(cfg.Generation.Format),
	)
	if err != nil {
		return err
	}
	genSvc := generation.NewService(gateway, st,
		generation.WithMetrics(m),
		generation.WithLogger(log),
	)

	lifecycle, err := subscription.NewLifecycle(st, subscription.WithLifecycleLogger(log))
	if err != nil {
		return err
	}
	dispatcher := subscription.NewDispatcher(lifecycle,
		subscription.WithDispatcherMetrics(m),
		subscription.WithDispatcherLogger(log),
	)

	webhookOpts := []app.WebhookOption{
		app.WithHottok(cfg.HotmartHottok),
		app.WithWebhookLogger(log),
	}
	if cfg.Paddle.WebhookSecret != "" {
		parser, err := subscription.NewPaddleParser(cfg.Paddle.WebhookSecret)
		if err != nil {
			return err
		}
		webhookOpts = append(webhookOpts, app.WithPaddle(parser))
	}
	if cfg.HotmartHottok == "" {
		log.Warn("HOTMART_HOTTOK is not set, hotmart postbacks are not authenticated")
	}

	keyFunc := ratelimit.RemoteAddr
	if cfg.TrustProxyHeaders {
		keyFunc = ratelimit.ClientIP
	}

	opts := app.RouterOptions{
		Logger:      log,
		Environment: environment.Parse(cfg.AppEnv),
		Limiter:     limiter,
		KeyFunc:     ratelimit.Prefixed("api:", keyFunc),
		Rejections:  m,
		API:         app.NewAPIService(genSvc, st, app.WithAPILogger(log)),
		Webhooks:    app.NewWebhookService(dispatcher, webhookOpts...),
		Health: httpserver.HealthHandler(started, log, 2*time.Second,
			httpserver.DependencyCheck{Name: "store", Check: storeCheck},
			httpserver.DependencyCheck{Name: "limiter_store", Check: limiterCheck},
		),
	}
	if cfg.MetricsEnabled {
		opts.Metrics = m.Handler()
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, app.Router(opts))
}

// openStore returns the configured store, its health probe and a release func.
func openStore(ctx context.Context, cfg Config, log *slog.Logger) (store.Store, func(context.Context) error, func(), error) {
	switch cfg.StoreDriver {
	case store.DriverMemory:
		log.Warn("using in-memory store, data is lost on restart")
		mem := store.NewMemory()
		return mem, mem.Ping, func() {}, nil

	case store.DriverPostgres:
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, nil, err
		}
		db := pg.OpenDB(pool)
		release := func() {
			_ = db.Close()
			pool.Close()
		}

		if err := pg.Migrate(ctx, db, store.Migrations, store.MigrationsDir, cfg.Postgres, log); err != nil {
			release()
			return nil, nil, nil, err
		}
		return store.NewPostgres(db), pg.Healthcheck(pool), release, nil
	}

	return nil, nil, nil, fmt.Errorf("%w: %q", store.ErrUnknownDriver, cfg.StoreDriver)
}

// openLimiterStore returns the limiter backend, its health probe and a release func.
func openLimiterStore(ctx context.Context, cfg Config) (ratelimit.Store, func(context.Context) error, func(), error) {
	switch cfg.RateLimitStore {
	case limiterMemory:
		ms := ratelimit.NewMemoryStore()
		return ms, func(context.Context) error { return nil }, func() { _ = ms.Close() }, nil

	case limiterRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		rs, err := ratelimit.NewRedisStore(client, ratelimit.WithKeyPrefix(cfg.Redis.KeyPrefix+"ratelimit:"))
		if err != nil {
			_ = client.Close()
			return nil, nil, nil, err
		}
		return rs, redis.Healthcheck(client), func() { _ = client.Close() }, nil
	}

	return nil, nil, nil, fmt.Errorf("%w: %q", errUnknownLimiterStore, cfg.RateLimitStore)
}
