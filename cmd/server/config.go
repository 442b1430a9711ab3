package main

import (
	"github.com/dmitrymomot/copygen/pkg/httpserver"
	"github.com/dmitrymomot/copygen/pkg/pg"
	"github.com/dmitrymomot/copygen/pkg/redis"
	"github.com/dmitrymomot/copygen/svc/generation"
	"github.com/dmitrymomot/copygen/svc/subscription"
)

// Rate limiter backends accepted by RATE_LIMIT_STORE.
const (
	limiterMemory = "memory"
	limiterRedis  = "redis"
)

// Config is the complete process configuration, read from the environment
// and an optional .env file.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"copygen"`
	LogFile     string `env:"LOG_FILE"`
	LogFileMB   int    `env:"LOG_FILE_MAX_SIZE_MB" envDefault:"100"`

	StoreDriver       string `env:"STORE_DRIVER" envDefault:"postgres"`
	RateLimitStore    string `env:"RATE_LIMIT_STORE" envDefault:"memory"`
	TrustProxyHeaders bool   `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
	MetricsEnabled    bool   `env:"METRICS_ENABLED" envDefault:"true"`

	HotmartHottok string `env:"HOTMART_HOTTOK"`

	HTTP       httpserver.Config
	Postgres   pg.Config
	Redis      redis.Config
	Generation generation.Config
	Paddle     subscription.PaddleConfig
}
