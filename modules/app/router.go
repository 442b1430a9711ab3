package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/copygen/handler"
	"github.com/dmitrymomot/copygen/pkg/environment"
	"github.com/dmitrymomot/copygen/pkg/logger"
	"github.com/dmitrymomot/copygen/pkg/ratelimit"
	"github.com/dmitrymomot/copygen/pkg/requestid"
)

// Fixed-window limit applied per client to /api routes.
const (
	RateLimitRequests = 50
	RateLimitWindow   = 15 * time.Minute
)

type Mountable interface {
	Handle() http.Handler
}

// RejectionRecorder is notified of every request refused by the limiter.
type RejectionRecorder interface {
	RateLimitRejected()
}

// RouterOptions configures the application router.
// Services and endpoints are only mounted when provided.
type RouterOptions struct {
	Logger      *slog.Logger
	Environment environment.Environment

	// Limiter guards every /api route. KeyFunc defaults to ratelimit.RemoteAddr.
	Limiter    ratelimit.Limiter
	KeyFunc    ratelimit.KeyFunc
	Rejections RejectionRecorder

	API      Mountable
	Webhooks Mountable

	Health  http.Handler
	Metrics http.Handler
}

// Router builds the HTTP surface.
//
//	r := app.Router(app.RouterOptions{
//	    Logger:   log,
//	    Limiter:  limiter,
//	    API:      app.NewAPIService(genSvc, st),
//	    Webhooks: app.NewWebhookService(dispatcher),
//	    Health:   health,
//	})
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	if opts.Environment != "" {
		r.Use(environment.Middleware(opts.Environment))
	}
	r.Use(handler.Recoverer(log))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteJSON(w, http.StatusNotFound, handler.ErrorBody{
			Error: handler.ErrNotFound.Message,
			Path:  r.URL.Path,
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteJSON(w, http.StatusMethodNotAllowed, handler.ErrorBody{
			Error: "Method not allowed",
			Path:  r.URL.Path,
		})
	})

	if opts.Health != nil {
		r.Method(http.MethodGet, "/health", opts.Health)
	}
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	if opts.API != nil {
		r.Route("/api", func(api chi.Router) {
			if opts.Limiter != nil {
				api.Use(rateLimit(opts, log))
			}
			api.Mount("/", opts.API.Handle())
		})
	}
	if opts.Webhooks != nil {
		r.Mount("/webhook", opts.Webhooks.Handle())
	}

	return r
}

func rateLimit(opts RouterOptions, log *slog.Logger) func(http.Handler) http.Handler {
	keyFunc := opts.KeyFunc
	if keyFunc == nil {
		keyFunc = ratelimit.RemoteAddr
	}

	return ratelimit.Middleware(opts.Limiter, keyFunc,
		ratelimit.WithOnLimitReached(func(w http.ResponseWriter, r *http.Request, _ *ratelimit.Result) {
			if opts.Rejections != nil {
				opts.Rejections.RateLimitRejected()
			}
			log.WarnContext(r.Context(), "rate limit exceeded",
				logger.ClientKey(keyFunc(r)),
				logger.Component("ratelimit"),
			)
			handler.WriteJSON(w, http.StatusTooManyRequests, handler.ErrorBody{
				Error: handler.ErrTooManyRequests.Message,
			})
		}),
		ratelimit.WithOnError(func(r *http.Request, key string, err error) {
			log.ErrorContext(r.Context(), "rate limiter unavailable, allowing request",
				logger.Error(err),
				logger.ClientKey(key),
				logger.Component("ratelimit"),
			)
		}),
	)
}
