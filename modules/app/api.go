package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/copygen/handler"
	"github.com/dmitrymomot/copygen/pkg/binder"
	"github.com/dmitrymomot/copygen/pkg/logger"
	"github.com/dmitrymomot/copygen/svc/generation"
	"github.com/dmitrymomot/copygen/svc/store"
)

const (
	historyLimit = 50
	statsWindow  = 7 * 24 * time.Hour
)

var (
	errGenerationFailed   = handler.NewHTTPError(http.StatusInternalServerError, "Failed to generate content")
	errHistoryFailed      = handler.NewHTTPError(http.StatusInternalServerError, "Failed to fetch history")
	errStatsFailed        = handler.NewHTTPError(http.StatusInternalServerError, "Failed to fetch stats")
	errSubscriptionFailed = handler.NewHTTPError(http.StatusInternalServerError, "Failed to fetch subscription")
)

type generator interface {
	Generate(ctx context.Context, req generation.Request) (generation.Output, error)
}

type reader interface {
	ListRecentGenerations(ctx context.Context, limit int) ([]store.GenerationRecord, error)
	GenerationStats(ctx context.Context, since time.Time) (store.Stats, error)
	GetLatestSubscription(ctx context.Context, email string) (store.SubscriptionRecord, error)
}

// APIService serves the /api routes.
type APIService struct {
	gen          generator
	store        reader
	log          *slog.Logger
	now          func() time.Time
	errorHandler handler.ErrorHandler
}

// APIOption configures an APIService.
type APIOption func(*APIService)

// WithAPILogger sets the logger used by the error handler.
func WithAPILogger(log *slog.Logger) APIOption {
	return func(s *APIService) {
		if log != nil {
			s.log = log
		}
	}
}

// WithAPIClock overrides time.Now for the stats window.
func WithAPIClock(now func() time.Time) APIOption {
	return func(s *APIService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewAPIService creates the API service.
func NewAPIService(gen generator, st reader, opts ...APIOption) *APIService {
	s := &APIService{
		gen:   gen,
		store: st,
		log:   slog.Default(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.errorHandler = handler.NewErrorHandler(s.log)
	return s
}

// Handle implements Mountable.
func (s *APIService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/generate", handler.Wrap(s.generate,
		handler.WithBinders[generation.Request](binder.JSON(binder.WithUnknownFields())),
		handler.WithErrorHandler[generation.Request](s.errorHandler),
	))
	r.Get("/history", handler.Wrap(s.history,
		handler.WithErrorHandler[struct{}](s.errorHandler),
	))
	r.Get("/stats", handler.Wrap(s.stats,
		handler.WithErrorHandler[struct{}](s.errorHandler),
	))
	r.Get("/subscription/{email}", handler.Wrap(s.subscription,
		handler.WithBinders[subscriptionRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[subscriptionRequest](s.errorHandler),
	))

	return r
}

func (s *APIService) generate(ctx handler.Context, req generation.Request) handler.Response {
	out, err := s.gen.Generate(ctx, req)
	if err != nil {
		if generation.IsGenerationError(err) {
			return handler.Error(fmt.Errorf("%w: %w", errGenerationFailed, err))
		}
		return handler.Error(err)
	}
	return handler.JSON(out)
}

func (s *APIService) history(ctx handler.Context, _ struct{}) handler.Response {
	records, err := s.store.ListRecentGenerations(ctx, historyLimit)
	if err != nil {
		return handler.Error(fmt.Errorf("%w: %w", errHistoryFailed, err))
	}
	if records == nil {
		records = []store.GenerationRecord{}
	}
	return handler.JSON(records)
}

func (s *APIService) stats(ctx handler.Context, _ struct{}) handler.Response {
	stats, err := s.store.GenerationStats(ctx, s.now().Add(-statsWindow))
	if err != nil {
		return handler.Error(fmt.Errorf("%w: %w", errStatsFailed, err))
	}
	if stats.ByTemplate == nil {
		stats.ByTemplate = map[string]int{}
	}
	return handler.JSON(stats)
}

type subscriptionRequest struct {
	Email string `path:"email"`
}

// NotFoundBody is returned when no subscription exists for the email.
type NotFoundBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *APIService) subscription(ctx handler.Context, req subscriptionRequest) handler.Response {
	email := req.Email
	if unescaped, err := url.PathUnescape(email); err == nil {
		email = unescaped
	}
	email = strings.ToLower(strings.TrimSpace(email))

	rec, err := s.store.GetLatestSubscription(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return handler.JSON(NotFoundBody{
			Status:  "not_found",
			Message: "Subscription not found",
		}, handler.WithJSONStatus(http.StatusNotFound))
	case err != nil:
		s.log.ErrorContext(ctx, "subscription lookup failed",
			logger.Error(err),
			logger.Email(email),
			logger.Component("api"),
		)
		return handler.Error(errSubscriptionFailed)
	}
	return handler.JSON(rec)
}
