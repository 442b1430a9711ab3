package generation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/copygen/pkg/logger"
	"github.com/dmitrymomot/copygen/svc/store"
)

// Outcome label values reported to Metrics.
const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

type generator interface {
	Generate(ctx context.Context, t Template, prompt string, vars map[string]any) (Output, error)
}

type recorder interface {
	SaveGeneration(ctx context.Context, rec store.GenerationRecord) error
}

// Metrics receives one call per generation attempt.
type Metrics interface {
	Generation(template, outcome string)
}

// Service validates requests, calls the gateway and records results.
type Service struct {
	gen     generator
	records recorder
	metrics Metrics
	log     *slog.Logger
	now     func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithMetrics reports each attempt to m.
func WithMetrics(m Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger for persistence failures.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides time.Now for record timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a Service. records may be nil to skip persistence.
func NewService(gen generator, records recorder, opts ...ServiceOption) *Service {
	s := &Service{
		gen:     gen,
		records: records,
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate validates req and produces copy. Validation failures are
// validator.ValidationErrors and happen before any provider call.
// Saving the result is best effort: a store failure is logged and the
// generated copy is still returned.
func (s *Service) Generate(ctx context.Context, req Request) (Output, error) {
	if err := Validate(req); err != nil {
		return Output{}, err
	}

	t := Template(req.Template)
	prompt := req.PromptText()

	out, err := s.gen.Generate(ctx, t, prompt, req.Context)
	if err != nil {
		s.observe(t, outcomeError)
		return Output{}, err
	}
	s.observe(t, outcomeSuccess)

	if s.records != nil {
		rec := store.GenerationRecord{
			ID:        uuid.New(),
			Prompt:    prompt,
			Template:  string(t),
			Content:   out.Content,
			Tokens:    out.Tokens,
			CreatedAt: s.now().UTC(),
		}
		if err := s.records.SaveGeneration(ctx, rec); err != nil {
			s.log.ErrorContext(ctx, "failed to save generation",
				logger.Error(err),
				logger.Template(string(t)),
				logger.Component("generation"),
			)
		}
	}

	return out, nil
}

func (s *Service) observe(t Template, outcome string) {
	if s.metrics != nil {
		s.metrics.Generation(string(t), outcome)
	}
}
