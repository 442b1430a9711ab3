package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/copygen/handler"
	"github.com/dmitrymomot/copygen/pkg/logger"
	"github.com/dmitrymomot/copygen/svc/subscription"
)

// maxWebhookBody caps the payload read from a provider.
const maxWebhookBody = 1 << 20

type dispatcher interface {
	Dispatch(ctx context.Context, ev subscription.Event) subscription.Ack
}

type paddleParser interface {
	Parse(ctx context.Context, payload []byte, signature string) (subscription.Event, error)
}

// WebhookService serves the /webhook routes. Every response is 200 with an
// Ack body so providers do not retry.
type WebhookService struct {
	dispatcher dispatcher
	hottok     string
	paddle     paddleParser
	log        *slog.Logger
}

// WebhookOption configures a WebhookService.
type WebhookOption func(*WebhookService)

// WithHottok requires Hotmart postbacks to carry token.
func WithHottok(token string) WebhookOption {
	return func(s *WebhookService) {
		s.hottok = token
	}
}

// WithPaddle enables POST /paddle.
func WithPaddle(p paddleParser) WebhookOption {
	return func(s *WebhookService) {
		s.paddle = p
	}
}

// WithWebhookLogger sets the logger.
func WithWebhookLogger(log *slog.Logger) WebhookOption {
	return func(s *WebhookService) {
		if log != nil {
			s.log = log
		}
	}
}

// NewWebhookService creates the webhook service.
func NewWebhookService(d dispatcher, opts ...WebhookOption) *WebhookService {
	s := &WebhookService{
		dispatcher: d,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle implements Mountable.
func (s *WebhookService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/hotmart", handler.Wrap(s.hotmart,
		handler.WithBinders[webhookRequest](bindWebhook),
		handler.WithErrorHandler[webhookRequest](s.ackError),
	))
	if s.paddle != nil {
		r.Post("/paddle", handler.Wrap(s.paddleWebhook,
			handler.WithBinders[webhookRequest](bindWebhook),
			handler.WithErrorHandler[webhookRequest](s.ackError),
		))
	}

	return r
}

type webhookRequest struct {
	Payload         []byte
	HotmartToken    string
	PaddleSignature string
}

func bindWebhook(r *http.Request, v any) error {
	req, ok := v.(*webhookRequest)
	if !ok {
		return fmt.Errorf("%w: unexpected target %T", subscription.ErrInvalidPayload, v)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		return fmt.Errorf("%w: %w", subscription.ErrInvalidPayload, err)
	}

	req.Payload = body
	req.HotmartToken = r.Header.Get(subscription.HotmartTokenHeader)
	req.PaddleSignature = r.Header.Get(subscription.PaddleSignatureHeader)
	return nil
}

func (s *WebhookService) hotmart(ctx handler.Context, req webhookRequest) handler.Response {
	ev, env, err := subscription.ParseHotmart(req.Payload)
	if err != nil {
		return s.reject(ctx, "hotmart", err, "invalid payload")
	}

	token := req.HotmartToken
	if token == "" {
		token = env.Hottok
	}
	if err := subscription.VerifyHottok(s.hottok, token); err != nil {
		return s.reject(ctx, "hotmart", err, "invalid webhook token")
	}

	return handler.JSON(s.dispatcher.Dispatch(ctx, ev))
}

func (s *WebhookService) paddleWebhook(ctx handler.Context, req webhookRequest) handler.Response {
	ev, err := s.paddle.Parse(ctx, req.Payload, req.PaddleSignature)
	if err != nil {
		return s.reject(ctx, "paddle", err, "invalid webhook")
	}
	return handler.JSON(s.dispatcher.Dispatch(ctx, ev))
}

func (s *WebhookService) reject(ctx context.Context, provider string, err error, message string) handler.Response {
	s.log.WarnContext(ctx, "webhook rejected",
		logger.Error(err),
		slog.String("provider", provider),
		logger.Component("webhook"),
	)
	return handler.JSON(subscription.Ack{Status: subscription.AckError, Message: message})
}

// ackError keeps the 200 contract for binder and render failures.
func (s *WebhookService) ackError(ctx handler.Context, err error) {
	s.log.ErrorContext(ctx, "webhook request failed",
		logger.Error(err),
		logger.Component("webhook"),
	)
	handler.WriteJSON(ctx.ResponseWriter(), http.StatusOK, subscription.Ack{
		Status:  subscription.AckError,
		Message: "invalid payload",
	})
}
