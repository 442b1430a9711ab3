package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/dmitrymomot/copygen/pkg/binder"
	"github.com/dmitrymomot/copygen/pkg/environment"
	"github.com/dmitrymomot/copygen/pkg/logger"
	"github.com/dmitrymomot/copygen/pkg/requestid"
	"github.com/dmitrymomot/copygen/pkg/validator"
)

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Message    string
	LogLevel   slog.Level
}

// classifyError maps err to a status code and a client-safe message.
// Anything unrecognised becomes an opaque 500.
func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: ErrInternalServerError.Code,
		Message:    ErrInternalServerError.Message,
		LogLevel:   slog.LevelError,
	}

	var validationErr validator.ValidationErrors
	var httpErr HTTPError
	switch {
	case errors.As(err, &validationErr):
		info.StatusCode = http.StatusBadRequest
		info.Message = validationErr.FirstMessage()
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Message
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrUnsupportedMediaType),
		errors.Is(err, binder.ErrFailedToParsePath):
		info.StatusCode = ErrBadRequest.Code
		info.Message = ErrBadRequest.Message
	}

	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}

	return info
}

// NewErrorHandler creates the JSON error handler shared by all routes.
// Server errors carry the request id so clients can quote it; in development
// they also carry the error text.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		requestID := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		body := ErrorBody{Error: info.Message}
		if info.StatusCode >= http.StatusInternalServerError {
			body.RequestID = requestID
			if environment.IsDevelopment(r.Context()) {
				body.Detail = err.Error()
			}
		}
		WriteJSON(ctx.ResponseWriter(), info.StatusCode, body)
	}
}

// Recoverer turns a panic anywhere below it into a 500 JSON response with
// the request id. http.ErrAbortHandler is re-panicked. It must run after
// environment.Middleware for the development detail to appear.
func Recoverer(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				buf := make([]byte, 2048)
				n := runtime.Stack(buf, false)

				requestID := requestid.FromContext(r.Context())
				log.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("stack_trace", string(buf[:n])),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					logger.Component("recoverer"),
				)

				body := ErrorBody{
					Error:     ErrInternalServerError.Message,
					RequestID: requestID,
				}
				if environment.IsDevelopment(r.Context()) {
					body.Detail = fmt.Sprint(rec)
				}
				WriteJSON(w, http.StatusInternalServerError, body)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
