package handler

import "net/http"

// HandlerFunc handles a request already bound into R.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to an http.ResponseWriter. A returned error is
// passed to the ErrorHandler; nothing must have been written in that case.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind decodes part of the request into v, a pointer to the request struct.
type Bind func(r *http.Request, v any) error

// ErrorHandler writes the response for binding and rendering failures.
type ErrorHandler func(ctx Context, err error)

// Decorator wraps a HandlerFunc. The first decorator passed is the outermost.
type Decorator[R any] func(HandlerFunc[R]) HandlerFunc[R]

// Option configures Wrap.
type Option[R any] func(*wrapConfig[R])

type wrapConfig[R any] struct {
	binders      []Bind
	errorHandler ErrorHandler
	decorators   []Decorator[R]
}

// WithBinders appends binders, applied in order. Each binder reads only its
// own struct tags, so path and body binders can be combined.
//
//	handler.WithBinders[Req](binder.Path(chi.URLParam), binder.JSON())
func WithBinders[R any](binders ...Bind) Option[R] {
	return func(c *wrapConfig[R]) {
		for _, b := range binders {
			if b != nil {
				c.binders = append(c.binders, b)
			}
		}
	}
}

// WithErrorHandler replaces the default error handler.
func WithErrorHandler[R any](h ErrorHandler) Option[R] {
	return func(c *wrapConfig[R]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithDecorators wraps the handler, first decorator outermost.
func WithDecorators[R any](decorators ...Decorator[R]) Option[R] {
	return func(c *wrapConfig[R]) {
		c.decorators = append(c.decorators, decorators...)
	}
}

// defaultErrorHandler writes the classified JSON error without logging.
func defaultErrorHandler(ctx Context, err error) {
	info := classifyError(err)
	WriteJSON(ctx.ResponseWriter(), info.StatusCode, ErrorBody{Error: info.Message})
}

// Wrap converts a typed HandlerFunc to http.HandlerFunc.
//
//	r.Post("/generate", handler.Wrap(s.generate,
//		handler.WithBinders[generation.Request](binder.JSON()),
//		handler.WithErrorHandler[generation.Request](errorHandler),
//	))
func Wrap[R any](h HandlerFunc[R], opts ...Option[R]) http.HandlerFunc {
	cfg := &wrapConfig[R]{errorHandler: defaultErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	for i := len(cfg.decorators) - 1; i >= 0; i-- {
		h = cfg.decorators[i](h)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				cfg.errorHandler(ctx, err)
				return
			}
		}

		resp := h(ctx, req)
		if resp == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}
