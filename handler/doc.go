// Package handler provides type-safe HTTP request handling for JSON APIs.
//
// A HandlerFunc receives a bound request value and returns a Response:
//
//	type GenerateRequest struct {
//		Prompt   any    `json:"prompt"`
//		Template string `json:"template"`
//	}
//
//	func generate(ctx handler.Context, req GenerateRequest) handler.Response {
//		out, err := svc.Generate(ctx, req)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.JSON(out)
//	}
//
//	r.Post("/api/generate", handler.Wrap(generate,
//		handler.WithBinders[GenerateRequest](binder.JSON()),
//		handler.WithErrorHandler[GenerateRequest](handler.NewErrorHandler(log)),
//	))
//
// # Errors
//
// Binding and rendering failures go to the configured ErrorHandler.
// NewErrorHandler maps them to JSON bodies of the form {"error": "..."}:
//
//   - validator.ValidationErrors become 400 with the first failure's message
//   - HTTPError uses its own code and message
//   - binder errors become 400 "Invalid request body"
//   - anything else is a 500 with a generic message and the request id
//
// Recoverer applies the same 500 body to panics. When the request context
// is marked as development (environment.Middleware), 500 bodies also carry
// the error text under "detail".
package handler
