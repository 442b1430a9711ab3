package generation

import "github.com/dmitrymomot/copygen/pkg/validator"

// MaxPromptLength is the prompt limit in characters.
const MaxPromptLength = 1000

// Validation messages returned to clients.
const (
	MsgPromptRequired  = "Prompt is required and must be a string"
	MsgPromptTooLong   = "Prompt must be 1000 characters or less"
	MsgPromptEmpty     = "Prompt cannot be empty"
	MsgInvalidTemplate = "Invalid template. Must be one of: instagram, facebook, ecommerce, email, google, blog"
)

// Request is the body of a generation request. Prompt is untyped so a
// non-string value is reported as a validation failure, not a decode error.
type Request struct {
	Prompt   any            `json:"prompt"`
	Template string         `json:"template"`
	Context  map[string]any `json:"context,omitempty"`
}

// Validate checks req in order and stops at the first failure:
// prompt is a string, fits MaxPromptLength, is not blank, template is known.
func Validate(req Request) error {
	var prompt *string
	if s, ok := req.Prompt.(string); ok {
		prompt = &s
	}
	text := ""
	if prompt != nil {
		text = *prompt
	}

	return validator.First(
		validator.Present("prompt", prompt).WithMessage(MsgPromptRequired),
		validator.MaxLenString("prompt", text, MaxPromptLength).WithMessage(MsgPromptTooLong),
		validator.RequiredString("prompt", text).WithMessage(MsgPromptEmpty),
		validator.InList("template", Template(req.Template), templates).WithMessage(MsgInvalidTemplate),
	)
}

// PromptText returns the prompt as a string; callers validate first.
func (r Request) PromptText() string {
	s, _ := r.Prompt.(string)
	return s
}
