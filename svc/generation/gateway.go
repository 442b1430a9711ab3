package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
)

// Output is the generated copy.
type Output struct {
	Content  string   `json:"content"`
	Tokens   int      `json:"tokens,omitempty"`
	Template Template `json:"template,omitempty"`
}

// Gateway makes one provider call per generation. It does not retry.
type Gateway struct {
	model    llms.Model
	catalog  *Catalog
	timeout  time.Duration
	enhanced bool
	format   bool
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithTimeout bounds each provider call. Zero disables the bound.
func WithTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.timeout = d
	}
}

// WithEnhancedPrompts switches to per-template system messages, scaffolds
// and temperatures.
func WithEnhancedPrompts(enabled bool) GatewayOption {
	return func(g *Gateway) {
		g.enhanced = enabled
	}
}

// WithFormatting enables Format on provider output.
func WithFormatting(enabled bool) GatewayOption {
	return func(g *Gateway) {
		g.format = enabled
	}
}

// NewGateway creates a Gateway around model using catalog for prompts.
func NewGateway(model llms.Model, catalog *Catalog, opts ...GatewayOption) (*Gateway, error) {
	if model == nil {
		return nil, ErrModelRequired
	}
	if catalog == nil {
		return nil, fmt.Errorf("%w: catalog is nil", ErrInvalidCatalog)
	}

	g := &Gateway{model: model, catalog: catalog, timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate produces copy for prompt using template t. Any provider failure,
// including an empty answer, is returned as *GenerationError.
func (g *Gateway) Generate(ctx context.Context, t Template, prompt string, vars map[string]any) (Output, error) {
	p := g.catalog.Basic(prompt)
	if g.enhanced {
		var err error
		if p, err = g.catalog.Enhanced(t, prompt, vars); err != nil {
			return Output{}, &GenerationError{Template: t, Err: err}
		}
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	opts := []llms.CallOption{llms.WithTemperature(p.Temperature)}
	if p.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(p.MaxTokens))
	}

	resp, err := g.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, p.System),
		llms.TextParts(llms.ChatMessageTypeHuman, p.User),
	}, opts...)
	if err != nil {
		return Output{}, &GenerationError{Template: t, Err: err}
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return Output{}, &GenerationError{Template: t, Err: ErrEmptyResponse}
	}

	choice := resp.Choices[0]
	content := choice.Content
	if strings.TrimSpace(content) == "" {
		return Output{}, &GenerationError{Template: t, Err: ErrEmptyResponse}
	}
	if g.format {
		content = Format(t, content)
	}

	return Output{
		Content:  content,
		Tokens:   totalTokens(choice.GenerationInfo),
		Template: t,
	}, nil
}

// totalTokens reads the usage reported by the provider, 0 when absent.
func totalTokens(info map[string]any) int {
	switch v := info["TotalTokens"].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
