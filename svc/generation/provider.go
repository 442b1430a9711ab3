package generation

import (
	"errors"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewOpenAIModel builds the chat model used by the gateway. The HTTP client
// timeout matches cfg.Timeout so a stuck connection cannot outlive the call.
func NewOpenAIModel(cfg Config) (llms.Model, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, errors.Join(ErrFailedToCreateModel, err)
	}
	return llm, nil
}
