package generation

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyResponse       = errors.New("provider returned no content")
	ErrMissingAPIKey       = errors.New("provider api key is not configured")
	ErrUnknownTemplate     = errors.New("unknown template")
	ErrInvalidCatalog      = errors.New("invalid prompt catalog")
	ErrModelRequired       = errors.New("model is required")
	ErrFailedToCreateModel = errors.New("failed to create provider model")
)

// GenerationError reports a failed provider call. Err holds the provider
// detail, which is logged but never shown to clients.
type GenerationError struct {
	Template Template
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed for template %q: %v", e.Template, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsGenerationError reports whether err is or wraps a *GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
