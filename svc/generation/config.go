package generation

import "time"

// Config configures the provider and the prompt strategy.
type Config struct {
	APIKey   string        `env:"OPENAI_API_KEY"`
	Model    string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	BaseURL  string        `env:"OPENAI_BASE_URL"`
	Timeout  time.Duration `env:"GENERATION_TIMEOUT" envDefault:"30s"`
	Enhanced bool          `env:"GENERATION_ENHANCED" envDefault:"true"`
	Format   bool          `env:"GENERATION_FORMAT" envDefault:"true"`
}
