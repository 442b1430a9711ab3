// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - Load parses the environment into any struct using `env` tags and caches
//     the result per type, so repeated calls are cheap and consistent.
//   - LoadEnv reads one or more dotenv files; the default .env is read lazily
//     on the first Load.
//   - Structs implementing Validator are checked after parsing, and a failed
//     parse or validation is not cached so it can be retried.
//   - ResetCache clears everything, which tests use between cases.
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
package config
