package config

import "errors"

var (
	ErrNilPointer     = errors.New("config: nil destination")
	ErrParsingConfig  = errors.New("config: cannot parse environment")
	ErrInvalidConfig  = errors.New("config: validation failed")
	ErrLoadingEnvFile = errors.New("config: cannot read env file")
)
