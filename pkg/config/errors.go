package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrConfigNotLoaded is returned when attempting to access a config that hasn't been loaded
	ErrConfigNotLoaded = errors.New("configuration has not been loaded")

	// ErrNilPointer is returned when a nil pointer is provided to Load
	ErrNilPointer = errors.New("nil pointer provided to config loader")

	// ErrLoadEnvFile is returned when a .env file cannot be read
	ErrLoadEnvFile = errors.New("failed to load env file")

	// ErrReadSource is returned when a configuration source cannot produce its values
	ErrReadSource = errors.New("failed to read configuration source")

	// ErrInvalidConfig is returned when configuration values fail validation.
	// The *props.BatchError with every failure is joined to it.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMixinRequired is matched by every *MixinError
	ErrMixinRequired = errors.New("config does not declare a required mixin")
)
