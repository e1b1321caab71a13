package jason

import "errors"

var (
	ErrExtensionExists = errors.New("extension already registered")
	ErrNilDefinition   = errors.New("service config definition is nil")
	ErrSetupFailed     = errors.New("service setup failed")
)
