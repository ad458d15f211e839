package constants

import "errors"

// Encoding errors.
var (
	ErrUnsupportedParamValue = errors.New("unsupported parameter value")
	ErrNilFileReader         = errors.New("file parameter has no reader")
)

// Configuration errors.
var (
	ErrInvalidConfigValue = errors.New("invalid configuration value")
	ErrConfigFileNotFound = errors.New("config file not found")
)
