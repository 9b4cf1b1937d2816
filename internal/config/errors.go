package config

import "errors"

// Reading and decoding
var (
	ErrConfigFileRead       = errors.New("failed to read config file")
	ErrUnsupportedConfigExt = errors.New("unsupported config file type")
	ErrConfigUnmarshal      = errors.New("failed to decode config")
)

// Errors setting the ConfigFile field on the target struct
var (
	ErrConfigNotPointer     = errors.New("config must be a non-nil pointer")
	ErrConfigNotStruct      = errors.New("config must point to a struct")
	ErrConfigFieldNotSet    = errors.New("cannot set ConfigFile field")
	ErrConfigFieldNotString = errors.New("ConfigFile field is not a string")
)
