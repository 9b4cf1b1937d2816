package lockctl

import "errors"

// Configuration errors
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrInvalidPin         = errors.New("invalid pin")
	ErrDuplicatePin       = errors.New("pin used more than once")
)

// Command errors
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrDriverFailed   = errors.New("failed to create output driver")
)
