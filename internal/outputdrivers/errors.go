package outputdrivers

import "errors"

var (
	ErrDriverExists     = errors.New("driver already registered")
	ErrUnknownDriver    = errors.New("unknown driver")
	ErrInvalidConfig    = errors.New("invalid driver configuration")
	ErrDriverOpenFailed = errors.New("failed to open output driver")
)
