package pinspec

import "errors"

var (
	ErrEmptySpec        = errors.New("empty pin specification")
	ErrInvalidPin       = errors.New("invalid GPIO pin")
	ErrPinOutOfRange    = errors.New("GPIO pin out of range")
	ErrUnknownParameter = errors.New("unknown pin parameter")
)
