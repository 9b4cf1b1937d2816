package periph

import "errors"

// Hardware initialization errors
var (
	ErrPeriphInitFailed = errors.New("failed to initialize periph.io")
	ErrPinNotFound      = errors.New("failed to find pin")
)
