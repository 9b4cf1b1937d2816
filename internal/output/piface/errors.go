package piface

import "errors"

// Hardware initialization and connection errors
var (
	ErrPeriphInitFailed = errors.New("failed to initialize periph.io")
	ErrSPIPortOpen      = errors.New("failed to open SPI port")
	ErrSPIConnect       = errors.New("failed to connect to SPI")
	ErrInitFailed       = errors.New("failed to initialize piface")
)

// Register and output errors
var (
	ErrRegisterWrite = errors.New("failed to write register")
	ErrInvalidPin    = errors.New("invalid pin number")
)
