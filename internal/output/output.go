package output

import "io"

type (
	// Pin identifies a digital output line.
	Pin uint8

	// Level is the electrical level of a digital output.
	Level bool

	// Writer drives a pin to a level. Writes cannot fail from the caller's
	// point of view; a backend that hits an error handles it itself.
	Writer interface {
		Write(pin Pin, level Level)
	}

	WriteCloser interface {
		Writer
		io.Closer
	}
)

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}
