package pinspec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ecol-master/packhouse/internal/output"
)

// Polarity represents the electrical polarity of an output
type Polarity int

const (
	ActiveHigh Polarity = iota
	ActiveLow
)

// PinSpec represents a parsed output pin specification
type PinSpec struct {
	Pin      output.Pin
	Polarity Polarity
}

// Parse parses an output pin specification string.
// Format: "pin[:active-high|active-low]"
// Examples: "GPIO18", "GPIO18:active-low", "5:active-high"
func Parse(spec string) (*PinSpec, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, ErrEmptySpec
	}

	parts := strings.Split(spec, ":")

	pin, err := ParsePinNumber(parts[0])
	if err != nil {
		return nil, err
	}

	polarity := ActiveHigh
	for _, part := range parts[1:] {
		param := strings.ToLower(strings.TrimSpace(part))
		switch param {
		case "active-high":
			polarity = ActiveHigh
		case "active-low":
			polarity = ActiveLow
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownParameter, param)
		}
	}

	return &PinSpec{Pin: pin, Polarity: polarity}, nil
}

// ParsePinNumber parses a GPIO pin name and returns the pin identifier.
// Supports both "GPIO<number>" and "<number>" formats
func ParsePinNumber(name string) (output.Pin, error) {
	numStr := strings.TrimSpace(name)
	if strings.HasPrefix(strings.ToUpper(numStr), "GPIO") {
		numStr = numStr[len("GPIO"):]
	}

	n, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %s (expected format: GPIO<number> or <number>)", ErrInvalidPin, name)
	}

	if n < 0 || n > math.MaxUint8 {
		return 0, fmt.Errorf("%w: %d", ErrPinOutOfRange, n)
	}

	return output.Pin(n), nil
}

// ActiveHigh reports whether the pin is on when driven high.
func (ps *PinSpec) ActiveHigh() bool {
	return ps.Polarity == ActiveHigh
}

// String returns a string representation of the polarity
func (p Polarity) String() string {
	switch p {
	case ActiveHigh:
		return "active-high"
	case ActiveLow:
		return "active-low"
	default:
		return "unknown"
	}
}

// String returns a string representation of the pin specification
func (ps *PinSpec) String() string {
	return fmt.Sprintf("GPIO%d:%s", ps.Pin, ps.Polarity)
}
