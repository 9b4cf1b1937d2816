// Package peripheral provides binary-state devices driven by a single digital
// output line.
package peripheral

import (
	"fmt"

	"github.com/ecol-master/packhouse/internal/output"
)

type (
	// Switchable is a device that can be switched on and off. Each call is a
	// single write to the device's output line.
	Switchable interface {
		On()
		Off()
	}

	// LED is an indicator wired active-low: it lights when its pin is
	// pulled low.
	LED struct {
		w   output.Writer
		pin output.Pin
	}

	// Relay is a relay module on one pin, wired either active-high or
	// active-low.
	Relay struct {
		w          output.Writer
		pin        output.Pin
		activeHigh bool
	}
)

func NewLED(w output.Writer, pin output.Pin) *LED {
	return &LED{w: w, pin: pin}
}

func (l *LED) On() {
	l.w.Write(l.pin, output.Low)
}

func (l *LED) Off() {
	l.w.Write(l.pin, output.High)
}

func (l *LED) Pin() output.Pin {
	return l.pin
}

func (l *LED) String() string {
	return fmt.Sprintf("led:%d", l.pin)
}

func NewRelay(w output.Writer, pin output.Pin, activeHigh bool) *Relay {
	return &Relay{w: w, pin: pin, activeHigh: activeHigh}
}

func (r *Relay) On() {
	r.w.Write(r.pin, r.onLevel())
}

func (r *Relay) Off() {
	r.w.Write(r.pin, !r.onLevel())
}

func (r *Relay) Pin() output.Pin {
	return r.pin
}

func (r *Relay) ActiveHigh() bool {
	return r.activeHigh
}

func (r *Relay) String() string {
	if r.activeHigh {
		return fmt.Sprintf("relay:%d", r.pin)
	}
	return fmt.Sprintf("relay:%d:active-low", r.pin)
}

func (r *Relay) onLevel() output.Level {
	if r.activeHigh {
		return output.High
	}
	return output.Low
}
