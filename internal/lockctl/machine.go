package lockctl

import (
	"fmt"

	"github.com/ecol-master/packhouse/internal/controller"
	"github.com/ecol-master/packhouse/internal/output"
	"github.com/ecol-master/packhouse/internal/outputdrivers"
	"github.com/ecol-master/packhouse/internal/peripheral"
)

// Machine is the lock hardware of one machine: its output driver, the
// peripherals on that driver and the controller driving them.
type Machine struct {
	Writer     output.WriteCloser
	GreenLED   *peripheral.LED
	RedLED     *peripheral.LED
	Relay      *peripheral.Relay
	Controller *controller.Controller[peripheral.Switchable]
}

// NewMachine opens the configured output driver and builds the peripherals.
// The caller must Close the machine.
func NewMachine(cfg *Config) (*Machine, error) {
	pins, err := cfg.Pins()
	if err != nil {
		return nil, err
	}

	w, err := outputdrivers.Create(cfg.Driver, cfg.DriverConfig(pins))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrDriverFailed, cfg.Driver, err)
	}

	return newMachine(w, pins), nil
}

func newMachine(w output.WriteCloser, pins *Pins) *Machine {
	m := &Machine{
		Writer:   w,
		GreenLED: peripheral.NewLED(w, pins.GreenLED),
		RedLED:   peripheral.NewLED(w, pins.RedLED),
		Relay:    peripheral.NewRelay(w, pins.Relay, pins.RelayActiveHigh),
	}
	m.Controller = controller.New[peripheral.Switchable](m.GreenLED, m.RedLED, m.Relay)
	return m
}

// Close releases the output driver. Outputs keep their last level where
// the driver allows it.
func (m *Machine) Close() error {
	return m.Writer.Close()
}

func (m *Machine) String() string {
	return fmt.Sprintf("machine (green %s, red %s, %s)", m.GreenLED, m.RedLED, m.Relay)
}
