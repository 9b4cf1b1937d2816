// Package piface drives the outputs of a PiFace Digital board, an MCP23S17
// port expander on SPI. Outputs 0 and 1 also switch the on-board relays.
package piface

import (
	"fmt"
	"log"
	"sync"

	"github.com/ecol-master/packhouse/internal/output"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// MCP23S17 register addresses
const (
	IODIRA = 0x00 // I/O direction register A
	IOCON  = 0x0A // I/O config
	GPIOA  = 0x12 // GPIO port A register
)

// MCP23S17 SPI write opcode, hardware address 0
const OPCODE_WRITE = 0x40

const NUMBER_OF_OUTPUTS = 8

// Writer drives PiFace outputs. The outputs are open collector: setting a
// bit in GPIOA pulls the terminal low, so a Low write sets the bit and a
// High write clears it.
type Writer struct {
	spiPortName string
	spiPort     spi.PortCloser
	spiConn     spi.Conn
	outputs     uint8
	failures    uint
	mutex       sync.Mutex
}

func validatePin(pin output.Pin) error {
	if pin >= NUMBER_OF_OUTPUTS {
		return fmt.Errorf("%w: %d (must be 0-7)", ErrInvalidPin, pin)
	}
	return nil
}

func setBit(value uint8, pin output.Pin, state bool) uint8 {
	if state {
		return value | (1 << pin)
	}
	return value &^ (1 << pin)
}

// New opens the PiFace on spiPortName (for example "/dev/spidev0.0") and
// releases all outputs.
func New(spiPortName string) (*Writer, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPeriphInitFailed, err)
	}

	spiPort, err := spireg.Open(spiPortName)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrSPIPortOpen, spiPortName, err)
	}

	spiConn, err := spiPort.Connect(1*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		spiPort.Close() //nolint:errcheck
		return nil, fmt.Errorf("%w: %v", ErrSPIConnect, err)
	}
	log.Printf("opened piface device at %s", spiPortName)

	w, err := newWriter(spiPortName, spiConn)
	if err != nil {
		spiPort.Close() //nolint:errcheck
		return nil, err
	}
	w.spiPort = spiPort
	return w, nil
}

func newWriter(name string, conn spi.Conn) (*Writer, error) {
	w := &Writer{
		spiPortName: name,
		spiConn:     conn,
	}

	initSequence := []struct {
		reg   uint8
		value uint8
		desc  string
	}{
		{IOCON, 0x08, "configure IOCON"},
		{IODIRA, 0x00, "set port A as outputs"},
		{GPIOA, 0x00, "release all outputs"},
	}

	for _, step := range initSequence {
		if err := w.writeRegister(step.reg, step.value); err != nil {
			return nil, fmt.Errorf("%w (%s): %v", ErrInitFailed, step.desc, err)
		}
	}

	return w, nil
}

func (w *Writer) Write(pin output.Pin, level output.Level) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if err := validatePin(pin); err != nil {
		w.failures++
		log.Printf("%s: %v", w, err)
		return
	}

	outputs := setBit(w.outputs, pin, level == output.Low)
	if err := w.writeRegister(GPIOA, outputs); err != nil {
		w.failures++
		log.Printf("failed to set %s output %d %s: %v", w, pin, level, err)
		return
	}
	w.outputs = outputs
}

// Outputs returns the last value written to the output register.
func (w *Writer) Outputs() uint8 {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.outputs
}

// Failures returns the number of writes that could not be applied.
func (w *Writer) Failures() uint {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.failures
}

// Close releases the SPI port. Outputs keep their state.
func (w *Writer) Close() error {
	log.Printf("closing %s", w)
	if w.spiPort == nil {
		return nil
	}
	return w.spiPort.Close()
}

func (w *Writer) String() string {
	return fmt.Sprintf("piface:%s", w.spiPortName)
}

func (w *Writer) writeRegister(reg, value uint8) error {
	// Hardware CS is handled by the SPI subsystem
	write := []byte{OPCODE_WRITE, reg, value}
	read := make([]byte, len(write))

	if err := w.spiConn.Tx(write, read); err != nil {
		return fmt.Errorf("%w 0x%02x: %v", ErrRegisterWrite, reg, err)
	}
	return nil
}
