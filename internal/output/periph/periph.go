package periph

import (
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/ecol-master/packhouse/internal/output"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Writer drives pins through the periph.io pin registry.
type Writer struct {
	pins     map[output.Pin]gpio.PinIO
	failures uint
	mutex    sync.Mutex
}

// New initializes periph.io and looks up every pin by number. A pin that the
// host does not know about is an error.
func New(pins []output.Pin) (*Writer, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPeriphInitFailed, err)
	}

	resolved := make(map[output.Pin]gpio.PinIO, len(pins))
	for _, pin := range pins {
		p := gpioreg.ByName(strconv.Itoa(int(pin)))
		if p == nil {
			return nil, fmt.Errorf("%w: %d", ErrPinNotFound, pin)
		}
		resolved[pin] = p
	}

	return NewWithPins(resolved), nil
}

// NewWithPins creates a Writer from already resolved pins.
func NewWithPins(pins map[output.Pin]gpio.PinIO) *Writer {
	return &Writer{pins: pins}
}

// Write sets pin to level. Pin.Out also puts the line in output mode, so the
// first write configures the pin.
func (w *Writer) Write(pin output.Pin, level output.Level) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	p, ok := w.pins[pin]
	if !ok {
		w.failures++
		log.Printf("write to unconfigured pin %d", pin)
		return
	}

	if err := p.Out(gpio.Level(level)); err != nil {
		w.failures++
		log.Printf("failed to set %s %s: %v", p.Name(), level, err)
	}
}

// Failures returns the number of writes that could not be applied.
func (w *Writer) Failures() uint {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.failures
}

// Close leaves every pin at its last written level.
func (w *Writer) Close() error {
	log.Printf("closing periph driver")
	return nil
}

func (w *Writer) String() string {
	return fmt.Sprintf("periph writer with %d pins", len(w.pins))
}
