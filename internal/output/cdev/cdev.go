package cdev

import (
	"fmt"
	"log"
	"sync"

	"github.com/ecol-master/packhouse/internal/output"
	"github.com/warthog618/go-gpiocdev"
)

type (
	line interface {
		SetValue(value int) error
		Close() error
	}

	// requestFunc requests offset as an output initialised to value.
	requestFunc func(offset int, value int) (line, error)

	// Writer drives lines on a GPIO character device. Lines are requested
	// on first write, using the level being written as the initial value.
	Writer struct {
		chip     *gpiocdev.Chip
		request  requestFunc
		lines    map[output.Pin]line
		failures uint
		mutex    sync.Mutex
	}
)

// New opens chip (for example "gpiochip0"). Requested lines carry consumer
// as their label.
func New(chip string, consumer string) (*Writer, error) {
	c, err := gpiocdev.NewChip(chip, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrGPIOChipOpenFailed, chip, err)
	}

	w := newWriter(func(offset int, value int) (line, error) {
		l, err := c.RequestLine(offset, gpiocdev.AsOutput(value))
		if err != nil {
			return nil, err
		}
		return l, nil
	})
	w.chip = c
	return w, nil
}

func newWriter(request requestFunc) *Writer {
	return &Writer{
		request: request,
		lines:   make(map[output.Pin]line),
	}
}

func (w *Writer) Write(pin output.Pin, level output.Level) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	value := 0
	if level == output.High {
		value = 1
	}

	l, ok := w.lines[pin]
	if !ok {
		var err error
		l, err = w.request(int(pin), value)
		if err != nil {
			w.failures++
			log.Printf("%s: line %d: %v", ErrLineRequestFailed, pin, err)
			return
		}
		w.lines[pin] = l
		return
	}

	if err := l.SetValue(value); err != nil {
		w.failures++
		log.Printf("failed to set line %d %s: %v", pin, level, err)
	}
}

// Failures returns the number of writes that could not be applied.
func (w *Writer) Failures() uint {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.failures
}

// Close releases all requested lines and the chip.
func (w *Writer) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	log.Printf("closing gpiocdev driver")
	for pin, l := range w.lines {
		if err := l.Close(); err != nil {
			log.Printf("failed to close GPIO line %d: %s", pin, err)
		}
		delete(w.lines, pin)
	}

	if w.chip != nil {
		if err := w.chip.Close(); err != nil {
			log.Printf("failed to close GPIO chip: %s", err)
		}
		w.chip = nil
	}

	return nil
}

func (w *Writer) String() string {
	return fmt.Sprintf("gpiocdev writer with %d lines", len(w.lines))
}
