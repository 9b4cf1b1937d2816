package controller

import (
	"log"

	"github.com/ecol-master/packhouse/internal/peripheral"
)

// Controller actuates a machine lock: the relay releases the lock and the
// green LED shows that the machine is unlocked. The red LED is held for a
// future locked/error indication and is not driven yet.
//
// Controller does not own its peripherals and must not outlive them.
type Controller[T peripheral.Switchable] struct {
	greenLED T
	redLED   T
	relay    T
}

func New[T peripheral.Switchable](greenLED, redLED, relay T) *Controller[T] {
	return &Controller[T]{
		greenLED: greenLED,
		redLED:   redLED,
		relay:    relay,
	}
}

// Unlock switches on the relay, then the green LED.
func (c *Controller[T]) Unlock() {
	log.Printf("unlocking")
	c.relay.On()
	c.greenLED.On()
}

// Lock switches off the relay, then the green LED.
func (c *Controller[T]) Lock() {
	log.Printf("locking")
	c.relay.Off()
	c.greenLED.Off()
}
