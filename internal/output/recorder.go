package output

import (
	"fmt"
	"log"
	"sync"
)

// Write is a single recorded call to Recorder.Write.
type Write struct {
	Pin   Pin
	Level Level
}

func (w Write) String() string {
	return fmt.Sprintf("%d:%s", w.Pin, w.Level)
}

// Recorder is an in-memory Writer that remembers every write in order. It
// backs the dummy driver and is used in place of hardware in tests.
type Recorder struct {
	writes  []Write
	verbose bool
	mutex   sync.RWMutex
}

// NewRecorder creates an empty Recorder. When verbose is set every write is
// logged.
func NewRecorder(verbose bool) *Recorder {
	return &Recorder{verbose: verbose}
}

func (r *Recorder) Write(pin Pin, level Level) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.verbose {
		log.Printf("set pin %d %s", pin, level)
	}
	r.writes = append(r.writes, Write{Pin: pin, Level: level})
}

// Writes returns a copy of all writes in the order they were made.
func (r *Recorder) Writes() []Write {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	writes := make([]Write, len(r.writes))
	copy(writes, r.writes)
	return writes
}

// Last returns the most recent level written to pin. The second return value
// is false if pin was never written.
func (r *Recorder) Last(pin Pin) (Level, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for i := len(r.writes) - 1; i >= 0; i-- {
		if r.writes[i].Pin == pin {
			return r.writes[i].Level, true
		}
	}
	return Low, false
}

// Count returns the number of writes made to pin.
func (r *Recorder) Count(pin Pin) int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	n := 0
	for _, w := range r.writes {
		if w.Pin == pin {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.writes = nil
}

// Close is a no-op.
func (r *Recorder) Close() error {
	return nil
}

func (r *Recorder) String() string {
	return "recorder"
}
