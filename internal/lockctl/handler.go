package lockctl

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ecol-master/packhouse/internal/cli"
)

// Handler implements the lockctl commands
type Handler struct {
	stdout     io.Writer
	newMachine func(*Config) (*Machine, error)
}

// NewHandler creates a new lockctl handler
func NewHandler() *Handler {
	return &Handler{
		stdout:     os.Stdout,
		newMachine: NewMachine,
	}
}

// Run implements cli.CommandHandler
func (h *Handler) Run(command string, config cli.Configurable) error {
	cfg, ok := config.(*Config)
	if !ok {
		return fmt.Errorf("unexpected config type %T", config)
	}

	var action func(*Machine)
	switch command {
	case "unlock":
		action = func(m *Machine) { m.Controller.Unlock() }
	case "lock":
		action = func(m *Machine) { m.Controller.Lock() }
	case "help":
		h.showHelp()
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}

	m, err := h.newMachine(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Printf("failed to close %s: %v", m, err)
		}
	}()

	log.Printf("using %s driver for %s", cfg.Driver, m)
	action(m)
	return nil
}

func (h *Handler) showHelp() {
	//nolint:errcheck
	fmt.Fprintf(h.stdout, `lockctl - unlock or lock a machine

Usage: lockctl [flags] <command>

Commands:
  unlock    Switch on the relay and the green LED
  lock      Switch off the relay and the green LED
  help      Show this help
  version   Show version information

The gpiocdev driver releases its lines when lockctl exits, so the kernel
may reset them. Use the periph (default) or piface driver to keep a machine
unlocked between commands.

Default config file: %s
`, getDefaultConfigFile())
}
