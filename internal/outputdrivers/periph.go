package outputdrivers

import (
	"fmt"
	"math"

	"github.com/ecol-master/packhouse/internal/output"
	"github.com/ecol-master/packhouse/internal/output/periph"
)

// PeriphConfig represents periph.io driver configuration
type PeriphConfig struct {
	Pins []int `mapstructure:"pins"`
}

// PeriphFactory creates writers backed by the periph.io pin registry
type PeriphFactory struct{}

func (f *PeriphFactory) CreateWriter(config map[string]any) (output.WriteCloser, error) {
	pins, err := f.parseConfig(config)
	if err != nil {
		return nil, err
	}

	w, err := periph.New(pins)
	if err != nil {
		return nil, fmt.Errorf("%w: periph with pins %v: %v", ErrDriverOpenFailed, pins, err)
	}
	return w, nil
}

func (f *PeriphFactory) ValidateConfig(config map[string]any) error {
	_, err := f.parseConfig(config)
	return err
}

func (f *PeriphFactory) parseConfig(config map[string]any) ([]output.Pin, error) {
	var cfg PeriphConfig
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, err
	}

	if len(cfg.Pins) == 0 {
		return nil, fmt.Errorf("%w: periph driver requires at least one pin", ErrInvalidConfig)
	}

	pins := make([]output.Pin, len(cfg.Pins))
	for i, n := range cfg.Pins {
		if n < 0 || n > math.MaxUint8 {
			return nil, fmt.Errorf("%w: pin %d out of range", ErrInvalidConfig, n)
		}
		pins[i] = output.Pin(n)
	}

	return pins, nil
}

func init() {
	Register("periph", &PeriphFactory{}) //nolint:errcheck
}
