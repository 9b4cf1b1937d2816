package outputdrivers

import (
	"fmt"

	"github.com/ecol-master/packhouse/internal/output"
	"github.com/ecol-master/packhouse/internal/output/piface"
)

const defaultSPIDev = "/dev/spidev0.0"

// PiFaceConfig represents PiFace driver configuration
type PiFaceConfig struct {
	SPIDev string `mapstructure:"spidev"`
}

// PiFaceFactory creates writers for a PiFace Digital board
type PiFaceFactory struct{}

func (f *PiFaceFactory) CreateWriter(config map[string]any) (output.WriteCloser, error) {
	cfg, err := f.parseConfig(config)
	if err != nil {
		return nil, err
	}

	w, err := piface.New(cfg.SPIDev)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDriverOpenFailed, err)
	}
	return w, nil
}

func (f *PiFaceFactory) ValidateConfig(config map[string]any) error {
	_, err := f.parseConfig(config)
	return err
}

func (f *PiFaceFactory) parseConfig(config map[string]any) (*PiFaceConfig, error) {
	cfg := PiFaceConfig{SPIDev: defaultSPIDev}
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, err
	}

	if cfg.SPIDev == "" {
		return nil, fmt.Errorf("%w: piface driver requires an SPI device", ErrInvalidConfig)
	}

	return &cfg, nil
}

func init() {
	Register("piface", &PiFaceFactory{}) //nolint:errcheck
}
