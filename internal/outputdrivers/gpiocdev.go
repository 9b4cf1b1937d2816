package outputdrivers

import (
	"fmt"

	"github.com/ecol-master/packhouse/internal/output"
	"github.com/ecol-master/packhouse/internal/output/cdev"
)

const (
	defaultChip     = "gpiochip0"
	defaultConsumer = "packhouse"
)

// GPIOCdevConfig represents GPIO character device driver configuration
type GPIOCdevConfig struct {
	Chip     string `mapstructure:"chip"`
	Consumer string `mapstructure:"consumer"`
}

// GPIOCdevFactory creates writers on a Linux GPIO character device
type GPIOCdevFactory struct{}

func (f *GPIOCdevFactory) CreateWriter(config map[string]any) (output.WriteCloser, error) {
	cfg, err := f.parseConfig(config)
	if err != nil {
		return nil, err
	}

	w, err := cdev.New(cfg.Chip, cfg.Consumer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDriverOpenFailed, err)
	}
	return w, nil
}

func (f *GPIOCdevFactory) ValidateConfig(config map[string]any) error {
	_, err := f.parseConfig(config)
	return err
}

func (f *GPIOCdevFactory) parseConfig(config map[string]any) (*GPIOCdevConfig, error) {
	cfg := GPIOCdevConfig{
		Chip:     defaultChip,
		Consumer: defaultConsumer,
	}
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, err
	}

	if cfg.Chip == "" {
		return nil, fmt.Errorf("%w: gpiocdev driver requires a chip", ErrInvalidConfig)
	}

	return &cfg, nil
}

func init() {
	Register("gpiocdev", &GPIOCdevFactory{}) //nolint:errcheck
}
