package outputdrivers

import (
	"github.com/ecol-master/packhouse/internal/output"
)

// DummyConfig represents dummy driver configuration
type DummyConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// DummyFactory creates in-memory recorders that never touch hardware
type DummyFactory struct{}

func (f *DummyFactory) CreateWriter(config map[string]any) (output.WriteCloser, error) {
	var cfg DummyConfig
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, err
	}

	return output.NewRecorder(cfg.Verbose), nil
}

func (f *DummyFactory) ValidateConfig(config map[string]any) error {
	var cfg DummyConfig
	return decodeConfig(config, &cfg)
}

func init() {
	Register("dummy", &DummyFactory{}) //nolint:errcheck
}
