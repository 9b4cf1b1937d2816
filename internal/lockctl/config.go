package lockctl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/ecol-master/packhouse/internal/config"
	"github.com/ecol-master/packhouse/internal/output"
	"github.com/ecol-master/packhouse/internal/pinspec"
	"github.com/spf13/pflag"
)

const (
	// lockctl exits after each command. periph leaves pins at their last
	// level; gpiocdev releases its lines on exit and the level is undefined.
	defaultDriver   = "periph"
	defaultGreenLED = "GPIO17"
	defaultRedLED   = "GPIO27"
	defaultRelay    = "GPIO22"
	defaultChip     = "gpiochip0"
	defaultConsumer = "packhouse"
	defaultSPIDev   = "/dev/spidev0.0"
)

type (
	GPIOCdevConfig struct {
		Chip     string `mapstructure:"chip"`
		Consumer string `mapstructure:"consumer"`
	}

	PiFaceConfig struct {
		SPIDev string `mapstructure:"spidev"`
	}

	// Config holds the lockctl configuration
	Config struct {
		ConfigFile string         `mapstructure:"config"`
		Driver     string         `mapstructure:"driver"`
		GreenLED   string         `mapstructure:"green-led"`
		RedLED     string         `mapstructure:"red-led"`
		Relay      string         `mapstructure:"relay"`
		Verbose    bool           `mapstructure:"verbose"`
		GPIOCdev   GPIOCdevConfig `mapstructure:"gpiocdev"`
		PiFace     PiFaceConfig   `mapstructure:"piface"`
	}

	// Pins are the resolved output pins of a machine lock
	Pins struct {
		GreenLED        output.Pin
		RedLED          output.Pin
		Relay           output.Pin
		RelayActiveHigh bool
	}
)

func getDefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, "packhouse", "lockctl.toml")
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Driver:   defaultDriver,
		GreenLED: defaultGreenLED,
		RedLED:   defaultRedLED,
		Relay:    defaultRelay,
		GPIOCdev: GPIOCdevConfig{
			Chip:     defaultChip,
			Consumer: defaultConsumer,
		},
		PiFace: PiFaceConfig{
			SPIDev: defaultSPIDev,
		},
	}
}

// AddFlags adds command-line flags for all configuration options
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", getDefaultConfigFile(), "Config file to use")
	fs.StringVar(&c.Driver, "driver", c.Driver, "Output driver (dummy, periph, gpiocdev or piface)")
	fs.StringVar(&c.GreenLED, "green-led", c.GreenLED, "Green LED pin (e.g. GPIO17)")
	fs.StringVar(&c.RedLED, "red-led", c.RedLED, "Red LED pin")
	fs.StringVar(&c.Relay, "relay", c.Relay, "Relay pin, optionally with :active-low")
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "Log every pin write (dummy driver)")
	fs.StringVar(&c.GPIOCdev.Chip, "gpiocdev.chip", c.GPIOCdev.Chip, "GPIO chip (gpiocdev driver)")
	fs.StringVar(&c.GPIOCdev.Consumer, "gpiocdev.consumer", c.GPIOCdev.Consumer, "Consumer label for requested lines (gpiocdev driver)")
	fs.StringVar(&c.PiFace.SPIDev, "piface.spidev", c.PiFace.SPIDev, "SPI device (piface driver)")
}

// LoadConfigWithFlagSet loads configuration with proper precedence using a custom flag set
func (c *Config) LoadConfigWithFlagSet(fs *pflag.FlagSet) error {
	explicitConfigFile := fs.Changed("config")

	if _, err := os.Stat(c.ConfigFile); os.IsNotExist(err) {
		if explicitConfigFile {
			return fmt.Errorf("%w: %s", ErrConfigFileNotFound, c.ConfigFile)
		}
		// The default config file is optional
		c.ConfigFile = ""
	}

	loader := config.NewConfigLoader()
	loader.SetConfigFile(c.ConfigFile)
	loader.SetStrictMode(true)
	loader.SetDefaults(map[string]any{
		"driver":            defaultDriver,
		"green-led":         defaultGreenLED,
		"red-led":           defaultRedLED,
		"relay":             defaultRelay,
		"verbose":           false,
		"gpiocdev.chip":     defaultChip,
		"gpiocdev.consumer": defaultConsumer,
		"piface.spidev":     defaultSPIDev,
	})

	if err := loader.LoadConfigWithFlagSet(c, fs); err != nil {
		return err
	}

	return c.Validate()
}

// Validate checks that the pins can be parsed and are distinct
func (c *Config) Validate() error {
	_, err := c.Pins()
	return err
}

// Pins parses the configured pins. LEDs are always active-low, so they
// take a bare pin; the relay may carry a polarity.
func (c *Config) Pins() (*Pins, error) {
	green, err := pinspec.ParsePinNumber(c.GreenLED)
	if err != nil {
		return nil, fmt.Errorf("%w: green-led: %v", ErrInvalidPin, err)
	}

	red, err := pinspec.ParsePinNumber(c.RedLED)
	if err != nil {
		return nil, fmt.Errorf("%w: red-led: %v", ErrInvalidPin, err)
	}

	relay, err := pinspec.Parse(c.Relay)
	if err != nil {
		return nil, fmt.Errorf("%w: relay: %v", ErrInvalidPin, err)
	}

	seen := make(map[output.Pin]string)
	for _, p := range []struct {
		name string
		pin  output.Pin
	}{{"green-led", green}, {"red-led", red}, {"relay", relay.Pin}} {
		if other, ok := seen[p.pin]; ok {
			return nil, fmt.Errorf("%w: %d (%s and %s)", ErrDuplicatePin, p.pin, other, p.name)
		}
		seen[p.pin] = p.name
	}

	return &Pins{
		GreenLED:        green,
		RedLED:          red,
		Relay:           relay.Pin,
		RelayActiveHigh: relay.ActiveHigh(),
	}, nil
}

// DriverConfig returns the configuration map for the selected output driver.
func (c *Config) DriverConfig(pins *Pins) map[string]any {
	switch c.Driver {
	case "dummy":
		return map[string]any{"verbose": c.Verbose}
	case "periph":
		return map[string]any{"pins": []int{int(pins.GreenLED), int(pins.RedLED), int(pins.Relay)}}
	case "gpiocdev":
		return map[string]any{"chip": c.GPIOCdev.Chip, "consumer": c.GPIOCdev.Consumer}
	case "piface":
		return map[string]any{"spidev": c.PiFace.SPIDev}
	default:
		return map[string]any{}
	}
}
