package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfig is a sample config struct for testing
type TestConfig struct {
	ConfigFile string        `mapstructure:"config"`
	Driver     string        `mapstructure:"driver"`
	Relay      string        `mapstructure:"relay"`
	Verbose    bool          `mapstructure:"verbose"`
	Settle     time.Duration `mapstructure:"settle"`
	Chip       ChipConfig    `mapstructure:"gpiocdev"`
}

type ChipConfig struct {
	Chip     string `mapstructure:"chip"`
	Consumer string `mapstructure:"consumer"`
}

func (c *TestConfig) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Config file to use")
	fs.StringVar(&c.Driver, "driver", c.Driver, "Output driver")
	fs.StringVar(&c.Relay, "relay", c.Relay, "Relay pin")
	fs.BoolVar(&c.Verbose, "verbose", c.Verbose, "Log every write")
	fs.StringVar(&c.Chip.Chip, "gpiocdev.chip", c.Chip.Chip, "GPIO chip")
}

var testDefaults = map[string]any{
	"driver":        "dummy",
	"relay":         "GPIO5",
	"verbose":       false,
	"gpiocdev.chip": "gpiochip0",
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newFlagSet(t *testing.T, cfg *TestConfig, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.AddFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestConfigLoader_Defaults(t *testing.T) {
	cfg := &TestConfig{}
	fs := newFlagSet(t, cfg)

	loader := NewConfigLoader()
	loader.SetDefaults(testDefaults)
	require.NoError(t, loader.LoadConfigWithFlagSet(cfg, fs))

	assert.Equal(t, "dummy", cfg.Driver)
	assert.Equal(t, "GPIO5", cfg.Relay)
	assert.Equal(t, "gpiochip0", cfg.Chip.Chip)
	assert.Empty(t, cfg.ConfigFile)
}

func TestConfigLoader_LoadConfig(t *testing.T) {
	path := writeConfig(t, `
driver = "gpiocdev"
relay = "GPIO6:active-low"
verbose = true
settle = "250ms"

[gpiocdev]
chip = "gpiochip4"
consumer = "machine-7"
`)

	cfg := &TestConfig{}
	fs := newFlagSet(t, cfg)

	loader := NewConfigLoader()
	loader.SetConfigFile(path)
	loader.SetDefaults(testDefaults)
	require.NoError(t, loader.LoadConfigWithFlagSet(cfg, fs))

	assert.Equal(t, "gpiocdev", cfg.Driver)
	assert.Equal(t, "GPIO6:active-low", cfg.Relay)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 250*time.Millisecond, cfg.Settle)
	assert.Equal(t, "gpiochip4", cfg.Chip.Chip)
	assert.Equal(t, "machine-7", cfg.Chip.Consumer)
	assert.Equal(t, path, cfg.ConfigFile, "ConfigFile should be preserved")
}

func TestConfigLoader_FlagPrecedence(t *testing.T) {
	path := writeConfig(t, `
driver = "gpiocdev"
relay = "GPIO6"

[gpiocdev]
chip = "gpiochip4"
`)

	cfg := &TestConfig{}
	fs := newFlagSet(t, cfg, "--relay", "GPIO7", "--gpiocdev.chip", "gpiochip1")

	loader := NewConfigLoader()
	loader.SetConfigFile(path)
	loader.SetDefaults(testDefaults)
	require.NoError(t, loader.LoadConfigWithFlagSet(cfg, fs))

	assert.Equal(t, "gpiocdev", cfg.Driver, "unset flag must not override config file")
	assert.Equal(t, "GPIO7", cfg.Relay)
	assert.Equal(t, "gpiochip1", cfg.Chip.Chip)
}

func TestConfigLoader_BoolFlag(t *testing.T) {
	cfg := &TestConfig{}
	fs := newFlagSet(t, cfg, "--verbose")

	loader := NewConfigLoader()
	loader.SetDefaults(testDefaults)
	require.NoError(t, loader.LoadConfigWithFlagSet(cfg, fs))

	assert.True(t, cfg.Verbose)
}

func TestConfigLoader_StrictMode(t *testing.T) {
	path := writeConfig(t, `
driver = "dummy"
relais = "GPIO5"
`)

	cfg := &TestConfig{}
	fs := newFlagSet(t, cfg)

	loader := NewConfigLoader()
	loader.SetConfigFile(path)
	loader.SetStrictMode(true)
	err := loader.LoadConfigWithFlagSet(cfg, fs)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigUnmarshal)
	assert.Contains(t, err.Error(), "relais")

	// Without strict mode the unknown key is ignored.
	loader.SetStrictMode(false)
	assert.NoError(t, loader.LoadConfigWithFlagSet(cfg, fs))
}

func TestConfigLoader_MissingFile(t *testing.T) {
	cfg := &TestConfig{}
	fs := newFlagSet(t, cfg)

	loader := NewConfigLoader()
	loader.SetConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	err := loader.LoadConfigWithFlagSet(cfg, fs)

	assert.ErrorIs(t, err, ErrConfigFileRead)
}

func TestConfigLoader_UnsupportedExtension(t *testing.T) {
	cfg := &TestConfig{}
	fs := newFlagSet(t, cfg)

	path := filepath.Join(t.TempDir(), "config.xml")
	require.NoError(t, os.WriteFile(path, []byte("<driver>dummy</driver>"), 0600))

	loader := NewConfigLoader()
	loader.SetConfigFile(path)
	err := loader.LoadConfigWithFlagSet(cfg, fs)

	assert.ErrorIs(t, err, ErrUnsupportedConfigExt)
}

func TestConfigLoader_YAMLFile(t *testing.T) {
	cfg := &TestConfig{}
	fs := newFlagSet(t, cfg)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("driver: periph\nrelay: GPIO6\n"), 0600))

	loader := NewConfigLoader()
	loader.SetConfigFile(path)
	loader.SetDefaults(testDefaults)
	require.NoError(t, loader.LoadConfigWithFlagSet(cfg, fs))

	assert.Equal(t, "periph", cfg.Driver)
	assert.Equal(t, "GPIO6", cfg.Relay)
	assert.Equal(t, "gpiochip0", cfg.Chip.Chip)
}

func TestConfigLoader_EnvironmentVariables(t *testing.T) {
	t.Setenv("TEST_RELAY_PIN", "GPIO12")
	t.Setenv("TEST_CHIP", "gpiochip2")

	path := writeConfig(t, `
relay = "$TEST_RELAY_PIN"
driver = "${NONEXISTENT_VAR}"

[gpiocdev]
chip = "${TEST_CHIP}"
`)

	cfg := &TestConfig{}
	fs := newFlagSet(t, cfg)

	loader := NewConfigLoader()
	loader.SetConfigFile(path)
	require.NoError(t, loader.LoadConfigWithFlagSet(cfg, fs))

	assert.Equal(t, "GPIO12", cfg.Relay)
	assert.Equal(t, "gpiochip2", cfg.Chip.Chip)
	assert.Equal(t, "${NONEXISTENT_VAR}", cfg.Driver, "unset variables should be left as is")
}

func TestSetConfigFileField(t *testing.T) {
	loader := NewConfigLoader()

	var notPointer TestConfig
	assert.ErrorIs(t, loader.setConfigFileField(notPointer, "x"), ErrConfigNotPointer)

	s := "string"
	assert.ErrorIs(t, loader.setConfigFileField(&s, "x"), ErrConfigNotStruct)

	wrongType := &struct{ ConfigFile int }{}
	assert.ErrorIs(t, loader.setConfigFileField(wrongType, "x"), ErrConfigFieldNotString)

	noField := &struct{ Other string }{}
	assert.NoError(t, loader.setConfigFileField(noField, "x"))
}
