package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ConfigLoader loads configuration with the precedence
// defaults < config file < explicitly set flags.
type ConfigLoader struct {
	configFile   string
	defaults     map[string]any
	preserveFile bool
	strictMode   bool
}

var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{
		defaults:     make(map[string]any),
		preserveFile: true,
	}
}

func (cl *ConfigLoader) SetConfigFile(configFile string) {
	cl.configFile = configFile
}

func (cl *ConfigLoader) SetDefaults(defaults map[string]any) {
	for key, value := range defaults {
		cl.defaults[key] = value
	}
}

// SetStrictMode enables or disables strict mode for configuration validation.
// In strict mode, unknown configuration fields will cause an error.
func (cl *ConfigLoader) SetStrictMode(strict bool) {
	cl.strictMode = strict
}

// LoadConfigWithFlagSet loads configuration into config, which must be a
// pointer to a struct. Only flags in fs that were explicitly set override
// the config file.
func (cl *ConfigLoader) LoadConfigWithFlagSet(config any, fs *pflag.FlagSet) error {
	v := viper.New()

	for key, value := range cl.defaults {
		v.SetDefault(key, value)
	}

	if cl.configFile != "" {
		if err := cl.readConfigFile(v); err != nil {
			return err
		}
	}

	fs.Visit(func(flag *pflag.Flag) {
		if sliceFlag, ok := flag.Value.(pflag.SliceValue); ok {
			v.Set(flag.Name, sliceFlag.GetSlice())
			return
		}
		v.Set(flag.Name, flag.Value.String())
	})

	decoderConfig := mapstructure.DecoderConfig{
		Result:           config,
		ErrorUnused:      cl.strictMode,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}

	decoder, err := mapstructure.NewDecoder(&decoderConfig)
	if err != nil {
		return fmt.Errorf("%w: failed to create decoder: %v", ErrConfigUnmarshal, err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		if cl.configFile != "" && strings.Contains(err.Error(), "has invalid keys:") {
			return fmt.Errorf("%w: %s: %v", ErrConfigUnmarshal, cl.configFile, err)
		}
		return fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	// Viper does not know about the config file path, so restore it.
	if cl.preserveFile && cl.configFile != "" {
		_ = cl.setConfigFileField(config, cl.configFile)
	}

	return nil
}

// readConfigFile reads the config file into v after expanding environment
// variable references. References to unset variables are left as is.
func (cl *ConfigLoader) readConfigFile(v *viper.Viper) error {
	data, err := os.ReadFile(cl.configFile)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrConfigFileRead, cl.configFile, err)
	}

	configType := strings.TrimPrefix(filepath.Ext(cl.configFile), ".")
	if configType == "" {
		configType = "toml"
	}
	if !slices.Contains(viper.SupportedExts, configType) {
		return fmt.Errorf("%w: %s", ErrUnsupportedConfigExt, cl.configFile)
	}
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader([]byte(expandEnv(string(data))))); err != nil {
		return fmt.Errorf("%w %s: %v", ErrConfigFileRead, cl.configFile, err)
	}

	return nil
}

func expandEnv(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.Trim(match, "${}")
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return match
	})
}

// setConfigFileField sets a ConfigFile field on the config struct, if it has one.
func (cl *ConfigLoader) setConfigFileField(config any, configFile string) error {
	v := reflect.ValueOf(config)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("%w: got %T", ErrConfigNotPointer, config)
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %s", ErrConfigNotStruct, v.Kind())
	}

	field := v.FieldByName("ConfigFile")
	if !field.IsValid() {
		return nil
	}

	if !field.CanSet() {
		return fmt.Errorf("%w: ConfigFile", ErrConfigFieldNotSet)
	}

	if field.Kind() != reflect.String {
		return fmt.Errorf("%w: ConfigFile is %s", ErrConfigFieldNotString, field.Kind())
	}

	field.SetString(configFile)
	return nil
}
