package outputdrivers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ecol-master/packhouse/internal/output"
	"github.com/mitchellh/mapstructure"
)

// Factory creates an output writer from configuration
type Factory interface {
	CreateWriter(config map[string]any) (output.WriteCloser, error)
	ValidateConfig(config map[string]any) error
}

// Registry manages driver factories
type Registry struct {
	drivers map[string]Factory
	mu      sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		drivers: make(map[string]Factory),
	}
}

// Register adds a driver factory to the registry
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drivers[name]; exists {
		return fmt.Errorf("%w: %s", ErrDriverExists, name)
	}

	r.drivers[name] = factory
	return nil
}

// Create creates an output writer using the specified driver
func (r *Registry) Create(driverName string, config map[string]any) (output.WriteCloser, error) {
	factory, err := r.lookup(driverName)
	if err != nil {
		return nil, err
	}

	return factory.CreateWriter(config)
}

// ValidateConfig validates configuration for the specified driver
func (r *Registry) ValidateConfig(driverName string, config map[string]any) error {
	factory, err := r.lookup(driverName)
	if err != nil {
		return err
	}

	return factory.ValidateConfig(config)
}

// ListDrivers returns the sorted names of all registered drivers
func (r *Registry) ListDrivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) lookup(driverName string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.drivers[driverName]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driverName)
	}
	return factory, nil
}

// decodeConfig decodes a driver config map into cfg, rejecting unknown keys.
func decodeConfig(config map[string]any, cfg any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

var defaultRegistry = NewRegistry()

// Register adds a driver factory to the default registry
func Register(name string, factory Factory) error {
	return defaultRegistry.Register(name, factory)
}

// Create creates an output writer using the default registry
func Create(driverName string, config map[string]any) (output.WriteCloser, error) {
	return defaultRegistry.Create(driverName, config)
}

// ValidateConfig validates configuration using the default registry
func ValidateConfig(driverName string, config map[string]any) error {
	return defaultRegistry.ValidateConfig(driverName, config)
}

// ListDrivers returns the names of all drivers in the default registry
func ListDrivers() []string {
	return defaultRegistry.ListDrivers()
}
