package config

import (
	"fmt"
	"os"

	"github.com/leandrodaf/midicc/sdk/contracts"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Log level name: debug, info, warn, error or fatal
	LogLevel string `yaml:"log_level"`

	// Log to this file instead of stderr
	LogFile string `yaml:"log_file,omitempty"`

	// Output target index; the virtual port when unset or negative
	Target *int `yaml:"target,omitempty"`

	// Preferred output device name, looked up after listing. Takes
	// precedence over Target when the device is present.
	PreferredDevice string `yaml:"preferred_device,omitempty"`

	// Names registered with the host MIDI service
	Names contracts.SessionNames `yaml:"names"`

	// Raw input range rescaled onto 0..127
	Input InputRange `yaml:"input"`
}

// InputRange is the calibrated span of a 10-bit controller reading.
type InputRange struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Input: InputRange{
			Low:  0,
			High: 1023,
		},
	}
}

// LoadConfig loads configuration from file. Keys missing from the file keep
// their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Options converts the configuration into client options.
func (c *Config) Options() ([]contracts.Option, error) {
	var opts []contracts.Option

	if c.LogLevel != "" {
		level, ok := contracts.ParseLogLevel(c.LogLevel)
		if !ok {
			return nil, fmt.Errorf("unknown log level: %s", c.LogLevel)
		}
		opts = append(opts, contracts.WithLogLevel(level))
	}
	if c.LogFile != "" {
		opts = append(opts, contracts.WithLogFilePath(c.LogFile))
	}
	if c.Target != nil {
		opts = append(opts, contracts.WithInitialIndex(*c.Target))
	}
	if c.Names != (contracts.SessionNames{}) {
		opts = append(opts, contracts.WithSessionNames(c.Names))
	}

	return opts, nil
}

// ResolveTarget returns the index of the preferred device in devices, falling
// back to Target and then to the virtual port.
func (c *Config) ResolveTarget(devices contracts.DeviceList) int {
	if c.PreferredDevice != "" {
		for i, d := range devices {
			if d.Name == c.PreferredDevice {
				return i
			}
		}
	}
	if c.Target != nil && *c.Target >= 0 {
		return *c.Target
	}
	return contracts.VirtualPortIndex
}

// SetPreferredDevice sets the preferred device by name. The name must be
// one of devices.
func (c *Config) SetPreferredDevice(name string, devices contracts.DeviceList) error {
	for _, d := range devices {
		if d.Name == name {
			c.PreferredDevice = name
			return nil
		}
	}
	return fmt.Errorf("device not found: %s", name)
}
