package robot

import (
	"encoding/json"
	"os"
)

const DefaultConfigFile = "armctl.json"

// Config holds the per-installation settings: serial port, baud rate,
// the base mounting offset, optional limit overrides, and named joint
// presets.
type Config struct {
	Port          string                           `json:"port"`
	BaudRate      int                              `json:"baud_rate"`
	BaseOffsetDeg float64                          `json:"base_offset_deg"`
	Limits        LimitTable                       `json:"limits,omitempty"`
	Presets       map[string]map[JointName]float64 `json:"presets,omitempty"`
	// SampleIntervalMs is the continuous recorder's default tick.
	SampleIntervalMs int `json:"sample_interval_ms,omitempty"`
}

// DefaultConfig returns the stock configuration for a freshly wired arm.
func DefaultConfig() *Config {
	return &Config{
		Port:          "/dev/ttyACM0",
		BaudRate:      DefaultBaudRate,
		BaseOffsetDeg: 90,
		Limits:        DefaultLimits(),
		Presets:       DefaultPresets(),
	}
}

// ArmConfig converts the file settings into mechanical arm parameters.
func (c *Config) ArmConfig() ArmConfig {
	return ArmConfig{
		BaseOffsetDeg: c.BaseOffsetDeg,
		Limits:        c.Limits,
	}
}

// LoadConfig loads configuration from the default config file, falling
// back to stock settings when no file exists.
func LoadConfig() (*Config, error) {
	if !ConfigExists() {
		return DefaultConfig(), nil
	}
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists.
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}
