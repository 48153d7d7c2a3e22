// Package config holds the SPI allocation policy and logging settings read by
// xfrmrec.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/xfrm"
)

var ErrInvalidRange = errors.New("config: invalid spi range")

// Config is the on-disk configuration.
type Config struct {
	SPI     SPI     `yaml:"spi"`
	Logging Logging `yaml:"logging"`
}

// SPI is the range allocation requests ask the kernel to pick from.
type SPI struct {
	Min uint32 `yaml:"min"`
	Max uint32 `yaml:"max"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the iproute2 default SPI range and info logging.
func DefaultConfig() *Config {
	return &Config{
		SPI: SPI{
			Min: xfrm.DefaultSPIRange.Min,
			Max: xfrm.DefaultSPIRange.Max,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML file over the defaults, so keys missing from the
// file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if !filepath.IsAbs(configPath) {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = abs
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes c to configPath, creating the directory if needed.
func SaveConfig(c *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate rejects a range the kernel would refuse: SPI 0 is reserved and
// min may not exceed max.
func (c *Config) Validate() error {
	if c.SPI.Min == 0 {
		return fmt.Errorf("%w: min must be non-zero", ErrInvalidRange)
	}
	if c.SPI.Min > c.SPI.Max {
		return fmt.Errorf("%w: min %#x above max %#x", ErrInvalidRange, c.SPI.Min, c.SPI.Max)
	}
	return nil
}

func (c *Config) SPIRange() xfrm.SPIRange {
	return xfrm.SPIRange{Min: c.SPI.Min, Max: c.SPI.Max}
}
