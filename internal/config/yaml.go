// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"visualizer/pkg/bitint"
)

// Load reads configuration from the YAML file at path. An empty path
// searches "config.yaml" in the working directory; if no file is found the
// built-in defaults are used. Environment overrides apply after the file,
// and the result is validated.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the audio parameters against the supported limits.
func (c *Config) Validate() error {
	if c.SampleRate < MinSampleRate || c.SampleRate > MaxSampleRate {
		return fmt.Errorf("sample rate %.0f outside supported range [%d, %d]",
			c.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if c.FramesPerBuffer <= 0 || c.FramesPerBuffer > MaxBufferFrames {
		return fmt.Errorf("frames per buffer %d outside supported range (0, %d]",
			c.FramesPerBuffer, MaxBufferFrames)
	}
	if !bitint.IsPowerOfTwo(c.FramesPerBuffer) {
		return fmt.Errorf("frames per buffer must be a power of 2, got %d", c.FramesPerBuffer)
	}
	if c.Channels < 1 || c.Channels > 2 {
		return fmt.Errorf("channels must be 1 or 2, got %d", c.Channels)
	}
	return nil
}

// applyEnvOverrides applies VIZ_* environment variables over the loaded
// values. These exist for containerized and scripted runs where editing a
// config file is inconvenient.
func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("VIZ_VERBOSE"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Verbose = b
		}
	}
	if val, ok := os.LookupEnv("VIZ_SERVE_ADDR"); ok {
		c.ServeAddr = val
	}
	if val, ok := os.LookupEnv("VIZ_UDP_ADDR"); ok {
		c.UDPAddr = val
	}
	if val, ok := os.LookupEnv("VIZ_DEVICE"); ok {
		if id, err := strconv.Atoi(val); err == nil {
			c.DeviceID = id
		}
	}
}
