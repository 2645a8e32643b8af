// SPDX-License-Identifier: MIT
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.SampleRate != DefaultSampleRate {
		t.Errorf("expected default sample rate, got %.0f", cfg.SampleRate)
	}
	if cfg.FramesPerBuffer != DefaultFramesPerBuffer {
		t.Errorf("expected default frames per buffer, got %d", cfg.FramesPerBuffer)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	t.Parallel()
	if _, err := Load("nonexistent.yaml"); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoadUnmarshalError(t *testing.T) {
	t.Parallel()
	path := writeTempConfig(t, ":\n:bad")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("expected unmarshal error, got %v", err)
	}
}

func TestLoadAppliesFileValues(t *testing.T) {
	t.Parallel()
	path := writeTempConfig(t, "sample_rate: 48000\nframes_per_buffer: 1024\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("expected sample rate 48000, got %.0f", cfg.SampleRate)
	}
	if cfg.FramesPerBuffer != 1024 {
		t.Errorf("expected frames per buffer 1024, got %d", cfg.FramesPerBuffer)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"sample rate too low", func(c *Config) { c.SampleRate = 4000 }},
		{"sample rate too high", func(c *Config) { c.SampleRate = 500000 }},
		{"frames not power of two", func(c *Config) { c.FramesPerBuffer = 1000 }},
		{"frames too large", func(c *Config) { c.FramesPerBuffer = 16384 }},
		{"zero channels", func(c *Config) { c.Channels = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VIZ_SERVE_ADDR", ":9001")
	t.Setenv("VIZ_DEVICE", "3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServeAddr != ":9001" {
		t.Errorf("expected serve addr override, got %q", cfg.ServeAddr)
	}
	if cfg.DeviceID != 3 {
		t.Errorf("expected device override 3, got %d", cfg.DeviceID)
	}
}
