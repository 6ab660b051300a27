package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

type Config struct {
	Mode             string      `json:"mode"` // "loopback", "microphone", "dual-separate", "dual-stereo", "dual-mono"
	OutputDir        string      `json:"output_dir"`
	DurationSeconds  int         `json:"duration_seconds"` // 0 records until interrupted
	Audio            AudioConfig `json:"audio"`
	LoopbackDevice   string      `json:"loopback_device"`   // substring of the render endpoint name
	MicrophoneDevice string      `json:"microphone_device"` // substring of the capture endpoint name
	LogLevel         string      `json:"log_level"`
}

type AudioConfig struct {
	TargetSampleRate int     `json:"target_sample_rate"`
	DrainIntervalMS  int     `json:"drain_interval_ms"`
	LoopbackGain     float64 `json:"loopback_gain"`   // dual-mono only
	MicrophoneGain   float64 `json:"microphone_gain"` // dual-mono only
}

// Load reads the config from disk or returns defaults
func Load() (*Config, error) {
	path := configPath()

	// Default config
	cfg := Default()

	// Load existing config if it exists
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Mode:            "dual-separate",
		OutputDir:       defaultOutputDir(),
		DurationSeconds: 0,
		Audio: AudioConfig{
			TargetSampleRate: 16000,
			DrainIntervalMS:  50,
			LoopbackGain:     0.7,
			MicrophoneGain:   0.7,
		},
		LoopbackDevice:   "",
		MicrophoneDevice: "",
		LogLevel:         "info",
	}
}

// Save writes the config to disk
func (c *Config) Save() error {
	path := configPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// configPath returns the platform-specific config file path
func configPath() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	case "windows":
		base = os.Getenv("APPDATA")
	default: // linux
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.config"
		}
	}

	return filepath.Join(base, "notecap", "config.json")
}

// defaultOutputDir returns the platform-specific recordings directory
func defaultOutputDir() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	case "windows":
		base = os.Getenv("LOCALAPPDATA")
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.local/share"
		}
	}

	return filepath.Join(base, "notecap", "recordings")
}
