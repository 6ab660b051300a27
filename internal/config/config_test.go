package config

import (
	"testing"
)

func setTempConfigHome(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	// Cover the path resolution of every platform branch.
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("APPDATA", dir)
	t.Setenv("LOCALAPPDATA", dir)
	t.Setenv("XDG_DATA_HOME", dir)
}

func TestLoadDefaults(t *testing.T) {
	setTempConfigHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Mode != "dual-separate" {
		t.Errorf("expected dual-separate default mode, got %q", cfg.Mode)
	}
	if cfg.Audio.TargetSampleRate != 16000 {
		t.Errorf("expected 16000 Hz default, got %d", cfg.Audio.TargetSampleRate)
	}
	if cfg.Audio.DrainIntervalMS != 50 {
		t.Errorf("expected 50ms drain interval, got %d", cfg.Audio.DrainIntervalMS)
	}
	if cfg.Audio.LoopbackGain != 0.7 || cfg.Audio.MicrophoneGain != 0.7 {
		t.Errorf("expected 0.7 default gains, got %f/%f", cfg.Audio.LoopbackGain, cfg.Audio.MicrophoneGain)
	}
	if cfg.DurationSeconds != 0 {
		t.Errorf("expected unbounded duration by default, got %d", cfg.DurationSeconds)
	}
	if cfg.OutputDir == "" {
		t.Error("expected a default output directory")
	}
}

func TestSaveThenLoad(t *testing.T) {
	setTempConfigHome(t)

	cfg := Default()
	cfg.Mode = "dual-mono"
	cfg.MicrophoneDevice = "USB"
	cfg.Audio.TargetSampleRate = 48000

	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Mode != "dual-mono" {
		t.Errorf("expected saved mode, got %q", loaded.Mode)
	}
	if loaded.MicrophoneDevice != "USB" {
		t.Errorf("expected saved device selector, got %q", loaded.MicrophoneDevice)
	}
	if loaded.Audio.TargetSampleRate != 48000 {
		t.Errorf("expected saved sample rate, got %d", loaded.Audio.TargetSampleRate)
	}
}
