package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Substance != "neon" {
		t.Errorf("expected substance neon, got %s", cfg.Substance)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"negative molecules", func(c *Config) { c.Molecules = -5 }},
		{"heating out of range", func(c *Config) { c.Heating.Amount = 2 }},
		{"lid fraction out of range", func(c *Config) { c.Heating.LidFraction = 1.5 }},
		{"bad phase", func(c *Config) { c.Phase = "plasma" }},
		{"bad thermostat", func(c *Config) { c.Thermostat = "nose-hoover" }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Substance = "water"
	cfg.Phase = "liquid"
	cfg.Molecules = 32
	cfg.Seed = 7
	cfg.Heating.Amount = 0.5
	cfg.Physics.Gravity = 0.1

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %+v != %+v", loaded, cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("neon", "melt")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Heating.Amount <= 0 {
		t.Error("melt preset should heat")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("neon", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "melt"); cfg != nil {
		t.Error("expected nil for nonexistent substance")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("water")
	if len(presets) == 0 {
		t.Error("expected presets for water")
	}

	if presets = ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent substance")
	}
}

func TestAllPresetsValidate(t *testing.T) {
	for substance, group := range Presets {
		for name, cfg := range group {
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", substance, name, err)
			}
		}
	}
}
