package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.02
	DefaultDuration = 60.0
	DefaultOutDir   = "runs"
)

type Config struct {
	Substance  string  `yaml:"substance"`
	Phase      string  `yaml:"phase"`
	Molecules  int     `yaml:"molecules"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Seed       int64   `yaml:"seed"`
	Thermostat string  `yaml:"thermostat"`
	OutDir     string  `yaml:"out_dir"`

	Heating HeatingConfig `yaml:"heating"`
	Physics PhysicsConfig `yaml:"physics"`
}

// HeatingConfig drives the temperature and lid over the run. A zero
// value leaves the seeded phase alone.
type HeatingConfig struct {
	// Continuous heat (positive) or cool (negative) input in [-1, 1].
	Amount float64 `yaml:"amount"`

	// Target container height as a fraction of the initial height, in
	// (0, 1]. Zero means the lid stays put.
	LidFraction float64 `yaml:"lid_fraction"`
}

type PhysicsConfig struct {
	Gravity             float64 `yaml:"gravity"`
	InteractionStrength float64 `yaml:"interaction_strength"`
	ExplosionPressure   float64 `yaml:"explosion_pressure"`
}

func DefaultConfig() *Config {
	return &Config{
		Substance:  "neon",
		Phase:      "solid",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Thermostat: "adaptive",
		OutDir:     DefaultOutDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the engine would refuse or silently clamp.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %f", c.Duration)
	}
	if c.Molecules < 0 {
		return fmt.Errorf("config: molecules must not be negative, got %d", c.Molecules)
	}
	if c.Heating.Amount < -1 || c.Heating.Amount > 1 {
		return fmt.Errorf("config: heating amount must be in [-1, 1], got %f", c.Heating.Amount)
	}
	if c.Heating.LidFraction < 0 || c.Heating.LidFraction > 1 {
		return fmt.Errorf("config: lid fraction must be in [0, 1], got %f", c.Heating.LidFraction)
	}
	switch c.Phase {
	case "solid", "liquid", "gas":
	default:
		return fmt.Errorf("config: unknown phase %q", c.Phase)
	}
	switch c.Thermostat {
	case "adaptive", "isokinetic", "andersen", "none":
	default:
		return fmt.Errorf("config: unknown thermostat %q", c.Thermostat)
	}
	return nil
}
