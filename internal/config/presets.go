package config

var Presets = map[string]map[string]*Config{
	"neon": {
		"melt": {
			Substance: "neon", Phase: "solid", Dt: 0.02, Duration: 120.0, Thermostat: "adaptive",
			Heating: HeatingConfig{Amount: 0.4},
		},
		"boil": {
			Substance: "neon", Phase: "liquid", Dt: 0.02, Duration: 120.0, Thermostat: "adaptive",
			Heating: HeatingConfig{Amount: 0.8},
		},
		"freeze": {
			Substance: "neon", Phase: "gas", Dt: 0.02, Duration: 180.0, Thermostat: "adaptive",
			Heating: HeatingConfig{Amount: -0.6},
		},
	},
	"argon": {
		"melt": {
			Substance: "argon", Phase: "solid", Dt: 0.02, Duration: 120.0, Thermostat: "adaptive",
			Heating: HeatingConfig{Amount: 0.4},
		},
		"compress": {
			Substance: "argon", Phase: "gas", Dt: 0.02, Duration: 90.0, Thermostat: "adaptive",
			Heating: HeatingConfig{LidFraction: 0.5},
		},
	},
	"oxygen": {
		"melt": {
			Substance: "oxygen", Phase: "solid", Dt: 0.02, Duration: 120.0, Thermostat: "adaptive",
			Heating: HeatingConfig{Amount: 0.4},
		},
		"explode": {
			Substance: "oxygen", Phase: "gas", Dt: 0.02, Duration: 90.0, Thermostat: "adaptive",
			Heating: HeatingConfig{Amount: 1.0, LidFraction: 0.35},
		},
	},
	"water": {
		"melt": {
			Substance: "water", Phase: "solid", Dt: 0.02, Duration: 150.0, Thermostat: "adaptive",
			Heating: HeatingConfig{Amount: 0.3},
		},
		"boil": {
			Substance: "water", Phase: "liquid", Dt: 0.02, Duration: 150.0, Thermostat: "adaptive",
			Heating: HeatingConfig{Amount: 0.7},
		},
		"crystal": {
			Substance: "water", Phase: "liquid", Dt: 0.02, Duration: 180.0, Thermostat: "adaptive",
			Heating: HeatingConfig{Amount: -0.5},
		},
	},
}

func GetPreset(substance, preset string) *Config {
	substancePresets, ok := Presets[substance]
	if !ok {
		return nil
	}
	cfg, ok := substancePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(substance string) []string {
	substancePresets, ok := Presets[substance]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(substancePresets))
	for name := range substancePresets {
		names = append(names, name)
	}
	return names
}
