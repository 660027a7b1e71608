package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/chili-epfl/states-of-matter/internal/config"
	"github.com/chili-epfl/states-of-matter/internal/sim"
)

type ExportData struct {
	Substance  string             `json:"substance"`
	Phase      string             `json:"phase"`
	Thermostat string             `json:"thermostat"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Seed       int64              `json:"seed"`
	Steps      int                `json:"steps"`
	Samples    []sim.Sample       `json:"samples"`
	Particles  []ExportParticle   `json:"particles"`
	Metrics    map[string]float64 `json:"metrics"`
}

type ExportParticle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Kind   string  `json:"kind"`
}

func exportData(cfg *config.Config, result *sim.Result) ExportData {
	data := ExportData{
		Substance:  cfg.Substance,
		Phase:      cfg.Phase,
		Thermostat: cfg.Thermostat,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Seed:       cfg.Seed,
		Steps:      result.Steps,
		Samples:    result.Samples,
		Particles:  make([]ExportParticle, len(result.Particles)),
		Metrics:    result.Metrics,
	}
	for i, p := range result.Particles {
		data.Particles[i] = ExportParticle{X: p.X, Y: p.Y, Radius: p.Radius, Kind: p.Kind}
	}
	return data
}

func ExportJSON(path string, cfg *config.Config, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, cfg, result)
}

func ExportJSONStdout(cfg *config.Config, result *sim.Result) error {
	return writeJSON(os.Stdout, cfg, result)
}

func writeJSON(w io.Writer, cfg *config.Config, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(cfg, result))
}
