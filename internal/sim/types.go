// Package sim runs a simulation model over a configured duration,
// recording a time series and reducing metrics to scalars.
package sim

import "github.com/chili-epfl/states-of-matter/internal/engine"

// Sample is the state recorded after one step.
type Sample struct {
	Time        float64
	Temperature float64
	SetPoint    float64
	Pressure    float64
	Height      float64
	Exploded    bool
}

// Observer is notified after every step of a run.
type Observer interface {
	OnStep(m *engine.SimulationModel, t float64)
}

// Result collects everything a finished run produced.
type Result struct {
	Samples   []Sample
	Metrics   map[string]float64
	Particles []engine.Particle
	Steps     int
}

// Temperatures extracts the temperature column for plotting.
func (r *Result) Temperatures() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Temperature
	}
	return out
}

// Pressures extracts the pressure column for plotting.
func (r *Result) Pressures() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Pressure
	}
	return out
}

// Times extracts the time column.
func (r *Result) Times() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Time
	}
	return out
}
